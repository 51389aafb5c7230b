// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

/*
Package auth implements the user identity layer.

It defines the core domain entity (User) and the logic for registration and
credential verification. Authentication is stateless: a signed JWT carries
the caller's identity, and no session records exist anywhere.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mercatolabs/mercato/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account document.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"` // Explicitly omitted from JSON for security.
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	Role         sec.UserRole       `bson:"role" json:"role"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
}

// PublicUser is the client-visible projection returned by the auth endpoints.
// Its field set mirrors the token claims exactly, so a client can treat the
// login response and a decoded token interchangeably.
type PublicUser struct {
	ID    string       `json:"id"`
	Email string       `json:"email"`
	Name  string       `json:"name"`
	Role  sec.UserRole `json:"role"`
}

// Public returns the client-visible projection of the user.
func (user *User) Public() PublicUser {
	return PublicUser{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldToken    = "token"
	FieldUser     = "user"
)

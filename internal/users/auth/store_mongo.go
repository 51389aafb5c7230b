// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

// MongoDB-backed storage for the auth domain.
//
// # Architecture
//
// Repositories in this file are strictly separated from domain logic. They
// implement domain-defined interfaces (e.g., [UserRepository]) on top of a
// [mongo.Database] handle.
//
// # Error Mapping
//
// Driver errors (like mongo.ErrNoDocuments) are mapped to domain-friendly
// [apperr.AppError] types via dberr to avoid leaking storage details.
package auth

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mercatolabs/mercato/internal/platform/apperr"
	"github.com/mercatolabs/mercato/internal/platform/database/schema"
	"github.com/mercatolabs/mercato/internal/platform/dberr"
)

// # User Repository

// MongoUserRepository implements the UserRepository interface using the
// official MongoDB driver.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new MongoDB implementation of the UserRepository.
func NewUserRepository(database *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: database.Collection(schema.User.Collection)}
}

/*
Create persists a new user document and fills in the generated ObjectID.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Storage connectivity failures
*/
func (repository *MongoUserRepository) Create(context context.Context, user *User) error {
	result, err := repository.collection.InsertOne(context, user)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("mongo_user_repo_create_failed: %w", err), "User")
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return apperr.Internal(fmt.Errorf("mongo_user_repo_create_failed: unexpected inserted id type %T", result.InsertedID))
	}
	user.ID = insertedID

	return nil
}

/*
FindByEmail retrieves a user document by email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or storage errors
*/
func (repository *MongoUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	user := &User{}
	err := repository.collection.FindOne(context, bson.M{schema.User.Email: email}).Decode(user)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

/*
FindByID retrieves a user document by its ObjectID hex string.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.ValidationError for malformed ids, apperr.NotFound, or storage errors
*/
func (repository *MongoUserRepository) FindByID(context context.Context, id string) (*User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ValidationError("Invalid user id")
	}

	user := &User{}
	err = repository.collection.FindOne(context, bson.M{schema.User.ID: objectID}).Decode(user)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

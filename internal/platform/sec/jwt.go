// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces owned by the consumers.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Verification Outcomes

var (
	// ErrTokenExpired marks a token whose signature checked out but whose
	// validity window has passed. Callers may use it to hint the client
	// to re-authenticate.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid covers every other verification failure: malformed
	// compact form, wrong algorithm, tampered payload, bad signature.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// Identity represents the payload embedded inside a JWT access token.
//
// # Why custom claims?
//
// By embedding the user's id, email, name and role directly inside the JWT,
// the authorization middleware can reconstruct the active caller WITHOUT
// querying the database on every single API request. The trade-off is
// staleness: a role change only takes effect once the old token expires.
type Identity struct {
	jwt.RegisteredClaims

	// Claim keys below are part of the public token contract; web and
	// mobile clients decode them directly, so they must not change.
	UserID string   `json:"id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Role   UserRole `json:"role"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// The signing secret is fixed for the lifetime of the process. There is no
// key rotation and no server-side token state: issued tokens stay valid
// until their expiry, with no revocation path.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService signing with the given shared secret.
// An empty secret is refused outright rather than silently producing
// forgeable tokens.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// GenerateAccessToken creates a new JWT access token for a user.
// Expiry is absolute: issuance time plus timeToLive.
func (service *TokenService) GenerateAccessToken(userID, email, name string, role UserRole, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := Identity{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
		Email:  email,
		Name:   name,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
//
// Failures collapse onto two sentinels: [ErrTokenExpired] only when the
// signature verified and the token is merely past its window, and
// [ErrTokenInvalid] for everything else. A tampered token that also happens
// to be expired reports invalid, since its signature never checks out.
func (service *TokenService) VerifyToken(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Identity{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	identity, ok := token.Claims.(*Identity)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	// Tokens minted by older builds may omit the role claim.
	if identity.Role == "" {
		identity.Role = RoleCustomer
	}

	return identity, nil
}

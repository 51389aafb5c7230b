// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

/*
Service layer for the auth domain: registration and credential verification.

Architecture:

  - Service: Orchestrates business logic (Register, Login).
  - Repository: Abstracted interface for the user collection.
  - Security: Leverages bcrypt hashing and HS256-signed JWTs.

Both operations answer with the same payload shape, a signed token plus the
public user projection, so the storefront treats them interchangeably.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/mercatolabs/mercato/internal/platform/apperr"
	"github.com/mercatolabs/mercato/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The document id of the account.
	//   - email: The account email, carried as a claim.
	//   - name: The display name, carried as a claim.
	//   - role: The authorization role, carried as a claim.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, email, name string, role sec.UserRole, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
	}
}

// AuthPayload is the response body for both registration and login.
type AuthPayload struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new customer.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account, then
issues its first access token.

Description: New accounts always start as active customers; admin accounts
are provisioned out of band, never through this endpoint.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *AuthPayload: Signed token plus public user projection
  - err: Conflict (if the email is taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*AuthPayload, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	// The check and the insert below are separate operations, so two
	// concurrent registrations for the same email can both pass this point.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. The store fills in the ObjectID.
	user := &User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleCustomer,
		IsActive:     true,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return service.issuePayload(user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a fresh access token.

Description: Performs constant-time password comparison. The failure
response is identical for unknown emails and wrong passwords so the
endpoint cannot be used to enumerate accounts.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthPayload: Signed token plus public user projection
  - err: InvalidCredentials or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthPayload, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.InvalidCredentials()
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	return service.issuePayload(user)
}

// issuePayload signs a token for the user and bundles the public projection.
func (service *Service) issuePayload(user *User) (*AuthPayload, error) {
	token, err := service.tokenProvider.GenerateAccessToken(user.ID.Hex(), user.Email, user.Name, user.Role, TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthPayload{
		Token: token,
		User:  user.Public(),
	}, nil
}

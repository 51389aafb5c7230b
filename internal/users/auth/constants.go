// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

package auth

import "time"

// # Authentication Constraints

const (
	// TokenTTL is the duration a JWT access token remains valid.
	// There is no refresh flow; clients re-authenticate when it lapses.
	// The window matches what the storefront was built against.
	TokenTTL = 24 * time.Hour

	// PasswordMinLength is the minimum accepted password length.
	PasswordMinLength = 6
)

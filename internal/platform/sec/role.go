// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access, including catalog management
	RoleAdmin UserRole = "admin"

	// Default role for registered shoppers
	RoleCustomer UserRole = "customer"
)

// ParseRole maps an untrusted role string to a known role.
// Unknown or empty values fall back to the least-privileged role.
func ParseRole(value string) UserRole {
	if UserRole(value) == RoleAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-20) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 20
	case RoleCustomer:
		return 10
	default:
		return 0
	}
}

package domain

import (
	"fmt"
	"time"
)

// Role represents the role of a user.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleDriver   Role = "driver"
	RoleAdmin    Role = "admin"
)

// ParseRole validates a role string at the boundary.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleEmployee, RoleDriver, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User represents an account in the system. PasswordHash is the bcrypt
// hash of the credential and must never appear in any response payload.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	Phone        string
	CreatedAt    time.Time
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   string
	Role Role
}

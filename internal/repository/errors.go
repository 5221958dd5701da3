package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert collides with an existing
	// entity on a unique attribute.
	ErrDuplicate = errors.New("entity already exists")
)

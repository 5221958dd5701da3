package service

import (
	"errors"
	"fmt"

	"cabrix/internal/domain"
)

var (
	// ErrForbidden is returned when the actor is not allowed to perform
	// the operation.
	ErrForbidden = errors.New("unauthorized")

	// ErrNotADriver is returned when a user without the driver role is
	// assigned as a trip or vehicle driver.
	ErrNotADriver = errors.New("user is not a driver")

	// ErrNoCompany is returned when a trip is created by a user with no
	// company membership and no explicit company.
	ErrNoCompany = errors.New("user has no associated company")

	// ErrInvalidPickupTime is returned when a pickup time cannot be parsed.
	ErrInvalidPickupTime = errors.New("invalid pickup time format")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when an access token is missing,
	// malformed or expired.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrCompanyExists is returned when registering a company whose name
	// is already taken.
	ErrCompanyExists = errors.New("company already exists")

	// ErrUserExists is returned when a username or email is already taken.
	ErrUserExists = errors.New("username or email already exists")

	// ErrVehicleExists is returned when a registration number is already taken.
	ErrVehicleExists = errors.New("vehicle already exists")

	// ErrTripClosed is returned when binding a driver or vehicle to a
	// trip in a terminal status.
	ErrTripClosed = errors.New("trip is completed or cancelled")

	// ErrVehicleUnavailable is returned when vehicle status enforcement
	// is on and the vehicle is not available for dispatch.
	ErrVehicleUnavailable = errors.New("vehicle is not available")

	// ErrDriverBusy is returned when exclusivity enforcement is on and
	// the driver is already bound to another active trip.
	ErrDriverBusy = errors.New("driver already assigned to an active trip")

	// ErrVehicleBusy is returned when exclusivity enforcement is on and
	// the vehicle is already bound to another active trip.
	ErrVehicleBusy = errors.New("vehicle already assigned to an active trip")

	// ErrDispatchConflict is returned when a concurrent dispatch holds
	// the trip lock; callers should retry.
	ErrDispatchConflict = errors.New("trip is being updated, retry")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// InvalidTransitionError reports a status change not permitted by the
// trip lifecycle graph. It always names both ends of the attempt.
type InvalidTransitionError struct {
	From domain.TripStatus
	To   domain.TripStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

package service

import (
	"time"

	"cabrix/internal/domain"
)

// Lifecycle enforces the trip status machine and the per-status field
// mutability rules. It operates on in-memory trips only; persistence is
// the caller's concern. All checks run before any mutation, so a failed
// call leaves the trip unchanged.
type Lifecycle struct{}

// NewLifecycle creates a new Lifecycle.
func NewLifecycle() Lifecycle {
	return Lifecycle{}
}

// Transition moves the trip to the requested status.
//
// The graph is pending → {in_progress, cancelled}, in_progress →
// {completed}; completed and cancelled are terminal. Starting or
// completing a trip requires a driver or admin actor. Completing a trip
// stamps CompletedAt; no other path sets it.
func (Lifecycle) Transition(trip *domain.Trip, requested domain.TripStatus, actorRole domain.Role) error {
	if !trip.Status.CanTransitionTo(requested) {
		return &InvalidTransitionError{From: trip.Status, To: requested}
	}

	if requested == domain.TripStatusInProgress || requested == domain.TripStatusCompleted {
		if actorRole != domain.RoleAdmin && actorRole != domain.RoleDriver {
			return ErrForbidden
		}
	}

	trip.Status = requested
	if requested == domain.TripStatusCompleted {
		trip.CompletedAt = time.Now().UTC()
	}

	return nil
}

// TripFields carries the mutable trip fields of an update request. Nil
// pointers mean the field was absent from the payload.
type TripFields struct {
	PickupLocation  *string
	DropoffLocation *string
	PickupTime      *time.Time
	Notes           *string
}

// CanEditRouteFields reports whether pickup, dropoff and pickup time
// are writable: only while the trip is pending and the actor is an
// admin or employee.
func (Lifecycle) CanEditRouteFields(status domain.TripStatus, actorRole domain.Role) bool {
	return status == domain.TripStatusPending &&
		(actorRole == domain.RoleAdmin || actorRole == domain.RoleEmployee)
}

// ApplyFields applies pre-dispatch field changes. Pickup, dropoff and
// pickup time are writable only while the trip is pending and the actor
// is an admin or employee; each field outside that window is skipped
// without error. Notes are writable in any status; access to the trip
// itself has already been checked at the resource level.
func (l Lifecycle) ApplyFields(trip *domain.Trip, fields TripFields, actorRole domain.Role) {
	if l.CanEditRouteFields(trip.Status, actorRole) {
		if fields.PickupLocation != nil {
			trip.PickupLocation = *fields.PickupLocation
		}
		if fields.DropoffLocation != nil {
			trip.DropoffLocation = *fields.DropoffLocation
		}
		if fields.PickupTime != nil {
			trip.PickupTime = *fields.PickupTime
		}
	}

	if fields.Notes != nil {
		trip.Notes = *fields.Notes
	}
}

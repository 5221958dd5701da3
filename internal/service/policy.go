package service

import (
	"cabrix/internal/domain"
	"cabrix/internal/repository"
)

// Policy is the authorization decision point. Every method is a pure
// function over the actor and the resource owners; the policy never
// mutates state. Admins pass every check.
type Policy struct{}

// NewPolicy creates a new Policy.
func NewPolicy() Policy {
	return Policy{}
}

// CanAccessTrip reports whether the actor may read or update the trip.
// Non-admins must be the trip's passenger or driver, regardless of role.
func (Policy) CanAccessTrip(actor domain.Actor, trip *domain.Trip) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	return actor.ID == trip.PassengerID || (trip.DriverID != "" && actor.ID == trip.DriverID)
}

// TripFilter returns the listing scope for the actor. Listing is a
// filtering contract: the caller receives exactly the subset it is
// authorized to see, never a denial.
func (Policy) TripFilter(actor domain.Actor) repository.TripFilter {
	switch actor.Role {
	case domain.RoleAdmin:
		return repository.TripFilter{}
	case domain.RoleDriver:
		return repository.TripFilter{DriverID: actor.ID}
	default:
		return repository.TripFilter{PassengerID: actor.ID}
	}
}

// CanManageUsers reports whether the actor may create or list users.
func (Policy) CanManageUsers(actor domain.Actor) bool {
	return actor.Role == domain.RoleAdmin
}

// CanManageVehicles reports whether the actor may create or update vehicles.
func (Policy) CanManageVehicles(actor domain.Actor) bool {
	return actor.Role == domain.RoleAdmin
}

// CanDispatch reports whether the actor may bind drivers or vehicles,
// either to a trip or at the fleet level.
func (Policy) CanDispatch(actor domain.Actor) bool {
	return actor.Role == domain.RoleAdmin
}

// CanDeleteTrip reports whether the actor may delete a trip.
func (Policy) CanDeleteTrip(actor domain.Actor) bool {
	return actor.Role == domain.RoleAdmin
}

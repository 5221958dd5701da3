package domain

import (
	"fmt"
	"time"
)

// TripStatus represents the lifecycle status of a trip.
type TripStatus string

const (
	TripStatusPending    TripStatus = "pending"
	TripStatusInProgress TripStatus = "in_progress"
	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
)

// ParseTripStatus validates a trip status string at the boundary.
func ParseTripStatus(s string) (TripStatus, error) {
	switch TripStatus(s) {
	case TripStatusPending, TripStatusInProgress, TripStatusCompleted, TripStatusCancelled:
		return TripStatus(s), nil
	}
	return "", fmt.Errorf("unknown trip status %q", s)
}

// Successors returns the set of statuses reachable from s. The function
// is total: terminal statuses return an empty set.
func (s TripStatus) Successors() []TripStatus {
	switch s {
	case TripStatusPending:
		return []TripStatus{TripStatusInProgress, TripStatusCancelled}
	case TripStatusInProgress:
		return []TripStatus{TripStatusCompleted}
	default:
		return nil
	}
}

// CanTransitionTo reports whether the status graph permits s → to.
func (s TripStatus) CanTransitionTo(to TripStatus) bool {
	for _, next := range s.Successors() {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s accepts no further transitions.
func (s TripStatus) IsTerminal() bool {
	return s == TripStatusCompleted || s == TripStatusCancelled
}

// Trip is the central mutable entity: a single passenger transport
// request. DriverID and VehicleID are empty until dispatch; CompletedAt
// is zero unless Status is completed.
type Trip struct {
	ID              string
	PickupLocation  string
	DropoffLocation string
	PickupTime      time.Time
	Status          TripStatus
	CreatedAt       time.Time
	CompletedAt     time.Time
	Notes           string

	PassengerID string
	CompanyID   string
	DriverID    string
	VehicleID   string
}

package repository

import (
	"context"

	"cabrix/internal/domain"
)

// TripFilter narrows a trip listing to the subset an actor is allowed
// to see. Zero-value fields are not applied.
type TripFilter struct {
	PassengerID string
	DriverID    string
}

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// List retrieves trips matching the filter, newest first.
	List(ctx context.Context, filter TripFilter) ([]*domain.Trip, error)

	// Update updates an existing trip.
	Update(ctx context.Context, trip *domain.Trip) error

	// Delete removes a trip.
	Delete(ctx context.Context, id string) error

	// CountActiveByDriverID counts non-terminal trips bound to a driver.
	CountActiveByDriverID(ctx context.Context, driverID string) (int, error)

	// CountActiveByVehicleID counts non-terminal trips bound to a vehicle.
	CountActiveByVehicleID(ctx context.Context, vehicleID string) (int, error)
}

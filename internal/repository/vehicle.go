package repository

import (
	"context"

	"cabrix/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles and
// the driver-vehicle fleet links.
type VehicleRepository interface {
	// Create persists a new vehicle.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetByRegistration retrieves a vehicle by its registration number.
	GetByRegistration(ctx context.Context, registrationNumber string) (*domain.Vehicle, error)

	// GetAll retrieves all vehicles.
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)

	// Update updates an existing vehicle.
	Update(ctx context.Context, vehicle *domain.Vehicle) error

	// LinkDriver links a driver to a vehicle. Linking an existing pair
	// is a no-op.
	LinkDriver(ctx context.Context, driverID, vehicleID string) error
}

package service

import (
	"context"

	"cabrix/internal/domain"
	"cabrix/internal/observability"
	"cabrix/internal/repository"
)

// AssignmentConfig controls the optional dispatch constraints. Both
// default to off, matching the permissive fleet model where a driver or
// vehicle may appear on several open trips at once.
type AssignmentConfig struct {
	// EnforceVehicleStatus rejects dispatching a vehicle whose fleet
	// status is not "available".
	EnforceVehicleStatus bool

	// EnforceExclusivity rejects binding a driver or vehicle that is
	// already on another non-terminal trip.
	EnforceExclusivity bool
}

// Assignment validates and applies driver and vehicle bindings, both on
// trips and at the fleet level. Trip bindings mutate the given trip in
// memory only; persisting the result is the caller's concern.
type Assignment struct {
	userRepo    repository.UserRepository
	vehicleRepo repository.VehicleRepository
	tripRepo    repository.TripRepository
	cfg         AssignmentConfig
}

// NewAssignment creates a new Assignment resolver.
func NewAssignment(
	userRepo repository.UserRepository,
	vehicleRepo repository.VehicleRepository,
	tripRepo repository.TripRepository,
	cfg AssignmentConfig,
) *Assignment {
	return &Assignment{
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
		tripRepo:    tripRepo,
		cfg:         cfg,
	}
}

// AssignDriver binds a driver to the trip. The actor must be an admin,
// the trip must not be terminal, and the referenced user must exist and
// carry the driver role.
func (a *Assignment) AssignDriver(ctx context.Context, trip *domain.Trip, driverID string, actor domain.Actor) error {
	if actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}

	if trip.Status.IsTerminal() {
		return ErrTripClosed
	}

	driver, err := a.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return err
	}

	if driver.Role != domain.RoleDriver {
		return ErrNotADriver
	}

	if a.cfg.EnforceExclusivity && trip.DriverID != driverID {
		active, err := a.tripRepo.CountActiveByDriverID(ctx, driverID)
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrDriverBusy
		}
	}

	trip.DriverID = driverID
	observability.DispatchAssignmentsTotal.WithLabelValues("driver").Inc()

	return nil
}

// AssignVehicle binds a vehicle to the trip. The actor must be an admin,
// the trip must not be terminal, and the vehicle must exist.
func (a *Assignment) AssignVehicle(ctx context.Context, trip *domain.Trip, vehicleID string, actor domain.Actor) error {
	if actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}

	if trip.Status.IsTerminal() {
		return ErrTripClosed
	}

	vehicle, err := a.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}

	if a.cfg.EnforceVehicleStatus && vehicle.Status != domain.VehicleStatusAvailable {
		return ErrVehicleUnavailable
	}

	if a.cfg.EnforceExclusivity && trip.VehicleID != vehicleID {
		active, err := a.tripRepo.CountActiveByVehicleID(ctx, vehicleID)
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrVehicleBusy
		}
	}

	trip.VehicleID = vehicleID
	observability.DispatchAssignmentsTotal.WithLabelValues("vehicle").Inc()

	return nil
}

// AssignDriverToVehicle links a driver and a vehicle at the fleet level,
// independent of any trip. Re-linking an already linked pair is a no-op.
func (a *Assignment) AssignDriverToVehicle(ctx context.Context, driverID, vehicleID string, actor domain.Actor) error {
	if actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}

	driver, err := a.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return err
	}

	if driver.Role != domain.RoleDriver {
		return ErrNotADriver
	}

	if _, err := a.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return err
	}

	if err := a.vehicleRepo.LinkDriver(ctx, driverID, vehicleID); err != nil {
		return err
	}

	observability.DispatchAssignmentsTotal.WithLabelValues("fleet").Inc()

	return nil
}

package tests

import (
	"context"
	"errors"
	"testing"

	"cabrix/internal/domain"
	"cabrix/internal/repository"
	"cabrix/internal/service"
)

// ──────────────────────────────────────────────
// VEHICLE MANAGEMENT
// ──────────────────────────────────────────────

func TestVehicleService_CreateDefaultsToAvailable(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	vehicles := service.NewVehicleService(vehicleRepo, service.NewPolicy(), nil)
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	vehicle, err := vehicles.CreateVehicle(context.Background(), admin, service.CreateVehicleRequest{
		RegistrationNumber: "KA-01-1234",
		Model:              "Toyota Hiace",
		CapacityType:       "van",
		Capacity:           8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		t.Errorf("expected available status, got %s", vehicle.Status)
	}
	if vehicleRepo.GetVehicle(vehicle.ID) == nil {
		t.Error("vehicle not persisted")
	}
}

func TestVehicleService_CreateRejectsDuplicateRegistration(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-1", RegistrationNumber: "KA-01-1234"})

	vehicles := service.NewVehicleService(vehicleRepo, service.NewPolicy(), nil)
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	_, err := vehicles.CreateVehicle(context.Background(), admin, service.CreateVehicleRequest{
		RegistrationNumber: "KA-01-1234",
		Model:              "Toyota Hiace",
		CapacityType:       "van",
		Capacity:           8,
	})
	if !errors.Is(err, service.ErrVehicleExists) {
		t.Fatalf("expected ErrVehicleExists, got %v", err)
	}
}

func TestVehicleService_CreateMapsInsertRaceToDuplicate(t *testing.T) {
	t.Parallel()

	// A concurrent insert can win after the registration lookup; the
	// unique-constraint error from the store must still read as a
	// duplicate, not an internal failure.
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.CreateError = repository.ErrDuplicate

	vehicles := service.NewVehicleService(vehicleRepo, service.NewPolicy(), nil)
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	_, err := vehicles.CreateVehicle(context.Background(), admin, service.CreateVehicleRequest{
		RegistrationNumber: "KA-01-1234",
		Model:              "Toyota Hiace",
		CapacityType:       "van",
		Capacity:           8,
	})
	if !errors.Is(err, service.ErrVehicleExists) {
		t.Fatalf("expected ErrVehicleExists, got %v", err)
	}
}

func TestVehicleService_CreateIsAdminOnly(t *testing.T) {
	t.Parallel()

	vehicles := service.NewVehicleService(NewMockVehicleRepository(), service.NewPolicy(), nil)

	for _, actor := range []domain.Actor{
		{ID: "employee-1", Role: domain.RoleEmployee},
		{ID: "driver-1", Role: domain.RoleDriver},
	} {
		_, err := vehicles.CreateVehicle(context.Background(), actor, service.CreateVehicleRequest{
			RegistrationNumber: "KA-01-1234",
			Model:              "Toyota Hiace",
			CapacityType:       "van",
			Capacity:           8,
		})
		if !errors.Is(err, service.ErrForbidden) {
			t.Errorf("%s: expected ErrForbidden, got %v", actor.Role, err)
		}
	}
}

func TestVehicleService_UpdateIsPartial(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:                 "vehicle-1",
		RegistrationNumber: "KA-01-1234",
		Model:              "Toyota Hiace",
		CapacityType:       "van",
		Capacity:           8,
		Status:             domain.VehicleStatusAvailable,
	})

	vehicles := service.NewVehicleService(vehicleRepo, service.NewPolicy(), nil)
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	status := "maintenance"
	updated, err := vehicles.UpdateVehicle(context.Background(), admin, "vehicle-1", service.UpdateVehicleRequest{
		Status: &status,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.VehicleStatusMaintenance {
		t.Errorf("status not applied: %s", updated.Status)
	}
	if updated.Model != "Toyota Hiace" || updated.Capacity != 8 {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestVehicleService_UpdateRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-1", Status: domain.VehicleStatusAvailable})

	vehicles := service.NewVehicleService(vehicleRepo, service.NewPolicy(), nil)
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	status := "submerged"
	_, err := vehicles.UpdateVehicle(context.Background(), admin, "vehicle-1", service.UpdateVehicleRequest{
		Status: &status,
	})
	var validationErr *service.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := vehicleRepo.GetVehicle("vehicle-1").Status; got != domain.VehicleStatusAvailable {
		t.Errorf("rejected update persisted status %s", got)
	}
}

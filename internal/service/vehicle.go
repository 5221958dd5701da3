package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"cabrix/internal/domain"
	redisstore "cabrix/internal/redis"
	"cabrix/internal/repository"
)

// VehicleService handles fleet vehicle management.
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
	policy      Policy
	cacheStore  *redisstore.CacheStore
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicleRepo repository.VehicleRepository, policy Policy, cacheStore *redisstore.CacheStore) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		policy:      policy,
		cacheStore:  cacheStore,
	}
}

// CreateVehicleRequest contains the parameters for creating a vehicle.
type CreateVehicleRequest struct {
	RegistrationNumber string
	Model              string
	CapacityType       string
	Capacity           int
	Status             string
}

// CreateVehicle registers a new fleet vehicle. Admin only.
func (s *VehicleService) CreateVehicle(ctx context.Context, actor domain.Actor, req CreateVehicleRequest) (*domain.Vehicle, error) {
	if !s.policy.CanManageVehicles(actor) {
		return nil, ErrForbidden
	}

	if req.RegistrationNumber == "" {
		return nil, &ValidationError{Field: "registration_number"}
	}
	if req.Model == "" {
		return nil, &ValidationError{Field: "model"}
	}
	if req.CapacityType == "" {
		return nil, &ValidationError{Field: "capacity_type"}
	}
	if req.Capacity <= 0 {
		return nil, &ValidationError{Field: "capacity"}
	}

	status := domain.VehicleStatusAvailable
	if req.Status != "" {
		parsed, err := domain.ParseVehicleStatus(req.Status)
		if err != nil {
			return nil, &ValidationError{Field: "status", Reason: err.Error()}
		}
		status = parsed
	}

	if _, err := s.vehicleRepo.GetByRegistration(ctx, req.RegistrationNumber); err == nil {
		return nil, ErrVehicleExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	vehicle := &domain.Vehicle{
		ID:                 uuid.New().String(),
		RegistrationNumber: req.RegistrationNumber,
		Model:              req.Model,
		CapacityType:       req.CapacityType,
		Capacity:           req.Capacity,
		Status:             status,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrVehicleExists
		}
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetVehicle(ctx, vehicleToCache(vehicle))
	}

	return vehicle, nil
}

// UpdateVehicleRequest contains a partial vehicle update. Nil pointers
// mean the field was absent from the payload.
type UpdateVehicleRequest struct {
	Model        *string
	CapacityType *string
	Capacity     *int
	Status       *string
}

// UpdateVehicle applies a partial update to a vehicle. Admin only.
func (s *VehicleService) UpdateVehicle(ctx context.Context, actor domain.Actor, vehicleID string, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	if !s.policy.CanManageVehicles(actor) {
		return nil, ErrForbidden
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.CapacityType != nil {
		vehicle.CapacityType = *req.CapacityType
	}
	if req.Capacity != nil {
		vehicle.Capacity = *req.Capacity
	}
	if req.Status != nil {
		status, err := domain.ParseVehicleStatus(*req.Status)
		if err != nil {
			return nil, &ValidationError{Field: "status", Reason: err.Error()}
		}
		vehicle.Status = status
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateVehicle(ctx, vehicle.ID)
	}

	return vehicle, nil
}

// GetVehicle retrieves a vehicle by ID.
func (s *VehicleService) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetVehicle(ctx, vehicleID)
		if err == nil && cached != nil {
			return vehicleFromCache(cached), nil
		}
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetVehicle(ctx, vehicleToCache(vehicle))
	}

	return vehicle, nil
}

// ListVehicles retrieves all vehicles.
func (s *VehicleService) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.GetAll(ctx)
}

func vehicleToCache(vehicle *domain.Vehicle) *redisstore.CachedVehicle {
	return &redisstore.CachedVehicle{
		ID:                 vehicle.ID,
		RegistrationNumber: vehicle.RegistrationNumber,
		Model:              vehicle.Model,
		CapacityType:       vehicle.CapacityType,
		Capacity:           vehicle.Capacity,
		Status:             string(vehicle.Status),
	}
}

func vehicleFromCache(cached *redisstore.CachedVehicle) *domain.Vehicle {
	return &domain.Vehicle{
		ID:                 cached.ID,
		RegistrationNumber: cached.RegistrationNumber,
		Model:              cached.Model,
		CapacityType:       cached.CapacityType,
		Capacity:           cached.Capacity,
		Status:             domain.VehicleStatus(cached.Status),
	}
}

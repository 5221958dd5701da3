package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cabrix/internal/domain"
	"cabrix/internal/observability"
	redisstore "cabrix/internal/redis"
	"cabrix/internal/repository"
)

const dispatchLockTTL = 5 * time.Second

// TripService handles trip operations. Each operation is a single
// read-modify-write against one trip record; the dispatch lock bounds
// concurrent updates to the same trip and losers of the race retry.
type TripService struct {
	tripRepo      repository.TripRepository
	userRepo      repository.UserRepository
	companyRepo   repository.CompanyRepository
	policy        Policy
	lifecycle     Lifecycle
	assignment    *Assignment
	lockStore     redisstore.LockStoreInterface
	cacheStore    *redisstore.CacheStore
	notifications *NotificationService
}

// NewTripService creates a new TripService.
func NewTripService(
	tripRepo repository.TripRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	policy Policy,
	lifecycle Lifecycle,
	assignment *Assignment,
	lockStore redisstore.LockStoreInterface,
	cacheStore *redisstore.CacheStore,
	notifications *NotificationService,
) *TripService {
	return &TripService{
		tripRepo:      tripRepo,
		userRepo:      userRepo,
		companyRepo:   companyRepo,
		policy:        policy,
		lifecycle:     lifecycle,
		assignment:    assignment,
		lockStore:     lockStore,
		cacheStore:    cacheStore,
		notifications: notifications,
	}
}

// CreateTripRequest contains the parameters for creating a trip.
type CreateTripRequest struct {
	PickupLocation  string
	DropoffLocation string
	PickupTime      string
	CompanyID       string
	Notes           string
}

// CreateTrip creates a pending trip for the acting user. The passenger
// is always the caller; the company defaults to the caller's first
// membership when not given explicitly.
func (s *TripService) CreateTrip(ctx context.Context, actor domain.Actor, req CreateTripRequest) (*domain.Trip, error) {
	if req.PickupLocation == "" {
		return nil, &ValidationError{Field: "pickup_location"}
	}
	if req.DropoffLocation == "" {
		return nil, &ValidationError{Field: "dropoff_location"}
	}
	if req.PickupTime == "" {
		return nil, &ValidationError{Field: "pickup_time"}
	}

	pickupTime, err := ParsePickupTime(req.PickupTime)
	if err != nil {
		return nil, ErrInvalidPickupTime
	}

	companyID := req.CompanyID
	if companyID == "" {
		companies, err := s.userRepo.CompaniesByUser(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if len(companies) == 0 {
			return nil, ErrNoCompany
		}
		companyID = companies[0].ID
	} else {
		if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
			return nil, err
		}
	}

	trip := &domain.Trip{
		ID:              uuid.New().String(),
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupTime:      pickupTime,
		Status:          domain.TripStatusPending,
		CreatedAt:       time.Now().UTC(),
		Notes:           req.Notes,
		PassengerID:     actor.ID,
		CompanyID:       companyID,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	if s.notifications != nil {
		_ = s.notifications.NotifyTripRequested(ctx, trip)
	}

	return trip, nil
}

// GetTrip retrieves a trip the actor is allowed to see.
func (s *TripService) GetTrip(ctx context.Context, actor domain.Actor, tripID string) (*domain.Trip, error) {
	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetTrip(ctx, tripID)
		if err == nil && cached != nil {
			// A corrupted entry counts as a miss; the database read
			// below overwrites it.
			if trip, err := tripFromCache(cached); err == nil {
				if !s.policy.CanAccessTrip(actor, trip) {
					return nil, ErrForbidden
				}
				return trip, nil
			}
		}
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanAccessTrip(actor, trip) {
		return nil, ErrForbidden
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetTrip(ctx, tripToCache(trip))
	}

	return trip, nil
}

// ListTrips retrieves the trips in the actor's scope: all trips for
// admins, own trips as driver or passenger otherwise.
func (s *TripService) ListTrips(ctx context.Context, actor domain.Actor) ([]*domain.Trip, error) {
	return s.tripRepo.List(ctx, s.policy.TripFilter(actor))
}

// UpdateTripRequest contains the mutable trip attributes of an update.
// Nil pointers mean the field was absent from the payload.
type UpdateTripRequest struct {
	PickupLocation  *string
	DropoffLocation *string
	PickupTime      *string
	Notes           *string
	Status          *string
	DriverID        *string
	VehicleID       *string
}

// UpdateTrip applies field changes, an optional status transition and
// optional driver/vehicle bindings in one read-modify-write. Validation
// happens against the freshly read status; nothing is persisted unless
// every requested change is permitted.
func (s *TripService) UpdateTrip(ctx context.Context, actor domain.Actor, tripID string, req UpdateTripRequest) (*domain.Trip, error) {
	if s.lockStore != nil {
		ok, err := s.lockStore.AcquireTripLock(ctx, tripID, dispatchLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDispatchConflict
		}
		defer func() { _ = s.lockStore.ReleaseTripLock(ctx, tripID) }()
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanAccessTrip(actor, trip) {
		return nil, ErrForbidden
	}

	fields := TripFields{
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		Notes:           req.Notes,
	}
	// The pickup time is only parsed inside its mutability window; out
	// of the window the field is ignored, malformed or not, like the
	// other route fields.
	if req.PickupTime != nil && s.lifecycle.CanEditRouteFields(trip.Status, actor.Role) {
		pickupTime, err := ParsePickupTime(*req.PickupTime)
		if err != nil {
			return nil, ErrInvalidPickupTime
		}
		fields.PickupTime = &pickupTime
	}

	// Field gating is evaluated against the status the trip was read
	// with, before any transition below.
	s.lifecycle.ApplyFields(trip, fields, actor.Role)

	previousStatus := trip.Status
	if req.Status != nil {
		requested, err := domain.ParseTripStatus(*req.Status)
		if err != nil {
			observability.TripTransitionRejectionsTotal.Inc()
			return nil, &InvalidTransitionError{From: trip.Status, To: domain.TripStatus(*req.Status)}
		}
		if err := s.lifecycle.Transition(trip, requested, actor.Role); err != nil {
			observability.TripTransitionRejectionsTotal.Inc()
			return nil, err
		}
	}

	driverAssigned := false
	if req.DriverID != nil {
		if err := s.assignment.AssignDriver(ctx, trip, *req.DriverID, actor); err != nil {
			return nil, err
		}
		driverAssigned = true
	}
	if req.VehicleID != nil {
		if err := s.assignment.AssignVehicle(ctx, trip, *req.VehicleID, actor); err != nil {
			return nil, err
		}
	}

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateTrip(ctx, trip.ID)
	}

	if trip.Status != previousStatus {
		observability.TripTransitionsTotal.WithLabelValues(string(previousStatus), string(trip.Status)).Inc()
		if s.notifications != nil {
			_ = s.notifications.NotifyStatusChanged(ctx, trip)
		}
	}
	if driverAssigned && s.notifications != nil {
		_ = s.notifications.NotifyDriverAssigned(ctx, trip)
	}

	return trip, nil
}

// DeleteTrip removes a trip. Admin only.
func (s *TripService) DeleteTrip(ctx context.Context, actor domain.Actor, tripID string) error {
	if !s.policy.CanDeleteTrip(actor) {
		return ErrForbidden
	}

	if err := s.tripRepo.Delete(ctx, tripID); err != nil {
		return err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateTrip(ctx, tripID)
	}

	return nil
}

// ParsePickupTime parses an ISO-8601 timestamp, accepting a trailing Z
// as UTC and a bare local timestamp without offset.
func ParsePickupTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}

func tripToCache(trip *domain.Trip) *redisstore.CachedTrip {
	cached := &redisstore.CachedTrip{
		ID:              trip.ID,
		PickupLocation:  trip.PickupLocation,
		DropoffLocation: trip.DropoffLocation,
		PickupTime:      trip.PickupTime.Format(time.RFC3339),
		Status:          string(trip.Status),
		CreatedAt:       trip.CreatedAt.Format(time.RFC3339),
		Notes:           trip.Notes,
		PassengerID:     trip.PassengerID,
		CompanyID:       trip.CompanyID,
		DriverID:        trip.DriverID,
		VehicleID:       trip.VehicleID,
	}
	if !trip.CompletedAt.IsZero() {
		cached.CompletedAt = trip.CompletedAt.Format(time.RFC3339)
	}
	return cached
}

// tripFromCache rebuilds a trip from its cached form. An entry with an
// unparsable timestamp is reported as an error so the caller can treat
// it as a miss and fall back to the database.
func tripFromCache(cached *redisstore.CachedTrip) (*domain.Trip, error) {
	trip := &domain.Trip{
		ID:              cached.ID,
		PickupLocation:  cached.PickupLocation,
		DropoffLocation: cached.DropoffLocation,
		Status:          domain.TripStatus(cached.Status),
		Notes:           cached.Notes,
		PassengerID:     cached.PassengerID,
		CompanyID:       cached.CompanyID,
		DriverID:        cached.DriverID,
		VehicleID:       cached.VehicleID,
	}

	var err error
	if trip.PickupTime, err = time.Parse(time.RFC3339, cached.PickupTime); err != nil {
		return nil, err
	}
	if trip.CreatedAt, err = time.Parse(time.RFC3339, cached.CreatedAt); err != nil {
		return nil, err
	}
	if cached.CompletedAt != "" {
		if trip.CompletedAt, err = time.Parse(time.RFC3339, cached.CompletedAt); err != nil {
			return nil, err
		}
	}

	return trip, nil
}

package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"cabrix/internal/domain"
	"cabrix/internal/repository"
	"cabrix/internal/service"
)

// tripServiceFixture wires a TripService over mocks with the default
// permissive dispatch config.
type tripServiceFixture struct {
	users    *MockUserRepository
	company  *MockCompanyRepository
	vehicles *MockVehicleRepository
	trips    *MockTripRepository
	locks    *MockLockStore
	service  *service.TripService
}

func newTripServiceFixture() *tripServiceFixture {
	companyRepo := NewMockCompanyRepository()
	userRepo := NewMockUserRepository(companyRepo)
	vehicleRepo := NewMockVehicleRepository()
	tripRepo := NewMockTripRepository()
	lockStore := NewMockLockStore()

	assignment := service.NewAssignment(userRepo, vehicleRepo, tripRepo, service.AssignmentConfig{})
	tripService := service.NewTripService(
		tripRepo, userRepo, companyRepo,
		service.NewPolicy(), service.NewLifecycle(), assignment,
		lockStore, nil, service.NewNotificationService(),
	)

	return &tripServiceFixture{
		users:    userRepo,
		company:  companyRepo,
		vehicles: vehicleRepo,
		trips:    tripRepo,
		locks:    lockStore,
		service:  tripService,
	}
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────
// TRIP CREATION
// ──────────────────────────────────────────────

func TestTripService_CreateDefaultsToCallersCompany(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	f.company.AddCompany(&domain.Company{ID: "company-1", Name: "Acme"})
	f.users.AddUser(&domain.User{ID: "employee-1", Role: domain.RoleEmployee})
	if err := f.users.AddToCompany(context.Background(), "employee-1", "company-1"); err != nil {
		t.Fatalf("seed membership: %v", err)
	}

	actor := domain.Actor{ID: "employee-1", Role: domain.RoleEmployee}
	trip, err := f.service.CreateTrip(context.Background(), actor, service.CreateTripRequest{
		PickupLocation:  "HQ lobby",
		DropoffLocation: "Airport T2",
		PickupTime:      "2026-09-01T09:00:00Z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trip.Status != domain.TripStatusPending {
		t.Errorf("expected pending status, got %s", trip.Status)
	}
	if trip.PassengerID != "employee-1" {
		t.Errorf("passenger must be the caller, got %q", trip.PassengerID)
	}
	if trip.CompanyID != "company-1" {
		t.Errorf("expected company defaulting, got %q", trip.CompanyID)
	}
	if trip.DriverID != "" || trip.VehicleID != "" {
		t.Error("new trip must have no driver or vehicle binding")
	}
	if f.trips.GetTrip(trip.ID) == nil {
		t.Error("trip not persisted")
	}
}

func TestTripService_CreateWithoutCompanyMembershipFails(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	f.users.AddUser(&domain.User{ID: "employee-1", Role: domain.RoleEmployee})

	actor := domain.Actor{ID: "employee-1", Role: domain.RoleEmployee}
	_, err := f.service.CreateTrip(context.Background(), actor, service.CreateTripRequest{
		PickupLocation:  "HQ lobby",
		DropoffLocation: "Airport T2",
		PickupTime:      "2026-09-01T09:00:00Z",
	})
	if !errors.Is(err, service.ErrNoCompany) {
		t.Fatalf("expected ErrNoCompany, got %v", err)
	}
}

func TestTripService_CreateValidatesRequiredFields(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	actor := domain.Actor{ID: "employee-1", Role: domain.RoleEmployee}

	cases := []struct {
		field string
		req   service.CreateTripRequest
	}{
		{"pickup_location", service.CreateTripRequest{DropoffLocation: "B", PickupTime: "2026-09-01T09:00:00Z"}},
		{"dropoff_location", service.CreateTripRequest{PickupLocation: "A", PickupTime: "2026-09-01T09:00:00Z"}},
		{"pickup_time", service.CreateTripRequest{PickupLocation: "A", DropoffLocation: "B"}},
	}

	for _, tc := range cases {
		_, err := f.service.CreateTrip(context.Background(), actor, tc.req)
		var validationErr *service.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("missing %s: expected ValidationError, got %v", tc.field, err)
			continue
		}
		if validationErr.Field != tc.field {
			t.Errorf("expected field %s, got %s", tc.field, validationErr.Field)
		}
	}
}

func TestTripService_CreateAcceptsBareLocalTimestamp(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	f.company.AddCompany(&domain.Company{ID: "company-1"})

	actor := domain.Actor{ID: "employee-1", Role: domain.RoleEmployee}
	trip, err := f.service.CreateTrip(context.Background(), actor, service.CreateTripRequest{
		PickupLocation:  "HQ lobby",
		DropoffLocation: "Airport T2",
		PickupTime:      "2026-09-01T09:30:00",
		CompanyID:       "company-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)
	if !trip.PickupTime.Equal(want) {
		t.Errorf("expected %v, got %v", want, trip.PickupTime)
	}

	_, err = f.service.CreateTrip(context.Background(), actor, service.CreateTripRequest{
		PickupLocation:  "HQ lobby",
		DropoffLocation: "Airport T2",
		PickupTime:      "tomorrow at nine",
		CompanyID:       "company-1",
	})
	if !errors.Is(err, service.ErrInvalidPickupTime) {
		t.Fatalf("expected ErrInvalidPickupTime, got %v", err)
	}
}

// ──────────────────────────────────────────────
// TRIP RETRIEVAL AND SCOPING
// ──────────────────────────────────────────────

func TestTripService_GetDeniesForeignTrip(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	f.trips.AddTrip(&domain.Trip{ID: "trip-1", PassengerID: "employee-1", Status: domain.TripStatusPending})

	stranger := domain.Actor{ID: "employee-2", Role: domain.RoleEmployee}
	_, err := f.service.GetTrip(context.Background(), stranger, "trip-1")
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	owner := domain.Actor{ID: "employee-1", Role: domain.RoleEmployee}
	trip, err := f.service.GetTrip(context.Background(), owner, "trip-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.ID != "trip-1" {
		t.Errorf("got wrong trip %s", trip.ID)
	}
}

func TestTripService_GetUnknownTripIsNotFound(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	_, err := f.service.GetTrip(context.Background(), admin, "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ──────────────────────────────────────────────
// TRIP UPDATE: FULL DISPATCH SCENARIO
// ──────────────────────────────────────────────

func TestTripService_DispatchAndCompleteScenario(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	f.users.AddUser(&domain.User{ID: "driver-1", Role: domain.RoleDriver})
	f.vehicles.AddVehicle(&domain.Vehicle{ID: "vehicle-1", Status: domain.VehicleStatusAvailable})
	f.trips.AddTrip(&domain.Trip{ID: "trip-1", PassengerID: "employee-1", Status: domain.TripStatusPending})

	ctx := context.Background()
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	// Admin dispatches driver and vehicle, starting the trip.
	trip, err := f.service.UpdateTrip(ctx, admin, "trip-1", service.UpdateTripRequest{
		Status:    strPtr("in_progress"),
		DriverID:  strPtr("driver-1"),
		VehicleID: strPtr("vehicle-1"),
	})
	if err != nil {
		t.Fatalf("dispatch: unexpected error: %v", err)
	}
	if trip.Status != domain.TripStatusInProgress {
		t.Errorf("expected in_progress, got %s", trip.Status)
	}
	if trip.DriverID != "driver-1" || trip.VehicleID != "vehicle-1" {
		t.Errorf("bindings not applied: driver=%q vehicle=%q", trip.DriverID, trip.VehicleID)
	}

	// The assigned driver completes the trip.
	driver := domain.Actor{ID: "driver-1", Role: domain.RoleDriver}
	trip, err = f.service.UpdateTrip(ctx, driver, "trip-1", service.UpdateTripRequest{
		Status: strPtr("completed"),
	})
	if err != nil {
		t.Fatalf("complete: unexpected error: %v", err)
	}
	if trip.Status != domain.TripStatusCompleted {
		t.Errorf("expected completed, got %s", trip.Status)
	}
	if trip.CompletedAt.IsZero() {
		t.Error("CompletedAt not stamped")
	}

	// The trip is terminal now; even an admin cannot restart it.
	_, err = f.service.UpdateTrip(ctx, admin, "trip-1", service.UpdateTripRequest{
		Status: strPtr("in_progress"),
	})
	var transitionErr *service.InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("restart: expected InvalidTransitionError, got %v", err)
	}
	if transitionErr.From != domain.TripStatusCompleted || transitionErr.To != domain.TripStatusInProgress {
		t.Errorf("error names wrong endpoints: %v", transitionErr)
	}
}

func TestTripService_NonAdminCannotBindDriver(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	f.users.AddUser(&domain.User{ID: "driver-1", Role: domain.RoleDriver})
	f.trips.AddTrip(&domain.Trip{ID: "trip-1", PassengerID: "employee-1", Status: domain.TripStatusPending})

	passenger := domain.Actor{ID: "employee-1", Role: domain.RoleEmployee}
	_, err := f.service.UpdateTrip(context.Background(), passenger, "trip-1", service.UpdateTripRequest{
		DriverID: strPtr("driver-1"),
	})
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	stored := f.trips.GetTrip("trip-1")
	if stored.DriverID != "" {
		t.Errorf("rejected update persisted driver %q", stored.DriverID)
	}
}

func TestTripService_FailedUpdateLeavesRecordUnchanged(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	f.trips.AddTrip(&domain.Trip{
		ID:             "trip-1",
		PassengerID:    "employee-1",
		PickupLocation: "HQ lobby",
		Status:         domain.TripStatusPending,
	})

	// A valid field change plus an invalid transition in one request
	// must persist nothing.
	owner := domain.Actor{ID: "employee-1", Role: domain.RoleEmployee}
	_, err := f.service.UpdateTrip(context.Background(), owner, "trip-1", service.UpdateTripRequest{
		PickupLocation: strPtr("changed pickup"),
		Status:         strPtr("completed"),
	})
	var transitionErr *service.InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}

	stored := f.trips.GetTrip("trip-1")
	if stored.PickupLocation != "HQ lobby" {
		t.Errorf("rejected update persisted pickup location %q", stored.PickupLocation)
	}
	if stored.Status != domain.TripStatusPending {
		t.Errorf("rejected update persisted status %s", stored.Status)
	}
}

func TestTripService_StalePickupTimeIgnoredOutsideWindow(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	pickupTime := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	f.trips.AddTrip(&domain.Trip{
		ID:          "trip-1",
		PassengerID: "employee-1",
		DriverID:    "driver-1",
		PickupTime:  pickupTime,
		Status:      domain.TripStatusInProgress,
	})

	// The route fields are frozen once the trip leaves pending, so a
	// malformed pickup_time in the same payload is ignored field-wise,
	// not rejected; the notes still apply.
	driver := domain.Actor{ID: "driver-1", Role: domain.RoleDriver}
	trip, err := f.service.UpdateTrip(context.Background(), driver, "trip-1", service.UpdateTripRequest{
		PickupTime: strPtr("not-a-timestamp"),
		Notes:      strPtr("running late"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !trip.PickupTime.Equal(pickupTime) {
		t.Errorf("frozen pickup time changed: %v", trip.PickupTime)
	}
	if trip.Notes != "running late" {
		t.Errorf("notes not applied: %q", trip.Notes)
	}
}

func TestTripService_MalformedPickupTimeRejectedInsideWindow(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	f.trips.AddTrip(&domain.Trip{ID: "trip-1", PassengerID: "employee-1", Status: domain.TripStatusPending})

	owner := domain.Actor{ID: "employee-1", Role: domain.RoleEmployee}
	_, err := f.service.UpdateTrip(context.Background(), owner, "trip-1", service.UpdateTripRequest{
		PickupTime: strPtr("not-a-timestamp"),
	})
	if !errors.Is(err, service.ErrInvalidPickupTime) {
		t.Fatalf("expected ErrInvalidPickupTime, got %v", err)
	}
}

func TestTripService_UnknownStatusNamesBothEndpoints(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	f.trips.AddTrip(&domain.Trip{ID: "trip-1", PassengerID: "employee-1", Status: domain.TripStatusPending})

	owner := domain.Actor{ID: "employee-1", Role: domain.RoleEmployee}
	_, err := f.service.UpdateTrip(context.Background(), owner, "trip-1", service.UpdateTripRequest{
		Status: strPtr("teleported"),
	})

	var transitionErr *service.InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if transitionErr.From != domain.TripStatusPending {
		t.Errorf("expected current status pending, got %s", transitionErr.From)
	}
	if string(transitionErr.To) != "teleported" {
		t.Errorf("expected requested status teleported, got %s", transitionErr.To)
	}
}

func TestTripService_ConcurrentUpdateReportsConflict(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	f.trips.AddTrip(&domain.Trip{ID: "trip-1", PassengerID: "employee-1", Status: domain.TripStatusPending})
	f.locks.FailAcquire = true

	owner := domain.Actor{ID: "employee-1", Role: domain.RoleEmployee}
	_, err := f.service.UpdateTrip(context.Background(), owner, "trip-1", service.UpdateTripRequest{
		Notes: strPtr("note"),
	})
	if !errors.Is(err, service.ErrDispatchConflict) {
		t.Fatalf("expected ErrDispatchConflict, got %v", err)
	}
}

func TestTripService_LockReleasedAfterUpdate(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	f.trips.AddTrip(&domain.Trip{ID: "trip-1", PassengerID: "employee-1", Status: domain.TripStatusPending})

	owner := domain.Actor{ID: "employee-1", Role: domain.RoleEmployee}
	for i := 0; i < 2; i++ {
		if _, err := f.service.UpdateTrip(context.Background(), owner, "trip-1", service.UpdateTripRequest{
			Notes: strPtr("note"),
		}); err != nil {
			t.Fatalf("update %d: unexpected error: %v", i+1, err)
		}
	}
}

// ──────────────────────────────────────────────
// TRIP DELETION
// ──────────────────────────────────────────────

func TestTripService_DeleteIsAdminOnly(t *testing.T) {
	t.Parallel()

	f := newTripServiceFixture()
	f.trips.AddTrip(&domain.Trip{ID: "trip-1", PassengerID: "employee-1", Status: domain.TripStatusPending})

	owner := domain.Actor{ID: "employee-1", Role: domain.RoleEmployee}
	if err := f.service.DeleteTrip(context.Background(), owner, "trip-1"); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("owner delete: expected ErrForbidden, got %v", err)
	}
	if f.trips.GetTrip("trip-1") == nil {
		t.Fatal("denied delete removed the trip")
	}

	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	if err := f.service.DeleteTrip(context.Background(), admin, "trip-1"); err != nil {
		t.Fatalf("admin delete: unexpected error: %v", err)
	}
	if f.trips.GetTrip("trip-1") != nil {
		t.Error("trip still present after delete")
	}
}

package service

import (
	"testing"
	"time"

	"cabrix/internal/domain"
)

func TestTripCacheRoundTrip(t *testing.T) {
	t.Parallel()

	trip := &domain.Trip{
		ID:              "trip-1",
		PickupLocation:  "HQ lobby",
		DropoffLocation: "Airport T2",
		PickupTime:      time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		Status:          domain.TripStatusCompleted,
		CreatedAt:       time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		CompletedAt:     time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Notes:           "two passengers",
		PassengerID:     "employee-1",
		CompanyID:       "company-1",
		DriverID:        "driver-1",
		VehicleID:       "vehicle-1",
	}

	restored, err := tripFromCache(tripToCache(trip))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *restored != *trip {
		t.Errorf("round trip changed the trip:\n got %+v\nwant %+v", restored, trip)
	}
}

func TestTripCacheOmitsCompletedAtUntilCompleted(t *testing.T) {
	t.Parallel()

	trip := &domain.Trip{
		ID:          "trip-1",
		PickupTime:  time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		Status:      domain.TripStatusPending,
		CreatedAt:   time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		PassengerID: "employee-1",
		CompanyID:   "company-1",
	}

	cached := tripToCache(trip)
	if cached.CompletedAt != "" {
		t.Errorf("pending trip cached with completed_at %q", cached.CompletedAt)
	}

	restored, err := tripFromCache(cached)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !restored.CompletedAt.IsZero() {
		t.Errorf("restored pending trip has CompletedAt %v", restored.CompletedAt)
	}
}

func TestTripFromCacheRejectsCorruptTimestamps(t *testing.T) {
	t.Parallel()

	base := &domain.Trip{
		ID:          "trip-1",
		PickupTime:  time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		Status:      domain.TripStatusCompleted,
		CreatedAt:   time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		CompletedAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		PassengerID: "employee-1",
		CompanyID:   "company-1",
	}

	// Each corrupted timestamp must surface as an error, never as a
	// zero-value time smuggled into the domain.
	for _, field := range []string{"pickup_time", "created_at", "completed_at"} {
		cached := tripToCache(base)
		switch field {
		case "pickup_time":
			cached.PickupTime = "garbage"
		case "created_at":
			cached.CreatedAt = "garbage"
		case "completed_at":
			cached.CompletedAt = "garbage"
		}

		if _, err := tripFromCache(cached); err == nil {
			t.Errorf("corrupt %s accepted", field)
		}
	}
}

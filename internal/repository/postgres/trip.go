package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cabrix/internal/domain"
	"cabrix/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

const tripColumns = `id, pickup_location, dropoff_location, pickup_time, status, created_at, completed_at, notes, passenger_id, company_id, driver_id, vehicle_id`

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (id, pickup_location, dropoff_location, pickup_time, status, created_at, completed_at, notes, passenger_id, company_id, driver_id, vehicle_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.PickupTime,
		trip.Status,
		trip.CreatedAt,
		nullTime(trip.CompletedAt),
		trip.Notes,
		trip.PassengerID,
		trip.CompanyID,
		nullString(trip.DriverID),
		nullString(trip.VehicleID),
	)

	return err
}

func scanTrip(scan func(dest ...any) error) (*domain.Trip, error) {
	var trip domain.Trip
	var completedAt sql.NullTime
	var driverID, vehicleID sql.NullString

	err := scan(
		&trip.ID,
		&trip.PickupLocation,
		&trip.DropoffLocation,
		&trip.PickupTime,
		&trip.Status,
		&trip.CreatedAt,
		&completedAt,
		&trip.Notes,
		&trip.PassengerID,
		&trip.CompanyID,
		&driverID,
		&vehicleID,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		trip.CompletedAt = completedAt.Time
	}
	trip.DriverID = driverID.String
	trip.VehicleID = vehicleID.String

	return &trip, nil
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return trip, nil
}

// List retrieves trips matching the filter, newest first.
func (r *TripRepository) List(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE 1=1`
	var args []any

	if filter.PassengerID != "" {
		args = append(args, filter.PassengerID)
		query += ` AND passenger_id = $1`
	}
	if filter.DriverID != "" {
		args = append(args, filter.DriverID)
		if len(args) == 1 {
			query += ` AND driver_id = $1`
		} else {
			query += ` AND driver_id = $2`
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows.Scan)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// Update updates an existing trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET pickup_location = $1, dropoff_location = $2, pickup_time = $3, status = $4, completed_at = $5, notes = $6, company_id = $7, driver_id = $8, vehicle_id = $9
		WHERE id = $10
	`

	result, err := r.q.ExecContext(ctx, query,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.PickupTime,
		trip.Status,
		nullTime(trip.CompletedAt),
		trip.Notes,
		trip.CompanyID,
		nullString(trip.DriverID),
		nullString(trip.VehicleID),
		trip.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a trip.
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// CountActiveByDriverID counts non-terminal trips bound to a driver.
func (r *TripRepository) CountActiveByDriverID(ctx context.Context, driverID string) (int, error) {
	query := `SELECT COUNT(*) FROM trips WHERE driver_id = $1 AND status NOT IN ($2, $3)`
	return r.countActive(ctx, query, driverID)
}

// CountActiveByVehicleID counts non-terminal trips bound to a vehicle.
func (r *TripRepository) CountActiveByVehicleID(ctx context.Context, vehicleID string) (int, error) {
	query := `SELECT COUNT(*) FROM trips WHERE vehicle_id = $1 AND status NOT IN ($2, $3)`
	return r.countActive(ctx, query, vehicleID)
}

func (r *TripRepository) countActive(ctx context.Context, query, id string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, query, id, domain.TripStatusCompleted, domain.TripStatusCancelled).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)

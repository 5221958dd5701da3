package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cabrix/internal/domain"
	"cabrix/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

const vehicleColumns = `id, registration_number, model, capacity_type, capacity, status`

// Create persists a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, registration_number, model, capacity_type, capacity, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.RegistrationNumber,
		vehicle.Model,
		vehicle.CapacityType,
		vehicle.Capacity,
		vehicle.Status,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}

	return err
}

func scanVehicle(row *sql.Row) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := row.Scan(
		&vehicle.ID,
		&vehicle.RegistrationNumber,
		&vehicle.Model,
		&vehicle.CapacityType,
		&vehicle.Capacity,
		&vehicle.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return scanVehicle(r.q.QueryRowContext(ctx, query, id))
}

// GetByRegistration retrieves a vehicle by its registration number.
func (r *VehicleRepository) GetByRegistration(ctx context.Context, registrationNumber string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE registration_number = $1`
	return scanVehicle(r.q.QueryRowContext(ctx, query, registrationNumber))
}

// GetAll retrieves all vehicles.
func (r *VehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY registration_number`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var vehicle domain.Vehicle
		if err := rows.Scan(
			&vehicle.ID,
			&vehicle.RegistrationNumber,
			&vehicle.Model,
			&vehicle.CapacityType,
			&vehicle.Capacity,
			&vehicle.Status,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, rows.Err()
}

// Update updates an existing vehicle.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET registration_number = $1, model = $2, capacity_type = $3, capacity = $4, status = $5
		WHERE id = $6
	`

	result, err := r.q.ExecContext(ctx, query,
		vehicle.RegistrationNumber,
		vehicle.Model,
		vehicle.CapacityType,
		vehicle.Capacity,
		vehicle.Status,
		vehicle.ID,
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

// LinkDriver links a driver to a vehicle. Linking an existing pair is a
// no-op.
func (r *VehicleRepository) LinkDriver(ctx context.Context, driverID, vehicleID string) error {
	query := `
		INSERT INTO driver_vehicle (user_id, vehicle_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	_, err := r.q.ExecContext(ctx, query, driverID, vehicleID)
	return err
}

// Ensure VehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*VehicleRepository)(nil)

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cabrix/internal/domain"
	"cabrix/internal/repository"
)

// CompanyRepository is a PostgreSQL implementation of repository.CompanyRepository.
type CompanyRepository struct {
	q Querier
}

// NewCompanyRepository creates a new PostgreSQL company repository.
func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{q: db}
}

// NewCompanyRepositoryWithTx creates a company repository using a transaction.
func NewCompanyRepositoryWithTx(tx *sql.Tx) *CompanyRepository {
	return &CompanyRepository{q: tx}
}

const companyColumns = `id, name, address, contact_email, contact_phone, registration_date`

// Create persists a new company.
func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	query := `
		INSERT INTO companies (id, name, address, contact_email, contact_phone)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.ExecContext(ctx, query,
		company.ID,
		company.Name,
		company.Address,
		company.ContactEmail,
		company.ContactPhone,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}

	return err
}

func scanCompany(row *sql.Row) (*domain.Company, error) {
	var company domain.Company
	err := row.Scan(
		&company.ID,
		&company.Name,
		&company.Address,
		&company.ContactEmail,
		&company.ContactPhone,
		&company.RegistrationDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// GetByID retrieves a company by ID.
func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return scanCompany(r.q.QueryRowContext(ctx, query, id))
}

// GetByName retrieves a company by its unique name.
func (r *CompanyRepository) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE name = $1`
	return scanCompany(r.q.QueryRowContext(ctx, query, name))
}

// GetAll retrieves all companies.
func (r *CompanyRepository) GetAll(ctx context.Context) ([]*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY registration_date DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*domain.Company
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(
			&company.ID,
			&company.Name,
			&company.Address,
			&company.ContactEmail,
			&company.ContactPhone,
			&company.RegistrationDate,
		); err != nil {
			return nil, err
		}
		companies = append(companies, &company)
	}

	return companies, rows.Err()
}

// Ensure CompanyRepository implements repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepository)(nil)

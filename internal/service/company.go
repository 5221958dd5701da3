package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"cabrix/internal/domain"
	"cabrix/internal/repository"
	"cabrix/internal/repository/postgres"
)

// CompanyService handles company registration and lookups.
type CompanyService struct {
	db          *sql.DB
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	auth        *AuthService
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(
	db *sql.DB,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	auth *AuthService,
) *CompanyService {
	return &CompanyService{
		db:          db,
		companyRepo: companyRepo,
		userRepo:    userRepo,
		auth:        auth,
	}
}

// RegisterCompanyRequest contains the parameters for registering a
// company together with its first admin user.
type RegisterCompanyRequest struct {
	Name         string
	Address      string
	ContactEmail string
	ContactPhone string

	AdminUsername  string
	AdminEmail     string
	AdminPassword  string
	AdminFirstName string
	AdminLastName  string
	AdminPhone     string
}

// RegisterCompanyResult contains the created company and admin user.
type RegisterCompanyResult struct {
	Company *domain.Company
	Admin   *domain.User
}

// RegisterCompany creates a company and its first admin user atomically.
// The endpoint is public: it is how a company enters the system.
func (s *CompanyService) RegisterCompany(ctx context.Context, req RegisterCompanyRequest) (*RegisterCompanyResult, error) {
	for field, value := range map[string]string{
		"name":             req.Name,
		"address":          req.Address,
		"contact_email":    req.ContactEmail,
		"contact_phone":    req.ContactPhone,
		"admin_username":   req.AdminUsername,
		"admin_email":      req.AdminEmail,
		"admin_password":   req.AdminPassword,
		"admin_first_name": req.AdminFirstName,
		"admin_last_name":  req.AdminLastName,
	} {
		if value == "" {
			return nil, &ValidationError{Field: field}
		}
	}

	if _, err := s.companyRepo.GetByName(ctx, req.Name); err == nil {
		return nil, ErrCompanyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.AdminUsername, req.AdminEmail)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserExists
	}

	passwordHash, err := s.auth.HashPassword(req.AdminPassword)
	if err != nil {
		return nil, err
	}

	company := &domain.Company{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}

	admin := &domain.User{
		ID:           uuid.New().String(),
		Username:     req.AdminUsername,
		Email:        req.AdminEmail,
		PasswordHash: passwordHash,
		FirstName:    req.AdminFirstName,
		LastName:     req.AdminLastName,
		Role:         domain.RoleAdmin,
		Phone:        req.AdminPhone,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txCompanyRepo := postgres.NewCompanyRepositoryWithTx(tx)
	txUserRepo := postgres.NewUserRepositoryWithTx(tx)

	// A concurrent registration can win the race after the checks
	// above; the unique constraints are the source of truth.
	if err = txCompanyRepo.Create(ctx, company); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCompanyExists
		}
		return nil, err
	}
	if err = txUserRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	if err = txUserRepo.AddToCompany(ctx, admin.ID, company.ID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &RegisterCompanyResult{Company: company, Admin: admin}, nil
}

// GetCompany retrieves a company by ID.
func (s *CompanyService) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

// ListCompanies retrieves all companies.
func (s *CompanyService) ListCompanies(ctx context.Context) ([]*domain.Company, error) {
	return s.companyRepo.GetAll(ctx)
}

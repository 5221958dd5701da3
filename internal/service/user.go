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

// UserService handles admin-side user management.
type UserService struct {
	db          *sql.DB
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	policy      Policy
	auth        *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(
	db *sql.DB,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	policy Policy,
	auth *AuthService,
) *UserService {
	return &UserService{
		db:          db,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		policy:      policy,
		auth:        auth,
	}
}

// CreateUserRequest contains the parameters for creating a user.
type CreateUserRequest struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	CompanyID string
	Phone     string
}

// CreateUser creates a user inside a company. Admin only.
func (s *UserService) CreateUser(ctx context.Context, actor domain.Actor, req CreateUserRequest) (*domain.User, error) {
	if !s.policy.CanManageUsers(actor) {
		return nil, ErrForbidden
	}

	for field, value := range map[string]string{
		"username":   req.Username,
		"email":      req.Email,
		"password":   req.Password,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"role":       req.Role,
		"company_id": req.CompanyID,
	} {
		if value == "" {
			return nil, &ValidationError{Field: field}
		}
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, &ValidationError{Field: "role", Reason: err.Error()}
	}

	taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserExists
	}

	if _, err := s.companyRepo.GetByID(ctx, req.CompanyID); err != nil {
		return nil, err
	}

	passwordHash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		Phone:        req.Phone,
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

	txUserRepo := postgres.NewUserRepositoryWithTx(tx)

	if err = txUserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	if err = txUserRepo.AddToCompany(ctx, user.ID, req.CompanyID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return user, nil
}

// ListUsers retrieves all users. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	if !s.policy.CanManageUsers(actor) {
		return nil, ErrForbidden
	}
	return s.userRepo.GetAll(ctx)
}

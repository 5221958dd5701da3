package repository

import (
	"context"

	"cabrix/internal/domain"
)

// UserRepository defines the persistence operations for users and their
// company memberships.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByUsernameOrEmail reports whether a user with the given
	// username or email already exists.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// AddToCompany links a user to a company. Linking an existing pair
	// is a no-op.
	AddToCompany(ctx context.Context, userID, companyID string) error

	// CompaniesByUser retrieves the companies a user belongs to, oldest
	// membership first.
	CompaniesByUser(ctx context.Context, userID string) ([]*domain.Company, error)
}

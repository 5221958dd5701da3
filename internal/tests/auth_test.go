package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cabrix/internal/domain"
	"cabrix/internal/service"
)

func newAuthService(userRepo *MockUserRepository) *service.AuthService {
	return service.NewAuthService(userRepo, service.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
}

// ──────────────────────────────────────────────
// LOGIN
// ──────────────────────────────────────────────

func TestAuth_LoginRoundTrip(t *testing.T) {
	t.Parallel()

	companyRepo := NewMockCompanyRepository()
	companyRepo.AddCompany(&domain.Company{ID: "company-1", Name: "Acme"})
	userRepo := NewMockUserRepository(companyRepo)

	auth := newAuthService(userRepo)

	hash, err := auth.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	userRepo.AddUser(&domain.User{
		ID:           "driver-1",
		Email:        "driver@acme.test",
		PasswordHash: hash,
		Role:         domain.RoleDriver,
	})
	if err := userRepo.AddToCompany(context.Background(), "driver-1", "company-1"); err != nil {
		t.Fatalf("seed membership: %v", err)
	}

	result, err := auth.Login(context.Background(), "driver@acme.test", "s3cret")
	if err != nil {
		t.Fatalf("login: unexpected error: %v", err)
	}
	if result.User.ID != "driver-1" {
		t.Errorf("wrong user: %s", result.User.ID)
	}
	if len(result.Companies) != 1 || result.Companies[0].ID != "company-1" {
		t.Errorf("expected company-1 membership, got %+v", result.Companies)
	}

	// The issued token identifies the user and role.
	actor, err := auth.VerifyToken(result.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if actor.ID != "driver-1" || actor.Role != domain.RoleDriver {
		t.Errorf("wrong actor from token: %+v", actor)
	}
}

func TestAuth_LoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository(nil)
	auth := newAuthService(userRepo)

	hash, _ := auth.HashPassword("s3cret")
	userRepo.AddUser(&domain.User{
		ID:           "user-1",
		Email:        "known@acme.test",
		PasswordHash: hash,
		Role:         domain.RoleEmployee,
	})

	// Unknown email and wrong password map to the same error.
	_, errUnknown := auth.Login(context.Background(), "unknown@acme.test", "s3cret")
	_, errWrong := auth.Login(context.Background(), "known@acme.test", "wrong")

	if !errors.Is(errUnknown, service.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, service.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
}

// ──────────────────────────────────────────────
// TOKEN VERIFICATION
// ──────────────────────────────────────────────

func TestAuth_VerifyRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository(nil)
	auth := newAuthService(userRepo)

	other := service.NewAuthService(userRepo, service.AuthConfig{
		JWTSecret:  "other-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})

	token, err := other.IssueToken(&domain.User{ID: "user-1", Role: domain.RoleEmployee})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := auth.VerifyToken(token); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuth_VerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository(nil)
	auth := service.NewAuthService(userRepo, service.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   -time.Minute,
		BcryptCost: bcrypt.MinCost,
	})

	token, err := auth.IssueToken(&domain.User{ID: "user-1", Role: domain.RoleEmployee})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := auth.VerifyToken(token); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuth_VerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	auth := newAuthService(NewMockUserRepository(nil))

	if _, err := auth.VerifyToken("not-a-token"); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

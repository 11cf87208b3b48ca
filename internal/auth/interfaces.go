package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/portfolio-api/internal/user"
)

// TokenService defines the interface for token creation and validation.
// PasetoService (PASETO v4.local) is the production implementation.
type TokenService interface {
	CreateToken(userID uuid.UUID, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserRepository is the slice of the user store the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, name, email, username, passwordHash string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update user.ProfileUpdate) (*user.User, error)
}

// PortfolioInvalidator drops any cached public portfolio for a user after a
// profile change.
type PortfolioInvalidator interface {
	InvalidateForUser(ctx context.Context, userID uuid.UUID)
}

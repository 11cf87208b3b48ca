package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/redmonkez12/portfolio-api/internal/database"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

// Repository handles user data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user. Email is expected to arrive lowercased so the
// unique constraint is effectively case-insensitive.
func (r *Repository) Create(ctx context.Context, name, email, username, passwordHash string) (*User, error) {
	dbUser := &database.User{
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Skills:       []string{},
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if dup := mapDuplicateErr(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("lower(email) = lower(?)", email).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByID retrieves a user by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByUsername retrieves a user by username
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("username = ?", username).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// UpdateProfile applies a partial profile update and returns the updated user.
// Only non-nil fields are written.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*User, error) {
	dbUser := new(database.User)

	q := r.db.NewUpdate().
		Model(dbUser).
		Where("id = ?", id).
		Set("updated_at = NOW()").
		Returning("*")

	if update.Name != nil {
		q = q.Set("name = ?", *update.Name)
	}
	if update.Bio != nil {
		q = q.Set("bio = ?", *update.Bio)
	}
	if update.ProfilePicture != nil {
		q = q.Set("profile_picture = ?", *update.ProfilePicture)
	}
	if update.Skills != nil {
		q = q.Set("skills = ?", pgdialect.Array(*update.Skills))
	}
	if update.Github != nil {
		q = q.Set("github = ?", *update.Github)
	}
	if update.Linkedin != nil {
		q = q.Set("linkedin = ?", *update.Linkedin)
	}
	if update.Website != nil {
		q = q.Set("website = ?", *update.Website)
	}

	_, err := q.Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if dbUser.ID == uuid.Nil {
		return nil, ErrNotFound
	}

	return mapDBUserToModel(dbUser), nil
}

// mapDuplicateErr translates unique-constraint violations into the
// appropriate sentinel, or returns nil for other errors.
func mapDuplicateErr(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value violates unique constraint") {
		return nil
	}
	if strings.Contains(msg, "username") {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	skills := dbu.Skills
	if skills == nil {
		skills = []string{}
	}
	return &User{
		ID:             dbu.ID,
		Name:           dbu.Name,
		Email:          dbu.Email,
		Username:       dbu.Username,
		PasswordHash:   dbu.PasswordHash,
		Bio:            dbu.Bio,
		ProfilePicture: dbu.ProfilePicture,
		Skills:         skills,
		Github:         dbu.Github,
		Linkedin:       dbu.Linkedin,
		Website:        dbu.Website,
		CreatedAt:      dbu.CreatedAt,
		UpdatedAt:      dbu.UpdatedAt,
	}
}

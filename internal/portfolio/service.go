// Package portfolio builds the public, read-only view of a user and their
// projects. This is the only unauthenticated read path, so the exposed
// profile fields are governed by an explicit allow-list.
package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/redmonkez12/portfolio-api/internal/logging"
	"github.com/redmonkez12/portfolio-api/internal/project"
	"github.com/redmonkez12/portfolio-api/internal/user"
)

var ErrNotFound = errors.New("user not found")

// UserRepository is the slice of the user store the projection needs
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// ProjectRepository is the slice of the project store the projection needs
type ProjectRepository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*project.Project, error)
}

// Cache stores rendered portfolio payloads keyed by username
type Cache interface {
	Get(ctx context.Context, username string) ([]byte, error)
	Set(ctx context.Context, username string, payload []byte) error
	Del(ctx context.Context, username string) error
}

// PublicProfile is the sanitized subset of a user that may be exposed
// without authentication. Constructed only through NewPublicProfile so new
// User fields never leak by default.
type PublicProfile struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Username       string    `json:"username"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profilePicture"`
	Skills         []string  `json:"skills"`
	Github         string    `json:"github"`
	Linkedin       string    `json:"linkedin"`
	Website        string    `json:"website"`
}

// NewPublicProfile copies exactly the allow-listed fields. Email and the
// password hash must never appear here.
func NewPublicProfile(u *user.User) PublicProfile {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return PublicProfile{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		Skills:         skills,
		Github:         u.Github,
		Linkedin:       u.Linkedin,
		Website:        u.Website,
	}
}

// Portfolio is the public view of a user plus their projects, newest first
type Portfolio struct {
	User     PublicProfile      `json:"user"`
	Projects []*project.Project `json:"projects"`
}

// Service assembles and caches public portfolios
type Service struct {
	users    UserRepository
	projects ProjectRepository
	cache    Cache
	logger   *logging.Logger
}

func NewService(users UserRepository, projects ProjectRepository, cache Cache, logger *logging.Logger) *Service {
	return &Service{
		users:    users,
		projects: projects,
		cache:    cache,
		logger:   logger,
	}
}

// Get returns the public portfolio for username. Cache failures are logged
// and treated as misses; the database stays the source of truth.
func (s *Service) Get(ctx context.Context, username string) (*Portfolio, error) {
	if payload, err := s.cache.Get(ctx, username); err == nil {
		var cached Portfolio
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("discarding unreadable cached portfolio", "username", username)
	} else if !errors.Is(err, ErrCacheMiss) {
		s.logger.Warn("portfolio cache read failed", "username", username, "error", err.Error())
	}

	owner, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	projects, err := s.projects.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	p := &Portfolio{
		User:     NewPublicProfile(owner),
		Projects: projects,
	}

	if payload, err := json.Marshal(p); err == nil {
		if err := s.cache.Set(ctx, username, payload); err != nil {
			s.logger.Warn("portfolio cache write failed", "username", username, "error", err.Error())
		}
	}

	return p, nil
}

// InvalidateForUser drops the cached portfolio after a profile or project
// mutation. Failures are logged only; the cache entry expires by TTL anyway.
func (s *Service) InvalidateForUser(ctx context.Context, userID uuid.UUID) {
	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("portfolio invalidation skipped: user lookup failed", "user_id", userID, "error", err.Error())
		return
	}

	if err := s.cache.Del(ctx, owner.Username); err != nil {
		s.logger.Warn("portfolio invalidation failed", "username", owner.Username, "error", err.Error())
	}
}

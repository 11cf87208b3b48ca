package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/portfolio-api/internal/logging"
)

var (
	ErrNotOwner            = errors.New("caller does not own this project")
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
)

// Repository is the persistence surface the service needs
type Repository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	Create(ctx context.Context, p *Project) (*Project, error)
	Update(ctx context.Context, p *Project) (*Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service owns the project lifecycle and enforces that only the creating
// user may mutate or delete a project.
type Service struct {
	repo   Repository
	logger *logging.Logger
}

func NewService(repo Repository, logger *logging.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns all projects owned by ownerID, newest first
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Project, error) {
	projects, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get returns a project by id. Reads are not ownership-gated.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input and persists a new project owned by ownerID
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, input CreateInput, imageURLs []string) (*Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrDescriptionRequired
	}

	technologies := input.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	if imageURLs == nil {
		imageURLs = []string{}
	}

	dateCompleted := time.Now()
	if input.DateCompleted != nil {
		dateCompleted = *input.DateCompleted
	}

	created, err := s.repo.Create(ctx, &Project{
		UserID:        ownerID,
		Title:         input.Title,
		Description:   input.Description,
		Technologies:  technologies,
		Images:        imageURLs,
		GithubLink:    input.GithubLink,
		LiveLink:      input.LiveLink,
		DateCompleted: dateCompleted,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created", "project_id", created.ID, "owner_id", ownerID)

	return created, nil
}

// Update merges the supplied fields into the project after the ownership
// guard passes. A non-nil newImages fully replaces the reference list.
func (s *Service) Update(ctx context.Context, id, callerID uuid.UUID, input UpdateInput, newImages *[]string) (*Project, error) {
	existing, err := s.getOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		existing.Title = *input.Title
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, ErrDescriptionRequired
		}
		existing.Description = *input.Description
	}
	if input.Technologies != nil {
		existing.Technologies = *input.Technologies
	}
	if input.GithubLink != nil {
		existing.GithubLink = *input.GithubLink
	}
	if input.LiveLink != nil {
		existing.LiveLink = *input.LiveLink
	}
	if input.DateCompleted != nil {
		existing.DateCompleted = *input.DateCompleted
	}
	if newImages != nil {
		existing.Images = *newImages
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project updated", "project_id", id, "owner_id", callerID)

	return updated, nil
}

// Delete removes the project after the ownership guard passes.
// Blob store objects are not deleted.
func (s *Service) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	if _, err := s.getOwned(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted", "project_id", id, "owner_id", callerID)

	return nil
}

// getOwned is the shared authorization guard: existence is checked before
// ownership, so a caller cannot tell "not mine" apart from "does not exist"
// for someone else's id space.
func (s *Service) getOwned(ctx context.Context, id, callerID uuid.UUID) (*Project, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != callerID {
		return nil, ErrNotOwner
	}
	return existing, nil
}

package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/redmonkez12/portfolio-api/internal/database"
)

var ErrNotFound = errors.New("project not found")

// BunRepository handles project persistence in Postgres
type BunRepository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

// ListByOwner returns all projects owned by ownerID, newest first.
// An empty result is not an error.
func (r *BunRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Project, error) {
	var dbProjects []*database.Project
	err := r.db.NewSelect().
		Model(&dbProjects).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*Project, 0, len(dbProjects))
	for _, dbp := range dbProjects {
		projects = append(projects, mapDBProjectToModel(dbp))
	}
	return projects, nil
}

// GetByID retrieves a project by id regardless of caller identity
func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	dbProject := new(database.Project)
	err := r.db.NewSelect().
		Model(dbProject).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return mapDBProjectToModel(dbProject), nil
}

// Create inserts a new project and returns it with generated fields filled in
func (r *BunRepository) Create(ctx context.Context, p *Project) (*Project, error) {
	dbProject := &database.Project{
		UserID:        p.UserID,
		Title:         p.Title,
		Description:   p.Description,
		Technologies:  p.Technologies,
		Images:        p.Images,
		GithubLink:    p.GithubLink,
		LiveLink:      p.LiveLink,
		DateCompleted: p.DateCompleted,
	}

	_, err := r.db.NewInsert().
		Model(dbProject).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return mapDBProjectToModel(dbProject), nil
}

// Update persists the mutable columns of p. The owner column is deliberately
// never part of the update.
func (r *BunRepository) Update(ctx context.Context, p *Project) (*Project, error) {
	dbProject := new(database.Project)

	res, err := r.db.NewUpdate().
		Model(dbProject).
		Set("title = ?", p.Title).
		Set("description = ?", p.Description).
		Set("technologies = ?", pgdialect.Array(p.Technologies)).
		Set("images = ?", pgdialect.Array(p.Images)).
		Set("github_link = ?", p.GithubLink).
		Set("live_link = ?", p.LiveLink).
		Set("date_completed = ?", p.DateCompleted).
		Set("updated_at = NOW()").
		Where("id = ?", p.ID).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return mapDBProjectToModel(dbProject), nil
}

// Delete removes the project record. Blob store objects referenced by the
// record are not touched.
func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*database.Project)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// mapDBProjectToModel converts database model to domain model
func mapDBProjectToModel(dbp *database.Project) *Project {
	technologies := dbp.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	images := dbp.Images
	if images == nil {
		images = []string{}
	}
	return &Project{
		ID:            dbp.ID,
		UserID:        dbp.UserID,
		Title:         dbp.Title,
		Description:   dbp.Description,
		Technologies:  technologies,
		Images:        images,
		GithubLink:    dbp.GithubLink,
		LiveLink:      dbp.LiveLink,
		DateCompleted: dbp.DateCompleted,
		CreatedAt:     dbp.CreatedAt,
		UpdatedAt:     dbp.UpdatedAt,
	}
}

package project

import (
	"time"

	"github.com/google/uuid"
)

// Project is a single portfolio entry. UserID is the owner and never changes
// after creation.
type Project struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Technologies  []string  `json:"technologies"`
	Images        []string  `json:"images"`
	GithubLink    string    `json:"githubLink"`
	LiveLink      string    `json:"liveLink"`
	DateCompleted time.Time `json:"dateCompleted"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateInput carries the validated fields for a new project.
// Optional links default to empty strings.
type CreateInput struct {
	Title         string
	Description   string
	Technologies  []string
	GithubLink    string
	LiveLink      string
	DateCompleted *time.Time
}

// UpdateInput carries a partial project change. Nil fields are left
// unchanged; a non-nil empty string for a link field does overwrite.
type UpdateInput struct {
	Title         *string
	Description   *string
	Technologies  *[]string
	GithubLink    *string
	LiveLink      *string
	DateCompleted *time.Time
}

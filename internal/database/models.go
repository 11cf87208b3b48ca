package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the bun table model backing the credential store.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID             uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name           string    `bun:"name,notnull"`
	Email          string    `bun:"email,notnull,unique"`
	Username       string    `bun:"username,notnull,unique"`
	PasswordHash   string    `bun:"password_hash,notnull"`
	Bio            string    `bun:"bio,notnull,default:''"`
	ProfilePicture string    `bun:"profile_picture,notnull,default:''"`
	Skills         []string  `bun:"skills,array"`
	Github         string    `bun:"github,notnull,default:''"`
	Linkedin       string    `bun:"linkedin,notnull,default:''"`
	Website        string    `bun:"website,notnull,default:''"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt      time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Project is the bun table model backing the project repository.
// UserID is set once at creation and never updated afterwards.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID        uuid.UUID `bun:"user_id,notnull,type:uuid"`
	Title         string    `bun:"title,notnull"`
	Description   string    `bun:"description,notnull"`
	Technologies  []string  `bun:"technologies,array"`
	Images        []string  `bun:"images,array"`
	GithubLink    string    `bun:"github_link,notnull,default:''"`
	LiveLink      string    `bun:"live_link,notnull,default:''"`
	DateCompleted time.Time `bun:"date_completed,notnull,default:current_timestamp"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

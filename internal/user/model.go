package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the credential store's view of an account. The password hash is
// never serialized outward.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profilePicture"`
	Skills         []string  `json:"skills"`
	Github         string    `json:"github"`
	Linkedin       string    `json:"linkedin"`
	Website        string    `json:"website"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ProfileUpdate carries a partial profile change. Nil fields are left
// untouched; a non-nil empty value does overwrite.
type ProfileUpdate struct {
	Name           *string   `json:"name"`
	Bio            *string   `json:"bio"`
	ProfilePicture *string   `json:"profilePicture"`
	Skills         *[]string `json:"skills"`
	Github         *string   `json:"github"`
	Linkedin       *string   `json:"linkedin"`
	Website        *string   `json:"website"`
}

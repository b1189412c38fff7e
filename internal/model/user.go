package model

import (
	"fmt"

	"github.com/deppfellow/starwars-api/internal/validation"
)

// User is an account that can mark people and planets as favorites.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`
	IsActive bool   `json:"is_active"`
}

type CreateUserPayload struct {
	Username string `json:"username" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,max=120"`
	Password string `json:"password" validate:"required,max=72"`
	IsActive *bool  `json:"is_active"`
}

// maxPasswordBytes is the bcrypt input limit. The max tag counts
// characters, so multibyte passwords need the extra byte check.
const maxPasswordBytes = 72

func (p *CreateUserPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}

	if len(p.Password) > maxPasswordBytes {
		return validation.CustomValidationErrors{{
			Field:   "password",
			Message: fmt.Sprintf("must not exceed %d bytes", maxPasswordBytes),
		}}
	}

	return nil
}

// UserIDPayload addresses a single user by path id.
type UserIDPayload struct {
	ID int64 `param:"id" validate:"gt=0"`
}

func (p *UserIDPayload) Validate() error {
	return validation.Struct(p)
}

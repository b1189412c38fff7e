package model

import "github.com/deppfellow/starwars-api/internal/validation"

// Person is a Star Wars character.
type Person struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Height int    `json:"height"`
	Mass   int    `json:"mass"`
}

// CreatePersonPayload uses pointers so that an explicit 0 is accepted and
// an absent field is not.
type CreatePersonPayload struct {
	Name   string `json:"name" validate:"required,max=250"`
	Height *int   `json:"height" validate:"required"`
	Mass   *int   `json:"mass" validate:"required"`
}

func (p *CreatePersonPayload) Validate() error {
	return validation.Struct(p)
}

type PersonIDPayload struct {
	ID int64 `param:"id" validate:"gt=0"`
}

func (p *PersonIDPayload) Validate() error {
	return validation.Struct(p)
}

package handler

import (
	"fmt"

	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
	"github.com/labstack/echo/v4"
)

type PersonHandler struct {
	Handler
	personService *service.PersonService
}

func NewPersonHandler(s *server.Server, personService *service.PersonService) *PersonHandler {
	return &PersonHandler{
		Handler:       NewHandler(s),
		personService: personService,
	}
}

type PersonResponse struct {
	Message string        `json:"message,omitempty"`
	Person  *model.Person `json:"person"`
}

type PeopleResponse struct {
	People []model.Person `json:"people"`
}

func (h *PersonHandler) CreatePerson(c echo.Context, payload *model.CreatePersonPayload) (*PersonResponse, error) {
	person, err := h.personService.Create(c.Request().Context(), payload)
	if err != nil {
		return nil, err
	}

	return &PersonResponse{
		Message: fmt.Sprintf("%s created!", person.Name),
		Person:  person,
	}, nil
}

func (h *PersonHandler) GetPerson(c echo.Context, payload *model.PersonIDPayload) (*PersonResponse, error) {
	person, err := h.personService.Get(c.Request().Context(), payload.ID)
	if err != nil {
		return nil, err
	}
	return &PersonResponse{Person: person}, nil
}

func (h *PersonHandler) ListPeople(c echo.Context, _ *EmptyPayload) (*PeopleResponse, error) {
	people, err := h.personService.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &PeopleResponse{People: people}, nil
}

func (h *PersonHandler) DeletePerson(c echo.Context, payload *model.PersonIDPayload) (*MessageResponse, error) {
	person, err := h.personService.Delete(c.Request().Context(), payload.ID)
	if err != nil {
		return nil, err
	}
	return &MessageResponse{Message: fmt.Sprintf("%s deleted!", person.Name)}, nil
}

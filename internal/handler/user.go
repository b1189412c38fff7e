package handler

import (
	"fmt"

	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

type UserResponse struct {
	Message string      `json:"message,omitempty"`
	User    *model.User `json:"user,omitempty"`
}

type UsersResponse struct {
	Users []model.User `json:"users"`
}

func (h *UserHandler) CreateUser(c echo.Context, payload *model.CreateUserPayload) (*UserResponse, error) {
	user, err := h.userService.Create(c.Request().Context(), payload)
	if err != nil {
		return nil, err
	}

	return &UserResponse{
		Message: fmt.Sprintf("%s created!", user.Username),
		User:    user,
	}, nil
}

func (h *UserHandler) GetUser(c echo.Context, payload *model.UserIDPayload) (*UserResponse, error) {
	user, err := h.userService.Get(c.Request().Context(), payload.ID)
	if err != nil {
		return nil, err
	}
	return &UserResponse{User: user}, nil
}

func (h *UserHandler) ListUsers(c echo.Context, _ *EmptyPayload) (*UsersResponse, error) {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &UsersResponse{Users: users}, nil
}

func (h *UserHandler) DeleteUser(c echo.Context, payload *model.UserIDPayload) (*MessageResponse, error) {
	user, err := h.userService.Delete(c.Request().Context(), payload.ID)
	if err != nil {
		return nil, err
	}
	return &MessageResponse{Message: fmt.Sprintf("%s deleted!", user.Username)}, nil
}

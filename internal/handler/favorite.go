package handler

import (
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	Handler
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(s *server.Server, favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		Handler:         NewHandler(s),
		favoriteService: favoriteService,
	}
}

type FavoritesResponse struct {
	Favorites *model.Favorites `json:"favorites"`
}

type FavoriteResponse struct {
	Message  string `json:"message"`
	Favorite any    `json:"favorite"`
}

// ListAllFavorites returns the favorites of every user.
func (h *FavoriteHandler) ListAllFavorites(c echo.Context, _ *EmptyPayload) (*FavoritesResponse, error) {
	favorites, err := h.favoriteService.List(c.Request().Context(), nil)
	if err != nil {
		return nil, err
	}
	return &FavoritesResponse{Favorites: favorites}, nil
}

func (h *FavoriteHandler) ListUserFavorites(c echo.Context, payload *model.UserIDPayload) (*FavoritesResponse, error) {
	favorites, err := h.favoriteService.List(c.Request().Context(), &payload.ID)
	if err != nil {
		return nil, err
	}
	return &FavoritesResponse{Favorites: favorites}, nil
}

func (h *FavoriteHandler) AddFavoritePerson(c echo.Context, payload *model.AddFavoritePersonPayload) (*FavoriteResponse, error) {
	fav, err := h.favoriteService.AddPerson(c.Request().Context(), *payload.UserID, *payload.PeopleID)
	if err != nil {
		return nil, err
	}
	return &FavoriteResponse{Message: "Person added to favorites", Favorite: fav}, nil
}

func (h *FavoriteHandler) AddFavoritePlanet(c echo.Context, payload *model.AddFavoritePlanetPayload) (*FavoriteResponse, error) {
	fav, err := h.favoriteService.AddPlanet(c.Request().Context(), *payload.UserID, *payload.PlanetID)
	if err != nil {
		return nil, err
	}
	return &FavoriteResponse{Message: "Planet added to favorites", Favorite: fav}, nil
}

func (h *FavoriteHandler) RemoveFavoritePerson(c echo.Context, payload *model.RemoveFavoritePersonPayload) (*MessageResponse, error) {
	if err := h.favoriteService.RemovePerson(c.Request().Context(), payload.UserID, payload.PeopleID); err != nil {
		return nil, err
	}
	return &MessageResponse{Message: "Person deleted from favorites!"}, nil
}

func (h *FavoriteHandler) RemoveFavoritePlanet(c echo.Context, payload *model.RemoveFavoritePlanetPayload) (*MessageResponse, error) {
	if err := h.favoriteService.RemovePlanet(c.Request().Context(), payload.UserID, payload.PlanetID); err != nil {
		return nil, err
	}
	return &MessageResponse{Message: "Planet deleted from favorites!"}, nil
}

// Package router initializes the Echo router.
//
// It registers the middlewares and maps every path to its handler.
package router

import (
	"net/http"

	"github.com/deppfellow/starwars-api/internal/handler"
	"github.com/deppfellow/starwars-api/internal/middleware"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// "/people/" and "/people" resolve to the same route.
	router.Pre(echoMiddleware.RemoveTrailingSlash())

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Collect(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	if middlewares.RateLimit.Enabled() {
		router.Use(middlewares.RateLimit.Limit())
	}

	registerSystemRoutes(s, router, h)
	registerUserRoutes(router, h)
	registerPeopleRoutes(router, h)
	registerPlanetRoutes(router, h)
	registerFavoriteRoutes(router, h)

	return router
}

func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	users := r.Group("/users")

	users.GET("", handler.Handle(h.User.Handler, h.User.ListUsers, http.StatusOK, &handler.EmptyPayload{}))
	users.POST("", handler.Handle(h.User.Handler, h.User.CreateUser, http.StatusCreated, &model.CreateUserPayload{}))
	users.GET("/favorites", handler.Handle(h.Favorite.Handler, h.Favorite.ListAllFavorites, http.StatusOK, &handler.EmptyPayload{}))
	users.GET("/:id", handler.Handle(h.User.Handler, h.User.GetUser, http.StatusOK, &model.UserIDPayload{}))
	users.DELETE("/:id", handler.Handle(h.User.Handler, h.User.DeleteUser, http.StatusOK, &model.UserIDPayload{}))
	users.GET("/:id/favorites", handler.Handle(h.Favorite.Handler, h.Favorite.ListUserFavorites, http.StatusOK, &model.UserIDPayload{}))
	users.DELETE("/:id/favorite/people/:peopleId", handler.Handle(h.Favorite.Handler, h.Favorite.RemoveFavoritePerson, http.StatusOK, &model.RemoveFavoritePersonPayload{}))
	users.DELETE("/:id/favorite/planets/:planetId", handler.Handle(h.Favorite.Handler, h.Favorite.RemoveFavoritePlanet, http.StatusOK, &model.RemoveFavoritePlanetPayload{}))
}

func registerPeopleRoutes(r *echo.Echo, h *handler.Handlers) {
	people := r.Group("/people")

	people.GET("", handler.Handle(h.Person.Handler, h.Person.ListPeople, http.StatusOK, &handler.EmptyPayload{}))
	people.POST("", handler.Handle(h.Person.Handler, h.Person.CreatePerson, http.StatusCreated, &model.CreatePersonPayload{}))
	people.GET("/:id", handler.Handle(h.Person.Handler, h.Person.GetPerson, http.StatusOK, &model.PersonIDPayload{}))
	people.DELETE("/:id", handler.Handle(h.Person.Handler, h.Person.DeletePerson, http.StatusOK, &model.PersonIDPayload{}))
}

func registerPlanetRoutes(r *echo.Echo, h *handler.Handlers) {
	planets := r.Group("/planets")

	planets.GET("", handler.Handle(h.Planet.Handler, h.Planet.ListPlanets, http.StatusOK, &handler.EmptyPayload{}))
	planets.POST("", handler.Handle(h.Planet.Handler, h.Planet.CreatePlanet, http.StatusCreated, &model.CreatePlanetPayload{}))
	planets.GET("/:id", handler.Handle(h.Planet.Handler, h.Planet.GetPlanet, http.StatusOK, &model.PlanetIDPayload{}))
	planets.DELETE("/:id", handler.Handle(h.Planet.Handler, h.Planet.DeletePlanet, http.StatusOK, &model.PlanetIDPayload{}))
}

func registerFavoriteRoutes(r *echo.Echo, h *handler.Handlers) {
	favorite := r.Group("/favorite")

	favorite.POST("/people", handler.Handle(h.Favorite.Handler, h.Favorite.AddFavoritePerson, http.StatusCreated, &model.AddFavoritePersonPayload{}))
	favorite.POST("/planets", handler.Handle(h.Favorite.Handler, h.Favorite.AddFavoritePlanet, http.StatusCreated, &model.AddFavoritePlanetPayload{}))
}

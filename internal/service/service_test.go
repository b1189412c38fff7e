package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/repository"
	"github.com/deppfellow/starwars-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServices(t *testing.T) *Services {
	t.Helper()

	s := testutil.NewTestServer(t)
	services, err := NewServices(s, repository.NewRepositories(s))
	require.NoError(t, err)
	services.User.passwordCost = bcrypt.MinCost

	return services
}

func ptr[T any](v T) *T {
	return &v
}

func requireHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func createUser(t *testing.T, svc *Services, username, email string) *model.User {
	t.Helper()

	user, err := svc.User.Create(context.Background(), &model.CreateUserPayload{
		Username: username,
		Email:    email,
		Password: "secret",
	})
	require.NoError(t, err)
	return user
}

func TestUserService_CreateAndGetByEmail(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	created := createUser(t, svc, "luke", "luke@rebels.org")
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret")))

	found, err := svc.User.GetByEmail(ctx, "luke@rebels.org")
	require.NoError(t, err)
	assert.Equal(t, created, found)
}

func TestUserService_CreateInactive(t *testing.T) {
	svc := newTestServices(t)

	user, err := svc.User.Create(context.Background(), &model.CreateUserPayload{
		Username: "vader",
		Email:    "vader@empire.gov",
		Password: "secret",
		IsActive: ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, user.IsActive)
}

func TestUserService_DuplicateEmail(t *testing.T) {
	svc := newTestServices(t)
	createUser(t, svc, "luke", "luke@rebels.org")

	_, err := svc.User.Create(context.Background(), &model.CreateUserPayload{
		Username: "other",
		Email:    "luke@rebels.org",
		Password: "secret",
	})
	requireHTTPError(t, err, http.StatusBadRequest, "Email already in use!")
}

func TestUserService_DuplicateUsername(t *testing.T) {
	svc := newTestServices(t)
	createUser(t, svc, "luke", "luke@rebels.org")

	_, err := svc.User.Create(context.Background(), &model.CreateUserPayload{
		Username: "luke",
		Email:    "other@rebels.org",
		Password: "secret",
	})
	requireHTTPError(t, err, http.StatusBadRequest, "Username already in use!")
}

func TestUserService_GetMissing(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.User.Get(context.Background(), 42)
	requireHTTPError(t, err, http.StatusNotFound, "User not found!")

	_, err = svc.User.GetByEmail(context.Background(), "nobody@nowhere")
	requireHTTPError(t, err, http.StatusNotFound, "User not found!")

	_, err = svc.User.Delete(context.Background(), 42)
	requireHTTPError(t, err, http.StatusNotFound, "User not found!")
}

func TestPersonService_Lifecycle(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	person, err := svc.Person.Create(ctx, &model.CreatePersonPayload{Name: "Luke", Height: ptr(172), Mass: ptr(77)})
	require.NoError(t, err)
	assert.Equal(t, &model.Person{ID: 1, Name: "Luke", Height: 172, Mass: 77}, person)

	_, err = svc.Person.Create(ctx, &model.CreatePersonPayload{Name: "Luke", Height: ptr(1), Mass: ptr(1)})
	requireHTTPError(t, err, http.StatusBadRequest, "Luke already exists!")

	people, err := svc.Person.List(ctx)
	require.NoError(t, err)
	assert.Len(t, people, 1)

	deleted, err := svc.Person.Delete(ctx, person.ID)
	require.NoError(t, err)
	assert.Equal(t, "Luke", deleted.Name)

	_, err = svc.Person.Get(ctx, person.ID)
	requireHTTPError(t, err, http.StatusNotFound, "Person not found!")
}

func TestPlanetService_Lifecycle(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	planet, err := svc.Planet.Create(ctx, &model.CreatePlanetPayload{
		Name:          "Tatooine",
		OrbitalPeriod: ptr(304),
		Population:    ptr(int64(200000)),
	})
	require.NoError(t, err)

	_, err = svc.Planet.Create(ctx, &model.CreatePlanetPayload{
		Name:          "Tatooine",
		OrbitalPeriod: ptr(1),
		Population:    ptr(int64(1)),
	})
	requireHTTPError(t, err, http.StatusBadRequest, "Tatooine already exists!")

	got, err := svc.Planet.Get(ctx, planet.ID)
	require.NoError(t, err)
	assert.Equal(t, planet, got)

	_, err = svc.Planet.Delete(ctx, 99)
	requireHTTPError(t, err, http.StatusNotFound, "Planet not found!")
}

func TestFavoriteService_AddPersonTwice(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := createUser(t, svc, "leia", "leia@rebels.org")
	person, err := svc.Person.Create(ctx, &model.CreatePersonPayload{Name: "Han", Height: ptr(180), Mass: ptr(80)})
	require.NoError(t, err)

	fav, err := svc.Favorite.AddPerson(ctx, user.ID, person.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, fav.UserID)
	assert.Equal(t, person.ID, fav.PeopleID)

	_, err = svc.Favorite.AddPerson(ctx, user.ID, person.ID)
	requireHTTPError(t, err, http.StatusBadRequest, "Person is already a favorite")
}

func TestFavoriteService_AddMissing(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := createUser(t, svc, "leia", "leia@rebels.org")

	_, err := svc.Favorite.AddPerson(ctx, user.ID, 7)
	requireHTTPError(t, err, http.StatusNotFound, "Person not found!")

	_, err = svc.Favorite.AddPlanet(ctx, user.ID, 7)
	requireHTTPError(t, err, http.StatusNotFound, "Planet not found!")

	planet, err := svc.Planet.Create(ctx, &model.CreatePlanetPayload{
		Name:          "Hoth",
		OrbitalPeriod: ptr(549),
		Population:    ptr(int64(0)),
	})
	require.NoError(t, err)

	_, err = svc.Favorite.AddPlanet(ctx, 99, planet.ID)
	requireHTTPError(t, err, http.StatusNotFound, "User not found!")
}

func TestFavoriteService_RemoveMissing(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	err := svc.Favorite.RemovePerson(ctx, 1, 2)
	requireHTTPError(t, err, http.StatusNotFound, "Person not in favorites")

	err = svc.Favorite.RemovePlanet(ctx, 1, 2)
	requireHTTPError(t, err, http.StatusNotFound, "Planet not in favorites")
}

func TestFavoriteService_ListScoping(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	leia := createUser(t, svc, "leia", "leia@rebels.org")
	han := createUser(t, svc, "han", "han@rebels.org")

	planet, err := svc.Planet.Create(ctx, &model.CreatePlanetPayload{
		Name:          "Alderaan",
		OrbitalPeriod: ptr(364),
		Population:    ptr(int64(2000000000)),
	})
	require.NoError(t, err)

	_, err = svc.Favorite.AddPlanet(ctx, leia.ID, planet.ID)
	require.NoError(t, err)
	_, err = svc.Favorite.AddPlanet(ctx, han.ID, planet.ID)
	require.NoError(t, err)

	all, err := svc.Favorite.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all.Planets, 2)
	assert.Empty(t, all.People)

	scoped, err := svc.Favorite.List(ctx, &han.ID)
	require.NoError(t, err)
	require.Len(t, scoped.Planets, 1)
	assert.Equal(t, han.ID, scoped.Planets[0].UserID)

	require.NoError(t, svc.Favorite.RemovePlanet(ctx, han.ID, planet.ID))

	_, err = svc.Favorite.List(ctx, ptr(int64(404)))
	requireHTTPError(t, err, http.StatusNotFound, "User not found!")
}

func TestUserService_DeleteCascadesFavorites(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := createUser(t, svc, "leia", "leia@rebels.org")
	person, err := svc.Person.Create(ctx, &model.CreatePersonPayload{Name: "Chewbacca", Height: ptr(228), Mass: ptr(112)})
	require.NoError(t, err)

	_, err = svc.Favorite.AddPerson(ctx, user.ID, person.ID)
	require.NoError(t, err)

	deleted, err := svc.User.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "leia", deleted.Username)

	favorites, err := svc.Favorite.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, favorites.People)
}

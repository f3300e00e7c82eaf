package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"corner/internal/domain/model"
	"corner/internal/infra/db/dbtest"
	"corner/internal/infra/password"
	infraRepo "corner/internal/infra/repository"
	"corner/internal/infra/token"
	repo "corner/internal/repository"
	"corner/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type uuidGen struct{}

func (uuidGen) NewID() string { return uuid.NewString() }

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

// sqliteの上に全部組み立てる
type env struct {
	db          *gorm.DB
	users       repo.UserRepository
	restaurants repo.RestaurantRepository
	wilayas     repo.WilayaRepository
	activities  repo.ActivityRepository
	revoked     repo.RevokedTokenRepository
	tx          repo.TransactionManager
	hasher      *password.BcryptHasher
	codec       *token.Codec
	clock       *testClock

	identity    *usecase.IdentityUsecase
	auth        *usecase.AuthUsecase
	adminUsers  *usecase.AdminUserUsecase
	restaurantU *usecase.RestaurantUsecase
	wilayaU     *usecase.WilayaUsecase
	activityU   *usecase.ActivityUsecase
}

func newEnv(t *testing.T) *env {
	t.Helper()

	gdb := dbtest.New(t)
	clock := &testClock{now: time.Now().UTC().Truncate(time.Second)}
	codec, err := token.NewCodec("test-secret", token.DefaultTTL, clock)
	require.NoError(t, err)

	e := &env{
		db:          gdb,
		users:       infraRepo.NewUserGormRepository(gdb),
		restaurants: infraRepo.NewRestaurantGormRepository(gdb),
		wilayas:     infraRepo.NewWilayaGormRepository(gdb),
		activities:  infraRepo.NewActivityGormRepository(gdb),
		revoked:     infraRepo.NewRevokedTokenGormRepository(gdb),
		tx:          infraRepo.NewTxManagerGorm(gdb),
		hasher:      password.NewBcryptHasher(bcrypt.MinCost),
		codec:       codec,
		clock:       clock,
	}
	e.identity = usecase.NewIdentityUsecase(e.users, e.revoked, codec, nil, nil)
	e.auth = usecase.NewAuthUsecase(e.users, e.revoked, e.activities, password.NewBcryptVerifier(), codec, clock, nil, nil)
	e.adminUsers = usecase.NewAdminUserUsecase(e.users, e.tx, e.hasher, uuidGen{}, clock, nil)
	e.restaurantU = usecase.NewRestaurantUsecase(e.restaurants, e.tx, uuidGen{}, clock, nil)
	e.wilayaU = usecase.NewWilayaUsecase(e.wilayas, e.tx, uuidGen{}, clock)
	e.activityU = usecase.NewActivityUsecase(e.activities)
	return e
}

func (e *env) wilaya(t *testing.T, code int, name string) *model.Wilaya {
	t.Helper()
	w := &model.Wilaya{ID: uuid.NewString(), Code: code, Name: name}
	require.NoError(t, e.wilayas.Create(context.Background(), w))
	return w
}

func (e *env) restaurant(t *testing.T, name string, wilayaID string) *model.Restaurant {
	t.Helper()
	r := &model.Restaurant{ID: uuid.NewString(), Name: name, Slug: uuid.NewString(), WilayaID: wilayaID, IsActive: true}
	require.NoError(t, e.restaurants.Create(context.Background(), r))
	return r
}

type userOpt func(*model.User)

func withRestaurant(id string) userOpt { return func(u *model.User) { u.RestaurantID = &id } }
func withWilaya(id string) userOpt     { return func(u *model.User) { u.WilayaID = &id } }
func inactive() userOpt                { return func(u *model.User) { u.Status = model.UserStatusInactive } }

func (e *env) user(t *testing.T, username string, role model.Role, opts ...userOpt) *model.User {
	t.Helper()
	hash, err := e.hasher.Hash("password123")
	require.NoError(t, err)

	u := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Name:         username,
		Role:         role,
		Status:       model.UserStatusActive,
	}
	for _, o := range opts {
		o(u)
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *env) reload(t *testing.T, id string) *model.User {
	t.Helper()
	u, err := e.users.FindByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (e *env) sessionFor(t *testing.T, u *model.User) string {
	t.Helper()
	raw, _, err := e.codec.Issue(model.ClaimsFor(u))
	require.NoError(t, err)
	return raw
}

func assertHTTPError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
		assert.Equal(t, msg, he.Message)
	}
}

func assertConflict(t *testing.T, err error, msg string) {
	t.Helper()
	assertHTTPError(t, err, http.StatusConflict, msg)
}

func strPtr(s string) *string { return &s }

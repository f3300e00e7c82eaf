package repository_test

import (
	"context"
	"testing"
	"time"

	"corner/internal/domain/model"
	"corner/internal/infra/db/dbtest"
	infraRepo "corner/internal/infra/repository"
	repo "corner/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUser(username string, role model.Role) *model.User {
	return &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		Status:       model.UserStatusActive,
	}
}

func newWilaya(t *testing.T, gdb *gorm.DB, code int) *model.Wilaya {
	t.Helper()
	w := &model.Wilaya{ID: uuid.NewString(), Code: code, Name: "W"}
	require.NoError(t, infraRepo.NewWilayaGormRepository(gdb).Create(context.Background(), w))
	return w
}

func TestUserRepo_DuplicateUsername_IsErrDuplicate(t *testing.T) {
	gdb := dbtest.New(t)
	users := infraRepo.NewUserGormRepository(gdb)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, newUser("alice", model.RoleOwner)))
	err := users.Create(ctx, newUser("alice", model.RoleOwner))

	assert.ErrorIs(t, err, repo.ErrDuplicate)
	var dup *repo.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "username", dup.Column)
}

func TestUserRepo_DuplicateEmail_CarriesColumn(t *testing.T) {
	gdb := dbtest.New(t)
	users := infraRepo.NewUserGormRepository(gdb)
	ctx := context.Background()
	email := "same@example.com"

	a := newUser("a1", model.RoleOwner)
	a.Email = &email
	b := newUser("b1", model.RoleOwner)
	b.Email = &email
	require.NoError(t, users.Create(ctx, a))

	var dup *repo.DuplicateError
	require.ErrorAs(t, users.Create(ctx, b), &dup)
	assert.Equal(t, "email", dup.Column)
}

func TestUserRepo_FindByID_NotFound(t *testing.T) {
	gdb := dbtest.New(t)
	users := infraRepo.NewUserGormRepository(gdb)

	_, err := users.FindByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestUserRepo_CountActiveSuperAdmins(t *testing.T) {
	gdb := dbtest.New(t)
	users := infraRepo.NewUserGormRepository(gdb)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, newUser("sa1", model.RoleSuperAdmin)))
	require.NoError(t, users.Create(ctx, newUser("sa2", model.RoleSuperAdmin)))
	off := newUser("sa3", model.RoleSuperAdmin)
	off.Status = model.UserStatusInactive
	require.NoError(t, users.Create(ctx, off))
	require.NoError(t, users.Create(ctx, newUser("m1", model.RoleManager)))

	n, err := users.CountActiveSuperAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestUserRepo_AssignWilaya_BumpsTokenVersion_And_IsUnique(t *testing.T) {
	gdb := dbtest.New(t)
	users := infraRepo.NewUserGormRepository(gdb)
	ctx := context.Background()
	w := newWilaya(t, gdb, 1)

	m1 := newUser("m1", model.RoleManager)
	m2 := newUser("m2", model.RoleManager)
	require.NoError(t, users.Create(ctx, m1))
	require.NoError(t, users.Create(ctx, m2))

	require.NoError(t, users.AssignWilaya(ctx, m1.ID, &w.ID))
	got, err := users.FindByID(ctx, m1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TokenVersion)
	require.NotNil(t, got.Wilaya)
	assert.Equal(t, w.ID, got.Wilaya.ID)

	//1ウィラヤ1マネージャーはDBでも守られる
	err = users.AssignWilaya(ctx, m2.ID, &w.ID)
	var dup *repo.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "wilaya_id", dup.Column)

	byWilaya, err := users.FindByWilayaID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, m1.ID, byWilaya.ID)

	assert.ErrorIs(t, users.AssignWilaya(ctx, uuid.NewString(), nil), repo.ErrNotFound)
}

func TestUserRepo_List_Filters(t *testing.T) {
	gdb := dbtest.New(t)
	users := infraRepo.NewUserGormRepository(gdb)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, newUser("alice", model.RoleOwner)))
	require.NoError(t, users.Create(ctx, newUser("bob", model.RoleManager)))
	require.NoError(t, users.Create(ctx, newUser("alicia", model.RoleManager)))

	role := model.RoleManager
	items, total, err := users.List(ctx, repo.UserListFilter{Role: &role, Q: "ALI"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "alicia", items[0].Username)
}

func TestRevokedTokenRepo_CreateTwice_And_Purge(t *testing.T) {
	gdb := dbtest.New(t)
	revoked := infraRepo.NewRevokedTokenGormRepository(gdb)
	ctx := context.Background()
	now := time.Now().UTC()

	old := &model.RevokedToken{ID: uuid.NewString(), UserID: "u", ExpiresAt: now.Add(-time.Minute), RevokedAt: now}
	live := &model.RevokedToken{ID: uuid.NewString(), UserID: "u", ExpiresAt: now.Add(time.Hour), RevokedAt: now}
	require.NoError(t, revoked.Create(ctx, old))
	require.NoError(t, revoked.Create(ctx, old))
	require.NoError(t, revoked.Create(ctx, live))

	ok, err := revoked.IsRevoked(ctx, old.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := revoked.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ok, err = revoked.IsRevoked(ctx, old.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = revoked.IsRevoked(ctx, live.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRestaurantRepo_SlugExists_And_Delete(t *testing.T) {
	gdb := dbtest.New(t)
	restaurants := infraRepo.NewRestaurantGormRepository(gdb)
	ctx := context.Background()
	w := newWilaya(t, gdb, 16)

	r := &model.Restaurant{ID: uuid.NewString(), Name: "Le Coin", Slug: "le-coin", WilayaID: w.ID, IsActive: true}
	require.NoError(t, restaurants.Create(ctx, r))

	exists, err := restaurants.SlugExists(ctx, "le-coin", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = restaurants.SlugExists(ctx, "le-coin", r.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	n, err := restaurants.CountByWilayaID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, restaurants.Delete(ctx, r.ID))
	assert.ErrorIs(t, restaurants.Delete(ctx, r.ID), repo.ErrNotFound)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	gdb := dbtest.New(t)
	tx := infraRepo.NewTxManagerGorm(gdb)
	users := infraRepo.NewUserGormRepository(gdb)
	ctx := context.Background()

	u := newUser("rollback", model.RoleOwner)
	err := tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Users().Create(ctx, u); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = users.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"corner/internal/domain/model"
	"corner/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIdentity_ResolvesLiveUser(t *testing.T) {
	e := newEnv(t)
	w := e.wilaya(t, 16, "Alger")
	r := e.restaurant(t, "Chez Nous", w.ID)
	owner := e.user(t, "owner1", model.RoleOwner, withRestaurant(r.ID))

	got := e.identity.Resolve(context.Background(), e.sessionFor(t, owner))
	require.NotNil(t, got)
	assert.Equal(t, owner.ID, got.ID)
	require.NotNil(t, got.Restaurant)
	assert.Equal(t, "Chez Nous", got.Restaurant.Name)
}

func TestIdentity_EmptyAndGarbage(t *testing.T) {
	e := newEnv(t)
	assert.Nil(t, e.identity.Resolve(context.Background(), ""))
	assert.Nil(t, e.identity.Resolve(context.Background(), "not.a.token"))
}

func TestIdentity_InactiveUser(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "sleepy", model.RoleSuperAdmin, inactive())

	assert.Nil(t, e.identity.Resolve(context.Background(), e.sessionFor(t, u)))
}

func TestIdentity_DeletedUser(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "gone", model.RoleSuperAdmin)
	raw := e.sessionFor(t, u)

	require.NoError(t, e.users.Delete(context.Background(), u.ID))
	assert.Nil(t, e.identity.Resolve(context.Background(), raw))
}

func TestIdentity_ExpiredToken(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "admin", model.RoleSuperAdmin)
	raw := e.sessionFor(t, u)

	e.clock.now = e.clock.now.Add(8 * 24 * time.Hour)
	assert.Nil(t, e.identity.Resolve(context.Background(), raw))
}

func TestIdentity_StaleTokenVersion(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "admin", model.RoleSuperAdmin)
	raw := e.sessionFor(t, u)

	// 別の管理者がパスワードを再設定
	other := e.user(t, "admin2", model.RoleSuperAdmin)
	require.NoError(t, e.adminUsers.ResetPassword(context.Background(), other, u.ID, "newpass123"))

	assert.Nil(t, e.identity.Resolve(context.Background(), raw))
	assert.NotNil(t, e.identity.Resolve(context.Background(), e.sessionFor(t, e.reload(t, u.ID))))
}

type failingRevokedRepo struct{ mock.Mock }

func (m *failingRevokedRepo) Create(ctx context.Context, token *model.RevokedToken) error {
	panic("not used in identity tests")
}

func (m *failingRevokedRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *failingRevokedRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	panic("not used in identity tests")
}

func TestIdentity_StoreErrorIsNil(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "admin", model.RoleSuperAdmin)

	revoked := new(failingRevokedRepo)
	revoked.On("IsRevoked", mock.Anything, mock.Anything).Return(false, errors.New("connection refused"))

	identity := usecase.NewIdentityUsecase(e.users, revoked, e.codec, nil, nil)
	assert.NotPanics(t, func() {
		assert.Nil(t, identity.Resolve(context.Background(), e.sessionFor(t, u)))
	})
	revoked.AssertExpectations(t)
}

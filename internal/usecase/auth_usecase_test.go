package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"corner/internal/domain/model"
	"corner/internal/infra/token"
	repo "corner/internal/repository"
	"corner/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "superadmin1", model.RoleSuperAdmin)

	out, err := e.auth.Login(context.Background(), usecase.LoginInput{Username: "superadmin1", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, out.User.ID)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, e.clock.now.Add(token.DefaultTTL), out.ExpiresAt)

	session, ok := e.codec.Verify(out.Token)
	require.True(t, ok)
	assert.Equal(t, model.RoleSuperAdmin, session.Claims.Role)

	reloaded := e.reload(t, u.ID)
	require.NotNil(t, reloaded.LastLoginAt)

	logs, total, err := e.activities.List(context.Background(), repo.ActivityFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActivityLogin, logs[0].Action)
}

func TestLogin_WrongPasswordAndUnknownUserLookTheSame(t *testing.T) {
	e := newEnv(t)
	e.user(t, "owner", model.RoleSuperAdmin)

	_, err := e.auth.Login(context.Background(), usecase.LoginInput{Username: "owner", Password: "nope"})
	assertHTTPError(t, err, http.StatusUnauthorized, "Invalid username or password")

	_, err = e.auth.Login(context.Background(), usecase.LoginInput{Username: "nobody", Password: "nope"})
	assertHTTPError(t, err, http.StatusUnauthorized, "Invalid username or password")
}

func TestLogin_Inactive(t *testing.T) {
	e := newEnv(t)
	e.user(t, "sleepy", model.RoleSuperAdmin, inactive())

	_, err := e.auth.Login(context.Background(), usecase.LoginInput{Username: "sleepy", Password: "password123"})
	assertHTTPError(t, err, http.StatusForbidden, "Account is inactive")
}

func TestLogin_MissingFields(t *testing.T) {
	e := newEnv(t)
	_, err := e.auth.Login(context.Background(), usecase.LoginInput{Username: " ", Password: ""})
	assertHTTPError(t, err, http.StatusBadRequest, "Username and password are required")
}

func TestLogout_RevokesToken(t *testing.T) {
	e := newEnv(t)
	e.user(t, "admin", model.RoleSuperAdmin)

	out, err := e.auth.Login(context.Background(), usecase.LoginInput{Username: "admin", Password: "password123"})
	require.NoError(t, err)
	require.NotNil(t, e.identity.Resolve(context.Background(), out.Token))

	require.NoError(t, e.auth.Logout(context.Background(), out.Token))
	assert.Nil(t, e.identity.Resolve(context.Background(), out.Token))

	//2回目も、壊れたトークンもエラーにしない
	assert.NoError(t, e.auth.Logout(context.Background(), out.Token))
	assert.NoError(t, e.auth.Logout(context.Background(), "garbage"))
}

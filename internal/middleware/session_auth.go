package middleware

import (
	"context"
	"net/http"

	"corner/internal/domain/model"
	"corner/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserKey = "current_user" // *model.User
)

// cookieのトークンからユーザーを引く
type IdentityResolver interface {
	Resolve(ctx context.Context, rawToken string) *model.User
}

// cookieの読み出し
type SessionReader interface {
	Read(r *http.Request) (string, bool)
}

// SessionAuthは解決できたユーザーをcontextに入れる。
// 解決できなくても止めない（401/403はRoleGuardやハンドラが決める）。
func SessionAuth(cookies SessionReader, resolver IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := cookies.Read(c.Request())
			if ok {
				if user := resolver.Resolve(c.Request().Context(), raw); user != nil {
					c.Set(CtxUserKey, user)
				}
			}
			return next(c)
		}
	}
}

// contextのユーザー。なければnil
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(CtxUserKey).(*model.User)
	return u
}

// ログイン必須。なければ usecase.ErrUnauthorized
func RequireAuth(c echo.Context) (*model.User, error) {
	u := CurrentUser(c)
	if u == nil {
		return nil, usecase.ErrUnauthorized
	}
	return u, nil
}

// ロールが許可されていなければ usecase.ErrForbidden
func RequireRole(c echo.Context, roles ...model.Role) (*model.User, error) {
	u, err := RequireAuth(c)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if u.Role == r {
			return u, nil
		}
	}
	return nil, usecase.ErrForbidden
}

func RequireSuperAdmin(c echo.Context) (*model.User, error) {
	return RequireRole(c, model.RoleSuperAdmin)
}

// SUPER_ADMIN または MANAGER
func RequireManager(c echo.Context) (*model.User, error) {
	return RequireRole(c, model.RoleSuperAdmin, model.RoleManager)
}

// SUPER_ADMIN または OWNER
func RequireOwner(c echo.Context) (*model.User, error) {
	return RequireRole(c, model.RoleSuperAdmin, model.RoleOwner)
}

package middleware

import (
	"errors"
	"net/http"

	"corner/internal/domain/model"
	"corner/internal/usecase"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Success: false, Error: msg}
}

// RoleGuardはグループ単位のゲート。rolesが空ならログインだけ確認。
// セッションなしは401、ロール違いは403。
func RoleGuard(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var err error
			if len(roles) == 0 {
				_, err = RequireAuth(c)
			} else {
				_, err = RequireRole(c, roles...)
			}

			switch {
			case errors.Is(err, usecase.ErrUnauthorized):
				return c.JSON(http.StatusUnauthorized, errorJSON(usecase.ErrUnauthorized.Error()))
			case errors.Is(err, usecase.ErrForbidden):
				return c.JSON(http.StatusForbidden, errorJSON(usecase.ErrForbidden.Error()))
			}
			return next(c)
		}
	}
}

func Authenticated() echo.MiddlewareFunc {
	return RoleGuard()
}

func SuperAdminOnly() echo.MiddlewareFunc {
	return RoleGuard(model.RoleSuperAdmin)
}

func ManagerOrAbove() echo.MiddlewareFunc {
	return RoleGuard(model.RoleSuperAdmin, model.RoleManager)
}

func OwnerOrSuperAdmin() echo.MiddlewareFunc {
	return RoleGuard(model.RoleSuperAdmin, model.RoleOwner)
}

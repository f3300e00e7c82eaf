package handler

import (
	"net/http"

	"corner/internal/infra/cookie"
	"corner/internal/middleware"
	"corner/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc      *usecase.AuthUsecase
	cookies *cookie.SessionCookie
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase, cookies *cookie.SessionCookie) *AuthHandler {
	return &AuthHandler{uc: uc, cookies: cookies}
}

// /api/auth/login のリクエストボディ。
type loginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

func (h *AuthHandler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/auth")
	g.POST("/login", h.login)
	g.POST("/logout", h.logout)
	g.GET("/me", h.me, middleware.Authenticated())
}

// POST /api/auth/login
func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		//失敗時はcookieを触らない
		return writeError(c, err)
	}

	h.cookies.Set(c.Response(), out.Token)
	return writeOK(c, http.StatusOK, out)
}

// POST /api/auth/logout
func (h *AuthHandler) logout(c echo.Context) error {
	raw, ok := h.cookies.Read(c.Request())

	//cookieは必ず消す
	h.cookies.Clear(c.Response())

	if ok {
		if err := h.uc.Logout(c.Request().Context(), raw); err != nil {
			return writeError(c, err)
		}
	}
	return writeOK(c, http.StatusOK, struct{}{})
}

// GET /api/auth/me
func (h *AuthHandler) me(c echo.Context) error {
	user, err := middleware.RequireAuth(c)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, map[string]interface{}{"user": user})
}

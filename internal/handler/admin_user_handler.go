package handler

import (
	"net/http"

	"corner/internal/domain/model"
	"corner/internal/middleware"
	"corner/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	uc *usecase.AdminUserUsecase
}

func NewAdminUserHandler(uc *usecase.AdminUserUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

type createUserRequest struct {
	Username     string  `json:"username" validate:"required,min=3,max=100"`
	Email        *string `json:"email" validate:"omitempty,email,max=255"`
	Password     string  `json:"password" validate:"required,min=6,max=72"`
	Name         string  `json:"name" validate:"max=255"`
	Role         string  `json:"role" validate:"required,oneof=SUPER_ADMIN MANAGER OWNER"`
	Status       string  `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	RestaurantID *string `json:"restaurantId" validate:"omitempty,max=36"`
	WilayaID     *string `json:"wilayaId" validate:"omitempty,max=36"`
}

func (r *createUserRequest) normalize() {
	r.Email = blankToNil(r.Email)
	r.RestaurantID = blankToNil(r.RestaurantID)
	r.WilayaID = blankToNil(r.WilayaID)
}

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Status   *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`

	// "email":"" はメールの削除
	clearEmail bool
}

func (r *updateUserRequest) normalize() {
	if r.Email != nil && blankToNil(r.Email) == nil {
		r.Email = nil
		r.clearEmail = true
	}
}

type changeRoleRequest struct {
	Role         string  `json:"role" validate:"required,oneof=SUPER_ADMIN MANAGER OWNER"`
	RestaurantID *string `json:"restaurantId" validate:"omitempty,max=36"`
	WilayaID     *string `json:"wilayaId" validate:"omitempty,max=36"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// /api/admin/users 配下は全部SUPER_ADMIN限定
func (h *AdminUserHandler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/admin/users", middleware.SuperAdminOnly())

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.PUT("/:id/role", h.changeRole)
	g.POST("/:id/reset-password", h.resetPassword)
	g.POST("/:id/force-logout", h.forceLogout)
	g.DELETE("/:id", h.delete)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListUsersInput{
		Role:   c.QueryParam("role"),
		Status: c.QueryParam("status"),
		Q:      c.QueryParam("q"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, out)
}

func (h *AdminUserHandler) get(c echo.Context) error {
	user, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, user)
}

func (h *AdminUserHandler) create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	user, err := h.uc.Create(c.Request().Context(), middleware.CurrentUser(c), usecase.CreateUserInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Role:         model.Role(req.Role),
		Status:       model.UserStatus(req.Status),
		RestaurantID: req.RestaurantID,
		WilayaID:     req.WilayaID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusCreated, user)
}

func (h *AdminUserHandler) update(c echo.Context) error {
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	in := usecase.UpdateUserInput{Username: req.Username, Email: req.Email, Name: req.Name}
	if req.clearEmail {
		empty := ""
		in.Email = &empty
	}
	if req.Status != nil {
		s := model.UserStatus(*req.Status)
		in.Status = &s
	}

	user, err := h.uc.Update(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, user)
}

func (h *AdminUserHandler) changeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	user, err := h.uc.ChangeRole(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), usecase.ChangeRoleInput{
		Role:         model.Role(req.Role),
		RestaurantID: req.RestaurantID,
		WilayaID:     req.WilayaID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, user)
}

func (h *AdminUserHandler) resetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	if err := h.uc.ResetPassword(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), req.Password); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, map[string]string{"message": "Password reset"})
}

func (h *AdminUserHandler) forceLogout(c echo.Context) error {
	user, err := h.uc.ForceLogout(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, map[string]interface{}{"userId": user.ID})
}

func (h *AdminUserHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, map[string]string{"id": c.Param("id")})
}

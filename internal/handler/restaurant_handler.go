package handler

import (
	"net/http"

	"corner/internal/middleware"
	"corner/internal/usecase"

	"github.com/labstack/echo/v4"
)

type RestaurantHandler struct {
	uc *usecase.RestaurantUsecase
}

func NewRestaurantHandler(uc *usecase.RestaurantUsecase) *RestaurantHandler {
	return &RestaurantHandler{uc: uc}
}

type createRestaurantRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description"`
	Phone       string  `json:"phone" validate:"max=30"`
	Address     string  `json:"address" validate:"max=255"`
	WilayaID    string  `json:"wilayaId" validate:"required,max=36"`
	OwnerID     *string `json:"ownerId" validate:"omitempty,max=36"`
	IsActive    *bool   `json:"isActive"`
}

type updateRestaurantRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Phone       *string `json:"phone" validate:"omitempty,max=30"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	WilayaID    *string `json:"wilayaId" validate:"omitempty,max=36"`
	IsActive    *bool   `json:"isActive"`
}

type assignOwnerRequest struct {
	OwnerID string `json:"ownerId" validate:"required,max=36"`
}

// 一覧・詳細はMANAGERも見られる。変更はSUPER_ADMINだけ
func (h *RestaurantHandler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/admin/restaurants")

	g.GET("", h.list, middleware.ManagerOrAbove())
	g.GET("/:id", h.get, middleware.ManagerOrAbove())
	g.POST("", h.create, middleware.SuperAdminOnly())
	g.PUT("/:id", h.update, middleware.SuperAdminOnly())
	g.PUT("/:id/owner", h.assignOwner, middleware.SuperAdminOnly())
	g.DELETE("/:id", h.delete, middleware.SuperAdminOnly())
}

func (h *RestaurantHandler) list(c echo.Context) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), middleware.CurrentUser(c), usecase.ListRestaurantsInput{
		WilayaID: c.QueryParam("wilayaId"),
		Q:        c.QueryParam("q"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, out)
}

func (h *RestaurantHandler) get(c echo.Context) error {
	rest, err := h.uc.Get(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, rest)
}

func (h *RestaurantHandler) create(c echo.Context) error {
	var req createRestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	rest, err := h.uc.Create(c.Request().Context(), middleware.CurrentUser(c), usecase.CreateRestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Phone:       req.Phone,
		Address:     req.Address,
		WilayaID:    req.WilayaID,
		OwnerID:     req.OwnerID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusCreated, rest)
}

func (h *RestaurantHandler) update(c echo.Context) error {
	var req updateRestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	rest, err := h.uc.Update(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), usecase.UpdateRestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Phone:       req.Phone,
		Address:     req.Address,
		WilayaID:    req.WilayaID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, rest)
}

func (h *RestaurantHandler) assignOwner(c echo.Context) error {
	var req assignOwnerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	rest, err := h.uc.AssignOwner(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), req.OwnerID)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, rest)
}

func (h *RestaurantHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, map[string]string{"id": c.Param("id")})
}

package handler

import (
	"net/http"

	"corner/internal/middleware"
	"corner/internal/usecase"

	"github.com/labstack/echo/v4"
)

type WilayaHandler struct {
	uc *usecase.WilayaUsecase
}

func NewWilayaHandler(uc *usecase.WilayaUsecase) *WilayaHandler {
	return &WilayaHandler{uc: uc}
}

type createWilayaRequest struct {
	Code int    `json:"code" validate:"required,gt=0"`
	Name string `json:"name" validate:"required,max=100"`
}

type updateWilayaRequest struct {
	Code *int    `json:"code" validate:"omitempty,gt=0"`
	Name *string `json:"name" validate:"omitempty,max=100"`
}

type assignManagerRequest struct {
	ManagerID string `json:"managerId" validate:"required,max=36"`
}

func (h *WilayaHandler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/admin/wilayas")

	g.GET("", h.list, middleware.ManagerOrAbove())
	g.GET("/:id", h.get, middleware.ManagerOrAbove())
	g.POST("", h.create, middleware.SuperAdminOnly())
	g.PUT("/:id", h.update, middleware.SuperAdminOnly())
	g.PUT("/:id/manager", h.assignManager, middleware.SuperAdminOnly())
	g.DELETE("/:id", h.delete, middleware.SuperAdminOnly())
}

func (h *WilayaHandler) list(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, items)
}

func (h *WilayaHandler) get(c echo.Context) error {
	w, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, w)
}

func (h *WilayaHandler) create(c echo.Context) error {
	var req createWilayaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	w, err := h.uc.Create(c.Request().Context(), middleware.CurrentUser(c), usecase.CreateWilayaInput{
		Code: req.Code,
		Name: req.Name,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusCreated, w)
}

func (h *WilayaHandler) update(c echo.Context) error {
	var req updateWilayaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	w, err := h.uc.Update(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), usecase.UpdateWilayaInput{
		Code: req.Code,
		Name: req.Name,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, w)
}

func (h *WilayaHandler) assignManager(c echo.Context) error {
	var req assignManagerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	w, err := h.uc.AssignManager(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), req.ManagerID)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, w)
}

func (h *WilayaHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, map[string]string{"id": c.Param("id")})
}

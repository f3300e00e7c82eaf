package handler

import (
	"net/http"

	"corner/internal/middleware"
	"corner/internal/usecase"

	"github.com/labstack/echo/v4"
)

// オーナー用の自店舗API
type OwnerRestaurantHandler struct {
	uc *usecase.RestaurantUsecase
}

func NewOwnerRestaurantHandler(uc *usecase.RestaurantUsecase) *OwnerRestaurantHandler {
	return &OwnerRestaurantHandler{uc: uc}
}

type ownerUpdateRestaurantRequest struct {
	Description *string `json:"description"`
	Phone       *string `json:"phone" validate:"omitempty,max=30"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
}

func (h *OwnerRestaurantHandler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/owner", middleware.OwnerOrSuperAdmin())
	g.GET("/restaurant", h.get)
	g.PUT("/restaurant", h.update)
}

// SUPER_ADMINは ?restaurantId= で対象を指定
func (h *OwnerRestaurantHandler) get(c echo.Context) error {
	rest, err := h.uc.OwnedRestaurant(c.Request().Context(), middleware.CurrentUser(c), c.QueryParam("restaurantId"))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, rest)
}

func (h *OwnerRestaurantHandler) update(c echo.Context) error {
	var req ownerUpdateRestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	rest, err := h.uc.UpdateOwned(c.Request().Context(), middleware.CurrentUser(c), c.QueryParam("restaurantId"), usecase.OwnerUpdateRestaurantInput{
		Description: req.Description,
		Phone:       req.Phone,
		Address:     req.Address,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, rest)
}

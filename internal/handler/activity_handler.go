package handler

import (
	"net/http"
	"time"

	"corner/internal/middleware"
	"corner/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ActivityHandler struct {
	uc *usecase.ActivityUsecase
}

func NewActivityHandler(uc *usecase.ActivityUsecase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

func (h *ActivityHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/admin/activities", h.list, middleware.SuperAdminOnly())
}

// GET /api/admin/activities?actorId=&action=&entityType=&entityId=&from=&to=&limit=&offset=
func (h *ActivityHandler) list(c echo.Context) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return writeError(c, err)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return writeError(c, err)
	}

	page, err := h.uc.List(c.Request().Context(), usecase.ListActivitiesInput{
		ActorID:    c.QueryParam("actorId"),
		Action:     c.QueryParam("action"),
		EntityType: c.QueryParam("entityType"),
		EntityID:   c.QueryParam("entityId"),
		From:       from,
		To:         to,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, page)
}

// RFC3339のみ
func queryTime(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, usecase.ValidationError("invalid "+name, map[string]string{name: "must be RFC3339"})
	}
	return &t, nil
}

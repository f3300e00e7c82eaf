package server

import (
	"context"
	"net/http"
	"time"

	"corner/internal/handler"
	"corner/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// /api配下に並ぶハンドラ
type Handlers struct {
	Auth            *handler.AuthHandler
	AdminUsers      *handler.AdminUserHandler
	Restaurants     *handler.RestaurantHandler
	OwnerRestaurant *handler.OwnerRestaurantHandler
	Wilayas         *handler.WilayaHandler
	Activities      *handler.ActivityHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers, gdb *gorm.DB, m *metrics.Metrics) {
	e.GET("/healthz", healthz(gdb))
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	api := e.Group("/api")
	h.Auth.RegisterRoutes(api)
	h.AdminUsers.RegisterRoutes(api)
	h.Restaurants.RegisterRoutes(api)
	h.OwnerRestaurant.RegisterRoutes(api)
	h.Wilayas.RegisterRoutes(api)
	h.Activities.RegisterRoutes(api)
}

// DBにpingが通れば200
func healthz(gdb *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		sqlDB, err := gdb.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

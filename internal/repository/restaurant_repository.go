package repository

import (
	"context"

	"corner/internal/domain/model"
)

type RestaurantListFilter struct {
	WilayaID *string
	Q        string
	Page     int
	Limit    int
}

type RestaurantRepository interface {
	Create(ctx context.Context, r *model.Restaurant) error
	// Wilaya / Owner も一緒に読む
	FindByID(ctx context.Context, id string) (*model.Restaurant, error)
	// excludeIDの店舗は除いて、slugが使われているか
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)
	List(ctx context.Context, f RestaurantListFilter) ([]model.Restaurant, int64, error)
	CountByWilayaID(ctx context.Context, wilayaID string) (int64, error)
	Update(ctx context.Context, r *model.Restaurant) error
	Delete(ctx context.Context, id string) error
}

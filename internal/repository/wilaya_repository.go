package repository

import (
	"context"

	"corner/internal/domain/model"
)

type WilayaRepository interface {
	Create(ctx context.Context, w *model.Wilaya) error
	// Manager も一緒に読む
	FindByID(ctx context.Context, id string) (*model.Wilaya, error)
	FindByCode(ctx context.Context, code int) (*model.Wilaya, error)
	// code順
	List(ctx context.Context) ([]model.Wilaya, error)
	Update(ctx context.Context, w *model.Wilaya) error
	Delete(ctx context.Context, id string) error
}

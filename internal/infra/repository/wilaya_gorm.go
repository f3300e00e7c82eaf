package repository

import (
	"context"

	"corner/internal/domain/model"
	repo "corner/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type wilayaGormRepository struct {
	db *gorm.DB
}

func NewWilayaGormRepository(db *gorm.DB) repo.WilayaRepository {
	return &wilayaGormRepository{db: db}
}

func (r *wilayaGormRepository) Create(ctx context.Context, w *model.Wilaya) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(w).Error)
}

func (r *wilayaGormRepository) FindByID(ctx context.Context, id string) (*model.Wilaya, error) {
	var w model.Wilaya
	if err := r.db.WithContext(ctx).Preload("Manager").Where("id = ?", id).First(&w).Error; err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func (r *wilayaGormRepository) FindByCode(ctx context.Context, code int) (*model.Wilaya, error) {
	var w model.Wilaya
	if err := r.db.WithContext(ctx).Preload("Manager").Where("code = ?", code).First(&w).Error; err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func (r *wilayaGormRepository) List(ctx context.Context) ([]model.Wilaya, error) {
	var items []model.Wilaya
	if err := r.db.WithContext(ctx).Preload("Manager").Order("code ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *wilayaGormRepository) Update(ctx context.Context, w *model.Wilaya) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(w).Error)
}

func (r *wilayaGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Wilaya{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

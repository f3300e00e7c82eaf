package repository

import (
	"context"

	"corner/internal/domain/model"
	repo "corner/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type restaurantGormRepository struct {
	db *gorm.DB
}

func NewRestaurantGormRepository(db *gorm.DB) repo.RestaurantRepository {
	return &restaurantGormRepository{db: db}
}

func (r *restaurantGormRepository) Create(ctx context.Context, rest *model.Restaurant) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(rest).Error)
}

func (r *restaurantGormRepository) FindByID(ctx context.Context, id string) (*model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Wilaya").
		Preload("Owner").
		Where("id = ?", id).
		First(&rest).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rest, nil
}

func (r *restaurantGormRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Restaurant{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *restaurantGormRepository) List(ctx context.Context, f repo.RestaurantListFilter) ([]model.Restaurant, int64, error) {
	filtered := func(q *gorm.DB) *gorm.DB {
		if f.WilayaID != nil {
			q = q.Where("wilaya_id = ?", *f.WilayaID)
		}
		if f.Q != "" {
			p := likePattern(f.Q)
			q = q.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", p, p)
		}
		return q
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Restaurant{}).Scopes(filtered).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := pageWindow(f.Page, f.Limit)

	var items []model.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Wilaya").
		Preload("Owner").
		Scopes(filtered).
		Order("name ASC").
		Limit(limit).Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *restaurantGormRepository) CountByWilayaID(ctx context.Context, wilayaID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Restaurant{}).Where("wilaya_id = ?", wilayaID).Count(&n).Error
	return n, err
}

func (r *restaurantGormRepository) Update(ctx context.Context, rest *model.Restaurant) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(rest).Error)
}

func (r *restaurantGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Restaurant{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

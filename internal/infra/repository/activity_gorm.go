package repository

import (
	"context"

	"corner/internal/domain/model"
	repo "corner/internal/repository"

	"gorm.io/gorm"
)

const (
	activityDefaultLimit = 50
	activityMaxLimit     = 200
)

type activityGormRepository struct {
	db *gorm.DB
}

func NewActivityGormRepository(db *gorm.DB) repo.ActivityRepository {
	return &activityGormRepository{db: db}
}

// 追記のみ
func (r *activityGormRepository) Create(ctx context.Context, a model.Activity) error {
	return r.db.WithContext(ctx).Create(&a).Error
}

// 条件に合う件数と、その中の1ページ（id降順）
func (r *activityGormRepository) List(ctx context.Context, f repo.ActivityFilter) ([]model.Activity, int64, error) {
	matching := func(q *gorm.DB) *gorm.DB {
		if f.ActorID != nil {
			q = q.Where("actor_id = ?", *f.ActorID)
		}
		if f.Action != nil {
			q = q.Where("action = ?", *f.Action)
		}
		if f.EntityType != nil {
			q = q.Where("entity_type = ?", *f.EntityType)
		}
		if f.EntityID != nil {
			q = q.Where("entity_id = ?", *f.EntityID)
		}
		if f.CreatedFrom != nil {
			q = q.Where("created_at >= ?", *f.CreatedFrom)
		}
		if f.CreatedTo != nil {
			q = q.Where("created_at <= ?", *f.CreatedTo)
		}
		return q
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Activity{}).Scopes(matching).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := activityWindow(f.Limit, f.Offset)
	items := []model.Activity{}
	err := r.db.WithContext(ctx).Scopes(matching).
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func activityWindow(limit, offset int) (int, int) {
	if limit <= 0 || limit > activityMaxLimit {
		limit = activityDefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

package repository

import (
	"context"
	"time"

	"corner/internal/domain/model"
	repo "corner/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type revokedTokenGormRepository struct {
	db *gorm.DB
}

// GORM実装
func NewRevokedTokenGormRepository(db *gorm.DB) repo.RevokedTokenRepository {
	return &revokedTokenGormRepository{db: db}
}

// 同じjtiで2回ログアウトしても1行だけ
func (r *revokedTokenGormRepository) Create(ctx context.Context, token *model.RevokedToken) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(token).Error
}

func (r *revokedTokenGormRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.RevokedToken{}).
		Where("id = ?", tokenID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// 期限切れのjtiはトークン自体が通らないので消してよい
func (r *revokedTokenGormRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.RevokedToken{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

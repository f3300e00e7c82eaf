package repository

import (
	"context"
	"time"

	"corner/internal/domain/model"
)

// ログアウトしたトークンのdenylist
type RevokedTokenRepository interface {
	// 同じIDが既にあれば何もしない
	Create(ctx context.Context, token *model.RevokedToken) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	// 期限切れを削除して件数を返す
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

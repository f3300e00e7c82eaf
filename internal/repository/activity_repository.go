package repository

import (
	"context"
	"time"

	"corner/internal/domain/model"
)

// 操作履歴の絞り込み条件。
type ActivityFilter struct {
	ActorID     *string
	Action      *model.ActivityAction
	EntityType  *model.ActivityEntity
	EntityID    *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// 操作履歴の保存・一覧取得の約束。
type ActivityRepository interface {
	//1件追記
	Create(ctx context.Context, a model.Activity) error

	//新しい順の1ページと、条件に合う全件数
	List(ctx context.Context, filter ActivityFilter) ([]model.Activity, int64, error)
}

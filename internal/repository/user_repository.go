package repository

import (
	"context"
	"time"

	"corner/internal/domain/model"
)

// 一覧の絞り込み条件
type UserListFilter struct {
	Role   *model.Role
	Status *model.UserStatus
	Q      string
	Page   int
	Limit  int
}

// ユーザーの保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// Restaurant / Wilaya も一緒に読む。なければErrNotFound
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// その店舗のオーナー
	FindByRestaurantID(ctx context.Context, restaurantID string) (*model.User, error)
	// そのウィラヤのマネージャー
	FindByWilayaID(ctx context.Context, wilayaID string) (*model.User, error)
	List(ctx context.Context, f UserListFilter) ([]model.User, int64, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error

	// ACTIVEなSUPER_ADMINの数。postgresでは行ロックを取る
	CountActiveSuperAdmins(ctx context.Context) (int64, error)

	// 店舗/ウィラヤの割り当てを変えてtoken_versionを+1
	AssignRestaurant(ctx context.Context, userID string, restaurantID *string) error
	AssignWilaya(ctx context.Context, userID string, wilayaID *string) error

	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}

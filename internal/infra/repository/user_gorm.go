package repository

import (
	"context"
	"time"

	"corner/internal/domain/model"
	repo "corner/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) repo.UserRepository {
	return &userGormRepository{db: db}
}

func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error)
}

func (r *userGormRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Restaurant").Preload("Wilaya")
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.withRelations(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userGormRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userGormRepository) FindByRestaurantID(ctx context.Context, restaurantID string) (*model.User, error) {
	return r.findOne(ctx, "restaurant_id = ?", restaurantID)
}

func (r *userGormRepository) FindByWilayaID(ctx context.Context, wilayaID string) (*model.User, error) {
	return r.findOne(ctx, "wilaya_id = ?", wilayaID)
}

func (r *userGormRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var u model.User
	if err := r.withRelations(ctx).Where(query, arg).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userGormRepository) List(ctx context.Context, f repo.UserListFilter) ([]model.User, int64, error) {
	filtered := func(q *gorm.DB) *gorm.DB {
		if f.Role != nil {
			q = q.Where("role = ?", *f.Role)
		}
		if f.Status != nil {
			q = q.Where("status = ?", *f.Status)
		}
		if f.Q != "" {
			p := likePattern(f.Q)
			q = q.Where("LOWER(username) LIKE ? OR LOWER(name) LIKE ? OR LOWER(email) LIKE ?", p, p, p)
		}
		return q
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Scopes(filtered).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := pageWindow(f.Page, f.Limit)

	var users []model.User
	err := r.withRelations(ctx).Scopes(filtered).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ユーザーを更新。関連（Restaurant/Wilaya）は触らない
func (r *userGormRepository) Update(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error)
}

func (r *userGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *userGormRepository) CountActiveSuperAdmins(ctx context.Context) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("role = ? AND status = ?", model.RoleSuperAdmin, model.UserStatusActive)

	// postgresは集計にFOR UPDATEを付けられないので行を取って数える
	if r.db.Dialector.Name() == "postgres" {
		var ids []string
		if err := q.Clauses(clause.Locking{Strength: "UPDATE"}).Pluck("id", &ids).Error; err != nil {
			return 0, err
		}
		return int64(len(ids)), nil
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *userGormRepository) AssignRestaurant(ctx context.Context, userID string, restaurantID *string) error {
	return r.assign(ctx, userID, "restaurant_id", restaurantID)
}

func (r *userGormRepository) AssignWilaya(ctx context.Context, userID string, wilayaID *string) error {
	return r.assign(ctx, userID, "wilaya_id", wilayaID)
}

func (r *userGormRepository) assign(ctx context.Context, userID string, column string, value *string) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			column:          value,
			"token_version": gorm.Expr("token_version + ?", 1),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *userGormRepository) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_login_at", at).Error
}

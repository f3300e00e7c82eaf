package repository

import (
	"context"

	repo "corner/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users       repo.UserRepository
	restaurants repo.RestaurantRepository
	wilayas     repo.WilayaRepository
	activities  repo.ActivityRepository
}

func (r *txReposGorm) Users() repo.UserRepository             { return r.users }
func (r *txReposGorm) Restaurants() repo.RestaurantRepository { return r.restaurants }
func (r *txReposGorm) Wilayas() repo.WilayaRepository         { return r.wilayas }
func (r *txReposGorm) Activities() repo.ActivityRepository    { return r.activities }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:       NewUserGormRepository(tx),
			restaurants: NewRestaurantGormRepository(tx),
			wilayas:     NewWilayaGormRepository(tx),
			activities:  NewActivityGormRepository(tx),
		}
		return fn(r)
	})
}

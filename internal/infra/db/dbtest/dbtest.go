// Package dbtest はテスト用のインメモリsqliteを用意する。
package dbtest

import (
	"context"
	"strings"
	"testing"

	"corner/internal/infra/db"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// マイグレーション済みのDB。テストごとに別のDBになる
func New(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + "_" + uuid.NewString()
	gdb, err := db.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// 1本にしてトランザクション中の読み書きを直列にする
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// 速いbcryptで初期データを入れる
func Seed(t *testing.T, gdb *gorm.DB, hasher db.PasswordHasher) {
	t.Helper()
	if err := db.Seed(context.Background(), gdb, hasher, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

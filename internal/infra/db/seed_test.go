package db_test

import (
	"context"
	"testing"

	"corner/internal/domain/model"
	"corner/internal/infra/db"
	"corner/internal/infra/db/dbtest"
	"corner/internal/infra/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeed_IsIdempotent(t *testing.T) {
	gdb := dbtest.New(t)
	hasher := password.NewBcryptHasher(bcrypt.MinCost)
	ctx := context.Background()

	require.NoError(t, db.Seed(ctx, gdb, hasher, nil))
	require.NoError(t, db.Seed(ctx, gdb, hasher, nil))

	var wilayas int64
	require.NoError(t, gdb.Model(&model.Wilaya{}).Count(&wilayas).Error)
	assert.Equal(t, int64(58), wilayas)

	var admins []model.User
	require.NoError(t, gdb.Where("role = ?", model.RoleSuperAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, db.SeedSuperAdminUsername, admins[0].Username)
	assert.Equal(t, model.UserStatusActive, admins[0].Status)
	assert.NoError(t, password.NewBcryptVerifier().Verify(admins[0].PasswordHash, db.SeedSuperAdminPassword))
}

func TestSeed_KeepsExistingAdminPassword(t *testing.T) {
	gdb := dbtest.New(t)
	hasher := password.NewBcryptHasher(bcrypt.MinCost)
	ctx := context.Background()
	require.NoError(t, db.Seed(ctx, gdb, hasher, nil))

	newHash, err := hasher.Hash("changed-password")
	require.NoError(t, err)
	require.NoError(t, gdb.Model(&model.User{}).
		Where("username = ?", db.SeedSuperAdminUsername).
		Update("password_hash", newHash).Error)

	require.NoError(t, db.Seed(ctx, gdb, hasher, nil))

	var admin model.User
	require.NoError(t, gdb.Where("username = ?", db.SeedSuperAdminUsername).First(&admin).Error)
	assert.NoError(t, password.NewBcryptVerifier().Verify(admin.PasswordHash, "changed-password"))
}

package db

import (
	"context"

	"corner/internal/domain/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	SeedSuperAdminUsername = "superadmin1"
	SeedSuperAdminPassword = "admin123"
)

// 平文からbcryptハッシュへ
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 58ウィラヤ（code順）
var wilayaNames = []string{
	"Adrar", "Chlef", "Laghouat", "Oum El Bouaghi", "Batna", "Béjaïa", "Biskra", "Béchar",
	"Blida", "Bouira", "Tamanrasset", "Tébessa", "Tlemcen", "Tiaret", "Tizi Ouzou", "Alger",
	"Djelfa", "Jijel", "Sétif", "Saïda", "Skikda", "Sidi Bel Abbès", "Annaba", "Guelma",
	"Constantine", "Médéa", "Mostaganem", "M'Sila", "Mascara", "Ouargla", "Oran", "El Bayadh",
	"Illizi", "Bordj Bou Arréridj", "Boumerdès", "El Tarf", "Tindouf", "Tissemsilt", "El Oued",
	"Khenchela", "Souk Ahras", "Tipaza", "Mila", "Aïn Defla", "Naâma", "Aïn Témouchent",
	"Ghardaïa", "Relizane", "Timimoun", "Bordj Badji Mokhtar", "Ouled Djellal", "Béni Abbès",
	"In Salah", "In Guezzam", "Touggourt", "Djanet", "El M'Ghair", "El Meniaa",
}

// Seed は何度実行しても同じ結果になる（既存の行は触らない）
func Seed(ctx context.Context, gdb *gorm.DB, hasher PasswordHasher, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	wilayas := make([]model.Wilaya, 0, len(wilayaNames))
	for i, name := range wilayaNames {
		wilayas = append(wilayas, model.Wilaya{
			ID:   uuid.NewString(),
			Code: i + 1,
			Name: name,
		})
	}
	res := gdb.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Omit(clause.Associations).
		Create(&wilayas)
	if res.Error != nil {
		return res.Error
	}
	log.Info("seeded wilayas", zap.Int64("inserted", res.RowsAffected))

	hash, err := hasher.Hash(SeedSuperAdminPassword)
	if err != nil {
		return err
	}
	admin := model.User{
		ID:           uuid.NewString(),
		Username:     SeedSuperAdminUsername,
		PasswordHash: hash,
		Name:         "Super Admin",
		Role:         model.RoleSuperAdmin,
		Status:       model.UserStatusActive,
	}
	res = gdb.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
		Omit(clause.Associations).
		Create(&admin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Info("seeded super admin", zap.String("username", SeedSuperAdminUsername))
	}
	return nil
}

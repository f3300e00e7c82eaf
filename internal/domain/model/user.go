package model

import "time"

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleManager    Role = "MANAGER"
	RoleOwner      Role = "OWNER"
)

// 既知のロールか
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleManager, RoleOwner:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// 管理画面のユーザー。
// RestaurantIDはOWNERのときだけ、WilayaIDはMANAGERのときだけ入る。
// どちらもuniqueなので「1店舗1オーナー」「1ウィラヤ1マネージャー」はDBが保証する。
type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Username     string     `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        *string    `gorm:"size:255;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Name         string     `gorm:"size:255" json:"name"`
	Role         Role       `gorm:"type:varchar(20);not null;index" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	RestaurantID *string     `gorm:"size:36;uniqueIndex" json:"restaurantId"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`

	WilayaID *string `gorm:"size:36;uniqueIndex" json:"wilayaId"`
	Wilaya   *Wilaya `gorm:"foreignKey:WilayaID" json:"wilaya,omitempty"`

	//ロール変更・パスワード再設定・停止で+1（古いセッションを無効にする）
	TokenVersion int `gorm:"not null;default:0" json:"-"`

	LastLoginAt *time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// ACTIVEなSUPER_ADMINか（最後の1人チェックの対象）
func (u *User) IsActiveSuperAdmin() bool {
	return u.Role == RoleSuperAdmin && u.IsActive()
}

package model

import "time"

// ログアウト済みセッションのjti。期限が来たら消してよい。
type RevokedToken struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" json:"userId"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"`
	RevokedAt time.Time `gorm:"not null" json:"revokedAt"`
}

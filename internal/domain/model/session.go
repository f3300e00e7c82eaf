package model

import "time"

// セッショントークンに載せる中身。発行時点のスナップショット。
type SessionClaims struct {
	UserID       string  `json:"userId"`
	Username     string  `json:"username"`
	Role         Role    `json:"role"`
	RestaurantID *string `json:"restaurantId,omitempty"`
	WilayaID     *string `json:"wilayaId,omitempty"`
	TokenVersion int     `json:"tv"`
}

// 検証済みトークン
type Session struct {
	Claims    SessionClaims
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ユーザーの現在の状態からclaimsを作る
func ClaimsFor(u *User) SessionClaims {
	return SessionClaims{
		UserID:       u.ID,
		Username:     u.Username,
		Role:         u.Role,
		RestaurantID: u.RestaurantID,
		WilayaID:     u.WilayaID,
		TokenVersion: u.TokenVersion,
	}
}

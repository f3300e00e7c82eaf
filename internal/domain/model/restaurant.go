package model

import "time"

// 店舗。オーナーは users.restaurant_id 側で持つ。
type Restaurant struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Slug        string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Phone       string `gorm:"size:30" json:"phone"`
	Address     string `gorm:"size:255" json:"address"`

	WilayaID string  `gorm:"size:36;not null;index" json:"wilayaId"`
	Wilaya   *Wilaya `gorm:"foreignKey:WilayaID" json:"wilaya,omitempty"`

	Owner *User `gorm:"foreignKey:RestaurantID" json:"owner,omitempty"`

	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package model

import "time"

// 行政区（ウィラヤ）。codeで一意。
type Wilaya struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Code int    `gorm:"uniqueIndex;not null" json:"code"`
	Name string `gorm:"size:100;not null" json:"name"`

	Manager *User `gorm:"foreignKey:WilayaID" json:"manager,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

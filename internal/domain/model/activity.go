package model

import "time"

type ActivityAction string

const (
	ActivityLogin ActivityAction = "LOGIN"

	ActivityUserCreated       ActivityAction = "USER_CREATED"
	ActivityUserUpdated       ActivityAction = "USER_UPDATED"
	ActivityUserRoleChanged   ActivityAction = "USER_ROLE_CHANGED"
	ActivityUserPasswordReset ActivityAction = "USER_PASSWORD_RESET"
	ActivityUserForcedLogout  ActivityAction = "USER_FORCED_LOGOUT"
	ActivityUserDeleted       ActivityAction = "USER_DELETED"

	ActivityRestaurantCreated       ActivityAction = "RESTAURANT_CREATED"
	ActivityRestaurantUpdated       ActivityAction = "RESTAURANT_UPDATED"
	ActivityRestaurantDeleted       ActivityAction = "RESTAURANT_DELETED"
	ActivityRestaurantOwnerAssigned ActivityAction = "RESTAURANT_OWNER_ASSIGNED"

	ActivityWilayaCreated         ActivityAction = "WILAYA_CREATED"
	ActivityWilayaUpdated         ActivityAction = "WILAYA_UPDATED"
	ActivityWilayaDeleted         ActivityAction = "WILAYA_DELETED"
	ActivityWilayaManagerAssigned ActivityAction = "WILAYA_MANAGER_ASSIGNED"
)

// 何に対する操作か
type ActivityEntity string

const (
	ActivityEntityUser       ActivityEntity = "user"
	ActivityEntityRestaurant ActivityEntity = "restaurant"
	ActivityEntityWilaya     ActivityEntity = "wilaya"
)

// 管理操作の履歴。追記のみで更新しない。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type Activity struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザー
	ActorID string `gorm:"size:36;not null;index" json:"actorId"`

	Action     ActivityAction `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityType ActivityEntity `gorm:"type:varchar(50);not null;index" json:"entityType"`
	EntityID   string         `gorm:"size:36;not null;index" json:"entityId"`

	//JSON文字列で保存する
	BeforeJSON string `gorm:"type:text" json:"before,omitempty"`
	AfterJSON  string `gorm:"type:text" json:"after,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

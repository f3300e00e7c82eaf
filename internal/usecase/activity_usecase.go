package usecase

import (
	"context"
	"encoding/json"
	"time"

	"corner/internal/domain/model"
	repo "corner/internal/repository"
)

// 監査ログに残すユーザーの項目（パスワードは残さない）
type userSnapshot struct {
	ID           string           `json:"id"`
	Username     string           `json:"username"`
	Email        *string          `json:"email,omitempty"`
	Name         string           `json:"name"`
	Role         model.Role       `json:"role"`
	Status       model.UserStatus `json:"status"`
	RestaurantID *string          `json:"restaurantId,omitempty"`
	WilayaID     *string          `json:"wilayaId,omitempty"`
}

func snapshotUser(u *model.User) *userSnapshot {
	if u == nil {
		return nil
	}
	return &userSnapshot{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		Status:       u.Status,
		RestaurantID: u.RestaurantID,
		WilayaID:     u.WilayaID,
	}
}

type restaurantSnapshot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	WilayaID    string `json:"wilayaId"`
	IsActive    bool   `json:"isActive"`
}

func snapshotRestaurant(r *model.Restaurant) *restaurantSnapshot {
	if r == nil {
		return nil
	}
	return &restaurantSnapshot{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Phone:       r.Phone,
		Address:     r.Address,
		WilayaID:    r.WilayaID,
		IsActive:    r.IsActive,
	}
}

type wilayaSnapshot struct {
	ID   string `json:"id"`
	Code int    `json:"code"`
	Name string `json:"name"`
}

func snapshotWilaya(w *model.Wilaya) *wilayaSnapshot {
	if w == nil {
		return nil
	}
	return &wilayaSnapshot{ID: w.ID, Code: w.Code, Name: w.Name}
}

func toJSON(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	if string(b) == "null" {
		return ""
	}
	return string(b)
}

// 監査ログを作成
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す
func recordActivity(
	ctx context.Context,
	activities repo.ActivityRepository,
	now time.Time,
	actorID string,
	action model.ActivityAction,
	entity model.ActivityEntity,
	entityID string,
	before, after interface{},
) error {
	return activities.Create(ctx, model.Activity{
		ActorID:    actorID,
		Action:     action,
		EntityType: entity,
		EntityID:   entityID,
		BeforeJSON: toJSON(before),
		AfterJSON:  toJSON(after),
		CreatedAt:  now,
	})
}

type ListActivitiesInput struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

type ActivityPage struct {
	Items  []model.Activity `json:"items"`
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type ActivityUsecase struct {
	activities repo.ActivityRepository
}

func NewActivityUsecase(activities repo.ActivityRepository) *ActivityUsecase {
	return &ActivityUsecase{activities: activities}
}

// 新しい順
func (u *ActivityUsecase) List(ctx context.Context, in ListActivitiesInput) (*ActivityPage, error) {
	f := repo.ActivityFilter{
		CreatedFrom: in.From,
		CreatedTo:   in.To,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if in.ActorID != "" {
		f.ActorID = &in.ActorID
	}
	if in.Action != "" {
		a := model.ActivityAction(in.Action)
		f.Action = &a
	}
	if in.EntityType != "" {
		e := model.ActivityEntity(in.EntityType)
		switch e {
		case model.ActivityEntityUser, model.ActivityEntityRestaurant, model.ActivityEntityWilaya:
		default:
			return nil, ValidationError("Invalid entity type", map[string]string{"entityType": "must be one of user restaurant wilaya"})
		}
		f.EntityType = &e
	}
	if in.EntityID != "" {
		f.EntityID = &in.EntityID
	}
	if in.From != nil && in.To != nil && in.From.After(*in.To) {
		return nil, ValidationError("Invalid date range", map[string]string{"from": "must be before to"})
	}

	items, total, err := u.activities.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ActivityPage{Items: items, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

package usecase

import (
	"context"
	"strings"

	"corner/internal/domain/model"
	"corner/internal/domain/slug"
	repo "corner/internal/repository"

	"go.uber.org/zap"
)

type ListRestaurantsInput struct {
	WilayaID string
	Q        string
	Page     int
	Limit    int
}

type RestaurantPage struct {
	Items []model.Restaurant `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type CreateRestaurantInput struct {
	Name        string
	Description string
	Phone       string
	Address     string
	WilayaID    string
	OwnerID     *string
	IsActive    *bool
}

// nilの項目は変更しない
type UpdateRestaurantInput struct {
	Name        *string
	Description *string
	Phone       *string
	Address     *string
	WilayaID    *string
	IsActive    *bool
}

// オーナーが自分で変えられる項目
type OwnerUpdateRestaurantInput struct {
	Description *string
	Phone       *string
	Address     *string
}

type RestaurantUsecase struct {
	restaurants repo.RestaurantRepository
	tx          repo.TransactionManager
	idGen       IDGenerator
	clock       Clock
	logger      *zap.Logger
}

// DI
func NewRestaurantUsecase(
	restaurants repo.RestaurantRepository,
	tx repo.TransactionManager,
	idGen IDGenerator,
	clock Clock,
	logger *zap.Logger,
) *RestaurantUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RestaurantUsecase{restaurants: restaurants, tx: tx, idGen: idGen, clock: clock, logger: logger}
}

// MANAGERは自分のウィラヤの店舗だけ
func (u *RestaurantUsecase) List(ctx context.Context, actor *model.User, in ListRestaurantsInput) (*RestaurantPage, error) {
	f := repo.RestaurantListFilter{Q: strings.TrimSpace(in.Q), Page: in.Page, Limit: in.Limit}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if in.WilayaID != "" {
		f.WilayaID = &in.WilayaID
	}

	if actor.Role == model.RoleManager {
		if actor.WilayaID == nil {
			return &RestaurantPage{Items: []model.Restaurant{}, Page: f.Page, Limit: f.Limit}, nil
		}
		if f.WilayaID != nil && *f.WilayaID != *actor.WilayaID {
			return nil, ErrForbidden
		}
		f.WilayaID = actor.WilayaID
	}

	items, total, err := u.restaurants.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &RestaurantPage{Items: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (u *RestaurantUsecase) Get(ctx context.Context, actor *model.User, id string) (*model.Restaurant, error) {
	rest, err := u.restaurants.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, msgRestaurantNotFound)
	}
	if err := canSee(actor, rest); err != nil {
		return nil, err
	}
	return rest, nil
}

// 見える店舗か
func canSee(actor *model.User, rest *model.Restaurant) error {
	switch actor.Role {
	case model.RoleSuperAdmin:
		return nil
	case model.RoleManager:
		if actor.WilayaID != nil && *actor.WilayaID == rest.WilayaID {
			return nil
		}
	case model.RoleOwner:
		if actor.RestaurantID != nil && *actor.RestaurantID == rest.ID {
			return nil
		}
	}
	return ErrForbidden
}

func (u *RestaurantUsecase) Create(ctx context.Context, actor *model.User, in CreateRestaurantInput) (*model.Restaurant, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ValidationError("Name is required", map[string]string{"name": "is required"})
	}
	if strings.TrimSpace(in.WilayaID) == "" {
		return nil, ValidationError("Wilaya is required", map[string]string{"wilayaId": "is required"})
	}
	ownerID := trimmedOrNil(in.OwnerID)

	rest := &model.Restaurant{
		ID:          u.idGen.NewID(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
		WilayaID:    strings.TrimSpace(in.WilayaID),
		IsActive:    true,
	}
	if in.IsActive != nil {
		rest.IsActive = *in.IsActive
	}

	var created *model.Restaurant
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Wilayas().FindByID(ctx, rest.WilayaID); err != nil {
			return fromRepo(err, msgWilayaNotFound)
		}

		s, err := uniqueSlug(ctx, r.Restaurants(), name, "")
		if err != nil {
			return err
		}
		rest.Slug = s

		if err := r.Restaurants().Create(ctx, rest); err != nil {
			return fromRepo(err, msgRestaurantNotFound)
		}
		if ownerID != nil {
			if err := assignOwner(ctx, r, rest.ID, *ownerID); err != nil {
				return err
			}
		}

		created, err = r.Restaurants().FindByID(ctx, rest.ID)
		if err != nil {
			return err
		}
		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityRestaurantCreated, model.ActivityEntityRestaurant, rest.ID, nil, snapshotRestaurant(created))
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("restaurant created", zap.String("actor_id", actor.ID), zap.String("restaurant_id", created.ID), zap.String("slug", created.Slug))
	return created, nil
}

func (u *RestaurantUsecase) Update(ctx context.Context, actor *model.User, id string, in UpdateRestaurantInput) (*model.Restaurant, error) {
	var updated *model.Restaurant
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		rest, err := r.Restaurants().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, msgRestaurantNotFound)
		}
		before := snapshotRestaurant(rest)

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return ValidationError("Name is required", map[string]string{"name": "is required"})
			}
			if name != rest.Name {
				//名前が変わったらslugも作り直す
				s, err := uniqueSlug(ctx, r.Restaurants(), name, rest.ID)
				if err != nil {
					return err
				}
				rest.Name = name
				rest.Slug = s
			}
		}
		if in.WilayaID != nil && *in.WilayaID != rest.WilayaID {
			if _, err := r.Wilayas().FindByID(ctx, *in.WilayaID); err != nil {
				return fromRepo(err, msgWilayaNotFound)
			}
			rest.WilayaID = *in.WilayaID
		}
		applyContact(rest, in.Description, in.Phone, in.Address)
		if in.IsActive != nil {
			rest.IsActive = *in.IsActive
		}

		if err := r.Restaurants().Update(ctx, rest); err != nil {
			return fromRepo(err, msgRestaurantNotFound)
		}
		updated, err = r.Restaurants().FindByID(ctx, rest.ID)
		if err != nil {
			return err
		}
		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityRestaurantUpdated, model.ActivityEntityRestaurant, rest.ID, before, snapshotRestaurant(updated))
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// 店舗にオーナーを割り当てる
func (u *RestaurantUsecase) AssignOwner(ctx context.Context, actor *model.User, restaurantID string, ownerID string) (*model.Restaurant, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ValidationError("Owner is required", map[string]string{"ownerId": "is required"})
	}

	var updated *model.Restaurant
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := assignOwner(ctx, r, restaurantID, ownerID); err != nil {
			return err
		}
		var err error
		updated, err = r.Restaurants().FindByID(ctx, restaurantID)
		if err != nil {
			return err
		}
		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityRestaurantOwnerAssigned, model.ActivityEntityRestaurant, restaurantID,
			nil, map[string]string{"ownerId": ownerID})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// オーナー割り当ての本体（tx内）
func assignOwner(ctx context.Context, r repo.TxRepos, restaurantID, ownerID string) error {
	owner, err := r.Users().FindByID(ctx, ownerID)
	if err != nil {
		return fromRepo(err, msgUserNotFound)
	}
	if owner.Role != model.RoleOwner {
		return ValidationError("User is not a restaurant owner", map[string]string{"ownerId": "must reference an OWNER"})
	}
	if err := checkRestaurantOwnerFree(ctx, r, restaurantID, owner.ID); err != nil {
		return err
	}
	if owner.RestaurantID != nil {
		if *owner.RestaurantID == restaurantID {
			return nil
		}
		return ConflictError(msgOwnerAssigned)
	}
	return fromRepo(r.Users().AssignRestaurant(ctx, owner.ID, &restaurantID), msgUserNotFound)
}

// オーナーが残っている店舗は消せない
func (u *RestaurantUsecase) Delete(ctx context.Context, actor *model.User, id string) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		rest, err := r.Restaurants().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, msgRestaurantNotFound)
		}
		if rest.Owner != nil {
			return ConflictError("Restaurant still has an owner")
		}
		if err := r.Restaurants().Delete(ctx, rest.ID); err != nil {
			return fromRepo(err, msgRestaurantNotFound)
		}
		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityRestaurantDeleted, model.ActivityEntityRestaurant, rest.ID, snapshotRestaurant(rest), nil)
	})
}

// OWNERは自分の店舗。SUPER_ADMINはrestaurantIDで指定
func (u *RestaurantUsecase) OwnedRestaurant(ctx context.Context, actor *model.User, restaurantID string) (*model.Restaurant, error) {
	id, err := ownedRestaurantID(actor, restaurantID)
	if err != nil {
		return nil, err
	}
	return u.Get(ctx, actor, id)
}

func (u *RestaurantUsecase) UpdateOwned(ctx context.Context, actor *model.User, restaurantID string, in OwnerUpdateRestaurantInput) (*model.Restaurant, error) {
	id, err := ownedRestaurantID(actor, restaurantID)
	if err != nil {
		return nil, err
	}

	var updated *model.Restaurant
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		rest, err := r.Restaurants().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, msgRestaurantNotFound)
		}
		if err := canSee(actor, rest); err != nil {
			return err
		}
		before := snapshotRestaurant(rest)

		applyContact(rest, in.Description, in.Phone, in.Address)
		if err := r.Restaurants().Update(ctx, rest); err != nil {
			return fromRepo(err, msgRestaurantNotFound)
		}
		updated, err = r.Restaurants().FindByID(ctx, rest.ID)
		if err != nil {
			return err
		}
		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityRestaurantUpdated, model.ActivityEntityRestaurant, rest.ID, before, snapshotRestaurant(updated))
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func ownedRestaurantID(actor *model.User, restaurantID string) (string, error) {
	switch actor.Role {
	case model.RoleOwner:
		if actor.RestaurantID == nil {
			return "", NotFoundError("No restaurant is assigned to this account")
		}
		return *actor.RestaurantID, nil
	case model.RoleSuperAdmin:
		if strings.TrimSpace(restaurantID) == "" {
			return "", ValidationError("restaurantId is required", map[string]string{"restaurantId": "is required"})
		}
		return strings.TrimSpace(restaurantID), nil
	}
	return "", ErrForbidden
}

func applyContact(rest *model.Restaurant, description, phone, address *string) {
	if description != nil {
		rest.Description = strings.TrimSpace(*description)
	}
	if phone != nil {
		rest.Phone = strings.TrimSpace(*phone)
	}
	if address != nil {
		rest.Address = strings.TrimSpace(*address)
	}
}

// 使われていたら -2, -3 ... を付ける
func uniqueSlug(ctx context.Context, restaurants repo.RestaurantRepository, name, excludeID string) (string, error) {
	base := slug.Make(name)
	candidate := base
	for n := 2; ; n++ {
		taken, err := restaurants.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = slug.WithSuffix(base, n)
	}
}

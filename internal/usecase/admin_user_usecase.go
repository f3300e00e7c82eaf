package usecase

import (
	"context"
	"strings"

	"corner/internal/domain/model"
	repo "corner/internal/repository"

	"go.uber.org/zap"
)

type ListUsersInput struct {
	Role   string
	Status string
	Q      string
	Page   int
	Limit  int
}

type UserPage struct {
	Items []model.User `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type CreateUserInput struct {
	Username     string
	Email        *string
	Password     string
	Name         string
	Role         model.Role
	Status       model.UserStatus
	RestaurantID *string
	WilayaID     *string
}

// nilの項目は変更しない。Emailは空文字で削除
type UpdateUserInput struct {
	Username *string
	Email    *string
	Name     *string
	Status   *model.UserStatus
}

type ChangeRoleInput struct {
	Role         model.Role
	RestaurantID *string
	WilayaID     *string
}

// SUPER_ADMIN向けのユーザー管理
type AdminUserUsecase struct {
	users  repo.UserRepository
	tx     repo.TransactionManager
	hasher PasswordHasher
	idGen  IDGenerator
	clock  Clock
	logger *zap.Logger
}

// DI
func NewAdminUserUsecase(
	users repo.UserRepository,
	tx repo.TransactionManager,
	hasher PasswordHasher,
	idGen IDGenerator,
	clock Clock,
	logger *zap.Logger,
) *AdminUserUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminUserUsecase{users: users, tx: tx, hasher: hasher, idGen: idGen, clock: clock, logger: logger}
}

func (u *AdminUserUsecase) List(ctx context.Context, in ListUsersInput) (*UserPage, error) {
	f := repo.UserListFilter{Q: strings.TrimSpace(in.Q), Page: in.Page, Limit: in.Limit}
	if in.Role != "" {
		role := model.Role(in.Role)
		if !role.Valid() {
			return nil, ValidationError("Invalid role", map[string]string{"role": "must be one of SUPER_ADMIN MANAGER OWNER"})
		}
		f.Role = &role
	}
	if in.Status != "" {
		status := model.UserStatus(in.Status)
		if !status.Valid() {
			return nil, ValidationError("Invalid status", map[string]string{"status": "must be one of ACTIVE INACTIVE"})
		}
		f.Status = &status
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	items, total, err := u.users.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &UserPage{Items: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (u *AdminUserUsecase) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, msgUserNotFound)
	}
	return user, nil
}

func (u *AdminUserUsecase) Create(ctx context.Context, actor *model.User, in CreateUserInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, ValidationError("Username is required", map[string]string{"username": "is required"})
	}
	if in.Status == "" {
		in.Status = model.UserStatusActive
	}
	if !in.Status.Valid() {
		return nil, ValidationError("Invalid status", map[string]string{"status": "must be one of ACTIVE INACTIVE"})
	}
	restaurantID, wilayaID, err := normalizeAssignment(in.Role, in.RestaurantID, in.WilayaID)
	if err != nil {
		return nil, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           u.idGen.NewID(),
		Username:     username,
		Email:        trimmedOrNil(in.Email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		Status:       in.Status,
		RestaurantID: restaurantID,
		WilayaID:     wilayaID,
	}

	var created *model.User
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := ensureUsernameFree(ctx, r, user.Username, ""); err != nil {
			return err
		}
		if err := ensureEmailFree(ctx, r, user.Email, ""); err != nil {
			return err
		}
		if user.RestaurantID != nil {
			if err := checkRestaurantOwnerFree(ctx, r, *user.RestaurantID, user.ID); err != nil {
				return err
			}
		}
		if user.WilayaID != nil {
			if err := checkWilayaManagerFree(ctx, r, *user.WilayaID, user.ID); err != nil {
				return err
			}
		}

		if err := r.Users().Create(ctx, user); err != nil {
			return fromRepo(err, msgUserNotFound)
		}

		loaded, err := r.Users().FindByID(ctx, user.ID)
		if err != nil {
			return err
		}
		created = loaded

		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityUserCreated, model.ActivityEntityUser, user.ID, nil, snapshotUser(loaded))
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("user created", zap.String("actor_id", actor.ID), zap.String("user_id", created.ID), zap.String("role", string(created.Role)))
	return created, nil
}

func (u *AdminUserUsecase) Update(ctx context.Context, actor *model.User, id string, in UpdateUserInput) (*model.User, error) {
	var updated *model.User
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, msgUserNotFound)
		}
		before := snapshotUser(user)

		if in.Username != nil {
			username := strings.TrimSpace(*in.Username)
			if username == "" {
				return ValidationError("Username is required", map[string]string{"username": "is required"})
			}
			if username != user.Username {
				if err := ensureUsernameFree(ctx, r, username, user.ID); err != nil {
					return err
				}
				user.Username = username
			}
		}
		if in.Email != nil {
			email := trimmedOrNil(in.Email)
			if !sameRef(email, user.Email) {
				if err := ensureEmailFree(ctx, r, email, user.ID); err != nil {
					return err
				}
				user.Email = email
			}
		}
		if in.Name != nil {
			user.Name = strings.TrimSpace(*in.Name)
		}
		if in.Status != nil && *in.Status != user.Status {
			if !in.Status.Valid() {
				return ValidationError("Invalid status", map[string]string{"status": "must be one of ACTIVE INACTIVE"})
			}
			if *in.Status == model.UserStatusInactive {
				if user.ID == actor.ID {
					return ValidationError(msgSelfDeactivate, nil)
				}
				if err := ensureNotLastSuperAdmin(ctx, r, user); err != nil {
					return err
				}
				//停止したら発行済みのトークンも無効
				user.TokenVersion++
			}
			user.Status = *in.Status
		}

		if err := r.Users().Update(ctx, user); err != nil {
			return fromRepo(err, msgUserNotFound)
		}
		updated, err = r.Users().FindByID(ctx, user.ID)
		if err != nil {
			return err
		}

		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityUserUpdated, model.ActivityEntityUser, user.ID, before, snapshotUser(updated))
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ロールと割り当てを変える。古いトークンは無効になる
func (u *AdminUserUsecase) ChangeRole(ctx context.Context, actor *model.User, id string, in ChangeRoleInput) (*model.User, error) {
	restaurantID, wilayaID, err := normalizeAssignment(in.Role, in.RestaurantID, in.WilayaID)
	if err != nil {
		return nil, err
	}

	var updated *model.User
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, msgUserNotFound)
		}
		before := snapshotUser(user)

		if in.Role != model.RoleSuperAdmin {
			if err := ensureNotLastSuperAdmin(ctx, r, user); err != nil {
				return err
			}
		}
		if restaurantID != nil {
			if err := checkRestaurantOwnerFree(ctx, r, *restaurantID, user.ID); err != nil {
				return err
			}
		}
		if wilayaID != nil {
			if err := checkWilayaManagerFree(ctx, r, *wilayaID, user.ID); err != nil {
				return err
			}
		}

		user.Role = in.Role
		user.RestaurantID = restaurantID
		user.WilayaID = wilayaID
		user.TokenVersion++
		if err := r.Users().Update(ctx, user); err != nil {
			return fromRepo(err, msgUserNotFound)
		}

		updated, err = r.Users().FindByID(ctx, user.ID)
		if err != nil {
			return err
		}
		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityUserRoleChanged, model.ActivityEntityUser, user.ID, before, snapshotUser(updated))
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("user role changed", zap.String("actor_id", actor.ID), zap.String("user_id", id), zap.String("role", string(in.Role)))
	return updated, nil
}

// 新しいパスワードを設定して、発行済みトークンを無効にする
func (u *AdminUserUsecase) ResetPassword(ctx context.Context, actor *model.User, id string, newPassword string) error {
	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, msgUserNotFound)
		}

		user.PasswordHash = hash
		user.TokenVersion++
		if err := r.Users().Update(ctx, user); err != nil {
			return fromRepo(err, msgUserNotFound)
		}

		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityUserPasswordReset, model.ActivityEntityUser, user.ID, nil, nil)
	})
}

// token_versionを+1して、そのユーザーの全セッションを切る
func (u *AdminUserUsecase) ForceLogout(ctx context.Context, actor *model.User, id string) (*model.User, error) {
	var updated *model.User
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, msgUserNotFound)
		}
		user.TokenVersion++
		if err := r.Users().Update(ctx, user); err != nil {
			return fromRepo(err, msgUserNotFound)
		}
		updated = user
		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityUserForcedLogout, model.ActivityEntityUser, user.ID, nil, nil)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *AdminUserUsecase) Delete(ctx context.Context, actor *model.User, id string) error {
	if actor.ID == id {
		return ValidationError(msgSelfDelete, nil)
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, msgUserNotFound)
		}
		if err := ensureNotLastSuperAdmin(ctx, r, user); err != nil {
			return err
		}

		if err := r.Users().Delete(ctx, user.ID); err != nil {
			return fromRepo(err, msgUserNotFound)
		}
		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityUserDeleted, model.ActivityEntityUser, user.ID, snapshotUser(user), nil)
	})
}

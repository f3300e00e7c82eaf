package usecase

import (
	"context"
	"errors"
	"strings"

	"corner/internal/domain/model"
	repo "corner/internal/repository"
)

const (
	msgRestaurantHasOwner   = "Restaurant already has an owner"
	msgWilayaHasManager     = "Wilaya already has a manager"
	msgOwnerAssigned        = "Owner is already assigned to another restaurant"
	msgManagerAssigned      = "Manager is already assigned to another wilaya"
	msgLastSuperAdmin       = "At least one active super admin is required"
	msgSelfDelete           = "You cannot delete your own account"
	msgSelfDeactivate       = "You cannot deactivate your own account"
	msgUsernameTaken        = "Username already exists"
	msgEmailTaken           = "Email already exists"
	msgWilayaCodeTaken      = "Wilaya code already exists"
	msgOwnerNeedsRestaurant = "Restaurant owners must be assigned to a restaurant."
	msgManagerNeedsWilaya   = "Managers must be assigned to a wilaya."

	msgUserNotFound       = "User not found"
	msgRestaurantNotFound = "Restaurant not found"
	msgWilayaNotFound     = "Wilaya not found"
)

// 割り当てルールのチェック。必ずWithinTxの中で、書き込みと同じtxで呼ぶ。
// DBのunique制約が最後の砦で、ここは分かりやすいメッセージを返すためのもの。

// ロールに必要な割り当てがあるか。不要な割り当ては落とす
func normalizeAssignment(role model.Role, restaurantID, wilayaID *string) (*string, *string, error) {
	restaurantID = trimmedOrNil(restaurantID)
	wilayaID = trimmedOrNil(wilayaID)

	switch role {
	case model.RoleOwner:
		if restaurantID == nil {
			return nil, nil, ValidationError(msgOwnerNeedsRestaurant, map[string]string{"restaurantId": "is required for OWNER"})
		}
		return restaurantID, nil, nil
	case model.RoleManager:
		if wilayaID == nil {
			return nil, nil, ValidationError(msgManagerNeedsWilaya, map[string]string{"wilayaId": "is required for MANAGER"})
		}
		return nil, wilayaID, nil
	case model.RoleSuperAdmin:
		return nil, nil, nil
	}
	return nil, nil, ValidationError("Invalid role", map[string]string{"role": "must be one of SUPER_ADMIN MANAGER OWNER"})
}

// 店舗が存在して、userID以外のオーナーがいないこと
func checkRestaurantOwnerFree(ctx context.Context, r repo.TxRepos, restaurantID, userID string) error {
	if _, err := r.Restaurants().FindByID(ctx, restaurantID); err != nil {
		return fromRepo(err, msgRestaurantNotFound)
	}
	owner, err := r.Users().FindByRestaurantID(ctx, restaurantID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if owner.ID != userID {
		return ConflictError(msgRestaurantHasOwner)
	}
	return nil
}

// ウィラヤが存在して、userID以外のマネージャーがいないこと
func checkWilayaManagerFree(ctx context.Context, r repo.TxRepos, wilayaID, userID string) error {
	if _, err := r.Wilayas().FindByID(ctx, wilayaID); err != nil {
		return fromRepo(err, msgWilayaNotFound)
	}
	manager, err := r.Users().FindByWilayaID(ctx, wilayaID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if manager.ID != userID {
		return ConflictError(msgWilayaHasManager)
	}
	return nil
}

// ACTIVEなSUPER_ADMINが対象の1人だけなら外せない
func ensureNotLastSuperAdmin(ctx context.Context, r repo.TxRepos, target *model.User) error {
	if !target.IsActiveSuperAdmin() {
		return nil
	}
	n, err := r.Users().CountActiveSuperAdmins(ctx)
	if err != nil {
		return err
	}
	if n <= 1 {
		return ConflictError(msgLastSuperAdmin)
	}
	return nil
}

// excludeIDのユーザーは除いてusernameが空いているか
func ensureUsernameFree(ctx context.Context, r repo.TxRepos, username, excludeID string) error {
	u, err := r.Users().FindByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if u.ID != excludeID {
		return ConflictError(msgUsernameTaken)
	}
	return nil
}

func ensureEmailFree(ctx context.Context, r repo.TxRepos, email *string, excludeID string) error {
	if email == nil {
		return nil
	}
	u, err := r.Users().FindByEmail(ctx, *email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if u.ID != excludeID {
		return ConflictError(msgEmailTaken)
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

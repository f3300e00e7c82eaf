package usecase

import (
	"context"
	"strings"

	"corner/internal/domain/model"
	repo "corner/internal/repository"
)

type CreateWilayaInput struct {
	Code int
	Name string
}

type UpdateWilayaInput struct {
	Code *int
	Name *string
}

type WilayaUsecase struct {
	wilayas repo.WilayaRepository
	tx      repo.TransactionManager
	idGen   IDGenerator
	clock   Clock
}

func NewWilayaUsecase(wilayas repo.WilayaRepository, tx repo.TransactionManager, idGen IDGenerator, clock Clock) *WilayaUsecase {
	return &WilayaUsecase{wilayas: wilayas, tx: tx, idGen: idGen, clock: clock}
}

func (u *WilayaUsecase) List(ctx context.Context) ([]model.Wilaya, error) {
	return u.wilayas.List(ctx)
}

func (u *WilayaUsecase) Get(ctx context.Context, id string) (*model.Wilaya, error) {
	w, err := u.wilayas.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, msgWilayaNotFound)
	}
	return w, nil
}

func (u *WilayaUsecase) Create(ctx context.Context, actor *model.User, in CreateWilayaInput) (*model.Wilaya, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ValidationError("Name is required", map[string]string{"name": "is required"})
	}
	if in.Code <= 0 {
		return nil, ValidationError("Code must be positive", map[string]string{"code": "must be greater than 0"})
	}

	w := &model.Wilaya{ID: u.idGen.NewID(), Code: in.Code, Name: name}
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := ensureCodeFree(ctx, r, w.Code, ""); err != nil {
			return err
		}
		if err := r.Wilayas().Create(ctx, w); err != nil {
			return fromRepo(err, msgWilayaNotFound)
		}
		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityWilayaCreated, model.ActivityEntityWilaya, w.ID, nil, snapshotWilaya(w))
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (u *WilayaUsecase) Update(ctx context.Context, actor *model.User, id string, in UpdateWilayaInput) (*model.Wilaya, error) {
	var updated *model.Wilaya
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		w, err := r.Wilayas().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, msgWilayaNotFound)
		}
		before := snapshotWilaya(w)

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return ValidationError("Name is required", map[string]string{"name": "is required"})
			}
			w.Name = name
		}
		if in.Code != nil && *in.Code != w.Code {
			if *in.Code <= 0 {
				return ValidationError("Code must be positive", map[string]string{"code": "must be greater than 0"})
			}
			if err := ensureCodeFree(ctx, r, *in.Code, w.ID); err != nil {
				return err
			}
			w.Code = *in.Code
		}

		if err := r.Wilayas().Update(ctx, w); err != nil {
			return fromRepo(err, msgWilayaNotFound)
		}
		updated = w
		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityWilayaUpdated, model.ActivityEntityWilaya, w.ID, before, snapshotWilaya(w))
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ウィラヤにマネージャーを割り当てる
func (u *WilayaUsecase) AssignManager(ctx context.Context, actor *model.User, wilayaID string, managerID string) (*model.Wilaya, error) {
	managerID = strings.TrimSpace(managerID)
	if managerID == "" {
		return nil, ValidationError("Manager is required", map[string]string{"managerId": "is required"})
	}

	var updated *model.Wilaya
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		manager, err := r.Users().FindByID(ctx, managerID)
		if err != nil {
			return fromRepo(err, msgUserNotFound)
		}
		if manager.Role != model.RoleManager {
			return ValidationError("User is not a manager", map[string]string{"managerId": "must reference a MANAGER"})
		}
		if err := checkWilayaManagerFree(ctx, r, wilayaID, manager.ID); err != nil {
			return err
		}
		if manager.WilayaID != nil && *manager.WilayaID != wilayaID {
			return ConflictError(msgManagerAssigned)
		}
		if manager.WilayaID == nil {
			if err := r.Users().AssignWilaya(ctx, manager.ID, &wilayaID); err != nil {
				return fromRepo(err, msgUserNotFound)
			}
		}

		updated, err = r.Wilayas().FindByID(ctx, wilayaID)
		if err != nil {
			return err
		}
		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityWilayaManagerAssigned, model.ActivityEntityWilaya, wilayaID,
			nil, map[string]string{"managerId": manager.ID})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// マネージャーや店舗が残っているウィラヤは消せない
func (u *WilayaUsecase) Delete(ctx context.Context, actor *model.User, id string) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		w, err := r.Wilayas().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, msgWilayaNotFound)
		}
		if w.Manager != nil {
			return ConflictError("Wilaya still has a manager")
		}
		n, err := r.Restaurants().CountByWilayaID(ctx, w.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ConflictError("Wilaya still has restaurants")
		}

		if err := r.Wilayas().Delete(ctx, w.ID); err != nil {
			return fromRepo(err, msgWilayaNotFound)
		}
		return recordActivity(ctx, r.Activities(), u.clock.Now(), actor.ID,
			model.ActivityWilayaDeleted, model.ActivityEntityWilaya, w.ID, snapshotWilaya(w), nil)
	})
}

func ensureCodeFree(ctx context.Context, r repo.TxRepos, code int, excludeID string) error {
	w, err := r.Wilayas().FindByCode(ctx, code)
	if err != nil {
		if err == repo.ErrNotFound {
			return nil
		}
		return err
	}
	if w.ID != excludeID {
		return ConflictError(msgWilayaCodeTaken)
	}
	return nil
}

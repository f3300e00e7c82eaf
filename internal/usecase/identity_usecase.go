package usecase

import (
	"context"
	"errors"

	"corner/internal/domain/model"
	"corner/internal/infra/metrics"
	repo "corner/internal/repository"

	"go.uber.org/zap"
)

// cookieのトークンから、DBの最新ユーザーを引く
type IdentityUsecase struct {
	users   repo.UserRepository
	revoked repo.RevokedTokenRepository
	codec   TokenCodec
	metrics AuthMetrics
	logger  *zap.Logger
}

// DI
func NewIdentityUsecase(
	users repo.UserRepository,
	revoked repo.RevokedTokenRepository,
	codec TokenCodec,
	m AuthMetrics,
	logger *zap.Logger,
) *IdentityUsecase {
	if m == nil {
		m = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityUsecase{users: users, revoked: revoked, codec: codec, metrics: m, logger: logger}
}

// Resolveは失敗をすべてnilで返す（エラーにしない）。
// 権限の判断はトークンのclaimsではなく、ここで読んだユーザーで行う。
func (u *IdentityUsecase) Resolve(ctx context.Context, rawToken string) *model.User {
	if rawToken == "" {
		return nil
	}

	session, ok := u.codec.Verify(rawToken)
	if !ok {
		u.metrics.AuthRejected(metrics.RejectInvalidToken)
		return nil
	}

	//ログアウト済み
	revoked, err := u.revoked.IsRevoked(ctx, session.TokenID)
	if err != nil {
		u.logger.Error("check revoked token failed", zap.Error(err))
		u.metrics.AuthRejected(metrics.RejectStoreError)
		return nil
	}
	if revoked {
		u.metrics.AuthRejected(metrics.RejectRevoked)
		return nil
	}

	user, err := u.users.FindByID(ctx, session.Claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			u.metrics.AuthRejected(metrics.RejectUserMissing)
		} else {
			u.logger.Error("load session user failed", zap.String("user_id", session.Claims.UserID), zap.Error(err))
			u.metrics.AuthRejected(metrics.RejectStoreError)
		}
		return nil
	}

	//停止ユーザーは即時に無効
	if !user.IsActive() {
		u.metrics.AuthRejected(metrics.RejectInactive)
		return nil
	}

	//ロール変更・パスワード再設定の後の古いトークン
	if user.TokenVersion != session.Claims.TokenVersion {
		u.metrics.AuthRejected(metrics.RejectStaleVersion)
		return nil
	}

	return user
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"corner/internal/domain/model"
	"corner/internal/infra/metrics"
	"corner/internal/infra/password"
	repo "corner/internal/repository"

	"go.uber.org/zap"
)

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type AuthUsecase struct {
	users      repo.UserRepository
	revoked    repo.RevokedTokenRepository
	activities repo.ActivityRepository
	verifier   PasswordVerifier
	codec      TokenCodec
	clock      Clock
	metrics    AuthMetrics
	logger     *zap.Logger
}

func NewAuthUsecase(
	users repo.UserRepository,
	revoked repo.RevokedTokenRepository,
	activities repo.ActivityRepository,
	verifier PasswordVerifier,
	codec TokenCodec,
	clock Clock,
	m AuthMetrics,
	logger *zap.Logger,
) *AuthUsecase {
	if m == nil {
		m = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthUsecase{
		users:      users,
		revoked:    revoked,
		activities: activities,
		verifier:   verifier,
		codec:      codec,
		clock:      clock,
		metrics:    m,
		logger:     logger,
	}
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, ValidationError("Username and password are required", nil)
	}

	//ユーザー取得
	user, err := u.users.FindByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		u.metrics.Login(metrics.LoginInvalidCredentials)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		u.metrics.Login(metrics.LoginError)
		return nil, err
	}

	//パスワード照合（bcrypt）
	if err := u.verifier.Verify(user.PasswordHash, in.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			u.metrics.Login(metrics.LoginInvalidCredentials)
			return nil, ErrInvalidCredentials
		}
		u.metrics.Login(metrics.LoginError)
		return nil, err
	}

	//停止ユーザーはログイン不可
	if !user.IsActive() {
		u.metrics.Login(metrics.LoginInactive)
		return nil, ErrAccountInactive
	}

	raw, session, err := u.codec.Issue(model.ClaimsFor(user))
	if err != nil {
		u.metrics.Login(metrics.LoginError)
		return nil, err
	}

	//last_login更新（失敗してもログインは通す）
	now := u.clock.Now()
	if err := u.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		u.logger.Warn("touch last login failed", zap.String("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLoginAt = &now
	}
	if err := u.activities.Create(ctx, model.Activity{
		ActorID:    user.ID,
		Action:     model.ActivityLogin,
		EntityType: model.ActivityEntityUser,
		EntityID:   user.ID,
		CreatedAt:  now,
	}); err != nil {
		u.logger.Warn("record login activity failed", zap.String("user_id", user.ID), zap.Error(err))
	}

	u.metrics.Login(metrics.LoginSuccess)
	u.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	return &LoginOutput{User: user, Token: raw, ExpiresAt: session.ExpiresAt}, nil
}

// Logoutはトークンのjtiを失効リストに入れる。
// 無効なトークンなら何もしない（cookieを消すのはハンドラ）。
func (u *AuthUsecase) Logout(ctx context.Context, rawToken string) error {
	session, ok := u.codec.Verify(rawToken)
	if !ok {
		return nil
	}

	return u.revoked.Create(ctx, &model.RevokedToken{
		ID:        session.TokenID,
		UserID:    session.Claims.UserID,
		ExpiresAt: session.ExpiresAt,
		RevokedAt: u.clock.Now(),
	})
}

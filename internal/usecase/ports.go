package usecase

import (
	"time"

	"corner/internal/domain/model"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 一致しないときは password.ErrMismatch
type PasswordVerifier interface {
	Verify(hash string, plain string) error
}

// セッショントークンの発行と検証
type TokenCodec interface {
	Issue(claims model.SessionClaims) (string, model.Session, error)
	Verify(raw string) (*model.Session, bool)
}

// ログイン/セッション拒否の数を数える
type AuthMetrics interface {
	Login(result string)
	AuthRejected(reason string)
}

type noopMetrics struct{}

func (noopMetrics) Login(string)        {}
func (noopMetrics) AuthRejected(string) {}

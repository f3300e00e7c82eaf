package jobs

import (
	"context"
	"time"

	"corner/internal/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// 期限切れの失効トークンを定期的に消す
type RevocationPurge struct {
	revoked repository.RevokedTokenRepository
	clock   Clock
	logger  *zap.Logger
}

func NewRevocationPurge(revoked repository.RevokedTokenRepository, clock Clock, logger *zap.Logger) *RevocationPurge {
	if clock == nil {
		clock = systemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RevocationPurge{revoked: revoked, clock: clock, logger: logger}
}

// 1回分の掃除。消した件数を返す
func (p *RevocationPurge) Run(ctx context.Context) (int64, error) {
	n, err := p.revoked.DeleteExpired(ctx, p.clock.Now())
	if err != nil {
		p.logger.Warn("purge revoked tokens failed", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		p.logger.Info("purged revoked tokens", zap.Int64("deleted", n))
	}
	return n, nil
}

// cron式で登録して開始する。止めるのは呼び出し側
func (p *RevocationPurge) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = p.Run(ctx)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

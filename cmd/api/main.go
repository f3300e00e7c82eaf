package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"corner/internal/config"
	"corner/internal/infra/db"
	"corner/internal/infra/jobs"
	"corner/internal/infra/logger"
	"corner/internal/infra/metrics"
	"corner/internal/infra/password"
	infraRepo "corner/internal/infra/repository"
	"corner/internal/server"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	//.envはあれば読む
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg, log)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	hasher := password.NewBcryptHasher(12)
	if cfg.Seed {
		if err := db.Seed(ctx, gormDB, hasher, log); err != nil {
			return err
		}
	}

	//失効トークンの掃除
	purge := jobs.NewRevocationPurge(infraRepo.NewRevokedTokenGormRepository(gormDB), nil, log)
	cron, err := purge.Schedule(cfg.RevocationPurgeSpec)
	if err != nil {
		return err
	}
	defer cron.Stop()

	e, err := server.New(cfg, server.Deps{
		DB:      gormDB,
		Logger:  log,
		Metrics: metrics.New(),
		Hasher:  hasher,
	})
	if err != nil {
		return err
	}

	return server.Start(ctx, e, cfg.Addr(), log)
}

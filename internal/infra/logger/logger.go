package logger

import (
	"corner/internal/config"

	"go.uber.org/zap"
)

// productionはJSON、それ以外はコンソール向け
func New(cfg config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		zc.Level = level
	}

	return zc.Build(zap.Fields(zap.String("service", "corner")))
}

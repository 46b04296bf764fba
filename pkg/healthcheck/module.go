package healthcheck

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("healthcheck",
	fx.Provide(func(logger *zap.Logger) *Manager {
		return New(Config{
			Logger: logger,
		})
	}),
)

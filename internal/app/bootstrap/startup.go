// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/lovebite/admindash/internal/app/resources"
	"github.com/lovebite/admindash/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after backends are
// connected, but before the HTTP handler is built. It is the place to
// load shared resources (like templates), warm caches, or perform any
// app-wide setup that depends on config and backends.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if applied := timeouts.ConfigureFromEnv(); applied > 0 {
		logger.Info("handler timeouts overridden from environment",
			zap.Int("applied", applied))
	}
	return nil
}

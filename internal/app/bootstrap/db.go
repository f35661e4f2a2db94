// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/lovebite/admindash/internal/platform"
)

// ConnectDB builds the platform API client. There is no connection to
// establish up front; the client is stateless and the first real call
// tells us whether the backend is reachable.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	api, err := platform.New(appCfg.APIBaseURL, appCfg.APITimeout, logger)
	if err != nil {
		logger.Error("platform client init failed", zap.Error(err))
		return DBDeps{}, err
	}
	logger.Info("platform client ready", zap.String("base_url", api.BaseURL()))
	return DBDeps{API: api}, nil
}

// EnsureSchema is a no-op: the backend owns all storage and schema.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}

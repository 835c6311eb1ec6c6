// Package testutil builds servers backed by in-memory SQLite for tests.
package testutil

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/deppfellow/fyyur/internal/config"
	"github.com/deppfellow/fyyur/internal/database"
	"github.com/deppfellow/fyyur/internal/lib/flash"
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// Config returns a configuration for an in-memory SQLite database private
// to the named test.
func Config(name string) *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Environment = "test"
	obs.Logging.Level = "error"
	obs.Logging.SlowQueryThreshold = 0
	obs.HealthChecks.Checks = []string{"database"}

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:         "0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
			RateLimit:    0,
		},
		Database: config.DatabaseConfig{
			Driver:          config.DriverSQLite,
			Name:            "file:" + unsafeName.ReplaceAllString(name, "_") + "?mode=memory&cache=shared",
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 300,
		},
		Observability: obs,
	}
}

// NewServer returns a migrated server without Redis. The database is closed
// when the test ends.
func NewServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := Config(t.Name())
	logger := zerolog.Nop()

	db, err := database.New(cfg, &logger, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, db.Migrate(ctx))

	t.Cleanup(func() {
		_ = db.Close()
	})

	return server.NewWithDeps(cfg, &logger, db, flash.NewMemoryStore(flash.DefaultTTL))
}

// Command fyyur runs the Fyyur booking site and its maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/deppfellow/fyyur/internal/config"
	"github.com/deppfellow/fyyur/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fyyur",
		Short:         "Fyyur artist and venue booking site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := newServeCmd()
	root.AddCommand(serve, newMigrateCmd(), newSeedCmd())

	// Running the bare binary serves the site.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

// bootstrap loads configuration and builds the root logger. The returned
// LoggerService must be shut down by the caller.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}

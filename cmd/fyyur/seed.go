package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/deppfellow/fyyur/internal/database"
	"github.com/deppfellow/fyyur/internal/lib/flash"
	"github.com/deppfellow/fyyur/internal/repository"
	"github.com/deppfellow/fyyur/internal/seed"
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Migrate and load demo venues, artists and shows",
		Long: "Loads a YAML fixture of venues, artists and shows. Without --file the " +
			"bundled Fyyur demo data is used.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var r io.Reader = bytes.NewReader(seed.Default)
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open fixture: %w", err)
				}
				defer f.Close()
				r = f
			}

			fixture, err := seed.Parse(r)
			if err != nil {
				return err
			}

			cfg, log, loggerService, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			db, err := database.New(cfg, log, loggerService)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			if err := db.Migrate(ctx); err != nil {
				return err
			}

			// Seeding needs repositories only, not Redis or the job queue.
			srv := server.NewWithDeps(cfg, log, db, flash.NewMemoryStore(flash.DefaultTTL))

			result, err := seed.Load(ctx, db.DB, repository.NewRepositories(srv), fixture)
			if err != nil {
				return err
			}

			log.Info().
				Int("venues", result.Venues).
				Int("artists", result.Artists).
				Int("shows", result.Shows).
				Msg("seed data loaded")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixture to load instead of the bundled demo data")

	return cmd
}

package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/fyyur/internal/handler"
	"github.com/deppfellow/fyyur/internal/repository"
	"github.com/deppfellow/fyyur/internal/router"
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/deppfellow/fyyur/internal/service"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply database migrations before serving")

	return cmd
}

func serve(ctx context.Context, migrate bool) error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return err
	}

	if migrate {
		if err := srv.DB.Migrate(ctx); err != nil {
			_ = srv.Shutdown(context.Background())
			return err
		}
	}

	repos := repository.NewRepositories(srv)
	services, err := service.NewService(srv, repos)
	if err != nil {
		_ = srv.Shutdown(context.Background())
		return err
	}

	r, err := router.NewRouter(srv, handler.NewHandlers(srv, services))
	if err != nil {
		_ = srv.Shutdown(context.Background())
		return err
	}

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
		return errors.Join(err, srv.Shutdown(context.Background()))
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}

// Package server defines the Server struct that composes the app's main
// dependencies and owns their lifecycle:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database (bun over pgx, sqlite or mysql)
//   - redis client, flash store and background jobs (all optional)
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/fyyur/internal/config"
	"github.com/deppfellow/fyyur/internal/database"
	"github.com/deppfellow/fyyur/internal/lib/flash"
	"github.com/deppfellow/fyyur/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/fyyur/internal/logger"
)

// Server is the application container, not the HTTP server itself.
//
// Redis and Job are nil when no Redis address is configured or Redis is
// unreachable at start-up; Flash then falls back to an in-memory store.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client
	Job           *job.JobService
	Flash         *flash.Flash

	httpServer *http.Server
}

// New connects to the database and, when configured, Redis and the job
// queue. A Redis failure downgrades the app rather than stopping it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}

	if cfg.Redis.Address != "" {
		server.Redis = connectRedis(cfg, logger, loggerService)
	}

	var flashStore flash.Store
	if server.Redis != nil {
		flashStore = flash.NewRedisStore(server.Redis, flash.DefaultTTL)

		jobService := job.NewJobService(logger, cfg)
		jobService.InitHandlers(cfg, logger)
		if err := jobService.Start(); err != nil {
			_ = db.Close()
			return nil, err
		}
		server.Job = jobService
	} else {
		logger.Warn().Msg("redis not available, using in-memory flash store and no background jobs")
		flashStore = flash.NewMemoryStore(flash.DefaultTTL)
	}
	server.Flash = flash.New(flashStore, logger)

	return server, nil
}

// NewWithDeps assembles a Server from already-built parts. Tests use it to
// run against an in-memory database without Redis.
func NewWithDeps(cfg *config.Config, logger *zerolog.Logger, db *database.Database, flashStore flash.Store) *Server {
	return &Server{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Flash:  flash.New(flashStore, logger),
	}
}

func connectRedis(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Str("address", cfg.Redis.Address).Msg("Failed to connect to Redis, continuing without Redis")
		_ = redisClient.Close()
		return nil
	}

	return redisClient
}

// SetupHTTPServer configures the net/http server around handler.
// Timeouts in config are seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("database", s.DB.Driver).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains HTTP requests, then stops jobs and closes Redis and the
// database. Errors from every step are joined.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}

	if err := s.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
	}

	return errors.Join(errs...)
}

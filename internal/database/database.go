// Package database opens the application's database connection.
//
// Queries go through a bun.DB so the same repositories run on PostgreSQL,
// SQLite or MySQL. For PostgreSQL the bun.DB sits on top of a pgx pool, which
// keeps pgx query tracing (tracelog + New Relic nrpgx5) and tern migrations.
//
// It handles:
//   - building a DSN from config
//   - creating a pgx connection pool (pgxpool) for PostgreSQL
//   - wiring query tracing/logging (pgx tracelog, bun query hooks)
//   - optional New Relic instrumentation (nrpgx5)
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/deppfellow/fyyur/internal/config"
	loggerConfig "github.com/deppfellow/fyyur/internal/logger"
	"github.com/go-sql-driver/mysql"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

// Database wraps the bun handle used by repositories.
//
// Pool is only set for PostgreSQL; tern migrations and the health check use
// it directly. Driver records which dialect DB speaks.
type Database struct {
	DB     *bun.DB
	Pool   *pgxpool.Pool
	Driver string
	log    *zerolog.Logger
}

// multiTracer chains pgx tracers, since ConnConfig has a single Tracer slot:
// New Relic for APM and tracelog for local SQL output.
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// DatabasePingTimeout is how many seconds to wait for the first ping.
const DatabasePingTimeout = 10

// New opens the configured database, pings it and returns the wrapper.
//
// loggerService may be nil; New Relic tracing is only attached when it holds
// a running application.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	var (
		database *Database
		err      error
	)

	switch cfg.Database.DriverName() {
	case config.DriverPostgres:
		database, err = newPostgres(cfg, logger, loggerService)
	case config.DriverSQLite:
		database, err = newSQLite(cfg, logger)
	case config.DriverMySQL:
		database, err = newMySQL(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.IsLocal() && logger.GetLevel() <= zerolog.DebugLevel {
		database.DB.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}

	if obs := cfg.Observability; obs != nil && obs.Logging.SlowQueryThreshold > 0 {
		database.DB.AddQueryHook(&slowQueryHook{
			threshold: obs.Logging.SlowQueryThreshold,
			logger:    logger,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = database.DB.PingContext(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("driver", database.Driver).Msg("connected to the database")

	return database, nil
}

func postgresDSN(cfg *config.Config) string {
	hostPort := net.JoinHostPort(cfg.Database.Host, strconv.Itoa(cfg.Database.Port))

	// Passwords may contain URL delimiters.
	encodedPassword := url.QueryEscape(cfg.Database.Password)

	sslMode := cfg.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.Database.User,
		encodedPassword,
		hostPort,
		cfg.Database.Name,
		sslMode,
	)
}

func newPostgres(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(postgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	if loggerService.GetApplication() != nil {
		pgxPoolConfig.ConnConfig.Tracer = nrpgx5.NewTracer()
	}

	// SQL logging is noisy, local only.
	if cfg.IsLocal() {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)
		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		}

		if pgxPoolConfig.ConnConfig.Tracer != nil {
			pgxPoolConfig.ConnConfig.Tracer = &multiTracer{
				tracers: []any{pgxPoolConfig.ConnConfig.Tracer, localTracer},
			}
		} else {
			pgxPoolConfig.ConnConfig.Tracer = localTracer
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	sqldb := stdlib.OpenDBFromPool(pool)

	return &Database{
		DB:     bun.NewDB(sqldb, pgdialect.New()),
		Pool:   pool,
		Driver: config.DriverPostgres,
		log:    logger,
	}, nil
}

// newSQLite opens SQLite with a single connection: writes serialise anyway,
// and an in-memory database only lives as long as its connection.
func newSQLite(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.Database.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)
	sqldb.SetConnMaxIdleTime(0)

	if _, err := sqldb.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to enable sqlite foreign keys: %w", err)
	}

	return &Database{
		DB:     bun.NewDB(sqldb, sqlitedialect.New()),
		Driver: config.DriverSQLite,
		log:    logger,
	}, nil
}

func newMySQL(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.Database.User
	mysqlCfg.Passwd = cfg.Database.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = net.JoinHostPort(cfg.Database.Host, strconv.Itoa(cfg.Database.Port))
	mysqlCfg.DBName = cfg.Database.Name
	mysqlCfg.ParseTime = true
	mysqlCfg.Loc = time.UTC

	sqldb, err := sql.Open("mysql", mysqlCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql database: %w", err)
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	sqldb.SetConnMaxIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second)

	return &Database{
		DB:     bun.NewDB(sqldb, mysqldialect.New()),
		Driver: config.DriverMySQL,
		log:    logger,
	}, nil
}

// Ping checks connectivity; used by the health endpoint.
func (db *Database) Ping(ctx context.Context) error {
	if db.Pool != nil {
		return db.Pool.Ping(ctx)
	}
	return db.DB.PingContext(ctx)
}

// Close closes bun's sql.DB and, for PostgreSQL, the underlying pool.
func (db *Database) Close() error {
	db.log.Info().Str("driver", db.Driver).Msg("closing database connection")

	err := db.DB.Close()
	if db.Pool != nil {
		db.Pool.Close()
	}
	return err
}

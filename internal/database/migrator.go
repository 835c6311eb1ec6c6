package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/deppfellow/fyyur/internal/config"
	"github.com/deppfellow/fyyur/internal/model"
	"github.com/go-sql-driver/mysql"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/uptrace/bun"
)

// Migrations ship inside the binary.
//
//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the schema up to date.
//
// PostgreSQL runs the versioned SQL files in migrations/ through tern and
// records progress in schema_version. SQLite and MySQL create the tables from
// the bun models, which is idempotent thanks to IF NOT EXISTS.
func (db *Database) Migrate(ctx context.Context) error {
	if db.Driver == config.DriverPostgres {
		return db.migrateWithTern(ctx)
	}
	return db.createTablesFromModels(ctx)
}

func (db *Database) migrateWithTern(ctx context.Context) error {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring migration connection: %w", err)
	}
	defer conn.Release()

	m, err := tern.NewMigrator(ctx, conn.Conn(), "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	if from == int32(len(m.Migrations)) {
		db.log.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		db.log.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}

func (db *Database) createTablesFromModels(ctx context.Context) error {
	tables := []struct {
		model       any
		foreignKeys [][]any
	}{
		{model: (*model.Venue)(nil)},
		{model: (*model.Artist)(nil)},
		{
			model: (*model.Show)(nil),
			foreignKeys: [][]any{
				{bun.Ident("venue_id"), bun.Ident("venues"), bun.Ident("id")},
				{bun.Ident("artist_id"), bun.Ident("artists"), bun.Ident("id")},
			},
		},
	}

	for _, table := range tables {
		q := db.DB.NewCreateTable().Model(table.model).IfNotExists()
		for _, fk := range table.foreignKeys {
			q = q.ForeignKey("(?) REFERENCES ? (?)", fk...)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", table.model, err)
		}
	}

	indexes := []struct {
		model   any
		name    string
		columns []string
	}{
		{(*model.Show)(nil), "idx_shows_venue_id", []string{"venue_id"}},
		{(*model.Show)(nil), "idx_shows_artist_id", []string{"artist_id"}},
		{(*model.Show)(nil), "idx_shows_start_time", []string{"start_time"}},
	}

	for _, idx := range indexes {
		q := db.DB.NewCreateIndex().Model(idx.model).Index(idx.name).Column(idx.columns...)
		if db.Driver != config.DriverMySQL {
			// MySQL has no CREATE INDEX IF NOT EXISTS.
			q = q.IfNotExists()
		}
		if _, err := q.Exec(ctx); err != nil && !isDuplicateIndex(err) {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	db.log.Info().Str("driver", db.Driver).Msg("database tables ensured")
	return nil
}

// mysqlDuplicateKeyName is ER_DUP_KEYNAME, returned when the index exists.
const mysqlDuplicateKeyName = 1061

func isDuplicateIndex(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateKeyName
}

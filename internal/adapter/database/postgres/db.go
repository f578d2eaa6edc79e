package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type DB struct {
	*pgxpool.Pool
	QueryBuilder *squirrel.StatementBuilderType
	url          string
}

type Options struct {
	URL            string
	MigrationsPath string
	MaxConns       int32
}

func NewDB(ctx context.Context, opts Options) (*DB, error) {
	if opts.URL == "" {
		return nil, errors.New("postgres url is not set")
	}

	poolConfig, err := pgxpool.ParseConfig(opts.URL)

	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}

	if opts.MaxConns > 0 {
		poolConfig.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)

	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	db := &DB{
		Pool:         pool,
		QueryBuilder: &psql,
		url:          opts.URL,
	}

	if opts.MigrationsPath != "" {
		if err := RunMigrations(opts.URL, opts.MigrationsPath); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return db, nil
}

// Truncate empties every table, used between test cases.
func (db *DB) Truncate(ctx context.Context) error {
	_, err := db.Exec(ctx, "TRUNCATE TABLE todos, lists, users")

	return err
}

// RunMigrations opens a short-lived database/sql handle through the pgx
// stdlib driver because golang-migrate does not accept a pgxpool.
func RunMigrations(dbURL string, migrationsPath string) error {
	sqlDB, err := sql.Open("pgx", dbURL)

	if err != nil {
		return err
	}

	defer sqlDB.Close()

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})

	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres",
		driver,
	)

	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

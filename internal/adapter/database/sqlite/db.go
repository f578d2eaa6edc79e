package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	_ "github.com/mattn/go-sqlite3"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/rs/zerolog"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
)

const driverName = "sqlite3"

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
}

type Options struct {
	// DSN is handed to go-sqlite3 as is, e.g. "taskboard.db?_foreign_keys=on".
	DSN            string
	MigrationsPath string
	// MaxOpenConns is forced to 1 for in-memory databases.
	MaxOpenConns int
	Tracing      bool
	LogQueries   bool
}

func NewDB(opts Options) (*DB, error) {
	if opts.DSN == "" {
		return nil, errors.New("sqlite dsn is not set")
	}

	sqlDB, err := open(opts)

	if err != nil {
		return nil, err
	}

	maxOpen := opts.MaxOpenConns

	if maxOpen <= 0 {
		maxOpen = 10
	}

	if IsMemoryDSN(opts.DSN) {
		maxOpen = 1
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if opts.MigrationsPath != "" {
		if err := RunMigrations(sqlDB, opts.MigrationsPath); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	return Wrap(sqlDB), nil
}

// Wrap attaches the query builder used by the repositories to an open handle.
func Wrap(sqlDB *sql.DB) *DB {
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
	}
}

func open(opts Options) (*sql.DB, error) {
	if !opts.Tracing && !opts.LogQueries {
		return sql.Open(driverName, opts.DSN)
	}

	var base *sql.DB
	var err error

	if opts.Tracing {
		base, err = otelsql.Open(driverName, opts.DSN,
			otelsql.WithDBSystem("sqlite"),
			otelsql.WithDBName("taskboard"),
			otelsql.WithTracerProvider(otel.GetTracerProvider()),
		)
	} else {
		base, err = sql.Open(driverName, opts.DSN)
	}

	if err != nil {
		return nil, err
	}

	if !opts.LogQueries {
		return base, nil
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "sqlite").Logger()
	db := sqldblogger.OpenDriver(opts.DSN, base.Driver(), zerologadapter.New(logger),
		sqldblogger.WithMinimumLevel(sqldblogger.LevelDebug),
	)

	// only the driver of base is reused
	base.Close()

	return db, nil
}

// IsMemoryDSN reports whether every connection would see its own database
// unless the pool is limited to a single connection.
func IsMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// RunMigrations applies the pending migrations on db. The migrate instance
// is not closed because that would close db as well.
func RunMigrations(db *sql.DB, migrationsPath string) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})

	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		driverName,
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

package database

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"taskboard/internal/adapter/database/jsonfile"
	"taskboard/internal/adapter/database/memory"
	"taskboard/internal/adapter/database/postgres"
	pgrepo "taskboard/internal/adapter/database/postgres/repository"
	"taskboard/internal/adapter/database/sqlite"
	sqliterepo "taskboard/internal/adapter/database/sqlite/repository"
	"taskboard/internal/core/port"
	"taskboard/pkg/config"
)

// Repositories bundles the repositories of one storage backend. Close
// releases the underlying connection, if any.
type Repositories struct {
	Lists port.ListRepository
	Todos port.TodoRepository
	Users port.UserRepository
	Close func() error
}

type Options struct {
	Probe   port.Telemetry
	Logger  *zap.Logger
	Tracing bool
}

func Open(ctx context.Context, cfg config.StorageConfig, opts Options) (*Repositories, error) {
	logger := opts.Logger

	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("Opening storage", zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case "memory":
		return openMemory(), nil
	case "json":
		return openJSON(cfg.DataPath)
	case "sqlite":
		return openSQLite(cfg, opts)
	case "postgres":
		return openPostgres(ctx, cfg, opts)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func noClose() error {
	return nil
}

func openMemory() *Repositories {
	return &Repositories{
		Lists: memory.NewListRepository(nil),
		Todos: memory.NewTodoRepository(nil),
		Users: memory.NewUserRepository(nil),
		Close: noClose,
	}
}

func openJSON(dataPath string) (*Repositories, error) {
	lists, err := jsonfile.NewListRepository(jsonfile.PathIn(dataPath, jsonfile.ListsFile))

	if err != nil {
		return nil, fmt.Errorf("open lists file: %w", err)
	}

	todos, err := jsonfile.NewTodoRepository(jsonfile.PathIn(dataPath, jsonfile.TodosFile))

	if err != nil {
		return nil, fmt.Errorf("open todos file: %w", err)
	}

	users, err := jsonfile.NewUserRepository(jsonfile.PathIn(dataPath, jsonfile.UsersFile))

	if err != nil {
		return nil, fmt.Errorf("open users file: %w", err)
	}

	return &Repositories{Lists: lists, Todos: todos, Users: users, Close: noClose}, nil
}

func migrationsPath(cfg config.StorageConfig, driver string) string {
	if cfg.MigrationsPath != "" {
		return cfg.MigrationsPath
	}

	return filepath.Join("db", "migrations", driver)
}

func openSQLite(cfg config.StorageConfig, opts Options) (*Repositories, error) {
	db, err := sqlite.NewDB(sqlite.Options{
		DSN:            cfg.DatabasePath + "?_foreign_keys=on&_busy_timeout=5000",
		MigrationsPath: migrationsPath(cfg, "sqlite"),
		Tracing:        opts.Tracing,
		LogQueries:     cfg.LogQueries,
	})

	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	return &Repositories{
		Lists: sqliterepo.NewListRepository(db, opts.Probe),
		Todos: sqliterepo.NewTodoRepository(db, opts.Probe),
		Users: sqliterepo.NewUserRepository(db, opts.Probe),
		Close: db.Close,
	}, nil
}

func openPostgres(ctx context.Context, cfg config.StorageConfig, opts Options) (*Repositories, error) {
	db, err := postgres.NewDB(ctx, postgres.Options{
		URL:            cfg.DatabaseURL,
		MigrationsPath: migrationsPath(cfg, "postgres"),
	})

	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	return &Repositories{
		Lists: pgrepo.NewListRepository(db, opts.Probe),
		Todos: pgrepo.NewTodoRepository(db, opts.Probe),
		Users: pgrepo.NewUserRepository(db, opts.Probe),
		Close: func() error {
			db.Close()
			return nil
		},
	}, nil
}

package test

import (
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	"taskboard/internal/adapter/database/sqlite"
)

// FindProjectRoot walks up from this file until it finds go.mod.
func FindProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	log.Fatal("Could not find project root directory")
	return ""
}

func MigrationsPath(driver string) string {
	return filepath.Join(FindProjectRoot(), "db", "migrations", driver)
}

// InitTestDB returns a migrated in-memory database private to the caller.
func InitTestDB() *sqlite.DB {
	db, err := sqlite.NewDB(sqlite.Options{
		DSN:            "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on",
		MigrationsPath: MigrationsPath("sqlite"),
	})

	if err != nil {
		log.Fatal(err)
	}

	return db
}

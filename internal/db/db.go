package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskbuddy/internal/models"
)

// Open opens the SQLite database at the default location and runs
// migrations. The returned handle is passed to every service that needs
// it; there is no package-level connection.
func Open() (*gorm.DB, error) {
	dbPath, err := databasePath()
	if err != nil {
		return nil, fmt.Errorf("failed to get database path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create taskbuddy directory: %w", err)
	}

	return OpenAt(dbPath)
}

// OpenAt opens the database at an explicit path and runs migrations.
func OpenAt(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(gdb); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return gdb, nil
}

// OpenInMemory opens a throwaway in-memory database, used by tests.
func OpenInMemory() (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// A second pooled connection would see its own empty database.
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migrate(gdb); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return gdb, nil
}

// HomeDir returns the application's home directory (~/.taskbuddy),
// which also roots the object-storage buckets and the session file.
func HomeDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".taskbuddy"), nil
}

func databasePath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "taskbuddy.db"), nil
}

// migrate creates/updates the database schema
func migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Task{},
		&models.TaskTag{},
		&models.TaskAttachment{},
		&models.ActivityLog{},
	)
}

// Close closes the underlying connection of a handle obtained from Open.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

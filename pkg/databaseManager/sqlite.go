package databaseManager

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteManager opens a SQLite database at path. ":memory:" gives a
// private in-memory database, used by tests and local runs.
func NewSQLiteManager(path string) (DatabaseManager, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// every new connection to :memory: is a new empty database
	sqlDB.SetMaxOpenConns(1)

	return &gormManager{db: db}, nil
}

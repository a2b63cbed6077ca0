package database

import (
	"BakeryPOS/app/security"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// resolveLocalPath places relative SQLite paths under the per-user data directory
func resolveLocalPath(dbPath string) (string, error) {
	if filepath.IsAbs(dbPath) {
		return dbPath, nil
	}
	dir, err := security.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbPath), nil
}

// openLocal opens the local SQLite database (CGO-free driver)
func openLocal(dbPath string) (*gorm.DB, error) {
	path, err := resolveLocalPath(dbPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to local database: %w", err)
	}
	return conn, nil
}

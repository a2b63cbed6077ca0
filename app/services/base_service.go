package services

import (
	"BakeryPOS/app/database"
	"fmt"

	"gorm.io/gorm"
)

// BaseService provides common database access for services
type BaseService struct {
	db *gorm.DB
}

// NewBaseService creates a base service that follows the package-wide database,
// so a later InitializeWithConfig is picked up without rebuilding services
func NewBaseService() *BaseService {
	return &BaseService{}
}

// GetDB returns the injected connection if any, else the current package-wide one
func (b *BaseService) GetDB() *gorm.DB {
	if b.db != nil {
		return b.db
	}
	return database.GetDB()
}

// SetDB pins the service to a connection (useful for testing)
func (b *BaseService) SetDB(db *gorm.DB) {
	b.db = db
}

// EnsureDB checks if database is initialized and returns an error if not
func (b *BaseService) EnsureDB() error {
	if b.GetDB() == nil {
		return fmt.Errorf("database not initialized")
	}
	return nil
}

// Create creates a new record in the database
func (b *BaseService) Create(value interface{}) error {
	db := b.GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	return db.Create(value).Error
}

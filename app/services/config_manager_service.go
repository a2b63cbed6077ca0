package services

import (
	"context"
	"fmt"
	"time"

	"BakeryPOS/app/config"
	"BakeryPOS/app/database"
)

// ConfigManagerService manages application configuration
type ConfigManagerService struct{}

// NewConfigManagerService creates a new ConfigManagerService
func NewConfigManagerService() *ConfigManagerService {
	return &ConfigManagerService{}
}

// GetConfig returns the current configuration
func (s *ConfigManagerService) GetConfig() (*config.AppConfig, error) {
	return config.LoadConfig()
}

// SaveConfig saves the configuration. Invoice and display changes apply on next start.
func (s *ConfigManagerService) SaveConfig(cfg *config.AppConfig) error {
	cfg.ApplyDefaults()
	return config.SaveConfig(cfg)
}

// ConfigExists checks if configuration exists
func (s *ConfigManagerService) ConfigExists() (bool, error) {
	return config.ConfigExists()
}

// IsFirstRun checks if this is the first run
func (s *ConfigManagerService) IsFirstRun() (bool, error) {
	exists, err := config.ConfigExists()
	if err != nil {
		return false, err
	}

	if !exists {
		return true, nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return false, err
	}

	return cfg.FirstRun, nil
}

// CreateDefaultConfig creates a default configuration
func (s *ConfigManagerService) CreateDefaultConfig() (*config.AppConfig, error) {
	return config.CreateDefaultConfig()
}

// TestDatabaseConnection opens the journal store with the given settings and closes it again
func (s *ConfigManagerService) TestDatabaseConnection(dbConfig config.DatabaseConfig) error {
	db, err := database.Open(dbConfig)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// InitializeDatabase switches the global journal store to dbConfig
func (s *ConfigManagerService) InitializeDatabase(dbConfig config.DatabaseConfig) error {
	if err := s.TestDatabaseConnection(dbConfig); err != nil {
		return err
	}

	if err := database.Close(); err != nil {
		return fmt.Errorf("failed to close previous database: %w", err)
	}

	if err := database.InitializeWithConfig(&config.AppConfig{Database: dbConfig}); err != nil {
		return fmt.Errorf("failed to initialize database connection: %w", err)
	}

	return nil
}

// TestGoogleSheetsConnection checks the Sheets settings without saving them
func (s *ConfigManagerService) TestGoogleSheetsConnection(sheetsConfig config.GoogleSheetsConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return NewGoogleSheetsService(sheetsConfig).TestConnection(ctx)
}

// CompleteSetup marks the setup as complete
func (s *ConfigManagerService) CompleteSetup() error {
	if err := config.MarkSetupComplete(); err != nil {
		return fmt.Errorf("failed to mark setup complete: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the config file
func (s *ConfigManagerService) GetConfigPath() (string, error) {
	return config.GetConfigPath()
}

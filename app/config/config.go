package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"BakeryPOS/app/security"
)

// AppConfig holds all application configuration
type AppConfig struct {
	// Database Configuration
	Database DatabaseConfig `json:"database"`

	// Business Information
	Business BusinessConfig `json:"business"`

	// Invoice preview settings
	Invoice InvoiceConfig `json:"invoice"`

	// Customer-facing display hub
	Display DisplayConfig `json:"display"`

	// Google Sheets export
	GoogleSheets GoogleSheetsConfig `json:"google_sheets"`

	// First run flag
	FirstRun bool `json:"first_run"`
}

// DatabaseConfig holds the action journal store settings
type DatabaseConfig struct {
	Driver   string `json:"driver"` // "sqlite", "postgres"
	Path     string `json:"path"`   // SQLite file, relative paths resolve under the data dir
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	SSLMode  string `json:"ssl_mode"`
}

// BusinessConfig holds the shop identity printed on invoices
type BusinessConfig struct {
	Name           string `json:"name"`
	CurrencySuffix string `json:"currency_suffix"` // Empty uses the language default
}

// InvoiceConfig holds invoice preview settings
type InvoiceConfig struct {
	Language       string `json:"language"`         // "en", "ar"
	CopyFeedbackMs int    `json:"copy_feedback_ms"` // How long the "copied" indicator stays on
	DateLayout     string `json:"date_layout"`      // Go layout, default DD/MM/YYYY
	SheetName      string `json:"sheet_name"`       // Spreadsheet tab name, empty uses the language default
	IncludeQR      bool   `json:"include_qr"`       // QR code in the print view
}

// DisplayConfig holds the LAN customer display settings
type DisplayConfig struct {
	Enabled  bool   `json:"enabled"`
	Port     string `json:"port"`     // ":8090"
	Announce bool   `json:"announce"` // mDNS announcement
}

// GoogleSheetsConfig holds Sheets export settings
type GoogleSheetsConfig struct {
	Enabled       bool   `json:"enabled"`
	SpreadsheetID string `json:"spreadsheet_id"`
	SheetName     string `json:"sheet_name"`
	PrivateKey    string `json:"private_key"` // Service account JSON
}

const (
	DefaultCopyFeedbackMs = 2000
	DefaultDateLayout     = "02/01/2006"
	DefaultDisplayPort    = ":8090"
	DefaultSQLitePath     = "invoices.db"
)

// Defaults returns the configuration written on first run
func Defaults() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{
			Driver:   "sqlite",
			Path:     DefaultSQLitePath,
			Host:     "localhost",
			Port:     5432,
			Database: "bakery_pos",
			Username: "postgres",
			SSLMode:  "disable",
		},
		Business: BusinessConfig{
			Name: "Cookies Bakery",
		},
		Invoice: InvoiceConfig{
			Language:       "en",
			CopyFeedbackMs: DefaultCopyFeedbackMs,
			DateLayout:     DefaultDateLayout,
			IncludeQR:      true,
		},
		Display: DisplayConfig{
			Enabled:  false,
			Port:     DefaultDisplayPort,
			Announce: true,
		},
		GoogleSheets: GoogleSheetsConfig{
			SheetName: "Invoices",
		},
		FirstRun: true,
	}
}

// ApplyDefaults fills zero values left by older config files
func (cfg *AppConfig) ApplyDefaults() {
	def := Defaults()
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = def.Database.Driver
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = def.Database.Path
	}
	if cfg.Business.Name == "" {
		cfg.Business.Name = def.Business.Name
	}
	if cfg.Invoice.Language == "" {
		cfg.Invoice.Language = def.Invoice.Language
	}
	if cfg.Invoice.CopyFeedbackMs <= 0 {
		cfg.Invoice.CopyFeedbackMs = def.Invoice.CopyFeedbackMs
	}
	if cfg.Invoice.DateLayout == "" {
		cfg.Invoice.DateLayout = def.Invoice.DateLayout
	}
	if cfg.Display.Port == "" {
		cfg.Display.Port = def.Display.Port
	}
	if cfg.GoogleSheets.SheetName == "" {
		cfg.GoogleSheets.SheetName = def.GoogleSheets.SheetName
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	dir, err := security.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig loads configuration from config.json and decrypts sensitive fields
func LoadConfig() (*AppConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found")
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}

	cfg.decryptSensitiveFields()
	cfg.ApplyDefaults()

	return &cfg, nil
}

// SaveConfig saves configuration to config.json after encrypting sensitive fields
func SaveConfig(cfg *AppConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Encrypt a copy so the caller keeps plain values
	cfgCopy := *cfg
	if err := cfgCopy.encryptSensitiveFields(); err != nil {
		return fmt.Errorf("could not encrypt sensitive fields: %w", err)
	}

	data, err := json.MarshalIndent(&cfgCopy, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}

	return nil
}

// ConfigExists checks if config file exists
func ConfigExists() (bool, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// CreateDefaultConfig creates and saves a default configuration file
func CreateDefaultConfig() (*AppConfig, error) {
	cfg := Defaults()
	if err := SaveConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MarkSetupComplete marks the first run as complete
func MarkSetupComplete() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	cfg.FirstRun = false
	return SaveConfig(cfg)
}

// ApplyEnvOverrides lets .env / environment values win over config.json
func (cfg *AppConfig) ApplyEnvOverrides() {
	if port := os.Getenv("DISPLAY_PORT"); port != "" {
		cfg.Display.Port = ":" + port
	}
	if lang := os.Getenv("INVOICE_LANGUAGE"); lang != "" {
		cfg.Invoice.Language = lang
	}
}

func (cfg *AppConfig) encryptSensitiveFields() error {
	var err error

	if cfg.Database.Password != "" {
		cfg.Database.Password, err = security.Encrypt(cfg.Database.Password)
		if err != nil {
			return fmt.Errorf("could not encrypt database password: %w", err)
		}
	}

	if cfg.GoogleSheets.PrivateKey != "" {
		cfg.GoogleSheets.PrivateKey, err = security.Encrypt(cfg.GoogleSheets.PrivateKey)
		if err != nil {
			return fmt.Errorf("could not encrypt sheets private key: %w", err)
		}
	}

	return nil
}

// decryptSensitiveFields leaves values that fail to decrypt untouched,
// so hand-edited plain text config keeps working in development
func (cfg *AppConfig) decryptSensitiveFields() {
	if decrypted, err := security.Decrypt(cfg.Database.Password); err == nil {
		cfg.Database.Password = decrypted
	}
	if decrypted, err := security.Decrypt(cfg.GoogleSheets.PrivateKey); err == nil {
		cfg.GoogleSheets.PrivateKey = decrypted
	}
}

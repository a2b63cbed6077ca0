package config

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadEncryptsSecrets(t *testing.T) {
	t.Setenv("APPDATA", t.TempDir())

	cfg := Defaults()
	cfg.Database.Password = "pg-pass"
	cfg.GoogleSheets.PrivateKey = `{"type":"service_account"}`
	require.NoError(t, SaveConfig(cfg))

	// Caller's copy keeps plain values
	assert.Equal(t, "pg-pass", cfg.Database.Password)

	path, err := GetConfigPath()
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "pg-pass")
	assert.NotContains(t, string(raw), "service_account")

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "pg-pass", loaded.Database.Password)
	assert.Equal(t, `{"type":"service_account"}`, loaded.GoogleSheets.PrivateKey)
	assert.Equal(t, "Cookies Bakery", loaded.Business.Name)
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("APPDATA", t.TempDir())

	exists, err := ConfigExists()
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigFillsDefaultsAndKeepsPlainSecrets(t *testing.T) {
	t.Setenv("APPDATA", t.TempDir())

	path, err := GetConfigPath()
	require.NoError(t, err)
	raw, err := json.Marshal(map[string]any{
		"database": map[string]any{"password": "plain"},
		"invoice":  map[string]any{"language": "ar"},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.Database.Password)
	assert.Equal(t, "ar", cfg.Invoice.Language)
	assert.Equal(t, DefaultCopyFeedbackMs, cfg.Invoice.CopyFeedbackMs)
	assert.Equal(t, DefaultDateLayout, cfg.Invoice.DateLayout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, DefaultDisplayPort, cfg.Display.Port)
}

func TestMarkSetupComplete(t *testing.T) {
	t.Setenv("APPDATA", t.TempDir())

	cfg, err := CreateDefaultConfig()
	require.NoError(t, err)
	assert.True(t, cfg.FirstRun)

	require.NoError(t, MarkSetupComplete())

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, loaded.FirstRun)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DISPLAY_PORT", "9100")
	t.Setenv("INVOICE_LANGUAGE", "ar")

	cfg := Defaults()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, ":9100", cfg.Display.Port)
	assert.Equal(t, "ar", cfg.Invoice.Language)
}

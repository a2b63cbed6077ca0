package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	logger := NewLoggerServiceWithDir(dir)

	logger.LogInfo("Invoice preview opened", "items=2")
	logger.LogWarning("Clipboard write failed")
	logger.LogError("Print failed", errors.New("no printer"))
	logger.Close()

	data, err := os.ReadFile(logger.GetTodayLogPath())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[INFO] Invoice preview opened | items=2")
	assert.Contains(t, content, "[WARNING] Clipboard write failed")
	assert.Contains(t, content, "[ERROR] Print failed | Error: no printer")
	assert.Equal(t, dir, logger.GetLogDirectory())
}

func TestLoggerCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	logger := NewLoggerServiceWithDir(dir)
	defer logger.Close()

	old := filepath.Join(dir, "2001-01-01.log")
	require.NoError(t, os.WriteFile(old, []byte("old"), 0644))
	past := time.Now().AddDate(0, 0, -60)
	require.NoError(t, os.Chtimes(old, past, past))

	require.NoError(t, logger.CleanOldLogs(30))
	assert.NoFileExists(t, old)
	assert.FileExists(t, logger.GetTodayLogPath())
}

func TestLoggerRecoverPanic(t *testing.T) {
	logger := NewLoggerServiceWithDir(t.TempDir())
	defer logger.Close()

	assert.NotPanics(t, func() {
		defer logger.RecoverPanic()
		panic("boom")
	})
}

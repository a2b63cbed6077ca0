package services

import (
	"errors"
	"path/filepath"
	"testing"

	"BakeryPOS/app/config"
	"BakeryPOS/app/database"
	"BakeryPOS/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalRecordAndList(t *testing.T) {
	journal := newTestJournal(t, newTestLogger(t))
	view := BuildInvoice(sampleItems(), InvoiceOptions{Now: fixedNow})

	journal.Record(view, models.ActionPrint, models.ActionStatusSuccess, "", nil)
	journal.Record(view, models.ActionCopyText, models.ActionStatusFailed, "", errors.New("denied"))

	actions, err := journal.ListRecentActions(10)
	require.NoError(t, err)
	require.Len(t, actions, 2)

	// Newest first
	assert.Equal(t, models.ActionCopyText, actions[0].Action)
	assert.Equal(t, "denied", actions[0].Error)
	assert.Equal(t, "Customer #1", actions[0].CustomerLabel)
	assert.Equal(t, models.ActionPrint, actions[1].Action)

	limited, err := journal.ListRecentActions(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestJournalWithoutDatabase(t *testing.T) {
	require.NoError(t, database.Close())
	journal := NewInvoiceJournalService(newTestLogger(t))

	assert.NotPanics(t, func() {
		journal.Record(nil, models.ActionPrint, models.ActionStatusSuccess, "", nil)
	})
	_, err := journal.ListRecentActions(10)
	assert.Error(t, err)

	var nilJournal *InvoiceJournalService
	assert.NotPanics(t, func() {
		nilJournal.Record(nil, models.ActionPrint, models.ActionStatusSuccess, "", nil)
	})
}

func TestJournalFollowsDatabaseSwitch(t *testing.T) {
	manager := NewConfigManagerService()
	first := config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "first.db")}
	second := config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "second.db")}

	require.NoError(t, manager.InitializeDatabase(first))
	t.Cleanup(func() { database.Close() })

	journal := NewInvoiceJournalService(newTestLogger(t))
	view := BuildInvoice(sampleItems(), InvoiceOptions{Now: fixedNow})
	journal.Record(view, models.ActionCopyText, models.ActionStatusSuccess, "", nil)

	require.NoError(t, manager.InitializeDatabase(second))
	journal.Record(view, models.ActionPrint, models.ActionStatusSuccess, "", nil)

	actions, err := journal.ListRecentActions(10)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, models.ActionPrint, actions[0].Action)
}

func TestJournalPicksUpDatabaseAfterSetup(t *testing.T) {
	require.NoError(t, database.Close())
	journal := NewInvoiceJournalService(newTestLogger(t))

	_, err := journal.ListRecentActions(10)
	require.Error(t, err)

	dbConfig := config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "setup.db")}
	require.NoError(t, NewConfigManagerService().InitializeDatabase(dbConfig))
	t.Cleanup(func() { database.Close() })

	journal.Record(nil, models.ActionExportSheets, models.ActionStatusFailed, "", errors.New("offline"))
	actions, err := journal.ListRecentActions(10)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "offline", actions[0].Error)
}

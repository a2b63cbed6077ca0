package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"BakeryPOS/app/config"
	"BakeryPOS/app/database"
	"BakeryPOS/app/models"

	"github.com/stretchr/testify/require"
)

type emitted struct {
	event string
	data  []interface{}
}

// fakeHost records every call the invoice service makes to the desktop
type fakeHost struct {
	mu           sync.Mutex
	clipboard    []string
	clipboardErr error
	saved        map[string][]byte
	savePath     string
	saveErr      error
	prints       int
	printErr     error
	events       []emitted
	printMode    bool
	printToggles []bool
	ctx          context.Context
}

func newFakeHost() *fakeHost {
	return &fakeHost{saved: map[string][]byte{}, savePath: "/tmp/out.xlsx"}
}

func (h *fakeHost) ClipboardSetText(text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clipboardErr != nil {
		return h.clipboardErr
	}
	h.clipboard = append(h.clipboard, text)
	return nil
}

func (h *fakeHost) SaveFile(defaultName, title string, data []byte) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.saveErr != nil {
		return "", h.saveErr
	}
	h.saved[defaultName] = data
	return h.savePath, nil
}

func (h *fakeHost) Print() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.prints++
	return h.printErr
}

func (h *fakeHost) Emit(event string, data ...interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, emitted{event: event, data: data})
}

func (h *fakeHost) SetPrintMode(on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.printMode = on
	h.printToggles = append(h.printToggles, on)
}

func (h *fakeHost) Context() context.Context {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ctx == nil {
		return context.Background()
	}
	return h.ctx
}

func (h *fakeHost) printCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.prints
}

func (h *fakeHost) inPrintMode() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.printMode
}

func (h *fakeHost) lastClipboard() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clipboard) == 0 {
		return ""
	}
	return h.clipboard[len(h.clipboard)-1]
}

var errClipboardDenied = errors.New("clipboard permission denied")

var fixedNow = time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

func sampleItems() []models.SaleItem {
	return []models.SaleItem{
		{ID: "1", Name: "A", Quantity: 2, UnitType: models.UnitPiece, Price: 1000, CustomerNumber: 1, SaleType: models.SaleRetail},
		{ID: "2", Name: "B", Quantity: 1, UnitType: models.UnitPiece, Price: 500, CustomerNumber: 1, SaleType: models.SaleRetail},
	}
}

func newTestLogger(t *testing.T) *LoggerService {
	t.Helper()
	logger := NewLoggerServiceWithDir(t.TempDir())
	t.Cleanup(logger.Close)
	return logger
}

func newTestJournal(t *testing.T, logger *LoggerService) *InvoiceJournalService {
	t.Helper()
	conn, err := database.Open(config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "journal.db")})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	journal := NewInvoiceJournalService(logger)
	journal.SetDB(conn)
	return journal
}

func newTestInvoiceService(t *testing.T, host Host) *InvoiceService {
	t.Helper()
	logger := newTestLogger(t)
	settings := InvoiceSettings{
		ShopName:     "Cookies Bakery",
		Language:     "en",
		DateLayout:   config.DefaultDateLayout,
		CopyFeedback: 50 * time.Millisecond,
	}
	svc := NewInvoiceService(settings, host, logger, newTestJournal(t, logger), NewGoogleSheetsService(config.GoogleSheetsConfig{}))
	svc.now = func() time.Time { return fixedNow }
	t.Cleanup(svc.Close)
	return svc
}

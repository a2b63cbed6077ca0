package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"BakeryPOS/app/config"
	"BakeryPOS/app/models"
)

var (
	ErrNoOpenInvoice   = errors.New("no invoice is open")
	ErrPrintNotArmed   = errors.New("print has not been requested")
	ErrExportCancelled = errors.New("export cancelled")
)

const sheetsExportTimeout = 30 * time.Second

// PrintState is the two-step print confirmation state
type PrintState string

const (
	PrintIdle  PrintState = "idle"
	PrintArmed PrintState = "armed"
)

// DisplayPublisher pushes the open invoice to customer-facing displays
type DisplayPublisher interface {
	BroadcastInvoice(preview interface{})
	BroadcastInvoiceClosed()
}

// InvoiceSettings are the config values the preview depends on
type InvoiceSettings struct {
	ShopName       string
	Language       string
	CurrencySuffix string
	DateLayout     string
	CopyFeedback   time.Duration
	SheetName      string
	IncludeQR      bool
}

// InvoiceSettingsFromConfig maps the application config to preview settings
func InvoiceSettingsFromConfig(cfg *config.AppConfig) InvoiceSettings {
	feedback := cfg.Invoice.CopyFeedbackMs
	if feedback <= 0 {
		feedback = config.DefaultCopyFeedbackMs
	}
	return InvoiceSettings{
		ShopName:       cfg.Business.Name,
		Language:       cfg.Invoice.Language,
		CurrencySuffix: cfg.Business.CurrencySuffix,
		DateLayout:     cfg.Invoice.DateLayout,
		CopyFeedback:   time.Duration(feedback) * time.Millisecond,
		SheetName:      cfg.Invoice.SheetName,
		IncludeQR:      cfg.Invoice.IncludeQR,
	}
}

// InvoicePreview is what the frontend renders: the derived view plus UI state
type InvoicePreview struct {
	View       *InvoiceView `json:"view"`
	HTML       string       `json:"html"`
	Copied     bool         `json:"copied"`
	PrintState PrintState   `json:"print_state"`
}

// InvoiceService owns the open invoice preview and its export actions
type InvoiceService struct {
	mu       sync.Mutex
	host     Host
	logger   *LoggerService
	journal  *InvoiceJournalService
	sheets   *GoogleSheetsService
	display  DisplayPublisher
	settings InvoiceSettings
	now      func() time.Time

	open       bool
	items      []models.SaleItem
	lease      *PrintModeLease
	copied     bool
	copyTimers []*time.Timer
	session    uint64
	printState PrintState
}

// NewInvoiceService creates the invoice preview service
func NewInvoiceService(settings InvoiceSettings, host Host, logger *LoggerService, journal *InvoiceJournalService, sheets *GoogleSheetsService) *InvoiceService {
	if settings.CopyFeedback <= 0 {
		settings.CopyFeedback = config.DefaultCopyFeedbackMs * time.Millisecond
	}
	return &InvoiceService{
		host:       host,
		logger:     logger,
		journal:    journal,
		sheets:     sheets,
		settings:   settings,
		now:        time.Now,
		printState: PrintIdle,
	}
}

// SetDisplay attaches the customer display hub
func (s *InvoiceService) SetDisplay(display DisplayPublisher) {
	s.mu.Lock()
	s.display = display
	s.mu.Unlock()
}

// Open shows a preview for items, replacing any invoice already open
func (s *InvoiceService) Open(items []models.SaleItem) (*InvoicePreview, error) {
	s.mu.Lock()
	if s.open {
		s.resetLocked()
	}

	s.items = append([]models.SaleItem(nil), items...)
	s.open = true
	s.session++
	s.lease = AcquirePrintMode(s.host)

	preview, err := s.previewLocked()
	if err != nil {
		s.resetLocked()
		s.mu.Unlock()
		return nil, err
	}
	display := s.display
	s.mu.Unlock()

	s.logger.LogInfo("Invoice preview opened", fmt.Sprintf("items=%d total=%s", len(items), preview.View.GrandTotalText))
	if display != nil {
		display.BroadcastInvoice(preview)
	}
	return preview, nil
}

// Close dismisses the preview; safe to call when nothing is open
func (s *InvoiceService) Close() {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return
	}
	s.resetLocked()
	display := s.display
	s.mu.Unlock()

	s.logger.LogInfo("Invoice preview closed")
	if display != nil {
		display.BroadcastInvoiceClosed()
	}
}

// resetLocked releases the print-mode lease and drops all local state
func (s *InvoiceService) resetLocked() {
	s.lease.Release()
	s.lease = nil
	for _, t := range s.copyTimers {
		t.Stop()
	}
	s.copyTimers = nil
	s.copied = false
	s.printState = PrintIdle
	s.items = nil
	s.open = false
	s.session++
}

// IsOpen reports whether a preview is showing
func (s *InvoiceService) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// GetPreview re-derives the preview from the open items
func (s *InvoiceService) GetPreview() (*InvoicePreview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, ErrNoOpenInvoice
	}
	return s.previewLocked()
}

func (s *InvoiceService) viewLocked() *InvoiceView {
	return BuildInvoice(s.items, InvoiceOptions{
		ShopName:       s.settings.ShopName,
		Language:       s.settings.Language,
		CurrencySuffix: s.settings.CurrencySuffix,
		DateLayout:     s.settings.DateLayout,
		Now:            s.now(),
	})
}

func (s *InvoiceService) previewLocked() (*InvoicePreview, error) {
	view := s.viewLocked()
	html, err := RenderInvoiceHTML(view, s.settings.IncludeQR)
	if err != nil {
		return nil, err
	}
	return &InvoicePreview{
		View:       view,
		HTML:       html,
		Copied:     s.copied,
		PrintState: s.printState,
	}, nil
}

// snapshot returns the current view and session id
func (s *InvoiceService) snapshot() (*InvoiceView, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, 0, ErrNoOpenInvoice
	}
	return s.viewLocked(), s.session, nil
}

// CopyText copies the text summary to the clipboard. On success the copied
// indicator turns on and switches itself off after the feedback delay.
// A failed write leaves the indicator off.
func (s *InvoiceService) CopyText() error {
	view, session, err := s.snapshot()
	if err != nil {
		return err
	}

	if err := s.host.ClipboardSetText(InvoiceText(view)); err != nil {
		s.logger.LogWarning("Clipboard write failed", err.Error())
		s.journal.Record(view, models.ActionCopyText, models.ActionStatusFailed, "", err)
		return fmt.Errorf("failed to copy invoice text: %w", err)
	}

	s.mu.Lock()
	if s.session == session {
		s.copied = true
		s.copyTimers = append(s.copyTimers, time.AfterFunc(s.settings.CopyFeedback, func() {
			s.clearCopied(session)
		}))
		s.host.Emit(EventInvoiceCopied, true)
	}
	s.mu.Unlock()

	s.journal.Record(view, models.ActionCopyText, models.ActionStatusSuccess, "", nil)
	return nil
}

func (s *InvoiceService) clearCopied(session uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != session {
		return
	}
	s.copied = false
	s.host.Emit(EventInvoiceCopied, false)
}

// IsCopied reports whether the copied indicator is showing
func (s *InvoiceService) IsCopied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copied
}

// ExportSpreadsheet builds the workbook and hands it to the save dialog.
// It returns the saved path.
func (s *InvoiceService) ExportSpreadsheet() (string, error) {
	view, _, err := s.snapshot()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := WriteSpreadsheet(&buf, view, s.settings.SheetName); err != nil {
		s.journal.Record(view, models.ActionExportSpreadsheet, models.ActionStatusFailed, "", err)
		return "", err
	}

	path, err := s.host.SaveFile(SpreadsheetFileName(s.now()), view.Labels.ExportExcel, buf.Bytes())
	if err != nil {
		s.logger.LogError("Spreadsheet export failed", err)
		s.journal.Record(view, models.ActionExportSpreadsheet, models.ActionStatusFailed, "", err)
		return "", err
	}
	if path == "" {
		s.journal.Record(view, models.ActionExportSpreadsheet, models.ActionStatusCancelled, "", nil)
		return "", ErrExportCancelled
	}

	s.logger.LogInfo("Invoice spreadsheet exported", path)
	s.journal.Record(view, models.ActionExportSpreadsheet, models.ActionStatusSuccess, path, nil)
	return path, nil
}

// GetPrintState returns the current print confirmation state
func (s *InvoiceService) GetPrintState() PrintState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.printState
}

// ArmPrint is the first press of the print button
func (s *InvoiceService) ArmPrint() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrNoOpenInvoice
	}
	if s.printState == PrintIdle {
		s.printState = PrintArmed
		s.host.Emit(EventInvoicePrintArm, true)
	}
	return nil
}

// CancelPrint disarms a pending print without printing
func (s *InvoiceService) CancelPrint() error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrNoOpenInvoice
	}
	if s.printState != PrintArmed {
		s.mu.Unlock()
		return nil
	}
	s.printState = PrintIdle
	s.host.Emit(EventInvoicePrintArm, false)
	view := s.viewLocked()
	s.mu.Unlock()

	s.journal.Record(view, models.ActionPrintCancelled, models.ActionStatusCancelled, "", nil)
	return nil
}

// ConfirmPrint opens the print dialog once and returns to idle
func (s *InvoiceService) ConfirmPrint() error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrNoOpenInvoice
	}
	if s.printState != PrintArmed {
		s.mu.Unlock()
		return ErrPrintNotArmed
	}
	s.printState = PrintIdle
	s.host.Emit(EventInvoicePrintArm, false)
	view := s.viewLocked()
	s.mu.Unlock()

	if err := s.host.Print(); err != nil {
		s.logger.LogError("Print failed", err)
		s.journal.Record(view, models.ActionPrint, models.ActionStatusFailed, "", err)
		return fmt.Errorf("failed to print invoice: %w", err)
	}

	s.journal.Record(view, models.ActionPrint, models.ActionStatusSuccess, "", nil)
	return nil
}

// ExportToSheets appends the open invoice to the configured Google Sheet
func (s *InvoiceService) ExportToSheets() error {
	view, _, err := s.snapshot()
	if err != nil {
		return err
	}
	if !s.sheets.IsEnabled() {
		return ErrSheetsDisabled
	}

	ctx, cancel := s.actionContext(sheetsExportTimeout)
	defer cancel()

	if err := s.sheets.AppendInvoice(ctx, view); err != nil {
		s.logger.LogError("Google Sheets export failed", err)
		s.journal.Record(view, models.ActionExportSheets, models.ActionStatusFailed, "", err)
		return err
	}

	s.journal.Record(view, models.ActionExportSheets, models.ActionStatusSuccess, "", nil)
	return nil
}

// actionContext bounds a network call by timeout and by the window lifetime,
// so quitting the app cancels an upload still in flight
func (s *InvoiceService) actionContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(s.host.Context(), timeout)
}

// ListRecentActions returns the latest journal entries
func (s *InvoiceService) ListRecentActions(limit int) ([]models.InvoiceAction, error) {
	if s.journal == nil {
		return nil, fmt.Errorf("invoice journal not available")
	}
	return s.journal.ListRecentActions(limit)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"BakeryPOS/app/config"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ErrSheetsDisabled is returned when the Sheets export is switched off or incomplete
var ErrSheetsDisabled = errors.New("Google Sheets export is disabled")

// GoogleSheetsService appends invoices to a Google Sheets tab
type GoogleSheetsService struct {
	config config.GoogleSheetsConfig
}

// NewGoogleSheetsService creates a Sheets exporter for the given settings
func NewGoogleSheetsService(cfg config.GoogleSheetsConfig) *GoogleSheetsService {
	return &GoogleSheetsService{config: cfg}
}

// IsEnabled reports whether exports can be attempted
func (s *GoogleSheetsService) IsEnabled() bool {
	return s != nil && s.config.Enabled && s.config.PrivateKey != "" && s.config.SpreadsheetID != ""
}

// SheetsRows prefixes every spreadsheet row with the invoice date
func SheetsRows(view *InvoiceView) [][]interface{} {
	rows := SpreadsheetRows(view)
	out := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		out = append(out, append([]interface{}{view.Date}, row...))
	}
	return out
}

func (s *GoogleSheetsService) newClient(ctx context.Context) (*sheets.Service, error) {
	creds, err := google.CredentialsFromJSON(ctx, []byte(s.config.PrivateKey), sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}

// TestConnection checks that the spreadsheet is reachable with the configured key
func (s *GoogleSheetsService) TestConnection(ctx context.Context) error {
	if !s.IsEnabled() {
		return ErrSheetsDisabled
	}

	srv, err := s.newClient(ctx)
	if err != nil {
		return err
	}
	if _, err := srv.Spreadsheets.Get(s.config.SpreadsheetID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to access spreadsheet: %w", err)
	}
	return nil
}

// AppendInvoice appends the invoice rows below the existing data
func (s *GoogleSheetsService) AppendInvoice(ctx context.Context, view *InvoiceView) error {
	if !s.IsEnabled() {
		return ErrSheetsDisabled
	}

	srv, err := s.newClient(ctx)
	if err != nil {
		return err
	}

	if err := s.ensureHeaders(ctx, srv, view.Labels); err != nil {
		return fmt.Errorf("failed to ensure headers: %w", err)
	}

	valueRange := &sheets.ValueRange{Values: SheetsRows(view)}
	sheetRange := fmt.Sprintf("%s!A:F", s.config.SheetName)
	_, err = srv.Spreadsheets.Values.Append(s.config.SpreadsheetID, sheetRange, valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("unable to append data: %w", err)
	}

	log.Printf("[SHEETS] Appended %d rows to %s", len(valueRange.Values), s.config.SheetName)
	return nil
}

// ensureHeaders writes the header row when the first row is empty or short
func (s *GoogleSheetsService) ensureHeaders(ctx context.Context, srv *sheets.Service, labels InvoiceLabels) error {
	sheetRange := fmt.Sprintf("%s!A1:F1", s.config.SheetName)
	resp, err := srv.Spreadsheets.Values.Get(s.config.SpreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return err
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) >= 6 {
		return nil
	}

	headers := append([]interface{}{labels.DateLabel}, SpreadsheetHeaders(labels)...)
	_, err = srv.Spreadsheets.Values.Update(s.config.SpreadsheetID, sheetRange, &sheets.ValueRange{
		Values: [][]interface{}{headers},
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	return err
}

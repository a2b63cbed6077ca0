package services

import (
	"context"
	"testing"

	"BakeryPOS/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleSheetsIsEnabled(t *testing.T) {
	var nilService *GoogleSheetsService
	assert.False(t, nilService.IsEnabled())

	assert.False(t, NewGoogleSheetsService(config.GoogleSheetsConfig{Enabled: true}).IsEnabled())
	assert.False(t, NewGoogleSheetsService(config.GoogleSheetsConfig{SpreadsheetID: "x", PrivateKey: "{}"}).IsEnabled())
	assert.True(t, NewGoogleSheetsService(config.GoogleSheetsConfig{Enabled: true, SpreadsheetID: "x", PrivateKey: "{}"}).IsEnabled())
}

func TestGoogleSheetsDisabledShortCircuits(t *testing.T) {
	svc := NewGoogleSheetsService(config.GoogleSheetsConfig{})
	view := BuildInvoice(sampleItems(), InvoiceOptions{Now: fixedNow})

	assert.ErrorIs(t, svc.AppendInvoice(context.Background(), view), ErrSheetsDisabled)
	assert.ErrorIs(t, svc.TestConnection(context.Background()), ErrSheetsDisabled)
}

func TestGoogleSheetsInvalidCredentials(t *testing.T) {
	svc := NewGoogleSheetsService(config.GoogleSheetsConfig{Enabled: true, SpreadsheetID: "x", SheetName: "Invoices", PrivateKey: "not json"})
	view := BuildInvoice(sampleItems(), InvoiceOptions{Now: fixedNow})

	err := svc.AppendInvoice(context.Background(), view)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid service account credentials")
}

func TestSheetsRowsPrefixDate(t *testing.T) {
	view := BuildInvoice(sampleItems(), InvoiceOptions{Now: fixedNow})
	rows := SheetsRows(view)

	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, "09/03/2024", row[0])
		assert.Len(t, row, 6)
	}
	assert.Equal(t, "A", rows[0][1])
}

package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"BakeryPOS/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSpreadsheetFileName(t *testing.T) {
	assert.Equal(t, "invoice-1710000000123.xlsx", SpreadsheetFileName(time.UnixMilli(1710000000123)))
}

func TestSpreadsheetRows(t *testing.T) {
	view := BuildInvoice(sampleItems(), InvoiceOptions{Now: fixedNow})
	rows := SpreadsheetRows(view)

	require.Len(t, rows, 3)
	assert.Equal(t, []interface{}{"A", "Customer #1", 2.0, 1000.0, 2000.0}, rows[0])
	assert.Equal(t, []interface{}{"B", "Customer #1", 1.0, 500.0, 500.0}, rows[1])

	total := rows[2]
	assert.Equal(t, "Grand total", total[0])
	assert.Equal(t, 2500.0, total[len(total)-1])
}

func TestWriteSpreadsheet(t *testing.T) {
	view := BuildInvoice(sampleItems(), InvoiceOptions{Now: fixedNow})

	var buf bytes.Buffer
	require.NoError(t, WriteSpreadsheet(&buf, view, ""))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Invoice"}, f.GetSheetList())

	rows, err := f.GetRows("Invoice")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Item", "Customer", "Quantity", "Price", "Total"}, rows[0])
	assert.Equal(t, "A", rows[1][0])
	assert.Equal(t, "Grand total", rows[3][0])
	assert.Equal(t, "2500", rows[3][4])

	width, err := f.GetColWidth("Invoice", "A")
	require.NoError(t, err)
	assert.Equal(t, 24.0, width)
}

func TestWriteSpreadsheetRowCountMatchesItems(t *testing.T) {
	items := make([]models.SaleItem, 0, 7)
	for i := 0; i < 7; i++ {
		items = append(items, models.SaleItem{Name: "Item", Quantity: 1, Price: 10, CustomerNumber: i})
	}
	view := BuildInvoice(items, InvoiceOptions{Now: fixedNow})

	var buf bytes.Buffer
	require.NoError(t, WriteSpreadsheet(&buf, view, "Daily"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Daily")
	require.NoError(t, err)
	assert.Len(t, rows, 1+len(items)+1)
	assert.Equal(t, "70", rows[len(rows)-1][4])
}

func TestSheetNameTruncated(t *testing.T) {
	view := BuildInvoice(nil, InvoiceOptions{Language: "ar", Now: fixedNow})
	assert.Equal(t, "الفاتورة", sheetName(view, ""))
	assert.Len(t, []rune(sheetName(view, strings.Repeat("x", 40))), 31)
}

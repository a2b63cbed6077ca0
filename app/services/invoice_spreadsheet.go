package services

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// SpreadsheetContentType is the MIME type of the exported file
const SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SpreadsheetFileName returns invoice-<unix-ms>.xlsx
func SpreadsheetFileName(now time.Time) string {
	return fmt.Sprintf("invoice-%d.xlsx", now.UnixMilli())
}

// SpreadsheetHeaders returns the five column headers in export order
func SpreadsheetHeaders(labels InvoiceLabels) []interface{} {
	return []interface{}{labels.ColItem, labels.ColCustomer, labels.ColQuantity, labels.ColPrice, labels.ColTotal}
}

// SpreadsheetRows returns one row per line followed by the grand total row.
// The total row zeroes quantity and price and carries the total last.
func SpreadsheetRows(view *InvoiceView) [][]interface{} {
	rows := make([][]interface{}, 0, len(view.Lines)+1)
	for _, line := range view.Lines {
		rows = append(rows, []interface{}{
			line.Name,
			line.Customer,
			line.Quantity,
			line.Price,
			line.LineTotal.InexactFloat64(),
		})
	}
	rows = append(rows, []interface{}{
		view.Labels.GrandTotal,
		"",
		0,
		0,
		view.GrandTotal.InexactFloat64(),
	})
	return rows
}

// sheetName picks the tab name; Excel caps names at 31 characters
func sheetName(view *InvoiceView, override string) string {
	name := override
	if name == "" {
		name = view.Labels.SheetName
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}

// WriteSpreadsheet writes a single-sheet workbook with the header row and SpreadsheetRows
func WriteSpreadsheet(w io.Writer, view *InvoiceView, sheetOverride string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(view, sheetOverride)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	if err := sw.SetRow("A1", SpreadsheetHeaders(view.Labels)); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range SpreadsheetRows(view) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if err := f.SetColWidth(sheet, "A", "B", 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "C", "E", 14); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

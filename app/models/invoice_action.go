package models

import "time"

// Invoice action kinds recorded in the journal
const (
	ActionCopyText          = "copy_text"
	ActionExportSpreadsheet = "export_spreadsheet"
	ActionPrint             = "print"
	ActionPrintCancelled    = "print_cancelled"
	ActionExportSheets      = "export_sheets"
)

// Invoice action statuses
const (
	ActionStatusSuccess   = "success"
	ActionStatusFailed    = "failed"
	ActionStatusCancelled = "cancelled"
)

// InvoiceAction is one journal entry for a user action taken on an invoice preview
type InvoiceAction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Action        string    `gorm:"index;not null" json:"action"`
	ItemCount     int       `json:"item_count"`
	GrandTotal    float64   `json:"grand_total"`
	CustomerLabel string    `json:"customer_label"`
	FileName      string    `json:"file_name"` // Saved spreadsheet path, if any
	Status        string    `json:"status"`    // "success", "failed", "cancelled"
	Error         string    `json:"error"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

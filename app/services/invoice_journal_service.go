package services

import (
	"BakeryPOS/app/models"
	"fmt"
)

const maxJournalPage = 200

// InvoiceJournalService records the actions taken on invoice previews
type InvoiceJournalService struct {
	*BaseService
	logger *LoggerService
}

// NewInvoiceJournalService creates a journal on the package-wide database
func NewInvoiceJournalService(logger *LoggerService) *InvoiceJournalService {
	return &InvoiceJournalService{BaseService: NewBaseService(), logger: logger}
}

// Record stores one action. Failures are logged, never returned, so the
// journal can't block the action it describes.
func (s *InvoiceJournalService) Record(view *InvoiceView, action, status string, fileName string, actionErr error) {
	if s == nil {
		return
	}

	entry := &models.InvoiceAction{
		Action:   action,
		Status:   status,
		FileName: fileName,
	}
	if view != nil {
		entry.ItemCount = len(view.Lines)
		entry.GrandTotal = view.GrandTotal.InexactFloat64()
		entry.CustomerLabel = view.CustomerLabel
	}
	if actionErr != nil {
		entry.Error = actionErr.Error()
	}

	if err := s.Create(entry); err != nil && s.logger != nil {
		s.logger.LogWarning("Failed to record invoice action", fmt.Sprintf("%s: %v", action, err))
	}
}

// ListRecentActions returns the newest journal entries first
func (s *InvoiceJournalService) ListRecentActions(limit int) ([]models.InvoiceAction, error) {
	db := s.GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	if limit <= 0 || limit > maxJournalPage {
		limit = maxJournalPage
	}

	var actions []models.InvoiceAction
	if err := db.Order("created_at DESC, id DESC").Limit(limit).Find(&actions).Error; err != nil {
		return nil, fmt.Errorf("failed to list invoice actions: %w", err)
	}
	return actions, nil
}

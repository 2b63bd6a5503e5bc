package parser

import (
	"strings"

	"github.com/insightdelivered/statement-insights/internal/models"
)

// SBIStrategy handles State Bank of India statement text.
//
// SBI statements typically have this layout:
//
//	Txn Date | Value Date | Description | Ref No./Cheque No. | Debit | Credit | Balance
//
// Date format: DD Mon YYYY (e.g. "15 Jan 2024"). Rows carry both a
// transaction date and a value date.
type SBIStrategy struct {
	currency string
}

func NewSBIStrategy(currency string) *SBIStrategy {
	return &SBIStrategy{currency: currency}
}

func (s *SBIStrategy) ID() string {
	return "sbi"
}

func (s *SBIStrategy) CanParse(text string) float64 {
	lower := strings.ToLower(text)
	branded := strings.Contains(lower, "state bank of india") || strings.Contains(lower, "onlinesbi")
	headerish := strings.Contains(lower, "txn date") &&
		strings.Contains(lower, "value date")
	switch {
	case branded && headerish:
		return 0.95
	case branded:
		return 0.6
	case headerish:
		return 0.5
	}
	return 0
}

func (s *SBIStrategy) Parse(text string) ([]models.Transaction, error) {
	rows := extractRows(text, sbiHeader)
	return resolveRows(rows, s.ID(), s.currency), nil
}

func sbiHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "date") &&
		(strings.Contains(lower, "description") || strings.Contains(lower, "particulars")) &&
		(strings.Contains(lower, "debit") || strings.Contains(lower, "withdrawal")) &&
		(strings.Contains(lower, "credit") || strings.Contains(lower, "deposit")) &&
		strings.Contains(lower, "balance")
}

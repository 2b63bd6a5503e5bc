package parser

import (
	"strings"

	"github.com/insightdelivered/statement-insights/internal/models"
)

// ICICIStrategy handles ICICI Bank statement text.
//
// ICICI statements typically have this layout:
//
//	Value Date | Transaction Date | Cheque Number | Transaction Remarks | Withdrawal Amount (INR) | Deposit Amount (INR) | Balance (INR)
//
// Date format: DD/MM/YYYY or DD-Mon-YYYY depending on channel.
type ICICIStrategy struct {
	currency string
}

func NewICICIStrategy(currency string) *ICICIStrategy {
	return &ICICIStrategy{currency: currency}
}

func (s *ICICIStrategy) ID() string {
	return "icici"
}

func (s *ICICIStrategy) CanParse(text string) float64 {
	lower := strings.ToLower(text)
	branded := strings.Contains(lower, "icici bank") || strings.Contains(lower, "icicibank.com")
	headerish := strings.Contains(lower, "transaction remarks") &&
		strings.Contains(lower, "withdrawal amount")
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

func (s *ICICIStrategy) Parse(text string) ([]models.Transaction, error) {
	rows := extractRows(text, iciciHeader)
	return resolveRows(rows, s.ID(), s.currency), nil
}

func iciciHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "date") &&
		(strings.Contains(lower, "remarks") || strings.Contains(lower, "particulars")) &&
		strings.Contains(lower, "withdrawal") &&
		strings.Contains(lower, "deposit") &&
		strings.Contains(lower, "balance")
}

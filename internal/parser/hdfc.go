package parser

import (
	"strings"

	"github.com/insightdelivered/statement-insights/internal/models"
)

// HDFCStrategy handles HDFC Bank statement text.
//
// HDFC statements typically have this layout:
//
//	Date | Narration | Chq./Ref.No. | Value Dt | Withdrawal Amt. | Deposit Amt. | Closing Balance
//
// Date format: DD/MM/YY. Narrations routinely wrap across several source
// lines (UPI handle, reference, remarks).
type HDFCStrategy struct {
	currency string
}

func NewHDFCStrategy(currency string) *HDFCStrategy {
	return &HDFCStrategy{currency: currency}
}

func (s *HDFCStrategy) ID() string {
	return "hdfc"
}

// CanParse sniffs HDFC branding and header phrasing. Branding plus the
// characteristic narration/withdrawal header scores near 1; branding alone
// scores lower.
func (s *HDFCStrategy) CanParse(text string) float64 {
	lower := strings.ToLower(text)
	branded := strings.Contains(lower, "hdfc bank") || strings.Contains(lower, "hdfcbank.com")
	headerish := strings.Contains(lower, "narration") &&
		strings.Contains(lower, "withdrawal amt")
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

func (s *HDFCStrategy) Parse(text string) ([]models.Transaction, error) {
	rows := extractRows(text, hdfcHeader)
	return resolveRows(rows, s.ID(), s.currency), nil
}

func hdfcHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "date") &&
		strings.Contains(lower, "narration") &&
		strings.Contains(lower, "withdrawal") &&
		strings.Contains(lower, "deposit") &&
		strings.Contains(lower, "balance")
}

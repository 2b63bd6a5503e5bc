package parser

import (
	"strings"

	"github.com/insightdelivered/statement-insights/internal/models"
)

// GenericStrategy is the single fallback for statements no bank-specific
// strategy claims. It sniffs generic statement vocabulary only, so any
// branded strategy with the same extraction quality outranks it on the
// hint term.
type GenericStrategy struct {
	currency string
}

func NewGenericStrategy(currency string) *GenericStrategy {
	return &GenericStrategy{currency: currency}
}

func (s *GenericStrategy) ID() string {
	return "generic"
}

// CanParse scores generic statement vocabulary: column words plus the word
// "statement" itself. Never reaches bank-branded confidence.
func (s *GenericStrategy) CanParse(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0
	if strings.Contains(lower, "statement") {
		score += 0.1
	}
	if strings.Contains(lower, "balance") {
		score += 0.1
	}
	if strings.Contains(lower, "withdrawal") || strings.Contains(lower, "debit") {
		score += 0.1
	}
	if strings.Contains(lower, "deposit") || strings.Contains(lower, "credit") {
		score += 0.1
	}
	if score > 0 {
		score += 0.05
	}
	return score
}

func (s *GenericStrategy) Parse(text string) ([]models.Transaction, error) {
	rows := extractRows(text, genericHeader)
	return resolveRows(rows, s.ID(), s.currency), nil
}

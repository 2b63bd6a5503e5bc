package models

import (
	"github.com/shopspring/decimal"
)

// DRCR marks the direction of a transaction or a running balance.
type DRCR string

const (
	DR DRCR = "DR"
	CR DRCR = "CR"
)

// Transaction is one normalized, signed ledger entry. It is immutable once
// produced by the winning parsing strategy: the insights engine and any
// presentation layer consume it read-only.
type Transaction struct {
	ID           string          `json:"id"`
	Date         string          `json:"date"` // YYYY-MM-DD
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"` // positive = credit, negative = debit
	DRCR         DRCR            `json:"drCr"`
	Currency     string          `json:"currency"`
	Category     string          `json:"category"`
	Confidence   float64         `json:"confidence"`
	SourceParser string          `json:"sourceParser"`
}

// ParsedRow is the intermediate record a single strategy run extracts from
// the statement table before sign resolution. Amount fields are pointers
// because a row carries at most one authoritative amount source: the
// withdrawal/deposit pair, a bare transaction amount, or a balance alone.
type ParsedRow struct {
	Date        string // YYYY-MM-DD
	ValueDate   string // YYYY-MM-DD, optional
	Description string
	Withdrawal  *decimal.Decimal
	Deposit     *decimal.Decimal
	TxnAmount   *decimal.Decimal
	Balance     *decimal.Decimal
	BalanceType DRCR // sign hint for the running balance, "" if absent
}

// HasAmounts reports whether the row carries any numeric evidence at all.
func (r *ParsedRow) HasAmounts() bool {
	return r.Withdrawal != nil || r.Deposit != nil || r.TxnAmount != nil || r.Balance != nil
}

// Meta is collaborator-supplied document metadata passed through the
// pipeline unchanged, plus per-run identifiers added by the analyzer.
type Meta struct {
	RunID        string `json:"runId,omitempty"`
	PageCount    int    `json:"pageCount,omitempty"`
	LooksScanned bool   `json:"looksScanned,omitempty"`
	Note         string `json:"note,omitempty"`
}

// AnalysisResult is the value object returned once per analysis call.
type AnalysisResult struct {
	Transactions []Transaction `json:"transactions"`
	Insights     *Insights     `json:"insights"`
	Meta         Meta          `json:"meta"`
}

// Package analyzer is the single entry point of the core pipeline: one
// synchronous pass from normalized statement text to the analysis envelope.
// Each call owns every structure it produces; nothing is shared across
// concurrent invocations.
package analyzer

import (
	"github.com/google/uuid"

	"github.com/insightdelivered/statement-insights/internal/category"
	"github.com/insightdelivered/statement-insights/internal/insights"
	"github.com/insightdelivered/statement-insights/internal/models"
	"github.com/insightdelivered/statement-insights/internal/parser"
)

// DefaultCurrency is used when the caller supplies none.
const DefaultCurrency = "INR"

// Options carries per-call settings and collaborator metadata passed
// through to the envelope unchanged.
type Options struct {
	Currency     string
	PageCount    int
	LooksScanned bool
}

// Analyze runs the full pipeline over one statement text blob: strategy
// selection, categorization, insight derivation. It never fails hard; an
// unrecognized statement yields an empty, structurally valid envelope with
// an informational note.
func Analyze(text string, opts Options) *models.AnalysisResult {
	currency := opts.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	registry := parser.NewRegistry(currency)
	run, ok := registry.Run(text)

	txns := run.Transactions
	if txns == nil {
		txns = []models.Transaction{}
	}
	for i := range txns {
		txns[i].Category = category.Classify(txns[i].Description)
	}

	meta := models.Meta{
		RunID:        uuid.NewString(),
		PageCount:    opts.PageCount,
		LooksScanned: opts.LooksScanned,
	}
	if !ok {
		meta.Note = "no statement format recognized in the supplied text"
	} else if len(txns) == 0 {
		meta.Note = "statement format recognized but no transactions extracted"
	}

	return &models.AnalysisResult{
		Transactions: txns,
		Insights:     insights.Compute(txns),
		Meta:         meta,
	}
}

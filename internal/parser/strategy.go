package parser

import (
	"github.com/insightdelivered/statement-insights/internal/models"
)

// Strategy is one statement-format extraction variant. CanParse is a cheap
// vocabulary/branding sniff over the raw text; Parse performs the full
// extraction. Strategies are stateless: all per-run state lives inside a
// single Parse call.
type Strategy interface {
	ID() string
	CanParse(text string) float64
	Parse(text string) ([]models.Transaction, error)
}

// RunResult is the outcome of one strategy's run. All but the best-scoring
// result of a registry run are discarded.
type RunResult struct {
	ParserID     string
	Score        float64
	Transactions []models.Transaction
}

// Registry holds the ordered strategy collection. Registration order is the
// tie-break: when two strategies score identically, the earlier one wins.
type Registry struct {
	strategies []Strategy
}

// NewRegistry builds the default registry: the bank-specific strategies
// followed by the single generic fallback.
func NewRegistry(currency string) *Registry {
	r := &Registry{}
	r.Register(NewHDFCStrategy(currency))
	r.Register(NewICICIStrategy(currency))
	r.Register(NewSBIStrategy(currency))
	r.Register(NewGenericStrategy(currency))
	return r
}

// Register appends a strategy; order matters.
func (r *Registry) Register(s Strategy) {
	r.strategies = append(r.strategies, s)
}

// Run executes every strategy whose sniff hint is positive, scores each
// result, and returns the single best. A strategy that recognized the
// format but extracted nothing still outranks one that neither recognized
// nor extracted. Returns ok=false when no strategy produced a usable result.
func (r *Registry) Run(text string) (RunResult, bool) {
	best := RunResult{Score: -1}
	found := false

	for _, s := range r.strategies {
		hint := s.CanParse(text)
		if hint <= 0 {
			continue
		}

		txns, err := runIsolated(s, text)
		score := 0.0
		if err == nil {
			score = quality(txns, hint)
		}
		if score <= 0 {
			continue
		}
		if score > best.Score {
			best = RunResult{ParserID: s.ID(), Score: score, Transactions: txns}
			found = true
		}
	}
	return best, found
}

// quality scores one strategy's output. Non-empty results weigh transaction
// count by average confidence; empty results fall back to the sniff hint
// alone.
func quality(txns []models.Transaction, hint float64) float64 {
	if len(txns) == 0 {
		return hint * 5
	}
	sum := 0.0
	for _, t := range txns {
		sum += t.Confidence
	}
	avg := sum / float64(len(txns))
	return float64(len(txns))*(0.55+avg*0.45) + hint*25
}

// runIsolated shields the registry from a misbehaving strategy: a panic is
// converted into a failed run so the remaining strategies still compete.
func runIsolated(s Strategy, text string) (txns []models.Transaction, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			txns = nil
			err = &strategyPanicError{parserID: s.ID(), value: rec}
		}
	}()
	return s.Parse(text)
}

type strategyPanicError struct {
	parserID string
	value    interface{}
}

func (e *strategyPanicError) Error() string {
	return "strategy " + e.parserID + " panicked"
}

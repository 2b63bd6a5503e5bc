package parser

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-insights/internal/models"
)

// stubStrategy is a fixed-output strategy for registry behavior tests.
type stubStrategy struct {
	id    string
	hint  float64
	txns  []models.Transaction
	err   error
	panic bool
}

func (s *stubStrategy) ID() string                { return s.id }
func (s *stubStrategy) CanParse(string) float64   { return s.hint }
func (s *stubStrategy) Parse(string) ([]models.Transaction, error) {
	if s.panic {
		panic("boom")
	}
	return s.txns, s.err
}

func stubTxns(n int, confidence float64) []models.Transaction {
	txns := make([]models.Transaction, n)
	for i := range txns {
		txns[i] = models.Transaction{
			ID:         "stub",
			Amount:     decimal.New(-100, 0),
			DRCR:       models.DR,
			Confidence: confidence,
		}
	}
	return txns
}

func TestRegistryTieBreakIsRegistrationOrder(t *testing.T) {
	// Identical hints and identical output quality: the first registered
	// strategy must win, reproducibly.
	for i := 0; i < 50; i++ {
		r := &Registry{}
		r.Register(&stubStrategy{id: "first", hint: 0.5, txns: stubTxns(3, 0.8)})
		r.Register(&stubStrategy{id: "second", hint: 0.5, txns: stubTxns(3, 0.8)})

		result, ok := r.Run("anything")
		if !ok {
			t.Fatal("expected a winner")
		}
		if result.ParserID != "first" {
			t.Fatalf("run %d: got %q, want first-registered winner", i, result.ParserID)
		}
	}
}

func TestRegistryPrefersHigherQuality(t *testing.T) {
	r := &Registry{}
	r.Register(&stubStrategy{id: "sparse", hint: 0.3, txns: stubTxns(1, 0.5)})
	r.Register(&stubStrategy{id: "rich", hint: 0.9, txns: stubTxns(10, 0.85)})

	result, ok := r.Run("anything")
	if !ok {
		t.Fatal("expected a winner")
	}
	if result.ParserID != "rich" {
		t.Errorf("got %q, want rich", result.ParserID)
	}
}

func TestRegistryEmptyResultOutranksFailure(t *testing.T) {
	// A strategy that recognized the format but extracted nothing still
	// beats one that errored out.
	r := &Registry{}
	r.Register(&stubStrategy{id: "broken", hint: 0.9, err: errors.New("parse exploded")})
	r.Register(&stubStrategy{id: "recognized", hint: 0.8})

	result, ok := r.Run("anything")
	if !ok {
		t.Fatal("expected a winner")
	}
	if result.ParserID != "recognized" {
		t.Errorf("got %q, want recognized", result.ParserID)
	}
	if len(result.Transactions) != 0 {
		t.Errorf("expected empty transactions, got %d", len(result.Transactions))
	}
}

func TestRegistryIsolatesPanics(t *testing.T) {
	r := &Registry{}
	r.Register(&stubStrategy{id: "panicky", hint: 0.95, panic: true})
	r.Register(&stubStrategy{id: "steady", hint: 0.4, txns: stubTxns(2, 0.8)})

	result, ok := r.Run("anything")
	if !ok {
		t.Fatal("panic in one strategy must not abort the run")
	}
	if result.ParserID != "steady" {
		t.Errorf("got %q, want steady", result.ParserID)
	}
}

func TestRegistryNoUsableStrategy(t *testing.T) {
	r := &Registry{}
	r.Register(&stubStrategy{id: "silent", hint: 0})
	r.Register(&stubStrategy{id: "panicky", hint: 0.5, panic: true})

	if _, ok := r.Run("anything"); ok {
		t.Error("expected no winner")
	}
}

func TestRegistrySkipsZeroHintStrategies(t *testing.T) {
	ran := false
	r := &Registry{}
	r.Register(&runRecorder{ran: &ran})

	r.Run("anything")
	if ran {
		t.Error("strategy with zero hint must not be executed")
	}
}

type runRecorder struct {
	ran *bool
}

func (s *runRecorder) ID() string              { return "recorder" }
func (s *runRecorder) CanParse(string) float64 { return 0 }
func (s *runRecorder) Parse(string) ([]models.Transaction, error) {
	*s.ran = true
	return nil, nil
}

func TestQualityScoring(t *testing.T) {
	// count×(0.55+avgConf×0.45)+hint×25 for non-empty; hint×5 for empty.
	got := quality(stubTxns(4, 0.8), 0.5)
	want := 4*(0.55+0.8*0.45) + 0.5*25
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("quality: got %v, want %v", got, want)
	}

	if got := quality(nil, 0.5); got != 2.5 {
		t.Errorf("empty quality: got %v, want 2.5", got)
	}
}

func TestBankStrategySniffing(t *testing.T) {
	hdfcText := "HDFC Bank Ltd\nDate Narration Chq./Ref.No. Value Dt Withdrawal Amt. Deposit Amt. Closing Balance"
	sbiText := "State Bank of India\nTxn Date Value Date Description Debit Credit Balance"
	iciciText := "ICICI Bank\nValue Date Transaction Date Transaction Remarks Withdrawal Amount Deposit Amount Balance"
	plainText := "account statement\ndate particulars withdrawal deposit balance"

	hdfc := NewHDFCStrategy("INR")
	sbi := NewSBIStrategy("INR")
	icici := NewICICIStrategy("INR")
	generic := NewGenericStrategy("INR")

	if hdfc.CanParse(hdfcText) < 0.9 {
		t.Errorf("hdfc on branded text: %v", hdfc.CanParse(hdfcText))
	}
	if sbi.CanParse(sbiText) < 0.9 {
		t.Errorf("sbi on branded text: %v", sbi.CanParse(sbiText))
	}
	if icici.CanParse(iciciText) < 0.9 {
		t.Errorf("icici on branded text: %v", icici.CanParse(iciciText))
	}

	if hdfc.CanParse(plainText) != 0 {
		t.Errorf("hdfc on generic text should be 0, got %v", hdfc.CanParse(plainText))
	}

	g := generic.CanParse(plainText)
	if g <= 0 || g >= 0.9 {
		t.Errorf("generic hint should be low but positive, got %v", g)
	}
}

func TestEndToEndThreeRowScenario(t *testing.T) {
	// Withdrawal-only, deposit-only, then balance-only resolved against the
	// running balance carried from the previous row.
	text := `HDFC Bank Ltd
Date Narration Chq./Ref.No. Value Dt Withdrawal Amt. Deposit Amt. Closing Balance
02/01/24 UPI GROCERIES STORE 100.00 0.00 5,000.00
03/01/24 SALARY CREDIT ACME 0.00 200.00 5,200.00
04/01/24 CARD PAYMENT DINER 5,100.00`

	r := NewRegistry("INR")
	result, ok := r.Run(text)
	if !ok {
		t.Fatal("expected a winning strategy")
	}
	if result.ParserID != "hdfc" {
		t.Errorf("winner: got %q, want hdfc", result.ParserID)
	}

	txns := result.Transactions
	if len(txns) != 3 {
		t.Fatalf("transactions: got %d, want 3", len(txns))
	}

	// Row order preserved; signs per resolution rules 3, 2 and 4.
	wantAmounts := []string{"-100", "200", "-100"}
	wantDates := []string{"2024-01-02", "2024-01-03", "2024-01-04"}
	for i, txn := range txns {
		if txn.Date != wantDates[i] {
			t.Errorf("txn[%d].Date: got %q, want %q", i, txn.Date, wantDates[i])
		}
		want := decimal.RequireFromString(wantAmounts[i])
		if !txn.Amount.Equal(want) {
			t.Errorf("txn[%d].Amount: got %s, want %s", i, txn.Amount, want)
		}
		if txn.Currency != "INR" {
			t.Errorf("txn[%d].Currency: got %q", i, txn.Currency)
		}
	}

	if txns[2].Confidence != confBalanceDelta {
		t.Errorf("balance-delta confidence: got %v, want %v", txns[2].Confidence, confBalanceDelta)
	}
}

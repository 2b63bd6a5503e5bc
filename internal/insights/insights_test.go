package insights

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-insights/internal/models"
)

func txn(id, date, desc, amount string) models.Transaction {
	amt := decimal.RequireFromString(amount)
	drcr := models.CR
	if amt.IsNegative() {
		drcr = models.DR
	}
	return models.Transaction{
		ID:          id,
		Date:        date,
		Description: desc,
		Amount:      amt,
		DRCR:        drcr,
		Currency:    "INR",
		Category:    "uncategorized",
		Confidence:  0.8,
	}
}

func TestComputeTotals(t *testing.T) {
	txns := []models.Transaction{
		txn("1", "2024-01-02", "UPI SHOP", "-450.00"),
		txn("2", "2024-01-03", "SALARY", "50000.00"),
		txn("3", "2024-01-04", "ATM WDL", "-2000.00"),
	}

	ins := Compute(txns)

	if ins.Count != 3 {
		t.Errorf("count: got %d, want 3", ins.Count)
	}
	if !ins.TotalDebits.Equal(decimal.RequireFromString("2450")) {
		t.Errorf("totalDebits: got %s, want 2450", ins.TotalDebits)
	}
	if !ins.TotalCredits.Equal(decimal.RequireFromString("50000")) {
		t.Errorf("totalCredits: got %s, want 50000", ins.TotalCredits)
	}
	if !ins.NetFlow.Equal(decimal.RequireFromString("47550")) {
		t.Errorf("netFlow: got %s, want 47550", ins.NetFlow)
	}
	if ins.IncomeExpenseRatio == nil {
		t.Fatal("ratio should be defined when debits exist")
	}
}

func TestComputeRatioUndefinedWithoutDebits(t *testing.T) {
	ins := Compute([]models.Transaction{
		txn("1", "2024-01-03", "SALARY", "50000.00"),
	})
	if ins.IncomeExpenseRatio != nil {
		t.Errorf("ratio should be nil with zero debits, got %v", *ins.IncomeExpenseRatio)
	}
}

func TestComputeEmptyList(t *testing.T) {
	ins := Compute(nil)
	if ins.Count != 0 {
		t.Errorf("count: got %d", ins.Count)
	}
	if !ins.TotalDebits.IsZero() || !ins.TotalCredits.IsZero() || !ins.NetFlow.IsZero() {
		t.Error("totals over an empty set must be zero")
	}
	if ins.IncomeExpenseRatio != nil {
		t.Error("ratio must be undefined over an empty set")
	}
	if len(ins.Categories) != 0 || len(ins.Monthly) != 0 ||
		len(ins.Subscriptions) != 0 || len(ins.UnusualSpends) != 0 {
		t.Error("empty set must yield empty breakdowns")
	}
}

func TestComputeIdempotent(t *testing.T) {
	txns := []models.Transaction{
		txn("1", "2024-01-02", "UPI SHOP", "-450.00"),
		txn("2", "2024-02-03", "SALARY", "50000.00"),
		txn("3", "2024-02-04", "NETFLIX", "-199.00"),
	}

	a := Compute(txns)
	b := Compute(txns)
	if !reflect.DeepEqual(a, b) {
		t.Error("Compute is not idempotent over the same input")
	}
}

func TestComputeMonotonicTotals(t *testing.T) {
	var txns []models.Transaction
	prevSum := decimal.Zero

	for i := 0; i < 20; i++ {
		amount := fmt.Sprintf("%d.00", (i+1)*10)
		if i%2 == 0 {
			amount = "-" + amount
		}
		txns = append(txns, txn(fmt.Sprintf("t%d", i), "2024-01-02", "ROW", amount))

		ins := Compute(txns)
		sum := ins.TotalDebits.Add(ins.TotalCredits)
		if sum.LessThan(prevSum) {
			t.Fatalf("totalDebits+totalCredits decreased at step %d", i)
		}
		prevSum = sum

		if ins.NetFlow.GreaterThan(ins.TotalCredits) {
			t.Fatalf("netFlow exceeds totalCredits at step %d", i)
		}
	}
}

func TestCategoryBreakdownSorted(t *testing.T) {
	txns := []models.Transaction{
		txn("1", "2024-01-02", "A", "-100.00"),
		txn("2", "2024-01-03", "B", "-900.00"),
		txn("3", "2024-01-04", "C", "-50.00"),
	}
	txns[0].Category = "fees"
	txns[1].Category = "transfer"
	txns[2].Category = "cash"

	ins := Compute(txns)
	if len(ins.Categories) != 3 {
		t.Fatalf("categories: got %d, want 3", len(ins.Categories))
	}
	if ins.Categories[0].Category != "transfer" || ins.Categories[2].Category != "cash" {
		t.Errorf("categories not sorted by total descending: %+v", ins.Categories)
	}
}

func TestMonthlyFlows(t *testing.T) {
	txns := []models.Transaction{
		txn("1", "2024-02-02", "SPEND", "-300.00"),
		txn("2", "2024-01-03", "SALARY", "1000.00"),
		txn("3", "2024-01-20", "SPEND", "-400.00"),
	}

	ins := Compute(txns)
	if len(ins.Monthly) != 2 {
		t.Fatalf("months: got %d, want 2", len(ins.Monthly))
	}
	jan := ins.Monthly[0]
	if jan.Month != "2024-01" {
		t.Fatalf("months not chronological: first is %q", jan.Month)
	}
	if !jan.Income.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("jan income: got %s", jan.Income)
	}
	if !jan.Expense.Equal(decimal.RequireFromString("400")) {
		t.Errorf("jan expense: got %s", jan.Expense)
	}
	if !jan.Net.Equal(decimal.RequireFromString("600")) {
		t.Errorf("jan net: got %s", jan.Net)
	}
}

func TestNormalizeMerchant(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"UPI-NETFLIX-4432@ybl PAYMENT", "NETFLIX YBL"},
		{"POS 445566 AMAZON RETAIL", "AMAZON RETAIL"},
		{"NEFT TO LANDLORD REF 99", "LANDLORD"},
		{"ATM", ""},          // everything stripped
		{"UPI TO AB", ""},    // too short after stripping
		{"netflix", "NETFLIX"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeMerchant(tt.input); got != tt.expected {
				t.Errorf("NormalizeMerchant(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSubscriptionDetection(t *testing.T) {
	txns := []models.Transaction{
		txn("1", "2024-01-05", "NETFLIX", "-199.00"),
		txn("2", "2024-02-05", "NETFLIX", "-199.00"),
		txn("3", "2024-03-05", "NETFLIX", "-199.00"),
		// Same month twice: never qualifies.
		txn("4", "2024-01-07", "CHAIMAX CAFE", "-80.00"),
		txn("5", "2024-01-21", "CHAIMAX CAFE", "-80.00"),
		// Credits never qualify.
		txn("6", "2024-01-03", "SPOTIFY REFUND", "119.00"),
	}

	ins := Compute(txns)
	if len(ins.Subscriptions) != 1 {
		t.Fatalf("subscriptions: got %d, want 1 (%+v)", len(ins.Subscriptions), ins.Subscriptions)
	}

	sub := ins.Subscriptions[0]
	if sub.Merchant != "NETFLIX" {
		t.Errorf("merchant: got %q, want NETFLIX", sub.Merchant)
	}
	if sub.Count != 3 {
		t.Errorf("count: got %d, want 3", sub.Count)
	}
	if !sub.AvgAmount.Equal(decimal.RequireFromString("199")) {
		t.Errorf("avgAmount: got %s, want 199", sub.AvgAmount)
	}
	if !sub.TotalAmount.Equal(decimal.RequireFromString("597")) {
		t.Errorf("totalAmount: got %s, want 597", sub.TotalAmount)
	}
}

func TestUnusualSpendDetection(t *testing.T) {
	var txns []models.Transaction
	for i := 0; i < 9; i++ {
		txns = append(txns, txn(fmt.Sprintf("small%d", i), "2024-01-02", "COFFEE", "-100.00"))
	}
	txns = append(txns, txn("big", "2024-01-15", "JEWELLERY", "-5000.00"))

	ins := Compute(txns)
	if len(ins.UnusualSpends) != 1 {
		t.Fatalf("unusual spends: got %d, want 1", len(ins.UnusualSpends))
	}
	if ins.UnusualSpends[0].Transaction.ID != "big" {
		t.Errorf("flagged wrong transaction: %q", ins.UnusualSpends[0].Transaction.ID)
	}
}

func TestUnusualSpendAbsoluteFloor(t *testing.T) {
	// One debit of 500 among debits of 10: past the statistical threshold
	// but under the 1000 floor, so not flagged.
	var txns []models.Transaction
	for i := 0; i < 9; i++ {
		txns = append(txns, txn(fmt.Sprintf("tiny%d", i), "2024-01-02", "SNACK", "-10.00"))
	}
	txns = append(txns, txn("mid", "2024-01-15", "DINNER", "-500.00"))

	ins := Compute(txns)
	if len(ins.UnusualSpends) != 0 {
		t.Errorf("low-value statements must not be flagged, got %d", len(ins.UnusualSpends))
	}
}

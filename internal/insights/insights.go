// Package insights derives financial analytics from a transaction list.
// Every computation here is a stateless projection: insights are recomputed
// fresh from the list on each call and never updated in place.
package insights

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-insights/internal/models"
)

const (
	maxSubscriptions = 10
	maxUnusualSpends = 10

	// Debits below this magnitude are never flagged as unusual, so a
	// statement of uniformly small spends produces no noise flags.
	unusualAbsoluteFloor = 1000
)

// Compute derives the full insight set from a transaction list. The input
// is consumed read-only.
func Compute(txns []models.Transaction) *models.Insights {
	ins := &models.Insights{
		Count:         len(txns),
		TotalDebits:   decimal.Zero,
		TotalCredits:  decimal.Zero,
		NetFlow:       decimal.Zero,
		Categories:    []models.CategoryTotal{},
		Monthly:       []models.MonthlyFlow{},
		Subscriptions: []models.Subscription{},
		UnusualSpends: []models.UnusualSpend{},
	}

	for _, t := range txns {
		if isDebit(t) {
			ins.TotalDebits = ins.TotalDebits.Add(t.Amount.Abs())
		} else {
			ins.TotalCredits = ins.TotalCredits.Add(t.Amount.Abs())
		}
	}
	ins.NetFlow = ins.TotalCredits.Sub(ins.TotalDebits)
	if ins.TotalDebits.IsPositive() {
		ratio, _ := ins.TotalCredits.Div(ins.TotalDebits).Round(4).Float64()
		ins.IncomeExpenseRatio = &ratio
	}

	ins.Categories = categoryBreakdown(txns)
	ins.Monthly = monthlyFlows(txns)
	ins.Subscriptions = detectSubscriptions(txns)
	ins.UnusualSpends = detectUnusualSpends(txns)
	return ins
}

// isDebit follows the drCr marker; amount sign is the tie-breaker, though
// the two never disagree for transactions produced by this pipeline.
func isDebit(t models.Transaction) bool {
	if t.DRCR != "" {
		return t.DRCR == models.DR
	}
	return t.Amount.IsNegative()
}

func categoryBreakdown(txns []models.Transaction) []models.CategoryTotal {
	totals := map[string]*models.CategoryTotal{}
	for _, t := range txns {
		ct, ok := totals[t.Category]
		if !ok {
			ct = &models.CategoryTotal{Category: t.Category, Total: decimal.Zero}
			totals[t.Category] = ct
		}
		ct.Total = ct.Total.Add(t.Amount.Abs())
		ct.Count++
	}

	out := make([]models.CategoryTotal, 0, len(totals))
	for _, ct := range totals {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func monthlyFlows(txns []models.Transaction) []models.MonthlyFlow {
	months := map[string]*models.MonthlyFlow{}
	for _, t := range txns {
		if len(t.Date) < 7 {
			continue
		}
		key := t.Date[:7] // YYYY-MM
		mf, ok := months[key]
		if !ok {
			mf = &models.MonthlyFlow{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			months[key] = mf
		}
		if isDebit(t) {
			mf.Expense = mf.Expense.Add(t.Amount.Abs())
		} else {
			mf.Income = mf.Income.Add(t.Amount.Abs())
		}
	}

	out := make([]models.MonthlyFlow, 0, len(months))
	for _, mf := range months {
		mf.Net = mf.Income.Sub(mf.Expense)
		out = append(out, *mf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// merchantStopWords are payment-rail and bookkeeping tokens stripped before
// grouping repeated debits by merchant.
var merchantStopWords = map[string]bool{
	"UPI": true, "IMPS": true, "NEFT": true, "RTGS": true, "POS": true,
	"ATM": true, "TO": true, "BY": true, "TRANSFER": true, "PAYMENT": true,
	"DEBIT": true, "CREDIT": true, "REF": true, "TXN": true, "ID": true,
}

// NormalizeMerchant canonicalizes a description for recurring-transaction
// grouping: uppercase, stop words and all non-letter characters stripped,
// whitespace collapsed. Results shorter than 3 characters are too noisy to
// group and are reported as empty.
func NormalizeMerchant(description string) string {
	upper := strings.ToUpper(description)

	var b strings.Builder
	for _, r := range upper {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	var kept []string
	for _, tok := range strings.Fields(b.String()) {
		if !merchantStopWords[tok] {
			kept = append(kept, tok)
		}
	}
	merchant := strings.Join(kept, " ")
	if len(merchant) < 3 {
		return ""
	}
	return merchant
}

type merchantGroup struct {
	merchant string
	months   map[string]bool
	count    int
	total    decimal.Decimal
}

// detectSubscriptions groups debits by normalized merchant and reports
// groups recurring across at least two distinct months.
func detectSubscriptions(txns []models.Transaction) []models.Subscription {
	groups := map[string]*merchantGroup{}
	for _, t := range txns {
		if !isDebit(t) {
			continue
		}
		merchant := NormalizeMerchant(t.Description)
		if merchant == "" {
			continue
		}
		g, ok := groups[merchant]
		if !ok {
			g = &merchantGroup{merchant: merchant, months: map[string]bool{}, total: decimal.Zero}
			groups[merchant] = g
		}
		g.count++
		g.total = g.total.Add(t.Amount.Abs())
		if len(t.Date) >= 7 {
			g.months[t.Date[:7]] = true
		}
	}

	var subs []models.Subscription
	for _, g := range groups {
		if g.count < 2 || len(g.months) < 2 {
			continue
		}
		subs = append(subs, models.Subscription{
			Merchant:    g.merchant,
			Count:       g.count,
			AvgAmount:   g.total.Div(decimal.NewFromInt(int64(g.count))).Round(2),
			TotalAmount: g.total,
		})
	}

	sort.Slice(subs, func(i, j int) bool {
		if !subs[i].TotalAmount.Equal(subs[j].TotalAmount) {
			return subs[i].TotalAmount.GreaterThan(subs[j].TotalAmount)
		}
		return subs[i].Merchant < subs[j].Merchant
	})
	if len(subs) > maxSubscriptions {
		subs = subs[:maxSubscriptions]
	}
	if subs == nil {
		subs = []models.Subscription{}
	}
	return subs
}

// detectUnusualSpends flags debits whose magnitude exceeds both a
// statistical threshold over the batch and the absolute floor. The
// threshold uses the population standard deviation.
func detectUnusualSpends(txns []models.Transaction) []models.UnusualSpend {
	var debits []models.Transaction
	var magnitudes []float64
	for _, t := range txns {
		if isDebit(t) {
			debits = append(debits, t)
			mag, _ := t.Amount.Abs().Float64()
			magnitudes = append(magnitudes, mag)
		}
	}
	if len(debits) == 0 {
		return []models.UnusualSpend{}
	}

	mean := 0.0
	for _, m := range magnitudes {
		mean += m
	}
	mean /= float64(len(magnitudes))

	variance := 0.0
	for _, m := range magnitudes {
		variance += (m - mean) * (m - mean)
	}
	variance /= float64(len(magnitudes))
	stddev := math.Sqrt(variance)

	threshold := math.Max(mean*1.8, mean+2*stddev)
	thresholdDec := decimal.NewFromFloat(threshold).Round(2)
	floor := decimal.NewFromInt(unusualAbsoluteFloor)

	var flagged []models.UnusualSpend
	for _, t := range debits {
		mag := t.Amount.Abs()
		if mag.GreaterThan(thresholdDec) && mag.GreaterThan(floor) {
			flagged = append(flagged, models.UnusualSpend{Transaction: t, Threshold: thresholdDec})
		}
	}

	sort.Slice(flagged, func(i, j int) bool {
		mi := flagged[i].Transaction.Amount.Abs()
		mj := flagged[j].Transaction.Amount.Abs()
		if !mi.Equal(mj) {
			return mi.GreaterThan(mj)
		}
		return flagged[i].Transaction.ID < flagged[j].Transaction.ID
	})
	if len(flagged) > maxUnusualSpends {
		flagged = flagged[:maxUnusualSpends]
	}
	if flagged == nil {
		flagged = []models.UnusualSpend{}
	}
	return flagged
}

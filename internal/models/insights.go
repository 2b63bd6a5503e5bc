package models

import (
	"github.com/shopspring/decimal"
)

// Insights is a pure projection of a transaction list. It has no identity of
// its own and is recomputed fresh on demand, never updated incrementally.
type Insights struct {
	Count              int                 `json:"count"`
	TotalDebits        decimal.Decimal     `json:"totalDebits"`
	TotalCredits       decimal.Decimal     `json:"totalCredits"`
	NetFlow            decimal.Decimal     `json:"netFlow"`
	IncomeExpenseRatio *float64            `json:"incomeExpenseRatio,omitempty"` // nil when there are no debits
	Categories         []CategoryTotal     `json:"categories"`
	Monthly            []MonthlyFlow       `json:"monthly"`
	Subscriptions      []Subscription      `json:"subscriptions"`
	UnusualSpends      []UnusualSpend      `json:"unusualSpends"`
}

// CategoryTotal is the absolute spend/receive total for one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// MonthlyFlow is the income/expense summary for one YYYY-MM month.
type MonthlyFlow struct {
	Month   string          `json:"month"` // YYYY-MM
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// Subscription is a recurring-debit group keyed by normalized merchant.
type Subscription struct {
	Merchant    string          `json:"merchant"`
	Count       int             `json:"count"`
	AvgAmount   decimal.Decimal `json:"avgAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// UnusualSpend flags one debit whose magnitude exceeds the statistical
// threshold over the whole batch.
type UnusualSpend struct {
	Transaction Transaction     `json:"transaction"`
	Threshold   decimal.Decimal `json:"threshold"`
}

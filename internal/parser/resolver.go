package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-insights/internal/models"
)

// creditHintPattern decides the sign of a bare transaction amount when no
// structural evidence (separate columns or a balance delta) is available.
var creditHintPattern = regexp.MustCompile(`(?i)salary|interest|refund|credit|cr\b|deposit|cashback|received`)

// Confidence tiers per resolution rule. Explicit withdrawal/deposit columns
// are structurally reliable; balance-delta and credit-hint inference less
// so; a lone balance with only a DR/CR type is the weakest evidence.
const (
	confBothColumns  = 0.86
	confSingleColumn = 0.82
	confBalanceDelta = 0.68
	confCreditHint   = 0.62
	confBalanceOnly  = 0.50
	confNoAmount     = 0.30
)

// resolveRows converts extracted rows into signed transactions, threading
// the running-balance accumulator through the row sequence in source order.
// Opening-balance rows seed the accumulator and are excluded from output.
func resolveRows(rows []models.ParsedRow, parserID, currency string) []models.Transaction {
	var prevBalance *decimal.Decimal
	txns := make([]models.Transaction, 0, len(rows))

	for i, row := range rows {
		if isOpeningBalanceRow(row.Description) {
			prevBalance = signedBalance(row)
			continue
		}

		amount, confidence := resolveAmount(row, prevBalance)

		if b := signedBalance(row); b != nil {
			prevBalance = b
		}

		txn := models.Transaction{
			ID:           transactionID(parserID, row.Date, i),
			Date:         row.Date,
			Description:  row.Description,
			Amount:       amount,
			DRCR:         drcrForAmount(amount),
			Currency:     currency,
			Confidence:   confidence,
			SourceParser: parserID,
		}
		txns = append(txns, txn)
	}
	return txns
}

// resolveAmount applies the fixed resolution chain; the first applicable
// rule wins.
func resolveAmount(row models.ParsedRow, prevBalance *decimal.Decimal) (decimal.Decimal, float64) {
	withdrawal := positive(row.Withdrawal)
	deposit := positive(row.Deposit)

	switch {
	case deposit != nil && withdrawal != nil:
		return deposit.Sub(*withdrawal), confBothColumns
	case deposit != nil:
		return *deposit, confSingleColumn
	case withdrawal != nil:
		return withdrawal.Neg(), confSingleColumn
	}

	if row.Balance != nil && prevBalance != nil {
		b := signedBalance(row)
		return b.Sub(*prevBalance), confBalanceDelta
	}

	if row.TxnAmount != nil {
		if creditHintPattern.MatchString(row.Description) {
			return row.TxnAmount.Abs(), confCreditHint
		}
		return row.TxnAmount.Abs().Neg(), confCreditHint
	}

	if row.Balance != nil {
		if row.BalanceType == models.DR {
			return row.Balance.Neg(), confBalanceOnly
		}
		return *row.Balance, confBalanceOnly
	}

	return decimal.Zero, confNoAmount
}

// signedBalance returns the row's balance adjusted by its DR/CR type:
// DR balances carry negative sign. Nil when the row has no balance.
func signedBalance(row models.ParsedRow) *decimal.Decimal {
	if row.Balance == nil {
		return nil
	}
	b := *row.Balance
	if row.BalanceType == models.DR {
		b = b.Neg()
	}
	return &b
}

// positive filters out nil and zero column values: a zero withdrawal or
// deposit cell is an empty column, not evidence.
func positive(d *decimal.Decimal) *decimal.Decimal {
	if d == nil || !d.IsPositive() {
		return nil
	}
	return d
}

func isOpeningBalanceRow(desc string) bool {
	return strings.Contains(strings.ToLower(desc), "opening balance")
}

func drcrForAmount(amount decimal.Decimal) models.DRCR {
	if amount.IsNegative() {
		return models.DR
	}
	return models.CR
}

// transactionID is deterministic within one analysis run: the same input
// text through the same strategy always yields the same IDs.
func transactionID(parserID, date string, ordinal int) string {
	return fmt.Sprintf("%s-%s-%04d", parserID, date, ordinal)
}

package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-insights/internal/models"
)

// headerMatcher decides whether a line is the transaction table header.
// Everything before the first matching line is pre-table noise.
type headerMatcher func(line string) bool

// genericHeader recognizes the common Indian statement column set: a date
// column plus a value/transaction date column, a particulars column, and
// withdrawal/deposit/balance vocabulary.
func genericHeader(line string) bool {
	lower := strings.ToLower(line)
	hasDate := strings.Contains(lower, "date")
	hasSecondDate := strings.Contains(lower, "value") || strings.Contains(lower, "txn date") ||
		strings.Contains(lower, "transaction date")
	hasDesc := strings.Contains(lower, "particular") || strings.Contains(lower, "remark") ||
		strings.Contains(lower, "narration") || strings.Contains(lower, "description")
	hasWithdrawal := strings.Contains(lower, "withdrawal") || strings.Contains(lower, "debit")
	hasDeposit := strings.Contains(lower, "deposit") || strings.Contains(lower, "credit")
	hasBalance := strings.Contains(lower, "balance")
	return hasDate && hasSecondDate && hasDesc && hasWithdrawal && hasDeposit && hasBalance
}

var rowNumberPattern = regexp.MustCompile(`^\d{1,5}$`)

// pendingRow is a recognized row-start line split into its date tokens and
// the free-text remainder awaiting field extraction.
type pendingRow struct {
	date      string
	valueDate string
	freeText  string
}

// extractRows runs the table locator, row segmenter and field extractor over
// the full normalized text and returns rows in source order. Amount fields
// come from the row-start line's numeric tail; continuation lines accumulate
// into the description. Rows whose description resolves empty are dropped.
func extractRows(text string, header headerMatcher) []models.ParsedRow {
	lines := splitLines(text)

	inTable := false
	var rows []models.ParsedRow
	var cur *models.ParsedRow

	flush := func() {
		if cur == nil {
			return
		}
		cur.Description = strings.TrimSpace(cur.Description)
		if cur.Description != "" {
			rows = append(rows, *cur)
		}
		cur = nil
	}

	for _, line := range lines {
		if !inTable {
			if header(line) {
				inTable = true
			}
			continue
		}

		if p, ok := tryRowStart(line); ok {
			flush()
			row := extractFields(p)
			cur = &row
			continue
		}

		// Continuation line: fold into the current row's description.
		if cur != nil {
			cur.Description = strings.TrimSpace(cur.Description + " " + line)
		}
	}
	flush()

	return rows
}

// tryRowStart recognizes a new-row line: an optional bare row-number token,
// a leading date token, an optional second date token (the value date), then
// the remainder of the row.
func tryRowStart(line string) (pendingRow, bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return pendingRow{}, false
	}

	idx := 0
	if rowNumberPattern.MatchString(tokens[idx]) && idx+1 < len(tokens) {
		if _, n := leadingDate(tokens[idx+1:]); n > 0 {
			idx++
		}
	}

	iso, n := leadingDate(tokens[idx:])
	if n == 0 {
		return pendingRow{}, false
	}
	idx += n

	p := pendingRow{date: iso}

	if valueISO, vn := leadingDate(tokens[idx:]); vn > 0 {
		p.valueDate = valueISO
		idx += vn
	}

	p.freeText = strings.Join(tokens[idx:], " ")
	return p, true
}

// leadingDate matches a date at the head of a token slice and returns its
// ISO form plus the number of tokens consumed. "15 Jan 2024" spans three
// tokens; all other recognized forms are single tokens.
func leadingDate(tokens []string) (string, int) {
	if len(tokens) == 0 {
		return "", 0
	}
	if isDateToken(tokens[0]) {
		if iso, err := toISO(tokens[0]); err == nil {
			return iso, 1
		}
		return "", 0
	}
	if len(tokens) >= 3 {
		joined := tokens[0] + " " + tokens[1] + " " + tokens[2]
		if dateMonthPattern.MatchString(joined) {
			if iso, err := toISO(joined); err == nil {
				return iso, 3
			}
		}
	}
	return "", 0
}

// extractFields interprets the trailing numeric tokens of a row's free text.
// The last one, two or three monetary tokens map positionally to
// (balance), (txnAmount, balance) or (withdrawal, deposit, balance); the
// description is everything before the first of them.
func extractFields(p pendingRow) models.ParsedRow {
	row := models.ParsedRow{Date: p.date, ValueDate: p.valueDate}

	tokens := strings.Fields(p.freeText)
	end := len(tokens)

	// A trailing DR/CR after the balance qualifies the balance sign.
	if end > 0 && isDRCRToken(tokens[end-1]) {
		row.BalanceType = models.DRCR(strings.ToUpper(tokens[end-1]))
		end--
	}

	// Collect up to three trailing monetary tokens.
	var amounts []string
	start := end
	for start > 0 && len(amounts) < 3 && isAmountToken(tokens[start-1]) {
		amounts = append([]string{tokens[start-1]}, amounts...)
		start--
	}

	// A bare DR/CR immediately before the amounts is the balance-type
	// marker; pop it off the description.
	descEnd := start
	if row.BalanceType == "" && descEnd > 0 && isDRCRToken(tokens[descEnd-1]) {
		row.BalanceType = models.DRCR(strings.ToUpper(tokens[descEnd-1]))
		descEnd--
	}

	row.Description = strings.TrimSpace(strings.Join(tokens[:descEnd], " "))

	// No marker adjacent to the amounts: accept a standalone DR/CR word
	// anywhere in the free text.
	if row.BalanceType == "" {
		if m := drcrWordPattern.FindString(p.freeText); m != "" {
			row.BalanceType = models.DRCR(strings.ToUpper(m))
		}
	}

	switch len(amounts) {
	case 3:
		row.Withdrawal = magnitude(amounts[0])
		row.Deposit = magnitude(amounts[1])
		row.Balance = balanceValue(amounts[2], &row)
	case 2:
		row.TxnAmount = magnitude(amounts[0])
		row.Balance = balanceValue(amounts[1], &row)
	case 1:
		row.Balance = balanceValue(amounts[0], &row)
	}

	return row
}

// magnitude parses a monetary token into its non-negative value.
func magnitude(tok string) *decimal.Decimal {
	d, ok := parseAmountToken(tok)
	if !ok {
		return nil
	}
	d = d.Abs()
	return &d
}

// balanceValue parses a balance token. A negative balance (overdraft) is
// stored as its magnitude with the balance type forced to DR.
func balanceValue(tok string, row *models.ParsedRow) *decimal.Decimal {
	d, ok := parseAmountToken(tok)
	if !ok {
		return nil
	}
	if d.IsNegative() {
		d = d.Abs()
		row.BalanceType = models.DR
	}
	return &d
}

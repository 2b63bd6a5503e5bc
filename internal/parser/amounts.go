package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountTokenPattern matches a monetary token: optional sign, digits with
// optional thousands groups, and a mandatory 1–2 digit fraction. Integer-only
// tokens are deliberately excluded so reference/cheque numbers never read as
// money.
var amountTokenPattern = regexp.MustCompile(`^-?\d+(?:,\d+)*\.\d{1,2}$`)

// drcrWordPattern finds a standalone DR/CR marker anywhere in free text.
var drcrWordPattern = regexp.MustCompile(`(?i)\b(dr|cr)\b`)

// parseAmountToken converts "1,234.56" to a decimal. Tokens failing the
// grammar are rejected rather than coerced.
func parseAmountToken(tok string) (decimal.Decimal, bool) {
	if !amountTokenPattern.MatchString(tok) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(tok, ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// isAmountToken reports whether a token matches the monetary grammar.
func isAmountToken(tok string) bool {
	return amountTokenPattern.MatchString(tok)
}

// isDRCRToken reports whether a token is a bare DR/CR marker.
func isDRCRToken(tok string) bool {
	up := strings.ToUpper(tok)
	return up == "DR" || up == "CR"
}

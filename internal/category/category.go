// Package category assigns a coarse spending category to a transaction
// from its description. Classification is a pure, ordered keyword lookup:
// no state, no learning.
package category

import (
	"strings"
)

// Uncategorized is returned when no keyword matches.
const Uncategorized = "uncategorized"

type rule struct {
	keywords []string
	category string
}

// The table is ordered; the first matching rule wins.
var rules = []rule{
	{[]string{"upi", "imps", "neft", "rtgs"}, "transfer"},
	{[]string{"atm"}, "cash"},
	{[]string{"salary"}, "income"},
	{[]string{"interest"}, "interest"},
	{[]string{"emi", "loan"}, "loan"},
	{[]string{"charge", "fee"}, "fees"},
}

// Classify maps a description to its category by case-insensitive substring
// match against the fixed keyword table.
func Classify(description string) string {
	lower := strings.ToLower(description)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return Uncategorized
}

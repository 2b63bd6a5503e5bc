package extractor

import (
	"strings"
	"unicode"
)

// statementWords appear in virtually every bank statement. Extracted text
// containing none of them is almost certainly font-encoding garbage.
var statementWords = []string{
	"bank", "account", "balance", "date", "statement", "transaction",
	"withdrawal", "deposit", "credit", "debit", "narration", "particulars",
	"amount", "total", "opening", "closing", "branch", "page",
}

// isReadableText checks that pages contain enough text, that it is readable
// rather than binary garbage, and that it contains at least one word a
// statement would carry. Requires >50 chars and >60% readable ASCII.
func isReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsStatementWords(pages)
}

// textQuality returns the ratio of basic ASCII readable characters to total
// characters. A strict ASCII check is used on purpose: unicode.IsLetter is
// too broad and matches accented garbage from identity-encoded fonts.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				r == '.' || r == ',' || r == '-' || r == '/' || r == ':' ||
				r == '(' || r == ')' || r == '\'' || r == '"' || r == '*' ||
				r == '₹' || r == '$' || r == '£' || r == '%' || r == '&' ||
				r == '@' || r == '#' || r == '!' || r == '?' || r == '+' ||
				r == '=' {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func containsStatementWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range statementWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}

package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Date token grammars found in statement rows. A row starts with one of
// these, optionally after a bare row-number token.
var (
	// DD/MM/YYYY with '.', '/' or '-' separators and a 2- or 4-digit year.
	dateNumericPattern = regexp.MustCompile(`^(\d{1,2})([./-])(\d{1,2})[./-](\d{2}|\d{4})$`)
	// DD Mon YYYY or DD-Mon-YYYY with a 3-letter English month abbreviation.
	dateMonthPattern = regexp.MustCompile(`(?i)^(\d{1,2})[ -](jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[ -](\d{2}|\d{4})$`)
)

var monthAbbrevs = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// isDateToken reports whether a single whitespace-delimited token is a
// recognizable statement date.
func isDateToken(tok string) bool {
	return dateNumericPattern.MatchString(tok) || dateMonthPattern.MatchString(tok)
}

// toISO canonicalizes a date token to YYYY-MM-DD. Two-digit years pivot at
// 70: 70..99 map to 1970..1999, 00..69 map to 2000..2069.
func toISO(tok string) (string, error) {
	if m := dateNumericPattern.FindStringSubmatch(tok); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[3])
		year, err := expandYear(m[4])
		if err != nil {
			return "", err
		}
		return formatISO(year, month, day)
	}
	if m := dateMonthPattern.FindStringSubmatch(tok); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := monthAbbrevs[strings.ToLower(m[2])]
		year, err := expandYear(m[3])
		if err != nil {
			return "", err
		}
		return formatISO(year, month, day)
	}
	return "", fmt.Errorf("not a date token: %q", tok)
}

func expandYear(s string) (int, error) {
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if len(s) == 4 {
		return y, nil
	}
	if y >= 70 {
		return 1900 + y, nil
	}
	return 2000 + y, nil
}

func formatISO(year, month, day int) (string, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", fmt.Errorf("date out of range: %04d-%02d-%02d", year, month, day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

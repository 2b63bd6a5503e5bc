package extractor

import (
	"strings"
	"testing"
)

func TestIsReadableText(t *testing.T) {
	tests := []struct {
		name     string
		pages    []string
		expected bool
	}{
		{
			name:     "statement text passes",
			pages:    []string{"HDFC Bank statement of account\nDate Narration Withdrawal Deposit Balance\n02/01/24 UPI PAYMENT 450.00 0.00 9550.00"},
			expected: true,
		},
		{
			name:     "too short",
			pages:    []string{"Bank"},
			expected: false,
		},
		{
			name:     "font-encoding garbage",
			pages:    []string{strings.Repeat("�Ã©ß", 100)},
			expected: false,
		},
		{
			name:     "readable but not a statement",
			pages:    []string{strings.Repeat("the quick brown fox jumps over the lazy dog ", 5)},
			expected: false,
		},
		{
			name:     "empty",
			pages:    nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isReadableText(tt.pages); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTextQuality(t *testing.T) {
	if q := textQuality([]string{"plain ascii statement text 123.45"}); q < 0.99 {
		t.Errorf("ascii text quality: got %v", q)
	}
	if q := textQuality([]string{strings.Repeat("�", 50)}); q > 0.01 {
		t.Errorf("garbage quality: got %v", q)
	}
	if q := textQuality(nil); q != 0 {
		t.Errorf("empty quality: got %v", q)
	}
}

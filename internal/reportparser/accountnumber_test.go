package reportparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAccountNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "already masked token kept as-is",
			raw:      "601101XXXXXX",
			expected: "601101XXXXXX",
		},
		{
			name:     "lowercase mask uppercased",
			raw:      "517805xxxxxx",
			expected: "517805XXXXXX",
		},
		{
			name:     "bare last four expanded",
			raw:      "9913",
			expected: "XXXX-XXXX-XXXX-9913",
		},
		{
			name:     "full sixteen digit number masked and grouped",
			raw:      "3499929444639913",
			expected: "XXXX-XXXX-XXXX-9913",
		},
		{
			name:     "ten digit number masked",
			raw:      "1234567890",
			expected: "XX-XXXX-7890",
		},
		{
			name:     "short digit run unchanged",
			raw:      "123456",
			expected: "123456",
		},
		{
			name:     "spaces and hyphens stripped before masking",
			raw:      "3499 9294 4463 9913",
			expected: "XXXX-XXXX-XXXX-9913",
		},
		{
			name:     "empty input",
			raw:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAccountNumber(tt.raw))
		})
	}
}

func TestNormalizeAccountNumberIdempotent(t *testing.T) {
	inputs := []string{
		"3499929444639913",
		"9913",
		"601101XXXXXX",
		"1234567890",
		"XXXX-XXXX-XXXX-9913",
	}
	for _, raw := range inputs {
		once := NormalizeAccountNumber(raw)
		assert.Equal(t, once, NormalizeAccountNumber(once), "normalizing %q twice must be stable", raw)
	}
}

func TestNormalizeAccountNumberNeverLeaksFullNumber(t *testing.T) {
	for _, raw := range []string{"34999294446399130", "12345678", "4111111111111111"} {
		assert.NotEqual(t, raw, NormalizeAccountNumber(raw), "raw %q must not survive unmasked", raw)
	}
}

func TestExtractAccountNumberFromContext(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		start    int
		expected string
	}{
		{
			name: "labeled account number below the header",
			lines: []string{
				"CAPITAL ONE",
				"Account number: 517805XXXXXX",
			},
			start:    0,
			expected: "517805XXXXXX",
		},
		{
			name: "acct shorthand",
			lines: []string{
				"DISCOVER BANK",
				"Acct #: 6011 0100 0000 9913",
			},
			start:    0,
			expected: "XXXX-XXXX-XXXX-9913",
		},
		{
			name: "ending-in phrasing",
			lines: []string{
				"CHASE CARD",
				"Card ending in 4421",
			},
			start:    0,
			expected: "XXXX-XXXX-XXXX-4421",
		},
		{
			name: "bare masked token on the header line",
			lines: []string{
				"DISCOVER CARD  601101XXXXXX  Charge off  $4,946",
			},
			start:    0,
			expected: "601101XXXXXX",
		},
		{
			name: "backward search when the number precedes the header",
			lines: []string{
				"Account number: 440066XX1234",
				"SYNCHRONY BANK",
				"Balance: $310",
			},
			start:    1,
			expected: "440066XX1234",
		},
		{
			name: "no number anywhere in the window",
			lines: []string{
				"WELLS FARGO",
				"Balance owed: $1,200",
			},
			start:    0,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractAccountNumberFromContext(tt.lines, tt.start, contextWindow))
		})
	}
}

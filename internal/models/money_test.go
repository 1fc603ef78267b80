package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{name: "DollarsWithComma", input: "$4,946", expected: "4946", ok: true},
		{name: "PlainZero", input: "$0", expected: "0", ok: true},
		{name: "Cents", input: "$1,234.56", expected: "1234.56", ok: true},
		{name: "ApostropheSeparator", input: "1'250.00", expected: "1250", ok: true},
		{name: "NoDigits", input: "N/A", expected: "0", ok: false},
		{name: "Empty", input: "", expected: "0", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, ok := ParseAmount(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, dec.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", dec, tt.expected)
		})
	}
}

func TestAmountDigitCount(t *testing.T) {
	assert.Equal(t, 4, AmountDigitCount("$4,946"))
	assert.Equal(t, 6, AmountDigitCount("$4,946.00"))
	assert.Equal(t, 0, AmountDigitCount("unknown"))
}

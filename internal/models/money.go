package models

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var amountDigits = regexp.MustCompile(`\d`)

// ParseAmount converts a reported currency string ("$4,946", "1'250.00",
// "$0") to a decimal value. The second return is false when the string
// carries no digits at all; malformed digit strings come back as zero
// rather than an error so amount checks degrade to "insufficient
// evidence" instead of aborting a report.
func ParseAmount(amountStr string) (decimal.Decimal, bool) {
	if !amountDigits.MatchString(amountStr) {
		return decimal.Zero, false
	}

	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, "$", "")
	amount = strings.ReplaceAll(amount, ",", "")
	amount = strings.ReplaceAll(amount, "'", "")
	amount = strings.ReplaceAll(amount, " ", "")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, false
	}
	return dec, true
}

// AmountDigitCount returns how many digit characters a reported currency
// string carries. The merger prefers the balance with more digits of
// precision when two reports disagree.
func AmountDigitCount(amountStr string) int {
	return len(amountDigits.FindAllString(amountStr, -1))
}

// Package dateutils provides month/year token parsing for credit report
// date fields. Report dates are month-granular ("Jun 2025", "06/2025");
// day-of-month never appears on the tradeline fields this tool reads.
package dateutils

import (
	"regexp"
	"strconv"
	"strings"
)

// monthNames maps long and short month names (uppercased) to month numbers.
var monthNames = map[string]int{
	"JANUARY": 1, "JAN": 1,
	"FEBRUARY": 2, "FEB": 2,
	"MARCH": 3, "MAR": 3,
	"APRIL": 4, "APR": 4,
	"MAY": 5,
	"JUNE": 6, "JUN": 6,
	"JULY": 7, "JUL": 7,
	"AUGUST": 8, "AUG": 8,
	"SEPTEMBER": 9, "SEP": 9, "SEPT": 9,
	"OCTOBER": 10, "OCT": 10,
	"NOVEMBER": 11, "NOV": 11,
	"DECEMBER": 12, "DEC": 12,
}

// shortMonthName is the canonical display form used in late entries.
var shortMonthName = [13]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var (
	nameYearRe    = regexp.MustCompile(`(?i)\b([A-Za-z]{3,9})\.?,?\s+(\d{4})\b`)
	monthSlashRe  = regexp.MustCompile(`\b(\d{1,2})\s*/\s*(\d{4})\b`)
	yearSlashRe   = regexp.MustCompile(`\b(\d{4})\s*/\s*(\d{1,2})\b`)
	monthTokenRe  = regexp.MustCompile(`(?i)\b(Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\b`)
	fourDigitYear = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// CleanDateToken normalizes whitespace in a raw date fragment.
func CleanDateToken(token string) string {
	token = strings.TrimSpace(token)
	return regexp.MustCompile(`\s+`).ReplaceAllString(token, " ")
}

// ParseMonthYear converts a free-text date fragment into a (month, year)
// pair. Accepted shapes: "Jun 2025", "June 2025", "06/2025", "2025/06".
// Returns ok=false on no match; it never fails harder than that.
func ParseMonthYear(token string) (month, year int, ok bool) {
	token = CleanDateToken(token)
	if token == "" {
		return 0, 0, false
	}

	if m := nameYearRe.FindStringSubmatch(token); m != nil {
		if num, found := monthNames[strings.ToUpper(m[1])]; found {
			y, err := strconv.Atoi(m[2])
			if err == nil {
				return num, y, true
			}
		}
	}

	if m := monthSlashRe.FindStringSubmatch(token); m != nil {
		num, _ := strconv.Atoi(m[1])
		y, _ := strconv.Atoi(m[2])
		if num >= 1 && num <= 12 {
			return num, y, true
		}
	}

	if m := yearSlashRe.FindStringSubmatch(token); m != nil {
		y, _ := strconv.Atoi(m[1])
		num, _ := strconv.Atoi(m[2])
		if num >= 1 && num <= 12 {
			return num, y, true
		}
	}

	return 0, 0, false
}

// MonthsBetween computes the signed month distance from (m1, y1) to
// (m2, y2). Returns ok=false when either side is missing, so callers
// treat the pair as insufficient evidence and skip their check.
func MonthsBetween(m1, y1, m2, y2 int) (int, bool) {
	if m1 == 0 || y1 == 0 || m2 == 0 || y2 == 0 {
		return 0, false
	}
	return (y2-y1)*12 + (m2 - m1), true
}

// MonthNumber resolves a month name ("Apr", "april") to its number, or 0.
func MonthNumber(name string) int {
	return monthNames[strings.ToUpper(strings.TrimSpace(name))]
}

// ShortMonthName returns the canonical three-letter name for a month
// number, or "" for anything outside 1..12.
func ShortMonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return shortMonthName[month]
}

// FindMonthToken returns the first month-name token in a line and its
// canonical short form, or ok=false.
func FindMonthToken(line string) (short string, ok bool) {
	m := monthTokenRe.FindString(line)
	if m == "" {
		return "", false
	}
	return ShortMonthName(MonthNumber(m)), true
}

// FindAllMonthTokens returns every month-name token in a line in
// canonical short form.
func FindAllMonthTokens(line string) []string {
	var months []string
	for _, m := range monthTokenRe.FindAllString(line, -1) {
		months = append(months, ShortMonthName(MonthNumber(m)))
	}
	return months
}

// FindYearToken returns the first plausible 4-digit year in a line, or 0.
func FindYearToken(line string) int {
	m := fourDigitYear.FindString(line)
	if m == "" {
		return 0
	}
	y, _ := strconv.Atoi(m)
	return y
}

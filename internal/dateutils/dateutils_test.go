package dateutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMonthYear(t *testing.T) {
	tests := []struct {
		name  string
		input string
		month int
		year  int
		ok    bool
	}{
		{name: "ShortName", input: "Jun 2025", month: 6, year: 2025, ok: true},
		{name: "LongName", input: "June 2025", month: 6, year: 2025, ok: true},
		{name: "MonthSlashYear", input: "06/2025", month: 6, year: 2025, ok: true},
		{name: "YearSlashMonth", input: "2025/06", month: 6, year: 2025, ok: true},
		{name: "EmbeddedInLabel", input: "Date reported: Sep 2024", month: 9, year: 2024, ok: true},
		{name: "ExtraWhitespace", input: "  Jan   2023 ", month: 1, year: 2023, ok: true},
		{name: "BareYear", input: "2025", ok: false},
		{name: "NotADate", input: "Account number", ok: false},
		{name: "Empty", input: "", ok: false},
		{name: "MonthOutOfRange", input: "13/2025", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, year, ok := ParseMonthYear(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.month, month)
				assert.Equal(t, tt.year, year)
			}
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	dist, ok := MonthsBetween(6, 2021, 9, 2024)
	assert.True(t, ok)
	assert.Equal(t, 39, dist)

	dist, ok = MonthsBetween(9, 2024, 6, 2021)
	assert.True(t, ok)
	assert.Equal(t, -39, dist)

	_, ok = MonthsBetween(0, 0, 9, 2024)
	assert.False(t, ok)
}

func TestMonthTokens(t *testing.T) {
	short, ok := FindMonthToken("Apr 30 days late")
	assert.True(t, ok)
	assert.Equal(t, "Apr", short)

	assert.Equal(t, []string{"Jan", "Feb", "Mar"}, FindAllMonthTokens("Jan Feb Mar"))

	_, ok = FindMonthToken("no month here")
	assert.False(t, ok)
}

func TestFindYearToken(t *testing.T) {
	assert.Equal(t, 2024, FindYearToken("history through 2024"))
	assert.Equal(t, 0, FindYearToken("ending in 1234"))
	assert.Equal(t, 1998, FindYearToken("opened 1998"))
}

package reportparser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/dateutils"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/models"
)

var (
	paymentHistoryRe = regexp.MustCompile(`(?i)payment\s+history`)

	// dateFieldSkipRe guards the grid scan against labeled date fields;
	// misreading "Status updated: Jun 2024" as a grid cell was a real bug.
	dateFieldSkipRe = regexp.MustCompile(`(?i)status\s+updated|date\s+reported|date\s+of\s+first\s+delinquency|dofd`)

	severityTokenRe = regexp.MustCompile(`\b(30|60|90)\b`)

	// lateFallbackRe pairs a month token with a severity across up to 30
	// characters of raw block text, newlines included, for grids whose
	// runs were flattened unpredictably.
	lateFallbackRe = regexp.MustCompile(`(?is)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\b.{0,30}?\b(30|60|90)\b`)

	aggregateLateRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)30-59\s+days\s+late\s*:?\s*(\d+)`),
		regexp.MustCompile(`(?i)60-89\s+days\s+late\s*:?\s*(\d+)`),
		regexp.MustCompile(`(?i)90(?:\+|-119)?\s+days\s+late\s*:?\s*(\d+)`),
	}

	lateMentionRe = regexp.MustCompile(`(?i)\b(?:30|60|90)\s+days\s+(?:past\s+due|late)\b`)
)

func countMonthTokens(line string) int {
	return len(dateutils.FindAllMonthTokens(line))
}

// extractLateEntries scans a bounded window after an account header for
// late-payment evidence. The structured path finds a "Payment history"
// header and pairs each month token with a 30/60/90 severity rendered up
// to five lines later; years are inferred from within three lines of the
// month. When no structured pairing exists the raw-text fallback regex
// runs over the whole block. Output is deduplicated on
// (month, year, severity).
func extractLateEntries(lines []string, start int) []models.LateEntry {
	end := start + wideScanWindow
	if end > len(lines) {
		end = len(lines)
	}
	headerEnd := start + scanWindow
	if headerEnd > len(lines) {
		headerEnd = len(lines)
	}

	histIdx := -1
	for j := start; j < headerEnd; j++ {
		if paymentHistoryRe.MatchString(lines[j]) {
			histIdx = j
			break
		}
	}

	var entries []models.LateEntry
	seen := make(map[models.LateEntry]bool)
	add := func(entry models.LateEntry) {
		if !seen[entry] {
			seen[entry] = true
			entries = append(entries, entry)
		}
	}

	if histIdx >= 0 {
		for j := histIdx; j < end; j++ {
			line := lines[j]
			if dateFieldSkipRe.MatchString(line) {
				continue
			}
			months := dateutils.FindAllMonthTokens(line)
			if len(months) == 0 {
				continue
			}

			severity := findSeverityAhead(lines, j, end)
			if severity == 0 {
				continue
			}
			year := findYearNearby(lines, j)
			for _, month := range months {
				add(models.LateEntry{Month: month, Year: year, Severity: severity})
			}
		}
	}

	if len(entries) == 0 {
		block := strings.Join(lines[start:end], "\n")
		for _, m := range lateFallbackRe.FindAllStringSubmatch(block, -1) {
			month, ok := dateutils.FindMonthToken(m[1])
			if !ok {
				continue
			}
			severity, _ := strconv.Atoi(m[2])
			add(models.LateEntry{Month: month, Severity: severity})
		}
	}

	return entries
}

// findSeverityAhead looks on the month's own line and up to five lines
// ahead for a severity token, skipping labeled date fields.
func findSeverityAhead(lines []string, idx, end int) int {
	for j := idx; j <= idx+5 && j < end; j++ {
		if j > idx && dateFieldSkipRe.MatchString(lines[j]) {
			continue
		}
		if m := severityTokenRe.FindString(lines[j]); m != "" {
			severity, _ := strconv.Atoi(m)
			return severity
		}
	}
	return 0
}

// findYearNearby searches three lines either side of a month occurrence
// for a 4-digit year; 0 when none is rendered.
func findYearNearby(lines []string, idx int) int {
	for offset := 0; offset <= 3; offset++ {
		if idx+offset < len(lines) {
			if year := dateutils.FindYearToken(lines[idx+offset]); year != 0 {
				return year
			}
		}
		if offset > 0 && idx-offset >= 0 {
			if year := dateutils.FindYearToken(lines[idx-offset]); year != 0 {
				return year
			}
		}
	}
	return 0
}

// estimateLatePaymentCount independently estimates the late-payment
// count from aggregate phrases ("30-59 days late: 2"), falling back to
// counting explicit late-mention phrases. Used only when the structured
// grid yielded nothing.
func estimateLatePaymentCount(blockLines []string) int {
	block := strings.Join(blockLines, "\n")

	total := 0
	for _, re := range aggregateLateRes {
		for _, m := range re.FindAllStringSubmatch(block, -1) {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				total += n
			}
		}
	}
	if total > 0 {
		return total
	}

	return len(lateMentionRe.FindAllString(block, -1))
}

package reportparser

import (
	"regexp"
	"strings"
)

var (
	allDigitsRe   = regexp.MustCompile(`^\d+$`)
	digitRunRe    = regexp.MustCompile(`\d`)
	groupedFormRe = regexp.MustCompile(`^[0-9Xx*]{1,4}(?:-[0-9Xx*]{4})+$`)

	// Ordered labeled patterns tried when searching the lines around a
	// creditor header for an account number. First match wins.
	accountNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)account\s*(?:number|no\.?|#)\s*:?\s*([0-9Xx*][0-9Xx*\- ]{2,22}[0-9Xx*])`),
		regexp.MustCompile(`(?i)acct\.?\s*(?:number|no\.?|#)?\s*:?\s*([0-9Xx*][0-9Xx*\- ]{2,22}[0-9Xx*])`),
		regexp.MustCompile(`(?i)ending\s+in\s+(\d{4})\b`),
		regexp.MustCompile(`\b(\d{2,8}[Xx*]{2,14}\d{0,4})\b`),
		regexp.MustCompile(`\b([Xx*]{4,14}\d{4})\b`),
	}
)

// NormalizeAccountNumber canonicalizes a raw account-number token into a
// consistent masked display form. It never fails:
//   - tokens already carrying mask characters come back uppercased as-is
//   - a bare last-4 becomes XXXX-XXXX-XXXX-NNNN
//   - 8-19 unmasked digits are masked to the last 4 and grouped in fours
//   - anything else is returned stripped but otherwise unchanged
//
// An 8-19 digit raw number never survives unmasked.
func NormalizeAccountNumber(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if groupedFormRe.MatchString(trimmed) {
		// Already in grouped display form; normalization is idempotent.
		return strings.ToUpper(trimmed)
	}

	stripped := strings.ReplaceAll(raw, " ", "")
	stripped = strings.ReplaceAll(stripped, "-", "")
	if stripped == "" {
		return strings.TrimSpace(raw)
	}

	if strings.ContainsAny(stripped, "Xx*") {
		return strings.ToUpper(stripped)
	}

	if allDigitsRe.MatchString(stripped) {
		if len(stripped) == 4 {
			return "XXXX-XXXX-XXXX-" + stripped
		}
		if len(stripped) >= 8 && len(stripped) <= 19 {
			masked := strings.Repeat("X", len(stripped)-4) + stripped[len(stripped)-4:]
			return groupInFours(masked)
		}
	}

	return stripped
}

// groupInFours inserts hyphens every four characters counting from the
// right, keeping the trailing clear digits together.
func groupInFours(s string) string {
	var groups []string
	for len(s) > 4 {
		groups = append([]string{s[len(s)-4:]}, groups...)
		s = s[:len(s)-4]
	}
	if s != "" {
		groups = append([]string{s}, groups...)
	}
	return strings.Join(groups, "-")
}

// extractAccountNumberFromContext tries the labeled patterns against the
// lines surrounding a creditor header, forward first and then backward,
// and returns the first normalized match or "".
func extractAccountNumberFromContext(lines []string, start, window int) string {
	if window <= 0 {
		window = contextWindow
	}

	try := func(idx int) string {
		if idx < 0 || idx >= len(lines) {
			return ""
		}
		line := lines[idx]
		for _, pattern := range accountNumberPatterns {
			if m := pattern.FindStringSubmatch(line); m != nil {
				candidate := strings.TrimSpace(m[1])
				if digitRunRe.MatchString(candidate) || strings.ContainsAny(candidate, "Xx*") {
					return NormalizeAccountNumber(candidate)
				}
			}
		}
		return ""
	}

	for offset := 0; offset <= window; offset++ {
		if number := try(start + offset); number != "" {
			return number
		}
	}
	for offset := 1; offset <= window; offset++ {
		if number := try(start - offset); number != "" {
			return number
		}
	}
	return ""
}

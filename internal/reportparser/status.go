package reportparser

import (
	"regexp"
	"strings"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/models"
)

// statusPattern is one entry of the ordered status table. Negative
// entries carry severities 3-10, positive entries 13-15; the severity
// numbers live with the vocabulary in models.
type statusPattern struct {
	name     string
	re       *regexp.Regexp
	negative bool
}

// Positive entries come first so that "paid as agreed" resolves before
// the bare "paid" and "late" tokens get a chance to fire on the same
// phrase.
var statusPatterns = []statusPattern{
	{models.StatusNeverLate, regexp.MustCompile(`(?i)\bnever\s+late\b`), false},
	{models.StatusExceptional, regexp.MustCompile(`(?i)\bexceptional\s+payment\s+history\b`), false},
	{models.StatusPaidAsAgreed, regexp.MustCompile(`(?i)\b(?:paid|pays)(?:\s+account)?\s+as\s+agreed\b`), false},
	{models.StatusCurrent, regexp.MustCompile(`(?i)\bcurrent\b`), false},
	{models.StatusPaid, regexp.MustCompile(`(?i)\bpaid\b`), false},
	{models.StatusOpen, regexp.MustCompile(`(?i)\bopen\b`), false},

	{models.StatusBankruptcy, regexp.MustCompile(`(?i)\bbankruptcy\b|\bchapter\s+(?:7|11|13)\b`), true},
	{models.StatusForeclosure, regexp.MustCompile(`(?i)\bforeclos\w*\b`), true},
	{models.StatusRepossession, regexp.MustCompile(`(?i)\brepossess\w*\b|\bvehicle\s+recovered\b`), true},
	{models.StatusChargeOff, regexp.MustCompile(`(?i)\bcharge[\s-]?off\b|\bcharged\s+off\b|\bbad\s+debt\b`), true},
	{models.StatusCollection, regexp.MustCompile(`(?i)\bcollections?\b`), true},
	{models.StatusSettled, regexp.MustCompile(`(?i)\bsettle(?:d|ment)\b|\bless\s+than\s+full\s+balance\b`), true},
	{models.StatusLate, regexp.MustCompile(`(?i)\blate\b|\bpast\s+due\b|\bdelinquen\w*\b`), true},
	{models.StatusClosed, regexp.MustCompile(`(?i)\bclosed\b`), true},
}

var (
	// legendRe spots legend/key/history-guide lines whose text lists every
	// possible status code and must never drive status resolution.
	legendRe = regexp.MustCompile(`(?i)legend|key\s*:|24[\s-]month\s+history|narrative\s+code|how\s+to\s+read`)

	// statusLineRe captures the value of an explicit, authoritative
	// "Status:" or "Current Status:" line.
	statusLineRe = regexp.MustCompile(`(?i)^\s*(?:current\s+|account\s+|payment\s+)?status\s*:\s*(.+)$`)

	realEstateRe = regexp.MustCompile(`(?i)mortgage|real\s+estate|home\s+(?:loan|equity)|heloc`)

	// "current balance" is a field label, not a Current status signal.
	currentBalanceRe = regexp.MustCompile(`(?i)current\s+balance`)

	paymentCodeRe  = regexp.MustCompile(`(?i)payment\s+code\s*:?\s*CO\b`)
	chargeOffTokRe = regexp.MustCompile(`\bCO\b`)
)

// resolveStatusLine processes one line of an account's scan window
// against the status tables, honoring the precedence rules:
// authoritative "Status:" lines overwrite; other matches overwrite only
// on strictly greater severity; negative matches are always preserved in
// NegativeItems; severe derogatories are never cleared by a positive.
func resolveStatusLine(acct *models.AccountRecord, line string, realEstate bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	if m := statusLineRe.FindStringSubmatch(trimmed); m != nil {
		value := strings.TrimSpace(m[1])
		if acct.StatusRaw == "" {
			acct.StatusRaw = value
		}
		// The first table match on an explicit status line is the
		// authoritative status; trailing matches ("Paid, Closed") only
		// feed NegativeItems and precedence.
		for i, name := range matchStatusTokens(value, realEstate) {
			applyStatus(acct, name, i == 0)
		}
		return
	}

	// Legend and history-guide lines list every code; only an explicit
	// status line may resolve from them, and that case returned above.
	if legendRe.MatchString(trimmed) {
		return
	}

	for _, name := range matchStatusTokens(trimmed, realEstate) {
		applyStatus(acct, name, false)
	}
}

// matchStatusTokens runs the ordered status table over a text fragment
// and returns every canonical status it names, in table order.
func matchStatusTokens(text string, realEstate bool) []string {
	text = currentBalanceRe.ReplaceAllString(text, "balance")
	var names []string
	for _, pattern := range statusPatterns {
		if !pattern.re.MatchString(text) {
			continue
		}
		// Foreclosure only counts on accounts whose type or creditor
		// text suggests real estate; elsewhere the token is legend
		// leakage.
		if pattern.name == models.StatusForeclosure && !realEstate {
			continue
		}
		names = append(names, pattern.name)
		// Consume the matched words so weaker patterns further down the
		// table ("late" inside "never late") cannot re-match them.
		text = pattern.re.ReplaceAllString(text, " ")
	}
	return names
}

// applyStatus folds a matched status into the record.
func applyStatus(acct *models.AccountRecord, name string, authoritative bool) {
	// Absolute guard: a severe derogatory is permanent; no positive
	// match clears it, authoritative or not.
	if models.IsSevereDerogatory(acct.Status) && models.IsPositiveStatus(name) {
		return
	}

	negative := !models.IsPositiveStatus(name)
	if negative {
		acct.AddNegativeItem(name)
	}

	if authoritative {
		if acct.Status != "" && acct.Status != name && !models.IsPositiveStatus(acct.Status) {
			// The displaced status stays visible in NegativeItems.
			acct.AddNegativeItem(acct.Status)
		}
		acct.Status = name
		return
	}

	if models.StatusSeverity(name) > models.StatusSeverity(acct.Status) {
		acct.Status = name
	}
}

// confirmChargeOffFromGrid re-scans a whole account block for payment
// grid evidence of a charge-off that never surfaced on a single line: an
// explicit payment-code CO marker, or at least two CO tokens co-occurring
// with at least two month tokens in a non-legend region.
func confirmChargeOffFromGrid(blockLines []string) bool {
	coTokens := 0
	monthTokens := 0
	for _, line := range blockLines {
		if legendRe.MatchString(line) {
			continue
		}
		if paymentCodeRe.MatchString(line) {
			return true
		}
		coTokens += len(chargeOffTokRe.FindAllString(line, -1))
		monthTokens += countMonthTokens(line)
	}
	return coTokens >= 2 && monthTokens >= 2
}

package analyzer

import (
	"regexp"
	"strings"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/models"
)

var (
	// Comenity-family tradelines are always deletion demands; the
	// lender's collection practices make correction requests pointless.
	comenityRe = regexp.MustCompile(`(?i)\bCOMENITY\b`)

	deletionTermRe = regexp.MustCompile(`(?i)collection|charge[\s-]?off|charged\s+off|repossess|foreclos|bankrupt|default|settle`)
	closedStateRe  = regexp.MustCompile(`(?i)\bclosed\b`)
	openStateRe    = regexp.MustCompile(`(?i)\bopen\b|\bcurrent\b`)
)

// closedLateThreshold is the late-entry count above which a closed
// account is demanded deleted instead of corrected. Overridable via the
// analysis.late_threshold configuration key.
var closedLateThreshold = 4

// SetClosedLateThreshold overrides the delete/correct boundary for
// closed accounts. Negative values are ignored.
func SetClosedLateThreshold(n int) {
	if n < 0 {
		return
	}
	closedLateThreshold = n
}

// ClassifyAccountPolicy decides the dispute demand for one account:
// PolicyDelete (remove the tradeline) or PolicyCorrect (fix the late
// marks). Collection-family evidence anywhere on the record forces
// deletion; open or current accounts are always corrected regardless of
// late count; closed accounts are deleted only past the late threshold.
// Indeterminate cases default to correction, the conservative demand.
func ClassifyAccountPolicy(acct *models.AccountRecord) string {
	if comenityRe.MatchString(acct.Creditor) || comenityRe.MatchString(acct.DisplayCreditor) {
		return models.PolicyDelete
	}

	text := strings.Join(append([]string{acct.Status, acct.StatusRaw}, acct.NegativeItems...), " ")
	if deletionTermRe.MatchString(text) {
		return models.PolicyDelete
	}

	stateText := acct.Status + " " + acct.StatusRaw
	switch {
	case closedStateRe.MatchString(stateText):
		if lateCount(acct) > closedLateThreshold {
			return models.PolicyDelete
		}
		return models.PolicyCorrect
	case openStateRe.MatchString(stateText):
		return models.PolicyCorrect
	}

	return models.PolicyCorrect
}

func lateCount(acct *models.AccountRecord) int {
	if len(acct.LateEntries) > 0 {
		return len(acct.LateEntries)
	}
	return acct.LatePaymentCount
}

package reportparser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/dateutils"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/models"
)

var (
	monthlyPaymentRe = regexp.MustCompile(`(?i)monthly\s+payment\s*:?\s*(\$?[\d,]+(?:\.\d{2})?)`)
	creditLimitRe    = regexp.MustCompile(`(?i)credit\s+limit\s*:?\s*(\$?[\d,]+(?:\.\d{2})?)`)
	pastDueRe        = regexp.MustCompile(`(?i)past\s+due(?:\s+amount)?\s*:?\s*(\$?[\d,]+(?:\.\d{2})?)`)

	openTokenRe     = regexp.MustCompile(`(?i)\bopen\b`)
	soldTransferRe  = regexp.MustCompile(`(?i)sold|transferr?ed|assigned`)
	revolvingTypeRe = regexp.MustCompile(`(?i)revolving|credit\s+card`)
	installTypeRe   = regexp.MustCompile(`(?i)installment|\bloan\b`)
	medicalNameRe   = regexp.MustCompile(`(?i)medical|hospital|health|clinic|physician|radiology|ambulance|emergency|labcorp|quest\s+diag`)
)

var medicalReportingFloor = decimal.NewFromInt(500)

// validateCompliance applies the Metro-2 and re-aging rule set against a
// resolved account block. Every check is independent and cumulative;
// each failure appends a human-readable violation string. Missing dates
// and unparsable amounts are insufficient evidence and skip the check.
func validateCompliance(acct *models.AccountRecord, blockLines []string) {
	block := strings.Join(blockLines, "\n")
	statusText := strings.ToLower(acct.Status + " " + acct.StatusRaw)
	collectionLike := acct.Status == models.StatusCollection || acct.Status == models.StatusChargeOff ||
		strings.Contains(statusText, "collection") || strings.Contains(statusText, "charge")

	if amount, ok := firstAmount(monthlyPaymentRe, block); ok && collectionLike && amount.IsPositive() {
		acct.AddViolation(fmt.Sprintf(
			"Metro 2 violation: monthly payment of $%s reported on a %s account; collections and charge-offs must report $0 scheduled payment",
			amount.StringFixed(2), strings.ToLower(acct.Status)))
	}

	closed := acct.Status == models.StatusClosed || strings.Contains(statusText, "closed")
	if closed && openTokenRe.MatchString(block) {
		acct.AddViolation("Metro 2 violation: account reported Closed but the tradeline still carries an Open designation")
	}

	if amount, ok := firstAmount(creditLimitRe, block); ok && closed && amount.IsPositive() {
		acct.AddViolation(fmt.Sprintf(
			"Metro 2 violation: credit limit of $%s reported on a closed account", amount.StringFixed(2)))
	}

	paidClean := strings.Contains(statusText, "paid") || strings.Contains(statusText, "never late")
	if amount, ok := firstAmount(pastDueRe, block); ok && paidClean && amount.IsPositive() {
		acct.AddViolation(fmt.Sprintf(
			"Metro 2 violation: past-due amount of $%s reported on an account described as '%s'",
			amount.StringFixed(2), acct.Status))
	}

	if balance, ok := models.ParseAmount(acct.Balance); ok &&
		acct.Status == models.StatusChargeOff && balance.IsPositive() && !soldTransferRe.MatchString(block) {
		acct.AddViolation(fmt.Sprintf(
			"Metro 2 violation: charge-off carries a balance of %s with no sold/transferred/assigned notation", acct.Balance))
	}

	if revolvingTypeRe.MatchString(acct.AccountType) && installTypeRe.MatchString(acct.AccountType) {
		acct.AddViolation(fmt.Sprintf(
			"Metro 2 violation: account type '%s' mixes revolving and installment designations", acct.AccountType))
	}

	validateReaging(acct, collectionLike)
	validateMedicalPolicy(acct, statusText)
}

// validateReaging applies the DOFD-anchored date checks. All distances
// are month-granular; absent dates skip the check entirely.
func validateReaging(acct *models.AccountRecord, collectionLike bool) {
	if acct.DOFD == nil || acct.DateReported == nil {
		return
	}

	if collectionLike &&
		acct.DOFD.Month == acct.DateReported.Month && acct.DOFD.Year == acct.DateReported.Year {
		acct.AddViolation(
			"Metro 2 violation: DOFD equals date reported on a collection/charge-off; the delinquency date must stay fixed while reporting continues")
	}

	age, ok := dateutils.MonthsBetween(acct.DOFD.Month, acct.DOFD.Year,
		acct.DateReported.Month, acct.DateReported.Year)
	if !ok {
		return
	}

	if age > 84 {
		acct.AddViolation(fmt.Sprintf(
			"Re-aging concern: %d months between DOFD (%s) and date reported (%s) exceeds the 7-year reporting window",
			age, acct.DOFD.Raw, acct.DateReported.Raw))
	}

	if age > 60 && acct.StatusUpdated != nil {
		drift, ok := dateutils.MonthsBetween(acct.StatusUpdated.Month, acct.StatusUpdated.Year,
			acct.DateReported.Month, acct.DateReported.Year)
		if ok && (drift > 60 || drift < -60) {
			acct.AddViolation(fmt.Sprintf(
				"Re-aging concern: status updated %s on an account whose DOFD (%s) is over five years old",
				acct.StatusUpdated.Raw, acct.DOFD.Raw))
		}
	}

	if age > 48 {
		if balance, ok := models.ParseAmount(acct.Balance); ok && balance.IsPositive() {
			acct.AddViolation(fmt.Sprintf(
				"Re-aging concern: balance of %s still reported %d months after DOFD (%s)",
				acct.Balance, age, acct.DOFD.Raw))
		}
	}
}

// validateMedicalPolicy flags paid-or-small medical collections that the
// nationwide bureaus agreed to stop reporting in 2023.
func validateMedicalPolicy(acct *models.AccountRecord, statusText string) {
	if !medicalNameRe.MatchString(acct.Creditor) && !medicalNameRe.MatchString(acct.DisplayCreditor) {
		return
	}
	if !strings.Contains(statusText, "collection") {
		return
	}
	balance, ok := models.ParseAmount(acct.Balance)
	if !ok {
		return
	}
	if balance.LessThan(medicalReportingFloor) {
		acct.AddViolation(fmt.Sprintf(
			"Medical collection of %s is under $500 and should not be reported per NCRA policy (2023)", acct.Balance))
	}
}

// firstAmount extracts the first labeled amount a pattern finds in the
// block text.
func firstAmount(re *regexp.Regexp, block string) (decimal.Decimal, bool) {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return decimal.Zero, false
	}
	return models.ParseAmount(m[1])
}

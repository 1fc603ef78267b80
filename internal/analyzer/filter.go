package analyzer

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/logging"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/models"
)

var (
	borderlinePositiveRe = regexp.MustCompile(`(?i)not\s+more\s+than\s+(?:two|2)\s+payments?\s+past\s+due`)
	mildPositiveRawRe    = regexp.MustCompile(`(?i)paid\s+as\s+agreed|paid\s*,\s*closed`)
	collectionTermRe     = regexp.MustCompile(`(?i)collection|charge[\s-]?off|charged\s+off|repossess|foreclos|bankrupt`)
	lateTermRe           = regexp.MustCompile(`(?i)\blate\b|past\s+due|delinquen|derogatory`)
)

// FilterNegativeAccounts applies the dispute-worthiness policy to a
// merged account list. Strong positives are excluded outright unless
// structured late entries coexist with a borderline label, in which
// case the account is kept for late-payment correction. Mild positives
// survive only as correction cases. Everything carrying late entries,
// collection-family negative items, or derogatory status text is
// retained. The result is deduplicated once more as a safety net.
func FilterNegativeAccounts(accounts []*models.AccountRecord) []*models.AccountRecord {
	var negatives []*models.AccountRecord

	for _, acct := range accounts {
		if retainAccount(acct) {
			negatives = append(negatives, acct)
			continue
		}
		log.Debug("Excluding non-negative account",
			logging.Field{Key: logging.FieldCreditor, Value: acct.Creditor},
			logging.Field{Key: logging.FieldStatus, Value: acct.Status},
			logging.Field{Key: logging.FieldReason, Value: exclusionReason(acct)})
	}

	return DeduplicateAccounts(negatives)
}

func exclusionReason(acct *models.AccountRecord) string {
	switch {
	case isStrongPositive(acct):
		return "positive status"
	case isMildPositive(acct):
		return "positive status without late history"
	default:
		return "no negative evidence"
	}
}

func retainAccount(acct *models.AccountRecord) bool {
	statusText := strings.TrimSpace(acct.Status + " " + acct.StatusRaw)
	hasLates := len(acct.LateEntries) > 0 || acct.LatePaymentCount > 0

	if isStrongPositive(acct) {
		// Structured grid entries contradict the positive label; keep
		// the account as a correction case. An estimated count alone
		// only counts alongside a borderline label ("not more than two
		// payments past due").
		if len(acct.LateEntries) > 0 {
			return true
		}
		return hasLates && borderlinePositiveRe.MatchString(statusText)
	}

	if isMildPositive(acct) {
		return hasLates && !hasNonLateNegatives(acct)
	}

	if hasLates {
		return true
	}
	for _, item := range acct.NegativeItems {
		if collectionTermRe.MatchString(item) {
			return true
		}
	}
	if collectionTermRe.MatchString(statusText) || lateTermRe.MatchString(statusText) {
		return true
	}
	return false
}

func isStrongPositive(acct *models.AccountRecord) bool {
	return acct.Status == models.StatusNeverLate || acct.Status == models.StatusExceptional
}

func isMildPositive(acct *models.AccountRecord) bool {
	if acct.Status == models.StatusPaidAsAgreed {
		return true
	}
	return mildPositiveRawRe.MatchString(acct.StatusRaw)
}

// hasNonLateNegatives reports whether the record carries derogatory
// items beyond plain late marks; a mild-positive label cannot excuse
// those.
func hasNonLateNegatives(acct *models.AccountRecord) bool {
	for _, item := range acct.NegativeItems {
		if item != models.StatusLate && item != models.StatusClosed {
			return true
		}
	}
	return false
}

// DeduplicateAccounts is the post-filter safety net for duplicates the
// key-based merge missed: records whose creditor+accountnumber keys are
// equal, or within edit distance two of each other, collapse into the
// first occurrence.
func DeduplicateAccounts(accounts []*models.AccountRecord) []*models.AccountRecord {
	var result []*models.AccountRecord
	var keys []string

	for _, acct := range accounts {
		key := dedupeKey(acct)
		merged := false
		for i, existing := range keys {
			if existing == key || nearDuplicateKey(existing, key) {
				mergeInto(result[i], acct)
				merged = true
				break
			}
		}
		if !merged {
			keys = append(keys, key)
			result = append(result, acct)
		}
	}
	return result
}

func dedupeKey(acct *models.AccountRecord) string {
	creditor := normalizeCreditorKey(acct.Creditor)
	if creditor == "" {
		creditor = normalizeCreditorKey(acct.DisplayCreditor)
	}
	number := strings.ToUpper(strings.ReplaceAll(acct.AccountNumber, "-", ""))
	return creditor + "_" + number
}

// nearDuplicateKey treats two keys as the same tradeline when they are
// within edit distance two, which absorbs OCR artifacts like a dropped
// mask character or a doubled space. Short keys are exempt; at that
// length two edits can turn one creditor into another.
func nearDuplicateKey(a, b string) bool {
	if len(a) < 8 || len(b) < 8 {
		return false
	}
	return levenshtein.ComputeDistance(a, b) <= 2
}

// Package analyzer turns the raw per-block records produced by the
// report parser into the deduplicated, dispute-worthy account list the
// letter pipeline consumes: duplicate-tradeline merging, negative
// filtering and the delete/correct policy classification.
package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/logging"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

const unknownLast4 = "UNK"

// creditorAliases collapses issuer aliases so the same furnisher hashes
// to one merge key regardless of which label the bureau printed.
var creditorAliases = []struct {
	re        *regexp.Regexp
	canonical string
}{
	{regexp.MustCompile(`(?i)\bCBNA\b|/\s*CBNA$`), "CBNA"},
	{regexp.MustCompile(`(?i)\bCAP(?:ITAL)?\s*ONE\b`), "CAPITAL ONE"},
	{regexp.MustCompile(`(?i)\bJPMCB\b|\bCHASE\b`), "CHASE"},
	{regexp.MustCompile(`(?i)\bSYNCB\b|\bSYNCHRONY\b`), "SYNCHRONY"},
	{regexp.MustCompile(`(?i)\bBK\s*OF\s*AMER\b|\bBANK\s*OF\s*AMERICA\b`), "BANK OF AMERICA"},
	{regexp.MustCompile(`(?i)\bAMEX\b|\bAMERICAN\s*EXPRESS\b`), "AMERICAN EXPRESS"},
}

// RegisterCreditorAliases extends the alias table from the creditor
// overrides YAML. Keys are matched as whole words, case-insensitively;
// registered aliases take precedence over the built-in table.
func RegisterCreditorAliases(aliases map[string]string) {
	keys := make([]string, 0, len(aliases))
	for alias := range aliases {
		keys = append(keys, alias)
	}
	sort.Strings(keys)

	extra := make([]struct {
		re        *regexp.Regexp
		canonical string
	}, 0, len(aliases))
	for _, alias := range keys {
		canonical := aliases[alias]
		alias = strings.TrimSpace(alias)
		if alias == "" || canonical == "" {
			continue
		}
		extra = append(extra, struct {
			re        *regexp.Regexp
			canonical string
		}{
			re:        regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(alias) + `\b`),
			canonical: strings.ToUpper(canonical),
		})
	}
	creditorAliases = append(extra, creditorAliases...)

	log.WithField(logging.FieldCount, len(extra)).Debug("Registered creditor alias overrides")
}

// corporateSuffixRe strips trailing corporate noise ("DISCOVER BANK",
// "DISCOVER CARD" and "DISCOVER" must share a key).
var corporateSuffixRe = regexp.MustCompile(`(?i)\s+(?:BANK|CARD|CARDS|N\.?A\.?|LLC|INC|CO|CORP|FIN|FINANCIAL|SERVICES|SVCS)\.?\s*$`)

var (
	autoLabelRe    = regexp.MustCompile(`(?i)\bauto\b`)
	trailingFourRe = regexp.MustCompile(`(\d{4})\s*$`)
	anyDigitRe     = regexp.MustCompile(`\d`)
)

// normalizeCreditorKey produces the creditor component of the merge key.
func normalizeCreditorKey(name string) string {
	trimmed := strings.TrimSpace(name)
	for _, alias := range creditorAliases {
		if alias.re.MatchString(trimmed) {
			return alias.canonical
		}
	}
	for {
		stripped := corporateSuffixRe.ReplaceAllString(trimmed, "")
		if stripped == trimmed {
			break
		}
		trimmed = stripped
	}
	return strings.ToUpper(strings.Join(strings.Fields(trimmed), " "))
}

// productGroup separates an issuer's loan products from its card
// products so an auto loan never merges into an unrelated card
// tradeline from the same furnisher.
func productGroup(acct *models.AccountRecord) string {
	if strings.Contains(strings.ToLower(acct.AccountType), "installment") ||
		autoLabelRe.MatchString(acct.DisplayCreditor) ||
		autoLabelRe.MatchString(acct.AccountType) {
		return "AUTO"
	}
	return "GEN"
}

// keyLast4 extracts the trailing clear digits of a masked account
// number, or UNK when the number carries none.
func keyLast4(accountNumber string) string {
	if m := trailingFourRe.FindStringSubmatch(accountNumber); m != nil {
		return m[1]
	}
	return unknownLast4
}

// keyBalance is the balance component of the merge key, normalized so
// "$4,946" and "4946.00" compare equal.
func keyBalance(balance string) string {
	amount, ok := models.ParseAmount(balance)
	if !ok {
		return "UNK"
	}
	return amount.StringFixed(2)
}

// MergeAccountsByKey deduplicates raw extraction records sharing a
// composite (creditor, product group, last4, balance) identity key.
// Records whose last4 is unknown fall back to a (creditor, balance)
// uniqueness map; the moment two distinct composite keys share a
// fallback pair the pair is poisoned and later unknown-last4 records
// get fresh keys instead of merging, favoring over-separation over a
// wrong merge. Output records are clones; the input is never mutated.
func MergeAccountsByKey(accounts []*models.AccountRecord) []*models.AccountRecord {
	merged := make(map[string]*models.AccountRecord)
	fallback := make(map[string]string)
	multi := make(map[string]bool)
	var order []string
	synthetic := 0

	for _, acct := range accounts {
		creditor := normalizeCreditorKey(acct.Creditor)
		if creditor == "" {
			creditor = normalizeCreditorKey(acct.DisplayCreditor)
		}
		group := productGroup(acct)
		last4 := keyLast4(acct.AccountNumber)
		balance := keyBalance(acct.Balance)

		key := strings.Join([]string{creditor, group, last4, balance}, "|")
		pair := creditor + "|" + balance

		if last4 == unknownLast4 {
			switch {
			case multi[pair]:
				synthetic++
				key = fmt.Sprintf("%s|%s|%s%d|%s", creditor, group, unknownLast4, synthetic, balance)
			case fallback[pair] != "":
				key = fallback[pair]
			default:
				fallback[pair] = key
			}
		} else {
			if prior, ok := fallback[pair]; ok && prior != key {
				multi[pair] = true
			} else if !ok {
				fallback[pair] = key
			}
		}

		if existing, ok := merged[key]; ok {
			mergeInto(existing, acct)
			continue
		}
		merged[key] = acct.Clone()
		order = append(order, key)
	}

	result := make([]*models.AccountRecord, 0, len(order))
	for _, key := range order {
		result = append(result, merged[key])
	}
	if len(result) < len(accounts) {
		log.WithField(logging.FieldCount, len(accounts)-len(result)).Debug("Merged duplicate tradelines")
	}
	return result
}

// mergeInto folds src into dst field by field: higher-severity status
// wins (a severe derogatory always beats a positive), the more precise
// balance wins, an account number with digits beats one without, and
// negative items, late entries and violations are unioned.
func mergeInto(dst, src *models.AccountRecord) {
	mergeStatus(dst, src)

	if preferBalance(src.Balance, dst.Balance) {
		dst.Balance = src.Balance
	}

	if src.AccountNumber != "" {
		if dst.AccountNumber == "" ||
			(!anyDigitRe.MatchString(dst.AccountNumber) && anyDigitRe.MatchString(src.AccountNumber)) {
			dst.AccountNumber = src.AccountNumber
		}
	}

	if dst.AccountType == "" {
		dst.AccountType = src.AccountType
	}
	if dst.DisplayCreditor == "" {
		dst.DisplayCreditor = src.DisplayCreditor
	}

	for _, item := range src.NegativeItems {
		dst.AddNegativeItem(item)
	}
	estimated := dst.LatePaymentCount
	for _, entry := range src.LateEntries {
		dst.AddLateEntry(entry)
	}
	// AddLateEntry recomputes the count from the merged entries; when
	// neither side had structured entries, keep the larger estimate.
	if len(dst.LateEntries) == 0 {
		if src.LatePaymentCount > estimated {
			dst.LatePaymentCount = src.LatePaymentCount
		}
	}

	for _, violation := range src.Violations {
		if !containsString(dst.Violations, violation) {
			dst.AddViolation(violation)
		}
	}

	if dst.DOFD == nil && src.DOFD != nil {
		d := *src.DOFD
		dst.DOFD = &d
	}
	if dst.DateReported == nil && src.DateReported != nil {
		d := *src.DateReported
		dst.DateReported = &d
	}
	if dst.StatusUpdated == nil && src.StatusUpdated != nil {
		d := *src.StatusUpdated
		dst.StatusUpdated = &d
	}
}

func mergeStatus(dst, src *models.AccountRecord) {
	if src.StatusRaw != "" && dst.StatusRaw == "" {
		dst.StatusRaw = src.StatusRaw
	}
	if src.Status == "" {
		return
	}
	switch {
	case dst.Status == "":
		dst.Status = src.Status
	case models.IsSevereDerogatory(dst.Status) && models.IsPositiveStatus(src.Status):
		// A duplicate tradeline's positive label never launders a
		// severe derogatory.
	case models.IsSevereDerogatory(src.Status) && models.IsPositiveStatus(dst.Status):
		dst.Status = src.Status
	case models.StatusSeverity(src.Status) > models.StatusSeverity(dst.Status):
		dst.Status = src.Status
	}
}

// preferBalance reports whether candidate should replace current: more
// digits of precision wins, equal precision prefers the larger value.
func preferBalance(candidate, current string) bool {
	if candidate == "" || candidate == current {
		return false
	}
	if current == "" {
		return true
	}
	candidateDigits := models.AmountDigitCount(candidate)
	currentDigits := models.AmountDigitCount(current)
	if candidateDigits != currentDigits {
		return candidateDigits > currentDigits
	}
	candidateValue, okC := models.ParseAmount(candidate)
	currentValue, okD := models.ParseAmount(current)
	return okC && okD && candidateValue.GreaterThan(currentValue)
}

func containsString(list []string, value string) bool {
	for _, existing := range list {
		if existing == value {
			return true
		}
	}
	return false
}

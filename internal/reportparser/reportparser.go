// Package reportparser extracts structured tradeline records from the
// flattened text of a consumer credit report. The input is a single
// UTF-8 blob as emitted by the PDF/OCR layer, one visual line per
// newline; the parser makes one forward pass over the line array and
// never raises on malformed text; unparsable blocks are skipped, not
// fatal.
package reportparser

import (
	"regexp"
	"strings"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/dateutils"
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

const (
	// scanWindow bounds how far past a creditor header the per-account
	// scan reaches before the record is closed.
	scanWindow = 80
	// wideScanWindow is the widened bound used for payment-grid
	// reconciliation, where grids render far below the header.
	wideScanWindow = 120
	// contextWindow bounds the account-number search around the header.
	contextWindow = 10
)

var (
	accountNameLineRe = regexp.MustCompile(`(?i)^\s*(?:account|creditor)\s+name\s*:\s*(.+)$`)
	accountTypeLineRe = regexp.MustCompile(`(?i)^\s*(?:account\s+)?type\s*:\s*(.+)$`)
	balanceLineRe     = regexp.MustCompile(`(?i)^\s*balance(?:\s+owed)?\s*:?\s*(\$[\d,]+(?:\.\d{2})?)`)
	dofdLineRe        = regexp.MustCompile(`(?i)(?:date\s+of\s+first\s+delinquency|dofd)\s*:?\s*(.+)$`)
	dateReportedRe    = regexp.MustCompile(`(?i)^\s*date\s+reported\s*:?\s*(.+)$`)
	statusUpdatedRe   = regexp.MustCompile(`(?i)^\s*status\s+updated\s*:?\s*(.+)$`)
	inlineAmountRe    = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`)
)

// ExtractAccountDetails scans the report text and returns one raw
// record per recognized tradeline block. Records that acquire neither
// an account number nor a status by block end are discarded unless the
// payment-grid re-scan promotes them to Charge off.
func ExtractAccountDetails(text string) []*models.AccountRecord {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	var accounts []*models.AccountRecord

	i := 0
	for i < len(lines) {
		canonical, label, ok := matchAccountHeader(lines[i])
		if !ok {
			i++
			continue
		}

		blockEnd := findBlockEnd(lines, i)
		acct := scanAccountBlock(lines, i, blockEnd, canonical, label)
		if acct != nil {
			accounts = append(accounts, acct)
		}
		i = blockEnd
	}

	log.WithField(logging.FieldCount, len(accounts)).Info("Extracted account records from report")
	return accounts
}

// matchAccountHeader recognizes the start of a tradeline block, either
// from an explicit "Account name:" label or from the creditor pattern
// table.
func matchAccountHeader(line string) (canonical, label string, ok bool) {
	if m := accountNameLineRe.FindStringSubmatch(line); m != nil {
		label = strings.TrimSpace(m[1])
		if label == "" {
			return "", "", false
		}
		if canon, _, matched := matchCreditor(label); matched {
			return canon, label, true
		}
		return strings.ToUpper(label), label, true
	}
	return matchCreditor(line)
}

// findBlockEnd locates where the account block closes: the next account
// header, or window exhaustion.
func findBlockEnd(lines []string, start int) int {
	limit := start + scanWindow
	if limit > len(lines) {
		limit = len(lines)
	}
	for j := start + 1; j < limit; j++ {
		if _, _, ok := matchAccountHeader(lines[j]); ok {
			return j
		}
	}
	return limit
}

// scanAccountBlock builds a record from one account's scan window.
// Returns nil when the block yields neither an account number nor a
// status and the grid re-scan cannot rescue it.
func scanAccountBlock(lines []string, start, end int, canonical, label string) *models.AccountRecord {
	acct := &models.AccountRecord{
		Creditor:        canonical,
		DisplayCreditor: label,
	}

	block := lines[start:end]
	realEstate := realEstateRe.MatchString(strings.Join(block, "\n"))

	for j := start; j < end; j++ {
		line := lines[j]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := accountTypeLineRe.FindStringSubmatch(trimmed); m != nil && acct.AccountType == "" {
			acct.AccountType = strings.TrimSpace(m[1])
		}
		if m := balanceLineRe.FindStringSubmatch(trimmed); m != nil && acct.Balance == "" {
			acct.Balance = m[1]
		}
		captureDateField(acct, trimmed)

		// Field-label lines other than explicit status lines must not
		// drive status resolution; their values leak status-like tokens.
		if statusLineRe.MatchString(trimmed) || !fieldLabelRe.MatchString(trimmed) {
			resolveStatusLine(acct, trimmed, realEstate)
		}
	}

	// The header line itself often carries the balance inline.
	if acct.Balance == "" {
		if amount := inlineAmountRe.FindString(lines[start]); amount != "" {
			acct.Balance = amount
		}
	}

	acct.AccountNumber = extractAccountNumberFromContext(lines, start, contextWindow)

	for _, entry := range extractLateEntries(lines, start) {
		acct.AddLateEntry(entry)
	}
	if len(acct.LateEntries) == 0 {
		acct.LatePaymentCount = estimateLatePaymentCount(block)
	}

	if acct.AccountNumber == "" && acct.Status == "" {
		if !confirmChargeOffFromGrid(block) {
			log.WithFields(
				logging.Field{Key: logging.FieldCreditor, Value: canonical},
				logging.Field{Key: logging.FieldLine, Value: start},
			).Debug("Discarding incomplete account block")
			return nil
		}
		applyStatus(acct, models.StatusChargeOff, false)
	}

	validateCompliance(acct, block)
	return acct
}

// captureDateField parses the labeled date fields that anchor the
// re-aging checks. Unparsable dates leave the field nil.
func captureDateField(acct *models.AccountRecord, line string) {
	parse := func(raw string) *models.ReportDate {
		month, year, ok := dateutils.ParseMonthYear(raw)
		if !ok {
			return nil
		}
		return &models.ReportDate{Month: month, Year: year, Raw: strings.TrimSpace(raw)}
	}

	if m := dofdLineRe.FindStringSubmatch(line); m != nil && acct.DOFD == nil {
		acct.DOFD = parse(m[1])
		return
	}
	if m := dateReportedRe.FindStringSubmatch(line); m != nil && acct.DateReported == nil {
		acct.DateReported = parse(m[1])
		return
	}
	if m := statusUpdatedRe.FindStringSubmatch(line); m != nil && acct.StatusUpdated == nil {
		acct.StatusUpdated = parse(m[1])
	}
}

// Package artifact persists the per-run analysis outputs: the JSON
// summary consumed by later dispute rounds and a CSV export of the
// disputed accounts.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/analyzer"
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

// Statutory anchors for the damages estimate: FCRA section 616 allows
// $100-$1,000 per willful violation; the per-account figure is the
// settlement-demand convention for each negative tradeline disputed.
var (
	perViolationDamages = decimal.NewFromInt(1000)
	perAccountDamages   = decimal.NewFromInt(500)
)

// BuildSummary assembles the persisted analysis artifact from the
// filtered account list. Policies are classified here so the artifact
// is self-contained.
func BuildSummary(bureau string, round int, accounts []*models.AccountRecord) *models.AnalysisSummary {
	summary := models.NewAnalysisSummary(bureau, round)

	violations := 0
	for _, acct := range accounts {
		violations += len(acct.Violations)
		policy := analyzer.ClassifyAccountPolicy(acct)
		log.Debug("Classified account",
			logging.Field{Key: logging.FieldCreditor, Value: acct.Creditor},
			logging.Field{Key: logging.FieldPolicy, Value: policy})
		summary.Accounts = append(summary.Accounts, models.AccountSummary{
			Creditor:        acct.Creditor,
			DisplayCreditor: acct.DisplayCreditor,
			AccountNumber:   acct.AccountNumber,
			Status:          acct.Status,
			Balance:         acct.Balance,
			Policy:          policy,
			LatePayments:    latePaymentCount(acct),
			Violations:      len(acct.Violations),
		})
	}

	summary.DamagesEstimate = estimateDamages(len(accounts), violations)
	return summary
}

func latePaymentCount(acct *models.AccountRecord) int {
	if len(acct.LateEntries) > 0 {
		return len(acct.LateEntries)
	}
	return acct.LatePaymentCount
}

// estimateDamages is a settlement-demand figure, not a legal opinion:
// a flat amount per negative account plus one statutory maximum per
// observed reporting violation.
func estimateDamages(accountCount, violationCount int) string {
	total := perAccountDamages.Mul(decimal.NewFromInt(int64(accountCount))).
		Add(perViolationDamages.Mul(decimal.NewFromInt(int64(violationCount))))
	return "$" + total.StringFixed(2)
}

// WriteSummaryJSON persists the artifact, creating the output directory
// when needed.
func WriteSummaryJSON(summary *models.AnalysisSummary, path string) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis summary: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write analysis summary: %w", err)
	}

	log.WithField(logging.FieldOutputFile, path).Info("Wrote analysis summary")
	return nil
}

// ReadSummaryJSON loads a previously persisted artifact; later rounds
// read the prior round's summary to escalate.
func ReadSummaryJSON(path string) (*models.AnalysisSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis summary: %w", err)
	}
	var summary models.AnalysisSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse analysis summary: %w", err)
	}
	return &summary, nil
}

// WriteAccountsCSV exports the per-account rows for spreadsheet review.
func WriteAccountsCSV(summary *models.AnalysisSummary, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close CSV file")
		}
	}()

	if err := gocsv.MarshalFile(&summary.Accounts, file); err != nil {
		return fmt.Errorf("failed to write accounts CSV: %w", err)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(summary.Accounts)},
	).Info("Wrote accounts CSV")
	return nil
}

package reportparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/models"
)

func violationsContaining(acct *models.AccountRecord, substr string) []string {
	var matched []string
	for _, v := range acct.Violations {
		if strings.Contains(strings.ToLower(v), strings.ToLower(substr)) {
			matched = append(matched, v)
		}
	}
	return matched
}

func TestValidateComplianceMonthlyPaymentOnCollection(t *testing.T) {
	acct := &models.AccountRecord{Status: models.StatusCollection}
	validateCompliance(acct, []string{"Monthly payment: $150"})

	assert.NotEmpty(t, violationsContaining(acct, "monthly payment"))
}

func TestValidateComplianceClosedButOpen(t *testing.T) {
	acct := &models.AccountRecord{Status: models.StatusClosed}
	validateCompliance(acct, []string{"Status: Closed", "Payment status: Open"})

	assert.NotEmpty(t, violationsContaining(acct, "Open designation"))
}

func TestValidateComplianceDateOpenedIsNotOpen(t *testing.T) {
	acct := &models.AccountRecord{Status: models.StatusClosed}
	validateCompliance(acct, []string{"Status: Closed", "Date opened: 03/2019"})

	assert.Empty(t, violationsContaining(acct, "Open designation"))
}

func TestValidateComplianceCreditLimitOnClosed(t *testing.T) {
	acct := &models.AccountRecord{Status: models.StatusClosed}
	validateCompliance(acct, []string{"Credit limit: $3,000"})

	assert.NotEmpty(t, violationsContaining(acct, "credit limit"))
}

func TestValidateCompliancePastDueOnPaid(t *testing.T) {
	acct := &models.AccountRecord{Status: models.StatusPaid}
	validateCompliance(acct, []string{"Past due: $45"})

	assert.NotEmpty(t, violationsContaining(acct, "past-due"))
}

func TestValidateComplianceChargeOffBalance(t *testing.T) {
	t.Run("balance with no sold notation", func(t *testing.T) {
		acct := &models.AccountRecord{Status: models.StatusChargeOff, Balance: "$4,946"}
		validateCompliance(acct, []string{"Charge off"})

		assert.NotEmpty(t, violationsContaining(acct, "sold/transferred"))
	})

	t.Run("sold notation suppresses the check", func(t *testing.T) {
		acct := &models.AccountRecord{Status: models.StatusChargeOff, Balance: "$4,946"}
		validateCompliance(acct, []string{"Charge off", "Sold to LVNV FUNDING"})

		assert.Empty(t, violationsContaining(acct, "sold/transferred"))
	})
}

func TestValidateComplianceMixedAccountType(t *testing.T) {
	acct := &models.AccountRecord{Status: models.StatusOpen, AccountType: "Revolving Installment"}
	validateCompliance(acct, nil)

	assert.NotEmpty(t, violationsContaining(acct, "mixes revolving"))
}

func TestValidateReaging(t *testing.T) {
	t.Run("dofd equal to date reported on a collection", func(t *testing.T) {
		acct := &models.AccountRecord{
			Status:       models.StatusCollection,
			DOFD:         &models.ReportDate{Month: 6, Year: 2020, Raw: "Jun 2020"},
			DateReported: &models.ReportDate{Month: 6, Year: 2020, Raw: "Jun 2020"},
		}
		validateCompliance(acct, nil)

		assert.NotEmpty(t, violationsContaining(acct, "DOFD equals"))
	})

	t.Run("reporting beyond the seven year window", func(t *testing.T) {
		acct := &models.AccountRecord{
			Status:       models.StatusCollection,
			DOFD:         &models.ReportDate{Month: 1, Year: 2018, Raw: "Jan 2018"},
			DateReported: &models.ReportDate{Month: 6, Year: 2025, Raw: "Jun 2025"},
		}
		validateCompliance(acct, nil)

		assert.NotEmpty(t, violationsContaining(acct, "7-year"))
	})

	t.Run("balance still reported four years after dofd", func(t *testing.T) {
		acct := &models.AccountRecord{
			Status:       models.StatusLate,
			Balance:      "$500",
			DOFD:         &models.ReportDate{Month: 1, Year: 2020, Raw: "Jan 2020"},
			DateReported: &models.ReportDate{Month: 6, Year: 2024, Raw: "Jun 2024"},
		}
		validateCompliance(acct, nil)

		assert.NotEmpty(t, violationsContaining(acct, "still reported"))
	})

	t.Run("missing dates skip every date check", func(t *testing.T) {
		acct := &models.AccountRecord{
			Status: models.StatusCollection,
			DOFD:   &models.ReportDate{Month: 6, Year: 2020, Raw: "Jun 2020"},
		}
		validateCompliance(acct, nil)

		assert.Empty(t, violationsContaining(acct, "Re-aging"))
		assert.Empty(t, violationsContaining(acct, "DOFD equals"))
	})
}

func TestValidateMedicalPolicy(t *testing.T) {
	t.Run("small medical collection flagged", func(t *testing.T) {
		acct := &models.AccountRecord{
			Creditor: "MERCY HOSPITAL",
			Status:   models.StatusCollection,
			Balance:  "$350",
		}
		validateCompliance(acct, nil)

		assert.NotEmpty(t, violationsContaining(acct, "under $500"))
	})

	t.Run("large medical collection not flagged", func(t *testing.T) {
		acct := &models.AccountRecord{
			Creditor: "MERCY HOSPITAL",
			Status:   models.StatusCollection,
			Balance:  "$750",
		}
		validateCompliance(acct, nil)

		assert.Empty(t, violationsContaining(acct, "under $500"))
	})

	t.Run("non-medical creditor ignored", func(t *testing.T) {
		acct := &models.AccountRecord{
			Creditor: "PORTFOLIO RECOVERY",
			Status:   models.StatusCollection,
			Balance:  "$350",
		}
		validateCompliance(acct, nil)

		assert.Empty(t, violationsContaining(acct, "under $500"))
	})
}

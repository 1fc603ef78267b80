package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/models"
)

func TestNormalizeCreditorKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"suffix stripped", "DISCOVER CARD", "DISCOVER"},
		{"bank suffix stripped", "DISCOVER BANK", "DISCOVER"},
		{"cbna alias", "MACYS/CBNA", "CBNA"},
		{"cap one auto alias", "CAP ONE AUTO", "CAPITAL ONE"},
		{"capital one alias", "CAPITAL ONE BANK", "CAPITAL ONE"},
		{"jpmcb alias", "JPMCB CARD", "CHASE"},
		{"whitespace collapsed", "  WELLS   FARGO  ", "WELLS FARGO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeCreditorKey(tt.input))
		})
	}
}

func TestRegisterCreditorAliases(t *testing.T) {
	saved := creditorAliases
	defer func() { creditorAliases = saved }()

	RegisterCreditorAliases(map[string]string{
		"WFBNA":   "Wells Fargo",
		"MIDLAND": "MIDLAND CREDIT",
		"":        "IGNORED",
	})

	assert.Equal(t, "WELLS FARGO", normalizeCreditorKey("WFBNA CARD SERVICES"))
	assert.Equal(t, "MIDLAND CREDIT", normalizeCreditorKey("Midland Funding"))
	// Built-in aliases still apply after registration.
	assert.Equal(t, "CHASE", normalizeCreditorKey("JPMCB CARD"))
}

func TestMergeAccountsByKeyDuplicateTradelines(t *testing.T) {
	accounts := []*models.AccountRecord{
		{Creditor: "DISCOVER", AccountNumber: "601101XXXXXX", Balance: "$4,946", Status: models.StatusChargeOff},
		{Creditor: "DISCOVER CARD", AccountNumber: "601101XXXXXX", Balance: "$4,946", Status: models.StatusClosed},
	}

	merged := MergeAccountsByKey(accounts)

	require.Len(t, merged, 1)
	assert.Equal(t, models.StatusChargeOff, merged[0].Status)
}

func TestMergeAccountsByKeyStatusSeverity(t *testing.T) {
	t.Run("derogatory beats positive", func(t *testing.T) {
		accounts := []*models.AccountRecord{
			{Creditor: "CHASE", AccountNumber: "XXXX-XXXX-XXXX-9912", Balance: "$500", Status: models.StatusCurrent},
			{Creditor: "CHASE", AccountNumber: "XXXX-XXXX-XXXX-9912", Balance: "$500", Status: models.StatusChargeOff},
		}
		merged := MergeAccountsByKey(accounts)
		require.Len(t, merged, 1)
		assert.Equal(t, models.StatusChargeOff, merged[0].Status)
	})

	t.Run("derogatory survives a later positive", func(t *testing.T) {
		accounts := []*models.AccountRecord{
			{Creditor: "CHASE", AccountNumber: "XXXX-XXXX-XXXX-9912", Balance: "$500", Status: models.StatusChargeOff},
			{Creditor: "CHASE", AccountNumber: "XXXX-XXXX-XXXX-9912", Balance: "$500", Status: models.StatusCurrent},
		}
		merged := MergeAccountsByKey(accounts)
		require.Len(t, merged, 1)
		assert.Equal(t, models.StatusChargeOff, merged[0].Status)
	})
}

func TestMergeAccountsByKeyBalancePreference(t *testing.T) {
	accounts := []*models.AccountRecord{
		{Creditor: "SYNCHRONY BANK", AccountNumber: "XXXX-XXXX-XXXX-4411", Balance: "$2,238"},
		{Creditor: "SYNCB", AccountNumber: "XXXX-XXXX-XXXX-4411", Balance: "$2,238.00"},
	}

	merged := MergeAccountsByKey(accounts)

	require.Len(t, merged, 1)
	assert.Equal(t, "$2,238.00", merged[0].Balance)
}

func TestMergeAccountsByKeyAccountNumberPreference(t *testing.T) {
	// Same fallback pair, so the records merge; the digit-free mask is
	// replaced once a digit-bearing number shows up.
	accounts := []*models.AccountRecord{
		{Creditor: "ALLY", AccountNumber: "XXXXXXXX", Balance: "$310"},
		{Creditor: "ALLY", AccountNumber: "", Balance: "$310"},
		{Creditor: "ALLY", AccountNumber: "300011XXXXXX", Balance: "$310"},
	}

	merged := MergeAccountsByKey(accounts)

	require.Len(t, merged, 1)
	assert.Equal(t, "300011XXXXXX", merged[0].AccountNumber)
}

func TestMergeAccountsByKeyProductGroupSeparation(t *testing.T) {
	accounts := []*models.AccountRecord{
		{Creditor: "CAPITAL ONE", DisplayCreditor: "CAP ONE AUTO", AccountNumber: "XXXX-XXXX-XXXX-1234", AccountType: "Installment", Balance: "$9,000"},
		{Creditor: "CAPITAL ONE", AccountNumber: "XXXX-XXXX-XXXX-1234", AccountType: "Revolving", Balance: "$9,000"},
	}

	merged := MergeAccountsByKey(accounts)

	assert.Len(t, merged, 2)
}

func TestMergeAccountsByKeyMultiPoisoning(t *testing.T) {
	accounts := []*models.AccountRecord{
		{Creditor: "CHASE", AccountNumber: "XXXX-XXXX-XXXX-1111", Balance: "$500"},
		{Creditor: "CHASE", AccountNumber: "XXXX-XXXX-XXXX-2222", Balance: "$500"},
		// Unknown last4 with a poisoned (creditor, balance) pair must
		// not silently merge into either of the above.
		{Creditor: "CHASE", AccountNumber: "", Balance: "$500"},
		{Creditor: "CHASE", AccountNumber: "", Balance: "$500"},
	}

	merged := MergeAccountsByKey(accounts)

	assert.Len(t, merged, 4)
}

func TestMergeAccountsByKeyUnknownLast4Fallback(t *testing.T) {
	accounts := []*models.AccountRecord{
		{Creditor: "CHASE", AccountNumber: "", Balance: "$500", Status: models.StatusLate},
		{Creditor: "CHASE", AccountNumber: "", Balance: "$500", Status: models.StatusChargeOff},
	}

	merged := MergeAccountsByKey(accounts)

	require.Len(t, merged, 1)
	assert.Equal(t, models.StatusChargeOff, merged[0].Status)
}

func TestMergeAccountsByKeyUnionsHistory(t *testing.T) {
	accounts := []*models.AccountRecord{
		{
			Creditor:      "DISCOVER",
			AccountNumber: "XXXX-XXXX-XXXX-9913",
			Balance:       "$4,946",
			NegativeItems: []string{models.StatusChargeOff},
			LateEntries:   []models.LateEntry{{Month: "Jan", Year: 2023, Severity: 30}},
			Violations:    []string{"violation one"},
		},
		{
			Creditor:      "DISCOVER CARD",
			AccountNumber: "XXXX-XXXX-XXXX-9913",
			Balance:       "$4,946",
			NegativeItems: []string{models.StatusChargeOff, models.StatusCollection},
			LateEntries: []models.LateEntry{
				{Month: "Jan", Year: 2023, Severity: 30},
				{Month: "Feb", Year: 2023, Severity: 60},
			},
			Violations: []string{"violation one", "violation two"},
		},
	}

	merged := MergeAccountsByKey(accounts)

	require.Len(t, merged, 1)
	acct := merged[0]
	assert.Equal(t, []string{models.StatusChargeOff, models.StatusCollection}, acct.NegativeItems)
	assert.Len(t, acct.LateEntries, 2)
	assert.Equal(t, 2, acct.LatePaymentCount)
	assert.Equal(t, []string{"violation one", "violation two"}, acct.Violations)
}

func TestMergeAccountsByKeyOrderInsensitive(t *testing.T) {
	build := func() []*models.AccountRecord {
		return []*models.AccountRecord{
			{Creditor: "DISCOVER", AccountNumber: "XXXX-XXXX-XXXX-9913", Balance: "$4,946", Status: models.StatusClosed},
			{Creditor: "DISCOVER CARD", AccountNumber: "XXXX-XXXX-XXXX-9913", Balance: "$4,946", Status: models.StatusChargeOff},
			{Creditor: "DISCOVER BANK", AccountNumber: "XXXX-XXXX-XXXX-9913", Balance: "$4,946.00", Status: models.StatusLate},
		}
	}

	forward := MergeAccountsByKey(build())

	reversed := build()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	backward := MergeAccountsByKey(reversed)

	require.Len(t, forward, 1)
	require.Len(t, backward, 1)
	assert.Equal(t, forward[0].Status, backward[0].Status)
	assert.Equal(t, forward[0].Balance, backward[0].Balance)
	assert.ElementsMatch(t, forward[0].NegativeItems, backward[0].NegativeItems)
}

func TestMergeAccountsByKeyDoesNotMutateInput(t *testing.T) {
	original := &models.AccountRecord{
		Creditor:      "DISCOVER",
		AccountNumber: "XXXX-XXXX-XXXX-9913",
		Balance:       "$4,946",
		Status:        models.StatusClosed,
	}
	other := &models.AccountRecord{
		Creditor:      "DISCOVER CARD",
		AccountNumber: "XXXX-XXXX-XXXX-9913",
		Balance:       "$4,946",
		Status:        models.StatusChargeOff,
		NegativeItems: []string{models.StatusChargeOff},
	}

	merged := MergeAccountsByKey([]*models.AccountRecord{original, other})

	require.Len(t, merged, 1)
	assert.Equal(t, models.StatusChargeOff, merged[0].Status)
	assert.Equal(t, models.StatusClosed, original.Status)
	assert.Empty(t, original.NegativeItems)
}

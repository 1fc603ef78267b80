package models

import (
	"time"

	"github.com/google/uuid"
)

// Dispute policies assigned by the classifier.
const (
	PolicyDelete  = "delete"
	PolicyCorrect = "correct"
)

// AccountSummary is the per-account slice of the persisted analysis
// artifact and the CSV export row.
type AccountSummary struct {
	Creditor        string `json:"creditor" csv:"Creditor"`
	DisplayCreditor string `json:"displayCreditor" csv:"DisplayCreditor"`
	AccountNumber   string `json:"accountNumber,omitempty" csv:"AccountNumber"`
	Status          string `json:"status,omitempty" csv:"Status"`
	Balance         string `json:"balance,omitempty" csv:"Balance"`
	Policy          string `json:"policy" csv:"Policy"`
	LatePayments    int    `json:"latePayments" csv:"LatePayments"`
	Violations      int    `json:"violations" csv:"Violations"`
}

// AnalysisSummary is the JSON artifact persisted per analysis run.
type AnalysisSummary struct {
	RunID           string           `json:"runId"`
	Timestamp       time.Time        `json:"timestamp"`
	Bureau          string           `json:"bureau"`
	Round           int              `json:"round"`
	DamagesEstimate string           `json:"damagesEstimate"`
	Accounts        []AccountSummary `json:"accounts"`
}

// NewAnalysisSummary creates an AnalysisSummary with a generated run ID
// and timestamp.
func NewAnalysisSummary(bureau string, round int) *AnalysisSummary {
	return &AnalysisSummary{
		RunID:     uuid.New().String(),
		Timestamp: time.Now(),
		Bureau:    bureau,
		Round:     round,
		Accounts:  []AccountSummary{},
	}
}

// Package models provides the data structures used throughout the application.
package models

// LateEntry is a single cell recovered from the 24-month payment-history
// grid: a month, an optional year, and how late the payment was.
type LateEntry struct {
	Month    string `csv:"Month" yaml:"month"`       // canonical short month name, e.g. "Apr"
	Year     int    `csv:"Year" yaml:"year"`         // 0 when the grid did not carry a year
	Severity int    `csv:"Severity" yaml:"severity"` // 30, 60 or 90
}

// ReportDate is a month/year pair extracted from a labeled date field,
// keeping the verbatim text for letter fidelity. A nil *ReportDate means
// the field was absent or unparsable.
type ReportDate struct {
	Month int    `yaml:"month"`
	Year  int    `yaml:"year"`
	Raw   string `yaml:"raw"`
}

// AccountRecord is the central entity of the extraction pipeline. It is
// created by the extraction driver, mutated in place while the account's
// scan window is processed, merged copy-on-write by the analyzer, and
// read-only afterward.
type AccountRecord struct {
	Creditor         string      // canonical creditor name, alias-normalized
	DisplayCreditor  string      // literal label as printed on the report
	AccountNumber    string      // normalized masked form, "" when unknown
	AccountType      string      // free-text product type ("Installment", "Revolving")
	Balance          string      // currency string as reported, e.g. "$4,946"
	Status           string      // canonical status label, "" when unresolved
	StatusRaw        string      // verbatim text of an explicit "Status:" line
	NegativeItems    []string    // ordered set of derogatory labels observed
	LateEntries      []LateEntry // deduplicated late-payment history
	LatePaymentCount int
	DOFD             *ReportDate
	DateReported     *ReportDate
	StatusUpdated    *ReportDate
	Violations       []string // free-text compliance violations
}

// AddNegativeItem records a derogatory label, preserving insertion order
// and dropping exact duplicates.
func (a *AccountRecord) AddNegativeItem(item string) {
	for _, existing := range a.NegativeItems {
		if existing == item {
			return
		}
	}
	a.NegativeItems = append(a.NegativeItems, item)
}

// AddLateEntry appends a late-payment grid cell, deduplicating on the
// (month, year, severity) triple, and keeps LatePaymentCount in sync.
func (a *AccountRecord) AddLateEntry(entry LateEntry) {
	for _, existing := range a.LateEntries {
		if existing == entry {
			return
		}
	}
	a.LateEntries = append(a.LateEntries, entry)
	a.LatePaymentCount = len(a.LateEntries)
}

// AddViolation appends a compliance-violation description.
func (a *AccountRecord) AddViolation(description string) {
	a.Violations = append(a.Violations, description)
}

// HasNegativeItem reports whether a derogatory label was recorded.
func (a *AccountRecord) HasNegativeItem(item string) bool {
	for _, existing := range a.NegativeItems {
		if existing == item {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. The merger works on copies so that merge
// output never aliases the raw extraction records.
func (a *AccountRecord) Clone() *AccountRecord {
	clone := *a
	clone.NegativeItems = append([]string(nil), a.NegativeItems...)
	clone.LateEntries = append([]LateEntry(nil), a.LateEntries...)
	clone.Violations = append([]string(nil), a.Violations...)
	if a.DOFD != nil {
		d := *a.DOFD
		clone.DOFD = &d
	}
	if a.DateReported != nil {
		d := *a.DateReported
		clone.DateReported = &d
	}
	if a.StatusUpdated != nil {
		d := *a.StatusUpdated
		clone.StatusUpdated = &d
	}
	return &clone
}

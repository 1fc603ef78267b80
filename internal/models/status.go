package models

// Canonical status vocabulary. Every resolved account status is one of
// these labels; anything else the report prints lands in StatusRaw or
// NegativeItems instead.
const (
	StatusNeverLate     = "Never late"
	StatusExceptional   = "Exceptional payment history"
	StatusPaidAsAgreed  = "Paid as agreed"
	StatusCurrent       = "Current"
	StatusPaid          = "Paid"
	StatusOpen          = "Open"
	StatusClosed        = "Closed"
	StatusChargeOff     = "Charge off"
	StatusCollection    = "Collection"
	StatusLate          = "Late"
	StatusSettled       = "Settled"
	StatusRepossession  = "Repossession"
	StatusForeclosure   = "Foreclosure"
	StatusBankruptcy    = "Bankruptcy"
)

// statusSeverity is a total order over the status vocabulary. Positive
// statuses rank highest so that derogatory tokens leaking out of legend
// or key text can never displace an established good standing; only an
// explicit "Status:" line bypasses this ranking.
var statusSeverity = map[string]int{
	StatusNeverLate:    15,
	StatusExceptional:  15,
	StatusPaidAsAgreed: 14,
	StatusCurrent:      14,
	StatusPaid:         13,
	StatusOpen:         13,
	StatusBankruptcy:   10,
	StatusForeclosure:  9,
	StatusRepossession: 9,
	StatusChargeOff:    8,
	StatusCollection:   8,
	StatusSettled:      5,
	StatusLate:         4,
	StatusClosed:       3,
}

// StatusSeverity returns the precedence rank of a canonical status.
// Unknown labels rank 0 so they lose to everything in the vocabulary.
func StatusSeverity(status string) int {
	return statusSeverity[status]
}

// severeDerogatory statuses are permanent once recorded: no later
// positive match may clear them.
var severeDerogatory = map[string]bool{
	StatusChargeOff:    true,
	StatusCollection:   true,
	StatusRepossession: true,
	StatusForeclosure:  true,
	StatusBankruptcy:   true,
}

// IsSevereDerogatory reports whether a status belongs to the severe
// derogatory class.
func IsSevereDerogatory(status string) bool {
	return severeDerogatory[status]
}

// IsPositiveStatus reports whether a status belongs to the positive half
// of the vocabulary.
func IsPositiveStatus(status string) bool {
	return statusSeverity[status] >= 13
}

// Package knowledgebase supplies legal citations backing dispute
// letters: a local YAML-backed database and an optional Gemini-assisted
// client for accounts the local database does not cover. The letter
// pipeline functions correctly with no citations at all.
package knowledgebase

import (
	"context"
	"regexp"
	"strings"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/logging"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/models"
)

var medicalCreditorRe = regexp.MustCompile(`(?i)medical|hospital|health|clinic|physician|radiology|emergency`)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Client defines the interface for citation lookup services. This
// abstraction keeps the letter synthesizer testable independently of
// external API calls.
type Client interface {
	// Citations returns short reference strings supporting the dispute
	// of one account under the given policy (delete or correct). An
	// empty slice is a valid answer.
	Citations(ctx context.Context, acct *models.AccountRecord, policy string) ([]string, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, acct *models.AccountRecord, policy string) ([]string, error)

// Citations implements Client.
func (f ClientFunc) Citations(ctx context.Context, acct *models.AccountRecord, policy string) ([]string, error) {
	return f(ctx, acct, policy)
}

// Dispute topics used as keys into the reference database.
const (
	TopicChargeOff    = "charge_off"
	TopicCollection   = "collection"
	TopicRepossession = "repossession"
	TopicForeclosure  = "foreclosure"
	TopicBankruptcy   = "bankruptcy"
	TopicLatePayment  = "late_payment"
	TopicMedical      = "medical"
	TopicReAging      = "re_aging"
	TopicMetro2       = "metro2"
	TopicDeletion     = "deletion"
	TopicCorrection   = "correction"
)

// TopicsFor derives the ordered list of dispute topics one account
// touches. Order matters: the most specific derogatory comes first so
// citation budgets spend themselves on the strongest claims.
func TopicsFor(acct *models.AccountRecord, policy string) []string {
	var topics []string
	add := func(topic string) {
		for _, existing := range topics {
			if existing == topic {
				return
			}
		}
		topics = append(topics, topic)
	}

	text := strings.ToLower(strings.Join(append([]string{acct.Status, acct.StatusRaw}, acct.NegativeItems...), " "))
	switch {
	case strings.Contains(text, "bankrupt"):
		add(TopicBankruptcy)
	case strings.Contains(text, "foreclos"):
		add(TopicForeclosure)
	case strings.Contains(text, "repossess"):
		add(TopicRepossession)
	}
	if strings.Contains(text, "charge") {
		add(TopicChargeOff)
	}
	if strings.Contains(text, "collection") {
		add(TopicCollection)
		if medicalCreditorRe.MatchString(acct.Creditor) || medicalCreditorRe.MatchString(acct.DisplayCreditor) {
			add(TopicMedical)
		}
	}
	if len(acct.LateEntries) > 0 || acct.LatePaymentCount > 0 {
		add(TopicLatePayment)
	}
	for _, violation := range acct.Violations {
		lower := strings.ToLower(violation)
		if strings.Contains(lower, "re-aging") {
			add(TopicReAging)
		}
		if strings.Contains(lower, "metro 2") {
			add(TopicMetro2)
		}
	}

	if policy == models.PolicyDelete {
		add(TopicDeletion)
	} else {
		add(TopicCorrection)
	}
	return topics
}

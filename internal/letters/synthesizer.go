// Package letters turns the analyzed account list into dispute letter
// bodies, one markdown document per bureau per round. Citations are
// optional; a letter without them is complete and mailable.
package letters

import (
	"context"
	"fmt"
	"strings"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/analyzer"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/knowledgebase"
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

// bureauAddresses is the dispute mailing address printed in the letter
// header for each supported bureau.
var bureauAddresses = map[string]string{
	"Experian":   "Experian\nP.O. Box 4500\nAllen, TX 75013",
	"Equifax":    "Equifax Information Services LLC\nP.O. Box 740256\nAtlanta, GA 30374",
	"TransUnion": "TransUnion Consumer Solutions\nP.O. Box 2000\nChester, PA 19016",
}

// roundIntros escalates the letter tone across dispute rounds.
var roundIntros = map[int]string{
	1: "I am writing to dispute the following information in my credit file. The items listed below are inaccurate, incomplete, or unverifiable and must be reinvestigated under FCRA section 611.",
	2: "This is my second written dispute of the items below. Your previous response did not resolve the inaccuracies, and I am again demanding a reasonable reinvestigation under FCRA section 611.",
	3: "This is my third dispute of the items below. Continued reporting of unverifiable information after repeated disputes is willful noncompliance under FCRA section 616.",
}

// LetterRequest describes one letter to synthesize.
type LetterRequest struct {
	Bureau       string
	Round        int
	ConsumerName string
	Accounts     []*models.AccountRecord
}

// Synthesizer builds dispute letter bodies. The knowledgebase client is
// optional; with a nil client letters carry no citations.
type Synthesizer struct {
	kb knowledgebase.Client
}

// NewSynthesizer creates a letter synthesizer.
func NewSynthesizer(kb knowledgebase.Client) *Synthesizer {
	return &Synthesizer{kb: kb}
}

// Synthesize renders the letter body for one bureau and round. Accounts
// classified for deletion and correction land in separate sections.
// Citation lookup failures degrade to a citation-free paragraph; they
// never fail the letter.
func (s *Synthesizer) Synthesize(ctx context.Context, req LetterRequest) (string, error) {
	if len(req.Accounts) == 0 {
		return "", fmt.Errorf("no accounts to dispute")
	}
	round := req.Round
	if round < 1 {
		round = 1
	}

	var deletions, corrections []*models.AccountRecord
	for _, acct := range req.Accounts {
		if analyzer.ClassifyAccountPolicy(acct) == models.PolicyDelete {
			deletions = append(deletions, acct)
		} else {
			corrections = append(corrections, acct)
		}
	}

	var b strings.Builder
	if address, ok := bureauAddresses[req.Bureau]; ok {
		b.WriteString(address)
		b.WriteString("\n\n")
	}
	if req.ConsumerName != "" {
		fmt.Fprintf(&b, "Re: Dispute of inaccurate credit information - %s\n\n", req.ConsumerName)
	}

	intro, ok := roundIntros[round]
	if !ok {
		intro = roundIntros[3]
	}
	b.WriteString(intro)
	b.WriteString("\n")

	if len(deletions) > 0 {
		b.WriteString("\n## Accounts demanded for deletion\n")
		for _, acct := range deletions {
			s.writeAccountSection(ctx, &b, acct, models.PolicyDelete)
		}
	}
	if len(corrections) > 0 {
		b.WriteString("\n## Accounts demanded for correction\n")
		for _, acct := range corrections {
			s.writeAccountSection(ctx, &b, acct, models.PolicyCorrect)
		}
	}

	b.WriteString("\nPlease complete your reinvestigation within 30 days as required by FCRA section 611(a)(1) and send me written results along with a corrected copy of my credit report.\n")

	log.WithFields(
		logging.Field{Key: logging.FieldBureau, Value: req.Bureau},
		logging.Field{Key: logging.FieldCount, Value: len(req.Accounts)},
	).Info("Synthesized dispute letter")
	return b.String(), nil
}

func (s *Synthesizer) writeAccountSection(ctx context.Context, b *strings.Builder, acct *models.AccountRecord, policy string) {
	name := acct.DisplayCreditor
	if name == "" {
		name = acct.Creditor
	}
	fmt.Fprintf(b, "\n### %s\n", name)
	if acct.AccountNumber != "" {
		fmt.Fprintf(b, "Account number: %s\n", acct.AccountNumber)
	}
	if acct.Status != "" {
		fmt.Fprintf(b, "Reported status: %s\n", acct.Status)
	}
	if acct.Balance != "" {
		fmt.Fprintf(b, "Reported balance: %s\n", acct.Balance)
	}

	if policy == models.PolicyDelete {
		b.WriteString("\nI demand this account be deleted from my credit file. The information is inaccurate and unverifiable as reported.\n")
	} else {
		b.WriteString("\nI demand the late-payment history on this account be corrected. The marks listed below are inaccurate as reported.\n")
	}

	if len(acct.LateEntries) > 0 {
		b.WriteString("\nDisputed late marks:\n")
		for _, entry := range acct.LateEntries {
			if entry.Year > 0 {
				fmt.Fprintf(b, "- %s %d: reported %d days late\n", entry.Month, entry.Year, entry.Severity)
			} else {
				fmt.Fprintf(b, "- %s: reported %d days late\n", entry.Month, entry.Severity)
			}
		}
	}

	if len(acct.Violations) > 0 {
		b.WriteString("\nReporting defects observed on this tradeline:\n")
		for _, violation := range acct.Violations {
			fmt.Fprintf(b, "- %s\n", violation)
		}
	}

	for _, citation := range s.citations(ctx, acct, policy) {
		fmt.Fprintf(b, "> %s\n", citation)
	}
}

func (s *Synthesizer) citations(ctx context.Context, acct *models.AccountRecord, policy string) []string {
	if s.kb == nil {
		return nil
	}
	citations, err := s.kb.Citations(ctx, acct, policy)
	if err != nil {
		log.WithError(err).WithField(logging.FieldCreditor, acct.Creditor).
			Warn("Citation lookup failed, writing letter without citations")
		return nil
	}
	return citations
}

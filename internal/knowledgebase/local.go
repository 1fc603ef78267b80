package knowledgebase

import (
	"context"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/models"
)

// maxCitations bounds how many references one letter paragraph cites.
const maxCitations = 6

// ReferenceLoader is the slice of the store the local client needs.
type ReferenceLoader interface {
	LoadReferences() (map[string][]string, error)
}

// LocalClient answers citation lookups from the YAML reference
// database. It never calls out of process.
type LocalClient struct {
	references map[string][]string
}

// NewLocalClient loads the reference database once up front. A loader
// error degrades to an empty database rather than failing the run;
// letters are still valid without citations.
func NewLocalClient(loader ReferenceLoader) *LocalClient {
	references, err := loader.LoadReferences()
	if err != nil {
		log.WithError(err).Warn("Could not load dispute references, continuing without citations")
		references = map[string][]string{}
	}
	return &LocalClient{references: references}
}

// NewLocalClientFromMap builds a client around an in-memory database.
func NewLocalClientFromMap(references map[string][]string) *LocalClient {
	if references == nil {
		references = map[string][]string{}
	}
	return &LocalClient{references: references}
}

// Citations implements Client. Topics are consulted in specificity
// order and results deduplicated; the answer is capped at maxCitations.
func (c *LocalClient) Citations(_ context.Context, acct *models.AccountRecord, policy string) ([]string, error) {
	var citations []string
	seen := make(map[string]bool)

	for _, topic := range TopicsFor(acct, policy) {
		for _, citation := range c.references[topic] {
			if seen[citation] {
				continue
			}
			seen[citation] = true
			citations = append(citations, citation)
			if len(citations) == maxCitations {
				return citations, nil
			}
		}
	}
	return citations, nil
}

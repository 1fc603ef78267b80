package knowledgebase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/logging"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/models"
)

// GeminiClient implements Client against the Google Gemini API,
// supplementing the local database for accounts it does not cover.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a Gemini-backed citation client. The caller
// owns the API key; it is never persisted.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Citations implements Client by prompting the model for short legal
// references matching the account's dispute topics.
func (c *GeminiClient) Citations(ctx context.Context, acct *models.AccountRecord, policy string) ([]string, error) {
	prompt := buildCitationPrompt(acct, policy)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	citations := parseCitationResponse(responseText)

	log.WithFields(
		logging.Field{Key: logging.FieldCreditor, Value: acct.Creditor},
		logging.Field{Key: logging.FieldCount, Value: len(citations)},
	).Debug("Gemini returned citations")
	return citations, nil
}

func buildCitationPrompt(acct *models.AccountRecord, policy string) string {
	demand := "correct the late-payment history on"
	if policy == models.PolicyDelete {
		demand = "delete"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are assisting with a consumer credit dispute letter demanding a bureau %s a tradeline.\n", demand)
	fmt.Fprintf(&b, "Creditor: %s\n", acct.Creditor)
	if acct.Status != "" {
		fmt.Fprintf(&b, "Reported status: %s\n", acct.Status)
	}
	if len(acct.Violations) > 0 {
		b.WriteString("Observed reporting problems:\n")
		for _, violation := range acct.Violations {
			fmt.Fprintf(&b, "- %s\n", violation)
		}
	}
	b.WriteString("\nList up to 3 short citations of FCRA, FDCPA or Metro 2 provisions supporting this demand.\n")
	b.WriteString("Respond with one citation per line, each starting with \"- \", and nothing else.")
	return b.String()
}

// parseCitationResponse extracts the "- " bullet lines from a model
// response, ignoring everything else.
func parseCitationResponse(response string) []string {
	var citations []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			citation := strings.TrimSpace(strings.TrimPrefix(line, "- "))
			if citation != "" && len(citations) < maxCitations {
				citations = append(citations, citation)
			}
		}
	}
	return citations
}

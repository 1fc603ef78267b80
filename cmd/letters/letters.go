// Package letters implements the dispute letter generation command
package letters

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/cmd/common"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/cmd/root"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/config"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/fileutils"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/knowledgebase"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/letters"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/logging"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/store"
)

// Cmd represents the letters command
var Cmd = &cobra.Command{
	Use:   "letters",
	Short: "Generate a dispute letter from a credit report text file",
	Long: `Generate a dispute letter for the negative accounts found in a flattened
credit report text file. Citations come from the local YAML reference
database, or from Gemini when knowledgebase enrichment is enabled.

Example:
  disputegen letters -i experian-report.txt -o output/ -r 2 -n "John Doe"`,
	Run: lettersFunc,
}

// ConsumerName is printed in the letter subject line when set
var ConsumerName string

func init() {
	Cmd.Flags().StringVarP(&ConsumerName, "name", "n", "", "Consumer name printed in the letter subject line")
}

func lettersFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	input := root.SharedFlags.Input
	output := root.SharedFlags.Output
	round := root.SharedFlags.Round

	if input == "" {
		log.Fatal("Input report file must be specified")
	}

	report, err := common.ProcessReportFile(input, round, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to analyze report",
			logging.Field{Key: logging.FieldFile, Value: input})
	}
	if len(report.Accounts) == 0 {
		log.Info("No negative accounts found, nothing to dispute",
			logging.Field{Key: logging.FieldFile, Value: input})
		return
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	kb, cleanup := buildKnowledgebaseClient(ctx)
	defer cleanup()

	if cfg := root.GetConfig(); cfg != nil && cfg.Knowledgebase.Enabled {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Knowledgebase.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	body, err := letters.NewSynthesizer(kb).Synthesize(ctx, letters.LetterRequest{
		Bureau:       report.Bureau,
		Round:        round,
		ConsumerName: ConsumerName,
		Accounts:     report.Accounts,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to synthesize dispute letter")
	}

	letterPath := filepath.Join(output, fmt.Sprintf("%s_round%d_letter.md", common.ArtifactBaseName(input), round))
	if err := fileutils.WriteFile(letterPath, []byte(body), 0o600); err != nil {
		log.WithError(err).Fatal("Failed to write dispute letter",
			logging.Field{Key: logging.FieldOutputFile, Value: letterPath})
	}

	log.Info("Dispute letter written",
		logging.Field{Key: logging.FieldBureau, Value: report.Bureau},
		logging.Field{Key: logging.FieldCount, Value: len(report.Accounts)},
		logging.Field{Key: logging.FieldOutputFile, Value: letterPath})
}

// buildKnowledgebaseClient picks Gemini when enrichment is enabled and
// falls back to the local YAML reference database otherwise. The second
// return value releases the client when the command finishes.
func buildKnowledgebaseClient(ctx context.Context) (knowledgebase.Client, func()) {
	cfg := root.GetConfig()

	if cfg != nil && cfg.Knowledgebase.Enabled {
		apiKey := cfg.Knowledgebase.APIKey
		if apiKey == "" {
			apiKey = config.GetGeminiAPIKey()
		}
		client, err := knowledgebase.NewGeminiClient(ctx, apiKey, cfg.Knowledgebase.Model)
		if err == nil {
			return client, func() { _ = client.Close() }
		}
		root.Log.WithError(err).Warn("Could not create Gemini client, falling back to local citations")
	}

	creditorsFile := "creditors.yaml"
	referencesFile := "references.yaml"
	if cfg != nil {
		creditorsFile = cfg.Analysis.CreditorsFile
		referencesFile = cfg.Analysis.ReferencesFile
	}
	return knowledgebase.NewLocalClient(store.NewReferenceStore(creditorsFile, referencesFile)), func() {}
}

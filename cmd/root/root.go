// Package root contains the root command for the application
package root

import (
	"github.com/spf13/cobra"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/analyzer"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/artifact"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/config"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/knowledgebase"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/letters"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/logging"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/reportparser"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/store"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
	Round  int
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// AppConfig is the configuration loaded during PersistentPreRun
	AppConfig *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "disputegen",
		Short: "A CLI tool to analyze credit report text and generate dispute letters.",
		Long: `disputegen is a CLI tool that extracts tradelines from flattened credit
report text, filters the negative accounts, and generates dispute letters
with supporting legal citations.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to disputegen!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Fatal("Invalid configuration")
			}
			AppConfig = cfg

			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
			logging.SetDefaultLogger(Log)

			// Propagate the configured logger to all pipeline packages
			reportparser.SetLogger(Log)
			analyzer.SetLogger(Log)
			artifact.SetLogger(Log)
			store.SetLogger(Log)
			knowledgebase.SetLogger(Log)
			letters.SetLogger(Log)

			analyzer.SetClosedLateThreshold(cfg.Analysis.LateThreshold)

			// Flags left at their zero value fall back to configuration
			if SharedFlags.Round == 0 {
				SharedFlags.Round = cfg.Analysis.Round
			}
			if SharedFlags.Output == "" {
				SharedFlags.Output = cfg.Analysis.OutputDir
			}

			refStore = store.NewReferenceStore(cfg.Analysis.CreditorsFile, cfg.Analysis.ReferencesFile)
			aliases, err := refStore.LoadCreditorAliases()
			if err != nil {
				Log.WithError(err).Warn("Could not load creditor alias overrides")
				return
			}
			creditorAliases = aliases
			if len(aliases) > 0 {
				analyzer.RegisterCreditorAliases(aliases)
			}
		},
		// Write the alias overrides back so the file stays canonical even
		// after hand edits.
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if refStore == nil || len(creditorAliases) == 0 {
				return
			}
			if err := refStore.SaveCreditorAliases(creditorAliases); err != nil {
				Log.WithError(err).Warn("Failed to save creditor alias overrides")
			}
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}

	refStore        *store.ReferenceStore
	creditorAliases map[string]string
)

// GetConfig returns the loaded application configuration, or nil before
// PersistentPreRun has executed.
func GetConfig() *config.Config {
	return AppConfig
}

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input report text file (or directory for batch)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output directory for artifacts and letters")
	Cmd.PersistentFlags().IntVarP(&SharedFlags.Round, "round", "r", 0, "Dispute round, escalates letter tone (defaults to configured round)")
}

// Package analyze implements the single-report analysis command
package analyze

import (
	"github.com/spf13/cobra"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/cmd/common"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/cmd/root"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/logging"
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one credit report text file",
	Long: `Analyze a flattened credit report text file: extract tradelines, merge
duplicates, keep the negative accounts, and write the JSON summary and
CSV account export to the output directory.

Example:
  disputegen analyze -i experian-report.txt -o output/`,
	Run: analyzeFunc,
}

func analyzeFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	input := root.SharedFlags.Input
	output := root.SharedFlags.Output

	if input == "" {
		log.Fatal("Input report file must be specified")
	}

	report, err := common.ProcessReportFile(input, root.SharedFlags.Round, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to analyze report",
			logging.Field{Key: logging.FieldFile, Value: input})
	}

	if err := common.WriteArtifacts(report, output); err != nil {
		log.WithError(err).Fatal("Failed to write analysis artifacts",
			logging.Field{Key: logging.FieldOutputFile, Value: output})
	}

	log.Info("Analysis complete",
		logging.Field{Key: logging.FieldBureau, Value: report.Bureau},
		logging.Field{Key: logging.FieldCount, Value: len(report.Accounts)},
		logging.Field{Key: "damages_estimate", Value: report.Summary.DamagesEstimate})
}

// Package batch handles batch processing of report files
package batch

import (
	"github.com/spf13/cobra"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/cmd/common"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/cmd/root"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/batch"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/fileutils"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/logging"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/models"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch analyze report files from a directory",
	Long: `Batch process all report text files from an input directory and write
the analysis artifacts to another directory. Files are grouped by bureau
and each report is analyzed independently; one bad report never aborts
the rest.

Example:
  disputegen batch -i reports/ -o output/`,
	Run: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output

	if inputDir == "" || outputDir == "" {
		log.Fatal("Input and output directories must be specified")
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		log.WithError(err).Fatal("Failed to create output directory")
	}

	aggregator := batch.NewAggregator(log)

	files, err := aggregator.DiscoverReportFiles(inputDir)
	if err != nil {
		log.WithError(err).Fatal("Failed to read input directory")
	}
	if len(files) == 0 {
		log.Warn("No report text files found in input directory")
		return
	}

	for _, group := range aggregator.GroupFilesByBureau(files) {
		log.Info("Processing bureau group",
			logging.Field{Key: logging.FieldBureau, Value: group.Bureau},
			logging.Field{Key: logging.FieldCount, Value: len(group.Files)})
	}

	results := aggregator.Run(files, func(file string) (*models.AnalysisSummary, error) {
		report, err := common.ProcessReportFile(file, root.SharedFlags.Round, log)
		if err != nil {
			return nil, err
		}
		if err := common.WriteArtifacts(report, outputDir); err != nil {
			return nil, err
		}
		return report.Summary, nil
	})

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}

	log.Info("Batch processing completed",
		logging.Field{Key: "processed", Value: len(results) - failed},
		logging.Field{Key: "failed", Value: failed})
}

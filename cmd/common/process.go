// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/analyzer"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/artifact"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/fileutils"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/logging"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/models"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/parsererror"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/reportparser"
)

// Report is the outcome of running the analysis pipeline over one
// flattened report text file. Accounts holds only the negative accounts
// that survived merging and filtering.
type Report struct {
	File     string
	Bureau   string
	Accounts []*models.AccountRecord
	Summary  *models.AnalysisSummary
}

// ProcessReportFile runs extraction, merging, and negative filtering
// over a single report file and builds the analysis summary.
func ProcessReportFile(file string, round int, log logging.Logger) (*Report, error) {
	text, err := fileutils.ReadTextFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	bureau := reportparser.DetectBureau(filepath.Base(file), text)

	accounts := reportparser.ExtractAccountDetails(text)
	if len(accounts) == 0 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       file,
			ExpectedFormat: "flattened credit report text with tradeline blocks",
			Msg:            "no account tradelines found",
		}
	}

	merged := analyzer.MergeAccountsByKey(accounts)
	negatives := analyzer.FilterNegativeAccounts(merged)

	log.Info("Report analyzed",
		logging.Field{Key: logging.FieldFile, Value: filepath.Base(file)},
		logging.Field{Key: logging.FieldBureau, Value: bureau},
		logging.Field{Key: "extracted", Value: len(accounts)},
		logging.Field{Key: "negative", Value: len(negatives)})

	return &Report{
		File:     file,
		Bureau:   bureau,
		Accounts: negatives,
		Summary:  artifact.BuildSummary(bureau, round, negatives),
	}, nil
}

// ArtifactBaseName derives the output artifact base name from an input
// file path by stripping its directory and extension.
func ArtifactBaseName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteArtifacts persists the JSON summary and the CSV account export
// for a processed report into the output directory.
func WriteArtifacts(report *Report, outputDir string) error {
	base := ArtifactBaseName(report.File)

	jsonPath := filepath.Join(outputDir, base+"_analysis.json")
	if err := artifact.WriteSummaryJSON(report.Summary, jsonPath); err != nil {
		return fmt.Errorf("failed to write analysis summary: %w", err)
	}

	csvPath := filepath.Join(outputDir, base+"_accounts.csv")
	if err := artifact.WriteAccountsCSV(report.Summary, csvPath); err != nil {
		return fmt.Errorf("failed to write account export: %w", err)
	}

	return nil
}

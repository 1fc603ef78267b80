// Package batch provides sequential processing of multiple report text
// files: discovery, grouping by bureau, and a run loop in which one bad
// report never aborts the rest.
package batch

import (
	"path/filepath"
	"sort"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/fileutils"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/logging"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/models"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/reportparser"
)

// FileGroup is the set of report files attributed to one bureau.
type FileGroup struct {
	Bureau string
	Files  []string
}

// Result records the outcome of processing one report file.
type Result struct {
	File    string
	Bureau  string
	Summary *models.AnalysisSummary
	Err     error
}

// Aggregator drives batch runs.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates a batch aggregator.
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Aggregator{logger: logger}
}

// DiscoverReportFiles finds the flattened report text files under a
// directory, sorted for deterministic processing order.
func (a *Aggregator) DiscoverReportFiles(dir string) ([]string, error) {
	return fileutils.ListFilesWithExtension(dir, ".txt")
}

// bureauOrder fixes group ordering so batch output is stable.
var bureauOrder = map[string]int{
	"Experian":                 1,
	"Equifax":                  2,
	"TransUnion":               3,
	reportparser.BureauUnknown: 4,
}

// GroupFilesByBureau attributes each file to a bureau from its
// filename alone; content detection happens later when the file is
// actually read.
func (a *Aggregator) GroupFilesByBureau(files []string) []FileGroup {
	groups := make(map[string]*FileGroup)

	for _, file := range files {
		bureau := reportparser.DetectBureau(filepath.Base(file), "")
		group, ok := groups[bureau]
		if !ok {
			group = &FileGroup{Bureau: bureau}
			groups[bureau] = group
		}
		group.Files = append(group.Files, file)

		a.logger.Debug("File attributed to bureau",
			logging.Field{Key: logging.FieldFile, Value: filepath.Base(file)},
			logging.Field{Key: logging.FieldBureau, Value: bureau})
	}

	result := make([]FileGroup, 0, len(groups))
	for _, group := range groups {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		return bureauOrder[result[i].Bureau] < bureauOrder[result[j].Bureau]
	})

	a.logger.Info("Grouped report files by bureau",
		logging.Field{Key: "total_files", Value: len(files)},
		logging.Field{Key: "bureau_groups", Value: len(result)})
	return result
}

// Run processes files sequentially through the supplied function.
// Failures are recorded per file and logged; processing continues.
func (a *Aggregator) Run(files []string, process func(file string) (*models.AnalysisSummary, error)) []Result {
	results := make([]Result, 0, len(files))

	for _, file := range files {
		summary, err := process(file)
		result := Result{File: file, Err: err}
		if summary != nil {
			result.Bureau = summary.Bureau
			result.Summary = summary
		}
		if err != nil {
			a.logger.WithError(err).Error("Report processing failed",
				logging.Field{Key: logging.FieldFile, Value: file})
		}
		results = append(results, result)
	}

	return results
}

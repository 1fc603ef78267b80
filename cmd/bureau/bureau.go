// Package bureau implements the bureau detection command
package bureau

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/cmd/root"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/fileutils"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/logging"
	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/reportparser"
)

// Cmd represents the bureau command
var Cmd = &cobra.Command{
	Use:   "bureau",
	Short: "Detect which bureau a report text file came from",
	Long: `Detect the credit bureau a flattened report text file came from, first
from the filename and then from the report content.

Example:
  disputegen bureau -i report-2025.txt`,
	Run: bureauFunc,
}

func bureauFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	input := root.SharedFlags.Input

	if input == "" {
		log.Fatal("Input report file must be specified")
	}

	text, err := fileutils.ReadTextFile(input)
	if err != nil {
		log.WithError(err).Fatal("Failed to read report file",
			logging.Field{Key: logging.FieldFile, Value: input})
	}

	bureau := reportparser.DetectBureau(filepath.Base(input), text)
	cmd.Println(bureau)

	log.Info("Bureau detected",
		logging.Field{Key: logging.FieldFile, Value: filepath.Base(input)},
		logging.Field{Key: logging.FieldBureau, Value: bureau})
}

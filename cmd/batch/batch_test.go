package batch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/cmd/batch"
)

func TestBatchCommand_CommandMetadata(t *testing.T) {
	assert.Equal(t, "batch", batch.Cmd.Use)
	assert.Contains(t, batch.Cmd.Short, "Batch analyze")
	assert.NotNil(t, batch.Cmd.Run)
}

func TestBatchCommand_LongDescription(t *testing.T) {
	assert.Contains(t, batch.Cmd.Long, "input directory")
	assert.Contains(t, batch.Cmd.Long, "grouped by bureau")
	assert.Contains(t, batch.Cmd.Long, "Example")
}

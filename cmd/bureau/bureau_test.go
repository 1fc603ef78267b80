package bureau_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/cmd/bureau"
)

func TestBureauCommand_CommandMetadata(t *testing.T) {
	assert.Equal(t, "bureau", bureau.Cmd.Use)
	assert.Contains(t, bureau.Cmd.Short, "Detect which bureau")
	assert.NotNil(t, bureau.Cmd.Run)
}

func TestBureauCommand_LongDescription(t *testing.T) {
	assert.Contains(t, bureau.Cmd.Long, "filename")
	assert.Contains(t, bureau.Cmd.Long, "Example")
}

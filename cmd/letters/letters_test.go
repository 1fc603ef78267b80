package letters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/cmd/letters"
)

func TestLettersCommand_CommandMetadata(t *testing.T) {
	assert.Equal(t, "letters", letters.Cmd.Use)
	assert.Contains(t, letters.Cmd.Short, "dispute letter")
	assert.NotNil(t, letters.Cmd.Run)
}

func TestLettersCommand_Flags(t *testing.T) {
	nameFlag := letters.Cmd.Flags().Lookup("name")
	assert.NotNil(t, nameFlag)
	assert.Equal(t, "n", nameFlag.Shorthand)
}

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestNewReferenceStore(t *testing.T) {
	s := NewReferenceStore("creditors.yaml", "references.yaml")
	assert.Equal(t, "creditors.yaml", s.CreditorsFile)
	assert.Equal(t, "references.yaml", s.ReferencesFile)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.yaml")
	writeFile(t, testFile, "test content")

	s := NewReferenceStore("", "")

	file, err := s.FindConfigFile(testFile)
	assert.NoError(t, err)
	assert.Equal(t, testFile, file)

	_, err = s.FindConfigFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.Error(t, err)
}

func TestLoadCreditorAliases(t *testing.T) {
	t.Run("structured file", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "creditors.yaml")
		writeFile(t, file, "creditors:\n  \"CAP ONE AUTO\": \"CAPITAL ONE\"\n  \"MACYS/CBNA\": \"CBNA\"\n")

		s := NewReferenceStore(file, "")
		aliases, err := s.LoadCreditorAliases()

		require.NoError(t, err)
		assert.Equal(t, "CAPITAL ONE", aliases["CAP ONE AUTO"])
		assert.Equal(t, "CBNA", aliases["MACYS/CBNA"])
	})

	t.Run("bare map fallback", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "creditors.yaml")
		writeFile(t, file, "\"JPMCB CARD\": \"CHASE\"\n")

		s := NewReferenceStore(file, "")
		aliases, err := s.LoadCreditorAliases()

		require.NoError(t, err)
		assert.Equal(t, "CHASE", aliases["JPMCB CARD"])
	})

	t.Run("missing absolute file yields empty map", func(t *testing.T) {
		s := NewReferenceStore(filepath.Join(t.TempDir(), "absent.yaml"), "")
		aliases, err := s.LoadCreditorAliases()

		require.NoError(t, err)
		assert.Empty(t, aliases)
	})

	t.Run("missing relative file yields empty map", func(t *testing.T) {
		s := NewReferenceStore("definitely-not-there.yaml", "")
		aliases, err := s.LoadCreditorAliases()

		require.NoError(t, err)
		assert.Empty(t, aliases)
	})
}

func TestSaveAndReloadCreditorAliases(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "creditors.yaml")
	s := NewReferenceStore(file, "")

	err := s.SaveCreditorAliases(map[string]string{"SYNCB/AMAZON": "SYNCHRONY BANK"})
	require.NoError(t, err)

	aliases, err := s.LoadCreditorAliases()
	require.NoError(t, err)
	assert.Equal(t, "SYNCHRONY BANK", aliases["SYNCB/AMAZON"])
}

func TestLoadReferences(t *testing.T) {
	t.Run("structured file", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "references.yaml")
		writeFile(t, file, `references:
  - topic: charge_off
    citations:
      - "FCRA 623(a)(1) - duty to furnish accurate information"
  - topic: late_payment
    citations:
      - "FCRA 611(a) - reinvestigation of disputed information"
      - "Metro 2 payment history profile requirements"
`)

		s := NewReferenceStore("", file)
		references, err := s.LoadReferences()

		require.NoError(t, err)
		assert.Len(t, references["charge_off"], 1)
		assert.Len(t, references["late_payment"], 2)
	})

	t.Run("bare map fallback", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "references.yaml")
		writeFile(t, file, "collection:\n  - \"FDCPA 809(b) - debt validation\"\n")

		s := NewReferenceStore("", file)
		references, err := s.LoadReferences()

		require.NoError(t, err)
		assert.Equal(t, []string{"FDCPA 809(b) - debt validation"}, references["collection"])
	})

	t.Run("missing relative file yields empty map", func(t *testing.T) {
		s := NewReferenceStore("", "no-such-references.yaml")
		references, err := s.LoadReferences()

		require.NoError(t, err)
		assert.Empty(t, references)
	})
}

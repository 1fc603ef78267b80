// Package store provides functionality for storing and retrieving
// application data: the creditor alias database and the dispute
// reference (citation) database, both YAML files.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/12TribesofIsrael/ultimatedisputegenerator/internal/logging"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// ReferenceConfig is one topic's worth of legal citations in
// references.yaml.
type ReferenceConfig struct {
	Topic     string   `yaml:"topic"`
	Citations []string `yaml:"citations"`
}

// ReferencesConfig is the top-level shape of references.yaml.
type ReferencesConfig struct {
	References []ReferenceConfig `yaml:"references"`
}

// CreditorsConfig is the top-level shape of creditors.yaml: report
// labels mapped to canonical furnisher names.
type CreditorsConfig struct {
	Creditors map[string]string `yaml:"creditors"`
}

// ReferenceStore manages loading and saving of the alias and citation
// databases.
type ReferenceStore struct {
	CreditorsFile  string
	ReferencesFile string
}

// NewReferenceStore creates a store for the dispute databases. Empty
// filenames fall back to the default names resolved through the
// standard config locations.
func NewReferenceStore(creditorsFile, referencesFile string) *ReferenceStore {
	return &ReferenceStore{
		CreditorsFile:  creditorsFile,
		ReferencesFile: referencesFile,
	}
}

// FindConfigFile looks for a configuration file in standard locations.
func (s *ReferenceStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "disputegen", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

func (s *ReferenceStore) resolveConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		return filename, nil
	}
	path, err := s.FindConfigFile(filename)
	if err != nil {
		log.WithField(logging.FieldFile, filename).Warn("Configuration file not found")
		return "", err
	}
	return path, nil
}

// LoadCreditorAliases loads the report-label to canonical-name map. A
// missing file is not an error; extraction falls back to the built-in
// pattern table alone.
func (s *ReferenceStore) LoadCreditorAliases() (map[string]string, error) {
	filename := s.CreditorsFile
	if filename == "" {
		filename = "creditors.yaml"
	}

	filePath, err := s.resolveConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("error resolving creditors file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("error reading creditors file: %w", err)
	}

	var config CreditorsConfig
	if err := yaml.Unmarshal(data, &config); err == nil && len(config.Creditors) > 0 {
		log.WithField(logging.FieldCount, len(config.Creditors)).Debug("Loaded creditor aliases")
		return config.Creditors, nil
	}

	// Fallback: a bare map without the top-level key.
	direct := make(map[string]string)
	if err := yaml.Unmarshal(data, &direct); err != nil {
		return nil, fmt.Errorf("could not parse creditors file %s: %w", filePath, err)
	}
	return direct, nil
}

// SaveCreditorAliases persists the alias map, creating the target
// directory when needed.
func (s *ReferenceStore) SaveCreditorAliases(aliases map[string]string) error {
	filename := s.CreditorsFile
	if filename == "" {
		filename = "creditors.yaml"
	}

	path := filename
	if !filepath.IsAbs(path) {
		if found, err := s.FindConfigFile(filename); err == nil {
			path = found
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(CreditorsConfig{Creditors: aliases})
	if err != nil {
		return fmt.Errorf("error marshaling creditor aliases: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("error writing creditors file: %w", err)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(aliases)},
	).Debug("Saved creditor aliases")
	return nil
}

// LoadReferences loads the citation database keyed by dispute topic
// ("charge_off", "collection", "late_payment", ...). A missing file is
// not an error; letters are generated without citations.
func (s *ReferenceStore) LoadReferences() (map[string][]string, error) {
	filename := s.ReferencesFile
	if filename == "" {
		filename = "references.yaml"
	}

	filePath, err := s.resolveConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("error resolving references file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("error reading references file: %w", err)
	}

	var config ReferencesConfig
	if err := yaml.Unmarshal(data, &config); err == nil && len(config.References) > 0 {
		references := make(map[string][]string, len(config.References))
		for _, ref := range config.References {
			references[ref.Topic] = append(references[ref.Topic], ref.Citations...)
		}
		log.WithField(logging.FieldCount, len(references)).Debug("Loaded dispute references")
		return references, nil
	}

	// Fallback: topic → citations map without the top-level key.
	direct := make(map[string][]string)
	if err := yaml.Unmarshal(data, &direct); err != nil {
		return nil, fmt.Errorf("could not parse references file %s: %w", filePath, err)
	}
	return direct, nil
}

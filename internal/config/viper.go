package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Analysis struct {
		Round          int    `mapstructure:"round" yaml:"round"`
		OutputDir      string `mapstructure:"output_dir" yaml:"output_dir"`
		LateThreshold  int    `mapstructure:"late_threshold" yaml:"late_threshold"`
		CreditorsFile  string `mapstructure:"creditors_file" yaml:"creditors_file"`
		ReferencesFile string `mapstructure:"references_file" yaml:"references_file"`
	} `mapstructure:"analysis" yaml:"analysis"`

	Knowledgebase struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // never serialized
	} `mapstructure:"knowledgebase" yaml:"knowledgebase"`
}

// InitializeConfig initializes Viper configuration with hierarchical
// loading: defaults, then config file, then environment.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.disputegen")
	v.AddConfigPath(".disputegen")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DISPUTE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			Logger.Warnf("error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
		// Missing config file is fine; defaults and env vars carry.
	}

	// The API key is always sourced from the unprefixed variable.
	if err := v.BindEnv("knowledgebase.api_key", "GEMINI_API_KEY"); err != nil {
		Logger.Warnf("failed to bind GEMINI_API_KEY environment variable: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("analysis.round", 1)
	v.SetDefault("analysis.output_dir", "output")
	v.SetDefault("analysis.late_threshold", 4)
	v.SetDefault("analysis.creditors_file", "creditors.yaml")
	v.SetDefault("analysis.references_file", "references.yaml")

	v.SetDefault("knowledgebase.enabled", false)
	v.SetDefault("knowledgebase.model", "gemini-2.0-flash")
	v.SetDefault("knowledgebase.timeout_seconds", 30)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Analysis.Round < 1 {
		return fmt.Errorf("analysis.round must be >= 1, got: %d", config.Analysis.Round)
	}

	if config.Analysis.LateThreshold < 0 {
		return fmt.Errorf("analysis.late_threshold must be >= 0, got: %d", config.Analysis.LateThreshold)
	}

	if config.Knowledgebase.Enabled {
		if config.Knowledgebase.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when knowledgebase enrichment is enabled")
		}
		if config.Knowledgebase.TimeoutSeconds < 1 || config.Knowledgebase.TimeoutSeconds > 300 {
			return fmt.Errorf("knowledgebase.timeout_seconds must be between 1 and 300, got: %d",
				config.Knowledgebase.TimeoutSeconds)
		}
	}

	return nil
}

// ConfigureLoggingFromConfig configures a logrus logger from the Config.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, 1, config.Analysis.Round)
	assert.Equal(t, 4, config.Analysis.LateThreshold)
	assert.Equal(t, "gemini-2.0-flash", config.Knowledgebase.Model)
	assert.False(t, config.Knowledgebase.Enabled)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	t.Setenv("DISPUTE_ANALYSIS_ROUND", "3")
	t.Setenv("DISPUTE_LOG_LEVEL", "debug")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, 3, config.Analysis.Round)
	assert.Equal(t, "debug", config.Log.Level)
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	config := &Config{}
	config.Log.Level = "verbose"
	config.Log.Format = "text"
	config.Analysis.Round = 1

	assert.Error(t, validateConfig(config))

	config.Log.Level = "info"
	config.Log.Format = "xml"
	assert.Error(t, validateConfig(config))

	config.Log.Format = "json"
	config.Analysis.Round = 0
	assert.Error(t, validateConfig(config))

	config.Analysis.Round = 2
	config.Knowledgebase.Enabled = true
	config.Knowledgebase.TimeoutSeconds = 30
	assert.Error(t, validateConfig(config), "enabled knowledgebase requires API key")

	config.Knowledgebase.APIKey = "test-key"
	assert.NoError(t, validateConfig(config))
}

func TestGetGeminiAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	assert.Empty(t, GetGeminiAPIKey())

	t.Setenv("GEMINI_API_KEY", "env-key")
	assert.Equal(t, "env-key", GetGeminiAPIKey())
}

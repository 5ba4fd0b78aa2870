package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"catalog": "careers.json",
		"threshold": 0,
		"store": "sqlite",
		"sqlite_path": "mentor.db",
		"backend": "openai",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "careers.json", cfg.Catalog)
	require.NotNil(t, cfg.Threshold)
	assert.Equal(t, 0.0, *cfg.Threshold)
	assert.Equal(t, "sqlite", cfg.Store)
	assert.Equal(t, "openai", cfg.Backend)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.4, cfg.ThresholdValue())
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"threshold above one", func(c *Config) { v := 1.5; c.Threshold = &v }, "Threshold"},
		{"negative threshold", func(c *Config) { v := -0.1; c.Threshold = &v }, "Threshold"},
		{"unknown store", func(c *Config) { c.Store = "redis" }, "Store"},
		{"postgres without url", func(c *Config) { c.Store = "postgres" }, "database_url"},
		{"s3 without bucket", func(c *Config) { c.Store = "s3" }, "s3_bucket"},
		{"sqlite without path", func(c *Config) { c.Store = "sqlite"; c.SQLitePath = "" }, "sqlite_path"},
		{"unknown backend", func(c *Config) { c.Backend = "claude" }, "Backend"},
		{"openai without keys", func(c *Config) { c.Backend = "openai" }, "no API key"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "LogLevel"},
		{"bad endpoint", func(c *Config) { c.S3Endpoint = "not a url" }, "S3Endpoint"},
		{"negative rate", func(c *Config) { c.RateLimit = -1 }, "RateLimit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ZeroThresholdAllowed(t *testing.T) {
	cfg := Default()
	zero := 0.0
	cfg.Threshold = &zero
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 0.0, cfg.ThresholdValue())
}

func TestMergeWithDefaults(t *testing.T) {
	zero := 0.0
	cfg := &Config{
		Catalog:   "custom.json",
		Threshold: &zero,
		Store:     "memory",
	}

	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, "custom.json", merged.Catalog)
	assert.Equal(t, "memory", merged.Store)
	assert.Equal(t, 0.0, merged.ThresholdValue(), "explicit zero threshold survives")
	assert.Equal(t, "data/profiles", merged.ProfileDir)
	assert.Equal(t, "gemini", merged.Backend)
	assert.Equal(t, 60, merged.LLMTimeoutSeconds)
	assert.Equal(t, 10, merged.RateBurst)
	assert.Equal(t, "custom.json", cfg.Catalog, "receiver is not modified")
}

func TestMergeWithDefaults_CopiesThreshold(t *testing.T) {
	defaults := Default()
	merged := (&Config{}).MergeWithDefaults(defaults)
	require.NotNil(t, merged.Threshold)
	*merged.Threshold = 0.9
	assert.Equal(t, 0.4, *defaults.Threshold)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PROFILE_STORE", "sqlite")
	t.Setenv("CAREER_CATALOG", "env.json")

	cfg := Config{Catalog: "file.json"}
	cfg.ApplyEnv()

	assert.Equal(t, "gem-key", cfg.APIKey)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Equal(t, "sqlite", cfg.Store)
	assert.Equal(t, "file.json", cfg.Catalog, "explicit values win over the environment")
}

func TestLLMTimeout(t *testing.T) {
	cfg := Config{LLMTimeoutSeconds: 5}
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout())
}

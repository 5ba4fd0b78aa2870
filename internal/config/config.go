// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or are taken from the environment.
type Config struct {
	// Career dataset and ranking
	Catalog   string   `json:"catalog,omitempty"`                                   // Path to the career roles dataset
	Threshold *float64 `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=1"` // Minimum match ratio (0.0-1.0)

	// Profile storage
	Store       string `json:"store,omitempty" validate:"omitempty,oneof=file sqlite postgres s3 memory"`
	ProfileDir  string `json:"profile_dir,omitempty"`  // Directory of <id>.json files (file store)
	SQLitePath  string `json:"sqlite_path,omitempty"`  // Database file (sqlite store)
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL (postgres store)
	S3Bucket    string `json:"s3_bucket,omitempty"`
	S3Prefix    string `json:"s3_prefix,omitempty"`
	S3Region    string `json:"s3_region,omitempty"`
	S3Endpoint  string `json:"s3_endpoint,omitempty" validate:"omitempty,url"`

	// Session journal
	LogDir string `json:"log_dir,omitempty"` // Directory of per-user session journals

	// Advisor
	APIKey            string `json:"api_key,omitempty"`        // Gemini API key
	OpenAIAPIKey      string `json:"openai_api_key,omitempty"` // OpenAI API key
	OpenAIBaseURL     string `json:"openai_base_url,omitempty" validate:"omitempty,url"`
	Backend           string `json:"backend,omitempty" validate:"omitempty,oneof=gemini openai"`
	ModelTier         string `json:"model_tier,omitempty" validate:"omitempty,oneof=lite standard advanced"`
	LLMTimeoutSeconds int    `json:"llm_timeout_seconds,omitempty" validate:"gte=0"`

	// Job search
	JobSearchURL string `json:"job_search_url,omitempty" validate:"omitempty,url"`
	JobLocation  string `json:"job_location,omitempty"`
	UseBrowser   bool   `json:"use_browser,omitempty"` // Render the search page in a headless browser

	// HTTP server
	Addr      string  `json:"addr,omitempty"`
	RateLimit float64 `json:"rate_limit,omitempty" validate:"gte=0"` // Requests per second per client
	RateBurst int     `json:"rate_burst,omitempty" validate:"gte=0"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=text json"`
	Verbose   bool   `json:"verbose,omitempty"` // Print detailed debug information
}

// Default returns the built-in configuration.
func Default() Config {
	threshold := 0.4
	return Config{
		Catalog:           "data/careers.json",
		Threshold:         &threshold,
		Store:             "file",
		ProfileDir:        "data/profiles",
		SQLitePath:        "data/career_mentor.db",
		S3Prefix:          "profiles",
		LogDir:            "logs",
		Backend:           "gemini",
		ModelTier:         "standard",
		LLMTimeoutSeconds: 60,
		JobSearchURL:      "https://www.google.com",
		JobLocation:       "India",
		Addr:              ":8080",
		RateLimit:         5,
		RateBurst:         10,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// envVars maps environment variables onto the fields they fill when unset.
var envVars = []struct {
	name  string
	field func(*Config) *string
}{
	{"GEMINI_API_KEY", func(c *Config) *string { return &c.APIKey }},
	{"OPENAI_API_KEY", func(c *Config) *string { return &c.OpenAIAPIKey }},
	{"DATABASE_URL", func(c *Config) *string { return &c.DatabaseURL }},
	{"CAREER_CATALOG", func(c *Config) *string { return &c.Catalog }},
	{"PROFILE_STORE", func(c *Config) *string { return &c.Store }},
	{"PROFILE_DIR", func(c *Config) *string { return &c.ProfileDir }},
	{"S3_BUCKET", func(c *Config) *string { return &c.S3Bucket }},
	{"AWS_REGION", func(c *Config) *string { return &c.S3Region }},
	{"AWS_ENDPOINT_URL_S3", func(c *Config) *string { return &c.S3Endpoint }},
}

// ApplyEnv fills empty fields from environment variables.
func (c *Config) ApplyEnv() {
	for _, v := range envVars {
		dst := v.field(c)
		if *dst != "" {
			continue
		}
		if val := os.Getenv(v.name); val != "" {
			*dst = val
		}
	}
}

var validate = validator.New()

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Store {
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres store")
		}
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("config error: 's3_bucket' is required for the s3 store")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("config error: 'sqlite_path' is required for the sqlite store")
		}
	}

	if c.Backend == "openai" && c.OpenAIAPIKey == "" && c.APIKey == "" {
		return fmt.Errorf("config error: backend 'openai' selected but no API key is set")
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	strs := []struct{ dst, def *string }{
		{&result.Catalog, &defaults.Catalog},
		{&result.Store, &defaults.Store},
		{&result.ProfileDir, &defaults.ProfileDir},
		{&result.SQLitePath, &defaults.SQLitePath},
		{&result.DatabaseURL, &defaults.DatabaseURL},
		{&result.S3Bucket, &defaults.S3Bucket},
		{&result.S3Prefix, &defaults.S3Prefix},
		{&result.S3Region, &defaults.S3Region},
		{&result.S3Endpoint, &defaults.S3Endpoint},
		{&result.LogDir, &defaults.LogDir},
		{&result.APIKey, &defaults.APIKey},
		{&result.OpenAIAPIKey, &defaults.OpenAIAPIKey},
		{&result.OpenAIBaseURL, &defaults.OpenAIBaseURL},
		{&result.Backend, &defaults.Backend},
		{&result.ModelTier, &defaults.ModelTier},
		{&result.JobSearchURL, &defaults.JobSearchURL},
		{&result.JobLocation, &defaults.JobLocation},
		{&result.Addr, &defaults.Addr},
		{&result.LogLevel, &defaults.LogLevel},
		{&result.LogFormat, &defaults.LogFormat},
	}
	for _, s := range strs {
		if *s.dst == "" {
			*s.dst = *s.def
		}
	}

	// Numeric fields: use default if zero
	if result.Threshold == nil && defaults.Threshold != nil {
		t := *defaults.Threshold
		result.Threshold = &t
	}
	if result.LLMTimeoutSeconds == 0 {
		result.LLMTimeoutSeconds = defaults.LLMTimeoutSeconds
	}
	if result.RateLimit == 0 {
		result.RateLimit = defaults.RateLimit
	}
	if result.RateBurst == 0 {
		result.RateBurst = defaults.RateBurst
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ThresholdValue returns the configured threshold, or 0.4 when unset.
func (c *Config) ThresholdValue() float64 {
	if c.Threshold == nil {
		return 0.4
	}
	return *c.Threshold
}

// LLMTimeout returns the per-call advisor timeout.
func (c *Config) LLMTimeout() time.Duration {
	if c.LLMTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}

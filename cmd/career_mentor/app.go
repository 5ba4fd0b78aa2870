package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/advisor"
	"github.com/jonathan/career-mentor/internal/catalog"
	"github.com/jonathan/career-mentor/internal/config"
	"github.com/jonathan/career-mentor/internal/fetch"
	"github.com/jonathan/career-mentor/internal/jobsearch"
	"github.com/jonathan/career-mentor/internal/llm"
	"github.com/jonathan/career-mentor/internal/logging"
	"github.com/jonathan/career-mentor/internal/mentor"
	"github.com/jonathan/career-mentor/internal/profile"
	"github.com/jonathan/career-mentor/internal/recommend"
	"github.com/jonathan/career-mentor/internal/retry"
	"github.com/jonathan/career-mentor/internal/session"
	"github.com/jonathan/career-mentor/internal/types"
)

// Flags shared by several subcommands.
var (
	userID      string
	threshold   float64
	personaName string
	backendName string
	jsonOutput  bool
)

// app holds the wired service for one command invocation.
type app struct {
	cfg      config.Config
	svc      *mentor.Service
	gateway  *advisor.Gateway
	feedback *session.SQLFeedbackStore
	cleanup  func()
}

// loadConfig merges the config file, command-line flags, environment and defaults.
// Flags win over the file, the file wins over the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	fileCfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		fileCfg.Catalog = catalogPath
	}
	if flags.Changed("store") {
		fileCfg.Store = storeBackend
	}
	if flags.Changed("profile-dir") {
		fileCfg.ProfileDir = profileDir
	}
	if flags.Changed("threshold") {
		t := threshold
		fileCfg.Threshold = &t
	}
	if flags.Changed("backend") {
		fileCfg.Backend = backendName
	}
	if verbose {
		fileCfg.Verbose = true
	}

	fileCfg.ApplyEnv()
	cfg := fileCfg.MergeWithDefaults(config.Default())
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newApp loads the catalog, opens the profile store and connects the collaborators.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	slog.SetDefault(logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat))

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	rec, err := recommend.New(cat, cfg.ThresholdValue())
	if err != nil {
		return nil, err
	}

	store, closeStore, err := profile.Open(ctx, storeOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open profile store: %w", err)
	}

	a := &app{cfg: cfg, cleanup: closeStore, gateway: connectAdvisor(ctx, cfg)}
	if sqlStore, ok := store.(*profile.SQLStore); ok {
		a.feedback = session.NewSQLFeedbackStore(sqlStore.DB)
	}

	a.svc = &mentor.Service{
		Profiles:    store,
		Recommender: rec,
		Advisor:     a.gateway,
		Jobs:        newSearcher(cfg),
		Log:         session.NewLog(),
		Journal:     session.NewJournal(cfg.LogDir),
	}
	if a.feedback != nil {
		a.svc.Feedback = a.feedback
	}
	if err := a.svc.Validate(); err != nil {
		a.Close()
		return nil, err
	}

	slog.Debug("career mentor ready",
		slog.String("catalog", cfg.Catalog),
		slog.Int("roles", cat.Len()),
		slog.String("store", cfg.Store),
	)
	return a, nil
}

// Close releases the advisor clients and the profile store.
func (a *app) Close() {
	if a.gateway != nil {
		if err := a.gateway.Close(); err != nil {
			slog.Warn("failed to close advisor clients", slog.Any("error", err))
		}
	}
	if a.cleanup != nil {
		a.cleanup()
	}
}

func storeOptions(cfg config.Config) profile.Options {
	opts := profile.Options{
		Backend: cfg.Store,
		Dir:     cfg.ProfileDir,
		S3: profile.S3Options{
			Region:   cfg.S3Region,
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			Endpoint: cfg.S3Endpoint,
		},
	}
	switch cfg.Store {
	case profile.BackendSQLite:
		opts.DSN = cfg.SQLitePath
	case profile.BackendPostgres:
		opts.DSN = cfg.DatabaseURL
	}
	return opts
}

func connectAdvisor(ctx context.Context, cfg config.Config) *advisor.Gateway {
	openai := llm.DefaultOpenAIConfig()
	if cfg.OpenAIBaseURL != "" {
		openai.BaseURL = cfg.OpenAIBaseURL
	}
	return advisor.Connect(ctx,
		advisor.Options{
			Tier:    llm.ModelTier(cfg.ModelTier),
			Timeout: cfg.LLMTimeout(),
			Retry:   retry.Default,
		},
		advisor.Keys{Gemini: cfg.APIKey, OpenAI: cfg.OpenAIAPIKey},
		llm.DefaultGeminiConfig(),
		openai,
	)
}

func newSearcher(cfg config.Config) *jobsearch.Searcher {
	s := jobsearch.New()
	s.BaseURL = cfg.JobSearchURL
	s.Location = cfg.JobLocation
	s.Renderer = fetch.Renderer{UseBrowser: cfg.UseBrowser, Options: fetch.DefaultOptions()}
	return s
}

// setupApp is the common preamble of every command that needs the service.
func setupApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return newApp(cmd.Context(), cfg)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

const userFlagUsage = `User ID (case-insensitive, surrounding spaces ignored; must not be ".", ".." or contain / or \)`

func addUserFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&userID, "user", "u", "", userFlagUsage)
	_ = cmd.MarkFlagRequired("user")
}

func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of formatted text")
}

// parsePersona resolves a persona name, rejecting unknown non-empty names.
func parsePersona(name string) (types.Persona, error) {
	p, ok := types.ParsePersona(name)
	if !ok && strings.TrimSpace(name) != "" {
		return "", fmt.Errorf("unknown persona %q", name)
	}
	return p, nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const testCatalog = `[
  {"role": "Data Scientist", "skills": ["Python", "SQL", "Machine Learning"],
   "courses": ["Machine Learning Specialization"], "projects": ["Churn prediction model"],
   "interview_topics": ["Bias-variance tradeoff"]},
  {"role": "Web Developer", "skills": ["HTML", "CSS", "JavaScript"]},
  {"role": "Backend Developer", "skills": ["Go", "SQL", "Docker"]}
]`

// testEnv is an isolated workspace with a config file pointing into a temp dir.
type testEnv struct {
	dir        string
	configPath string
	profileDir string
	logDir     string
}

// newTestEnv writes the test catalog and a config file. overrides replace config keys.
func newTestEnv(t *testing.T, overrides map[string]any) *testEnv {
	t.Helper()
	for _, name := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "DATABASE_URL", "CAREER_CATALOG",
		"PROFILE_STORE", "PROFILE_DIR", "S3_BUCKET", "AWS_REGION", "AWS_ENDPOINT_URL_S3",
	} {
		t.Setenv(name, "")
	}

	dir := t.TempDir()
	env := &testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.json"),
		profileDir: filepath.Join(dir, "profiles"),
		logDir:     filepath.Join(dir, "logs"),
	}
	catalog := filepath.Join(dir, "careers.json")
	require.NoError(t, os.WriteFile(catalog, []byte(testCatalog), 0o644))

	cfg := map[string]any{
		"catalog":     catalog,
		"store":       "file",
		"profile_dir": env.profileDir,
		"log_dir":     env.logDir,
		"log_level":   "error",
	}
	for k, v := range overrides {
		cfg[k] = v
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(env.configPath, data, 0o644))
	return env
}

// run executes the root command in-process with the env's config file.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return execute(t, append([]string{"--config", e.configPath}, args...)...)
}

// execute runs rootCmd with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func decodeJSON[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

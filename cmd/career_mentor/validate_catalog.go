package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/catalog"
	"github.com/jonathan/career-mentor/internal/logging"
)

var validateCatalogCmd = &cobra.Command{
	Use:   "validate-catalog [path]",
	Short: "Validate a career roles dataset",
	Long: `Validate a career roles dataset against its JSON schema and report duplicate
roles. Without a path the configured catalog is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidateCatalog,
}

func init() {
	rootCmd.AddCommand(validateCatalogCmd)
}

func runValidateCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := cfg.Catalog
	if len(args) == 1 {
		path = args[0]
	}

	slog.SetDefault(logging.New(cmd.ErrOrStderr(), "error", cfg.LogFormat))
	c, err := catalog.Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "✓ %s is valid: %d roles\n", path, c.Len())
	if dups := c.Duplicates(); len(dups) > 0 {
		_, _ = fmt.Fprintf(out, "  %d duplicate roles (first entry wins):\n", len(dups))
		for _, d := range dups {
			_, _ = fmt.Fprintf(out, "    - %s\n", d)
		}
	}
	return nil
}

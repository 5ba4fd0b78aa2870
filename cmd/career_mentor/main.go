// Package main provides the career_mentor command-line tool and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	verbose      bool
	catalogPath  string
	storeBackend string
	profileDir   string
)

var rootCmd = &cobra.Command{
	Use:   "career_mentor",
	Short: "Career guidance from your skills, goals and resume",
	Long: `career_mentor ranks career roles by how well your skills match them, explains the
skill gap for the best fit, and asks an LLM advisor for a personalized roadmap,
mock interview questions and job-level estimate.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to the career roles dataset")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "Profile store: file, sqlite, postgres, s3 or memory")
	rootCmd.PersistentFlags().StringVar(&profileDir, "profile-dir", "", "Directory of profile files (file store)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/observability"
	"github.com/jonathan/career-mentor/internal/types"
)

var (
	jobsRole       string
	jobsSearchURL  string
	jobsLocation   string
	jobsUseBrowser bool
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Find job postings for a role",
	Long: `Search the web for job-board postings for a role. When the search fails or finds
nothing, sample postings are shown instead.`,
	RunE: runJobs,
}

func init() {
	addJSONFlag(jobsCmd)
	jobsCmd.Flags().StringVar(&jobsRole, "role", "", "Role to search for (required)")
	jobsCmd.Flags().StringVar(&jobsSearchURL, "search-url", "", "Search engine base URL")
	jobsCmd.Flags().StringVar(&jobsLocation, "location", "", "Job location")
	jobsCmd.Flags().BoolVar(&jobsUseBrowser, "browser", false, "Render the search page in a headless browser")
	_ = jobsCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(jobsCmd)
}

// jobsOutput is the JSON shape of the jobs command.
type jobsOutput struct {
	Role string          `json:"role"`
	Jobs []types.JobLink `json:"jobs"`
	Mock bool            `json:"mock"`
}

func runJobs(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("search-url") {
		cfg.JobSearchURL = jobsSearchURL
	}
	if flags.Changed("location") {
		cfg.JobLocation = jobsLocation
	}
	if flags.Changed("browser") {
		cfg.UseBrowser = jobsUseBrowser
	}

	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	links, mock := a.svc.FindJobs(cmd.Context(), jobsRole)
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), jobsOutput{Role: jobsRole, Jobs: links, Mock: mock})
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintJobs(jobsRole, links, mock)
	return nil
}

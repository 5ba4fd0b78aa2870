package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/advisor"
	"github.com/jonathan/career-mentor/internal/mentor"
	"github.com/jonathan/career-mentor/internal/observability"
	"github.com/jonathan/career-mentor/internal/skills"
	"github.com/jonathan/career-mentor/internal/types"
)

var (
	runBackground string
	runGoals      string
	runSkills     string
	runResume     string
	runSave       bool
	runSkipJobs   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a full mentor session",
	Long: `Run a full mentor session for one user:
  1. Load the stored profile and apply any overrides from flags
  2. Extract skills from a resume (PDF, DOCX or text) and estimate the job level
  3. Optionally save the updated profile
  4. Rank the career roles and compute the skill gap for the top match
  5. Ask the advisor for a career-fit explanation, a roadmap and mock interview questions
  6. Search for job postings for the top role
  7. Append the session to the user's journal`,
	RunE: runRun,
}

func init() {
	addUserFlag(runCmd)
	addJSONFlag(runCmd)
	addAdvisorFlags(runCmd)
	runCmd.Flags().StringVar(&runBackground, "background", "", "Educational background (overrides stored value)")
	runCmd.Flags().StringVar(&runGoals, "goals", "", "Career goals (overrides stored value)")
	runCmd.Flags().StringVar(&runSkills, "skills", "", "Comma-separated skills (overrides stored skills)")
	runCmd.Flags().StringVar(&runResume, "resume", "", "Resume file (PDF, DOCX or text)")
	runCmd.Flags().BoolVar(&runSave, "save", false, "Save the updated profile")
	runCmd.Flags().BoolVar(&runSkipJobs, "skip-jobs", false, "Skip the job search")
	runCmd.Flags().Float64Var(&threshold, "threshold", 0.4, "Minimum match ratio (0.0-1.0)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	persona, err := parsePersona(personaName)
	if err != nil {
		return err
	}

	opts := mentor.RunOptions{
		UserID:   userID,
		Persona:  persona,
		Save:     runSave,
		SkipJobs: runSkipJobs,
	}

	flags := cmd.Flags()
	if flags.Changed("background") {
		opts.Background = &runBackground
	}
	if flags.Changed("goals") {
		opts.Goals = &runGoals
	}
	if flags.Changed("skills") {
		opts.Skills = skills.ParseList(runSkills)
	}
	if flags.Changed("resume") {
		data, err := os.ReadFile(runResume)
		if err != nil {
			return fmt.Errorf("failed to read resume file: %w", err)
		}
		opts.Resume = data
		opts.ResumeName = filepath.Base(runResume)
	}

	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	opts.Backend = advisor.ParseBackend(a.cfg.Backend)

	if a.cfg.Verbose {
		opts.OnProgress = func(e mentor.ProgressEvent) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", e.Step, e.Message)
		}
	}

	report, err := a.svc.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), report)
	}
	printReport(observability.NewPrinter(cmd.OutOrStdout()), report)
	return nil
}

func printReport(p *observability.Printer, r *mentor.Report) {
	p.PrintProfile(r.Profile)
	p.PrintDashboard(r.Profile, r.Matches, r.Gap)
	if r.Level != "" {
		p.PrintAdvice("ESTIMATED JOB LEVEL", r.Level)
	}
	p.PrintRecommendations(r.Matches)
	if r.TopRole == "" {
		return
	}
	if r.Gap != nil {
		p.PrintGap(*r.Gap)
	}
	if r.Gap != nil && r.Resources != nil {
		p.PrintRoleRequirements(types.RoleRequirements{
			Role:      r.TopRole,
			Skills:    r.Gap.Required,
			Resources: *r.Resources,
		})
	}
	p.PrintAdvice("WHY "+r.TopRole+" ("+r.Model+")", r.CareerFit)
	p.PrintAdvice("LEARNING ROADMAP", r.Roadmap)
	p.PrintAdvice("MOCK INTERVIEW", r.Interview)
	if len(r.Jobs) > 0 {
		p.PrintJobs(r.TopRole, r.Jobs, r.MockJobs)
	}
}

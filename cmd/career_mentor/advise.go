package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/advisor"
	"github.com/jonathan/career-mentor/internal/mentor"
	"github.com/jonathan/career-mentor/internal/observability"
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Ask the LLM advisor for personalized career advice",
	Long: `Ask the LLM advisor for advice tailored to the user's stored profile and persona.
The exchange is appended to the user's session journal. Without an API key the
advisor answers with a diagnostic message instead of failing.`,
	RunE: runAdvise,
}

func init() {
	addUserFlag(adviseCmd)
	addJSONFlag(adviseCmd)
	addAdvisorFlags(adviseCmd)
	rootCmd.AddCommand(adviseCmd)
}

func addAdvisorFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&personaName, "persona", "Student", "Persona: Student, Career Switcher or Working Professional")
	cmd.Flags().StringVar(&backendName, "backend", "", "Model backend: gemini or openai")
}

func runAdvise(cmd *cobra.Command, _ []string) error {
	persona, err := parsePersona(personaName)
	if err != nil {
		return err
	}

	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	entry, err := a.svc.Advise(cmd.Context(), mentor.AdviceOptions{
		UserID:  userID,
		Persona: persona,
		Backend: advisor.ParseBackend(a.cfg.Backend),
	})
	if err != nil {
		return fmt.Errorf("failed to get advice: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), entry)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintAdvice("ADVICE ("+entry.Model+")", entry.Advice)
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/observability"
	"github.com/jonathan/career-mentor/internal/resume"
	"github.com/jonathan/career-mentor/internal/skills"
)

var (
	profileBackground string
	profileGoals      string
	profileSkills     string
	profileAddSkills  string
	profileResume     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update a stored user profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored profile for a user",
	Long:  "Print the stored profile for a user. A user with no stored profile gets an empty default.",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update fields of a stored user profile",
	Long: `Update the background, goals or skills of a stored profile. Fields whose flags
are not given keep their stored values. --add-skills and --resume merge into the
existing skill list; --skills replaces it.`,
	RunE: runProfileSet,
}

func init() {
	addUserFlag(profileShowCmd)
	addJSONFlag(profileShowCmd)

	addUserFlag(profileSetCmd)
	addJSONFlag(profileSetCmd)
	profileSetCmd.Flags().StringVar(&profileBackground, "background", "", "Educational background")
	profileSetCmd.Flags().StringVar(&profileGoals, "goals", "", "Career goals")
	profileSetCmd.Flags().StringVar(&profileSkills, "skills", "", "Comma-separated skills (replaces stored skills)")
	profileSetCmd.Flags().StringVar(&profileAddSkills, "add-skills", "", "Comma-separated skills to add")
	profileSetCmd.Flags().StringVar(&profileResume, "resume", "", "Resume file (PDF, DOCX or text) to extract skills from")

	profileCmd.AddCommand(profileShowCmd, profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.svc.Profile(cmd.Context(), userID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), p)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintProfile(p)
	return nil
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	p, err := a.svc.Profile(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("background") {
		p.Background = profileBackground
	}
	if flags.Changed("goals") {
		p.Goals = profileGoals
	}
	if flags.Changed("skills") {
		p.Skills = skills.ParseList(profileSkills)
	}
	if flags.Changed("add-skills") {
		p.Skills = skills.Merge(p.Skills, skills.ParseList(profileAddSkills))
	}
	if flags.Changed("resume") {
		found, err := resume.SkillsFromFile(profileResume)
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
		p.Skills = skills.Merge(p.Skills, found)
		if !jsonOutput {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d skills from %s\n", len(found), profileResume)
		}
	}

	saved, err := a.svc.UpdateProfile(ctx, userID, p)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), saved)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintProfile(saved)
	return nil
}

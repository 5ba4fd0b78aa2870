package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/observability"
	"github.com/jonathan/career-mentor/internal/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank career roles by skill match",
	Long: `Rank the roles of the career dataset by the share of their required skills
found in the user's stored profile. Roles below the threshold are omitted.`,
	RunE: runRecommend,
}

func init() {
	addUserFlag(recommendCmd)
	addJSONFlag(recommendCmd)
	recommendCmd.Flags().Float64Var(&threshold, "threshold", 0.4, "Minimum match ratio (0.0-1.0)")
	rootCmd.AddCommand(recommendCmd)
}

// recommendOutput is the JSON shape of the recommend command.
type recommendOutput struct {
	UserID    string            `json:"user_id"`
	Threshold float64           `json:"threshold"`
	Matches   []types.RoleMatch `json:"matches"`
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	p, matches, err := a.svc.Recommend(cmd.Context(), userID)
	if err != nil {
		return fmt.Errorf("failed to rank roles: %w", err)
	}
	if matches == nil {
		matches = []types.RoleMatch{}
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), recommendOutput{
			UserID:    p.ID,
			Threshold: a.cfg.ThresholdValue(),
			Matches:   matches,
		})
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRecommendations(matches)
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/observability"
)

var gapRole string

var gapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Show the skills a user is missing for a role",
	Long:  "Compare the user's stored skills against a role. Without --role the top recommended role is used.",
	RunE:  runGap,
}

func init() {
	addUserFlag(gapCmd)
	addJSONFlag(gapCmd)
	gapCmd.Flags().StringVar(&gapRole, "role", "", "Role to compare against (default: top recommendation)")
	rootCmd.AddCommand(gapCmd)
}

func runGap(cmd *cobra.Command, _ []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	role := gapRole
	if role == "" {
		_, matches, err := a.svc.Recommend(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to rank roles: %w", err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("no role matches the profile of %s; pass --role", userID)
		}
		role = matches[0].Role
	}

	gap, err := a.svc.Gap(ctx, userID, role)
	if err != nil {
		return fmt.Errorf("failed to compute skill gap: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), gap)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintGap(gap)
	return nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/observability"
)

var roleCmd = &cobra.Command{
	Use:   "role <name>",
	Short: "Show the required skills and learning resources of a role",
	Args:  cobra.ExactArgs(1),
	RunE:  runRole,
}

func init() {
	addJSONFlag(roleCmd)
	rootCmd.AddCommand(roleCmd)
}

func runRole(cmd *cobra.Command, args []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	req, err := a.svc.Recommender.RequiredSkills(args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), req)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRoleRequirements(req)
	return nil
}

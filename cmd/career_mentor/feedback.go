package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/profile"
	"github.com/jonathan/career-mentor/internal/types"
)

var (
	feedbackRole     string
	feedbackReaction string
	feedbackText     string
)

// errNoFeedbackStore is returned when feedback is used without a database-backed store.
var errNoFeedbackStore = errors.New("feedback requires the sqlite or postgres store")

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record or list reactions to recommended roles",
}

var feedbackAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a like, dislike or comment on a role",
	RunE:  runFeedbackAdd,
}

var feedbackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the feedback a user has recorded",
	RunE:  runFeedbackList,
}

func init() {
	addUserFlag(feedbackAddCmd)
	addJSONFlag(feedbackAddCmd)
	feedbackAddCmd.Flags().StringVar(&feedbackRole, "role", "", "Role the feedback is about (required)")
	feedbackAddCmd.Flags().StringVar(&feedbackReaction, "reaction", "like", "Reaction: like, dislike or comment")
	feedbackAddCmd.Flags().StringVar(&feedbackText, "text", "", "Comment text (required for comment)")
	_ = feedbackAddCmd.MarkFlagRequired("role")

	addUserFlag(feedbackListCmd)
	addJSONFlag(feedbackListCmd)

	feedbackCmd.AddCommand(feedbackAddCmd, feedbackListCmd)
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedbackAdd(cmd *cobra.Command, _ []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	if a.feedback == nil {
		return errNoFeedbackStore
	}

	saved, err := a.svc.RecordFeedback(cmd.Context(), types.FeedbackEntry{
		User:     userID,
		Role:     feedbackRole,
		Reaction: types.Reaction(feedbackReaction),
		Text:     feedbackText,
	})
	if err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), saved)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded %s for %s\n", saved.Reaction, saved.Role)
	return nil
}

func runFeedbackList(cmd *cobra.Command, _ []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	if a.feedback == nil {
		return errNoFeedbackStore
	}

	id, err := profile.NormalizeID(userID)
	if err != nil {
		return err
	}
	entries, err := a.feedback.ListFeedback(cmd.Context(), id)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), entries)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		_, _ = fmt.Fprintf(out, "No feedback recorded for %s\n", id)
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-8s %s", e.Timestamp.Format("2006-01-02 15:04"), e.Reaction, e.Role)
		if e.Text != "" {
			line += ": " + e.Text
		}
		_, _ = fmt.Fprintln(out, line)
	}
	return nil
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

var (
	feedUser string
	feedPage int
	feedJSON bool
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show a user's personalised feed",
	Long: `Lists articles matching the user's saved preferences, ten per page.
Each non-empty preference set must match; empty sets match everything.`,
	Args: cobra.NoArgs,
	RunE: runFeed,
}

func init() {
	feedCmd.Flags().StringVarP(&feedUser, "user", "u", "", "user ID (required)")
	_ = feedCmd.MarkFlagRequired("user")
	feedCmd.Flags().IntVarP(&feedPage, "page", "p", 1, "page number")
	feedCmd.Flags().BoolVar(&feedJSON, "json", false, "output the page as JSON")
	rootCmd.AddCommand(feedCmd)
}

func runFeed(cmd *cobra.Command, _ []string) error {
	if preferenceService == nil {
		return errors.New("preference service not configured")
	}

	page, err := preferenceService.Feed(cmd.Context(), feedUser, feedPage)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no preferences set for %s; run 'newsagg preferences set --user %s' first", feedUser, feedUser)
		}
		return fmt.Errorf("failed to get feed: %w", err)
	}

	if feedJSON {
		return writeJSON(cmd, page)
	}
	printPage(cmd, page)
	return nil
}

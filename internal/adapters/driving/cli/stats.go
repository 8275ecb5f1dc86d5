package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show article count and the last ingestion run",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}

	count, err := articleService.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count articles: %w", err)
	}
	cmd.Printf("Articles: %d\n", count)

	if ingestionService == nil {
		return nil
	}

	run, err := ingestionService.Latest(cmd.Context())
	switch {
	case errors.Is(err, domain.ErrNotFound):
		cmd.Println("Last run: never")
	case err != nil:
		return fmt.Errorf("failed to get latest run: %w", err)
	default:
		status := "ok"
		if !run.Succeeded() {
			status = "failed"
		}
		cmd.Printf("Last run: %s (%s, %d stored, %s)\n",
			run.StartedAt.Local().Format(time.DateTime), status, run.Upserted(),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	return nil
}

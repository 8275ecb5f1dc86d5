package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch articles from every enabled provider",
	Long: `Runs one ingestion pass: fetches the current batch from each enabled
provider, normalises it and upserts it into the article store by title.
A provider that fails does not prevent the others from being stored.`,
	RunE: runIngest,
}

var ingestStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the most recent ingestion run",
	RunE:  runIngestStatus,
}

func init() {
	ingestCmd.AddCommand(ingestStatusCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	cmd.Println("Ingesting articles...")

	run, err := ingestionService.Run(cmd.Context())
	if run != nil {
		printRun(cmd, run)
	}
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Ingestion complete: %d articles stored.\n", run.Upserted())
	return nil
}

func runIngestStatus(cmd *cobra.Command, _ []string) error {
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	run, err := ingestionService.Latest(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Println("No ingestion run recorded yet.")
			return nil
		}
		return fmt.Errorf("failed to get latest run: %w", err)
	}

	cmd.Printf("Run %s\n", run.ID)
	cmd.Printf("  Started:  %s\n", run.StartedAt.Local().Format(time.DateTime))
	cmd.Printf("  Finished: %s\n", run.FinishedAt.Local().Format(time.DateTime))
	status := "succeeded"
	if !run.Succeeded() {
		status = "failed: " + run.Error
	}
	cmd.Printf("  Status:   %s\n", status)
	printRun(cmd, run)
	return nil
}

// printRun prints one line per provider.
func printRun(cmd *cobra.Command, run *domain.IngestionRun) {
	for _, p := range run.Providers {
		if p.Failed() {
			cmd.Printf("  %-10s failed after %s: %s\n", p.Provider, p.Duration.Round(time.Millisecond), p.Error)
			continue
		}
		cmd.Printf("  %-10s fetched %d, stored %d (%s)\n",
			p.Provider, p.Fetched, p.Upserted, p.Duration.Round(time.Millisecond))
	}
}

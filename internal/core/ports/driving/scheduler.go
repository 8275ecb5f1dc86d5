package driving

import "context"

// Scheduler runs ingestion in the background on a fixed interval.
type Scheduler interface {
	// Start begins running scheduled ingestion.
	// Blocks until context is cancelled or an error occurs.
	Start(ctx context.Context) error

	// Stop gracefully stops the loop and waits for an in-flight pass.
	Stop() error
}

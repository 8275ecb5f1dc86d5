package driven

import "time"

// IngestionMetrics records ingestion telemetry.
// Optional: services accept nil and skip recording.
type IngestionMetrics interface {
	// ObserveProvider records the outcome of one provider's batch.
	ObserveProvider(provider string, fetched, upserted int, duration time.Duration, err error)

	// ObserveRun records the outcome of a whole ingestion pass.
	ObserveRun(duration time.Duration, err error)
}

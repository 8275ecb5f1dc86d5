package domain

import "time"

// DefaultIngestionInterval is how often scheduled ingestion runs by default.
const DefaultIngestionInterval = time.Hour

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	// Interval defines how often ingestion runs. Zero disables scheduling.
	Interval time.Duration

	// RunOnStart triggers an ingestion pass as soon as the scheduler starts.
	RunOnStart bool
}

// Enabled reports whether scheduled ingestion is switched on.
func (c SchedulerConfig) Enabled() bool {
	return c.Interval > 0
}

// DefaultSchedulerConfig returns sensible defaults for the scheduler.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Interval:   DefaultIngestionInterval,
		RunOnStart: true,
	}
}

package domain

import "time"

// ProviderResult summarises one provider's part of an ingestion run.
type ProviderResult struct {
	Provider string        `json:"provider"`
	Fetched  int           `json:"fetched"`
	Upserted int           `json:"upserted"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// Failed reports whether the provider's batch was aborted.
func (r ProviderResult) Failed() bool {
	return r.Error != ""
}

// IngestionRun is the report of one ingestion pass.
type IngestionRun struct {
	ID         string           `json:"id"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Providers  []ProviderResult `json:"providers"`
	Error      string           `json:"error,omitempty"`
}

// Succeeded reports whether every provider completed.
func (r *IngestionRun) Succeeded() bool {
	return r.Error == ""
}

// Upserted returns the number of articles written across providers.
func (r *IngestionRun) Upserted() int {
	n := 0
	for _, p := range r.Providers {
		n += p.Upserted
	}
	return n
}

// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Provider: Fetches and normalises articles from one news source
//   - ArticleStore: Article persistence and querying
//   - PreferenceStore: Per-user preference persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Ingestion run history. Without it, runs are only logged.
//   - IngestionMetrics: Ingestion telemetry.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or provider package
package driven

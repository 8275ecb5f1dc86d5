// Package domain defines the core business entities for newsagg.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Article: A canonical, normalised news article
//   - UserPreference: Saved feed criteria for one user
//   - ArticleFilter: Composable query criteria over articles
//   - RawItem: One provider-native payload item before normalisation
//   - IngestionRun: The report of one ingestion pass
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

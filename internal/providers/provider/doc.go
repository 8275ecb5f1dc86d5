// Package provider contains the HTTP plumbing shared by the news API
// adapters: a rate-limited JSON client that classifies failures into the
// domain's provider error sentinels, and lenient date normalisation.
package provider

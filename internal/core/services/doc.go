// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services hold no infrastructure code: providers, stores and
// metrics recorders are injected through the driven ports.
package services

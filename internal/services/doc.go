// Package services defines shared utilities consumed by the collector and
// processor pipelines and their external tool clients.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and row indexes for
//     logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     consistently (not found vs format vs external tool).
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across both stages.
package services

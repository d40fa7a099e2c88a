// Package processor implements the batch stage: it loads a collector CSV
// and, for each row, cuts the source at the collected timestamps, applies
// the speech filter chain, transcodes to the target format, tags the result,
// and publishes it under a collision-safe name. Row failures are recorded
// and skipped so one bad row never aborts the batch.
package processor

// Package logging builds the slog loggers used by both lectern commands.
//
// Two output formats are supported: a human-oriented console format
// (timestamp, level, component prefix, key=value attributes) and JSON.
// Loggers tee into a log file under the configured log directory in
// addition to the terminal. Context helpers stamp run IDs, stage names,
// and row indexes onto every record so a batch run can be reconstructed
// from its log alone.
package logging

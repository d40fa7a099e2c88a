// Package journal persists per-row processing outcomes in SQLite so a
// re-run over the same CSV can skip rows whose output already exists and
// report what an earlier run did. One record exists per (csv, row index);
// re-processing a row overwrites its record.
package journal

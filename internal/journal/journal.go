package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Status represents the recorded outcome of a row.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Entry is one journal record.
type Entry struct {
	CSVPath    string
	RowIndex   int
	SourcePath string
	Title      string
	OutputPath string
	Status     Status
	Reason     string
	RunID      string
	UpdatedAt  time.Time
}

// Summary aggregates journal counts for status output.
type Summary struct {
	Completed int
	Failed    int
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS processed_rows (
    csv_path    TEXT NOT NULL,
    row_index   INTEGER NOT NULL,
    source_path TEXT NOT NULL,
    title       TEXT NOT NULL,
    output_path TEXT,
    status      TEXT NOT NULL,
    reason      TEXT,
    run_id      TEXT,
    updated_at  TEXT NOT NULL,
    PRIMARY KEY (csv_path, row_index)
);
`

// Open initializes or connects to the journal database.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	dbPath := filepath.Join(dir, "journal.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record upserts the outcome of one row.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.CSVPath == "" {
		return errors.New("csv path required")
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO processed_rows (
            csv_path, row_index, source_path, title, output_path,
            status, reason, run_id, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (csv_path, row_index) DO UPDATE SET
            source_path = excluded.source_path,
            title = excluded.title,
            output_path = excluded.output_path,
            status = excluded.status,
            reason = excluded.reason,
            run_id = excluded.run_id,
            updated_at = excluded.updated_at`,
		entry.CSVPath,
		entry.RowIndex,
		entry.SourcePath,
		entry.Title,
		nullableString(entry.OutputPath),
		string(entry.Status),
		nullableString(entry.Reason),
		nullableString(entry.RunID),
		timestamp,
	)
	if err != nil {
		return fmt.Errorf("record row: %w", err)
	}
	return nil
}

// Lookup returns the recorded outcome for one row, or nil when the row has
// never been processed.
func (s *Store) Lookup(ctx context.Context, csvPath string, rowIndex int) (*Entry, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT csv_path, row_index, source_path, title,
                COALESCE(output_path, ''), status, COALESCE(reason, ''),
                COALESCE(run_id, ''), updated_at
         FROM processed_rows WHERE csv_path = ? AND row_index = ?`,
		csvPath,
		rowIndex,
	)

	var entry Entry
	var status, updatedAt string
	err := row.Scan(
		&entry.CSVPath,
		&entry.RowIndex,
		&entry.SourcePath,
		&entry.Title,
		&entry.OutputPath,
		&status,
		&entry.Reason,
		&entry.RunID,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup row: %w", err)
	}
	entry.Status = Status(status)
	if parsed, parseErr := time.Parse(time.RFC3339Nano, updatedAt); parseErr == nil {
		entry.UpdatedAt = parsed
	}
	return &entry, nil
}

// Counts aggregates journal outcomes.
func (s *Store) Counts(ctx context.Context) (Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM processed_rows GROUP BY status`)
	if err != nil {
		return Summary{}, fmt.Errorf("count rows: %w", err)
	}
	defer rows.Close()

	var summary Summary
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Summary{}, fmt.Errorf("scan count: %w", err)
		}
		switch Status(status) {
		case StatusCompleted:
			summary.Completed = count
		case StatusFailed:
			summary.Failed = count
		}
	}
	return summary, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

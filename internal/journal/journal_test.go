package journal

import (
	"context"
	"testing"
)

func TestRecordAndLookup(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	entry := Entry{
		CSVPath:    "/data/event.csv",
		RowIndex:   3,
		SourcePath: "/data/raw/part1.wav",
		Title:      "Opening Address",
		OutputPath: "/out/01 - Opening Address.mp3",
		Status:     StatusCompleted,
		RunID:      "run-1",
	}
	if err := store.Record(ctx, entry); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	got, err := store.Lookup(ctx, entry.CSVPath, entry.RowIndex)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if got == nil {
		t.Fatal("expected entry, got nil")
	}
	if got.Status != StatusCompleted || got.OutputPath != entry.OutputPath {
		t.Fatalf("unexpected entry: %#v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Fatal("expected updated timestamp")
	}
}

func TestLookupMissingReturnsNil(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()

	got, err := store.Lookup(context.Background(), "/data/event.csv", 42)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil entry, got %#v", got)
	}
}

func TestRecordOverwritesPreviousOutcome(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	failed := Entry{
		CSVPath:    "/data/event.csv",
		RowIndex:   1,
		SourcePath: "/data/raw/part1.wav",
		Title:      "Keynote",
		Status:     StatusFailed,
		Reason:     "sox cut: exit status 2",
		RunID:      "run-1",
	}
	if err := store.Record(ctx, failed); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	completed := failed
	completed.Status = StatusCompleted
	completed.Reason = ""
	completed.OutputPath = "/out/01 - Keynote.mp3"
	completed.RunID = "run-2"
	if err := store.Record(ctx, completed); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	got, err := store.Lookup(ctx, failed.CSVPath, failed.RowIndex)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if got.Status != StatusCompleted {
		t.Fatalf("expected completed status, got %q", got.Status)
	}
	if got.Reason != "" {
		t.Fatalf("expected cleared reason, got %q", got.Reason)
	}
	if got.RunID != "run-2" {
		t.Fatalf("expected run-2, got %q", got.RunID)
	}
}

func TestCounts(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	entries := []Entry{
		{CSVPath: "/a.csv", RowIndex: 1, SourcePath: "x", Title: "A", Status: StatusCompleted},
		{CSVPath: "/a.csv", RowIndex: 2, SourcePath: "x", Title: "B", Status: StatusCompleted},
		{CSVPath: "/b.csv", RowIndex: 1, SourcePath: "y", Title: "C", Status: StatusFailed, Reason: "boom"},
	}
	for _, entry := range entries {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	summary, err := store.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts returned error: %v", err)
	}
	if summary.Completed != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %#v", summary)
	}
}

func TestRecordRequiresCSVPath(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()

	if err := store.Record(context.Background(), Entry{RowIndex: 1}); err == nil {
		t.Fatal("expected error for missing csv path")
	}
}

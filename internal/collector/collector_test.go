package collector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lectern/internal/metadata"
	"lectern/internal/services"
	"lectern/internal/testsupport"
)

// scriptedOperator answers prompts from a fixed list. The token "<default>"
// accepts whatever default the prompt offered. Running out of answers closes
// the session, mirroring Ctrl+D.
type scriptedOperator struct {
	answers []string
	notices []string
}

func (o *scriptedOperator) next() (string, bool) {
	if len(o.answers) == 0 {
		return "", false
	}
	answer := o.answers[0]
	o.answers = o.answers[1:]
	return answer, true
}

func (o *scriptedOperator) Prompt(_, defaultValue string) (string, error) {
	answer, ok := o.next()
	if !ok {
		return "", ErrSessionClosed
	}
	if answer == "<default>" {
		return defaultValue, nil
	}
	return answer, nil
}

func (o *scriptedOperator) MultiPrompt(label string, defaults []string) ([]string, error) {
	var values []string
	for i := 0; ; i++ {
		defaultValue := ""
		if i < len(defaults) {
			defaultValue = defaults[i]
		}
		value, err := o.Prompt(label, defaultValue)
		if err != nil {
			return values, err
		}
		if value == "" {
			return values, nil
		}
		values = append(values, value)
	}
}

func (o *scriptedOperator) Confirm(_ string, defaultYes bool) (bool, error) {
	answer, ok := o.next()
	if !ok {
		return false, ErrSessionClosed
	}
	switch answer {
	case "", "<default>":
		return defaultYes, nil
	case "y":
		return true, nil
	default:
		return false, nil
	}
}

func (o *scriptedOperator) Notify(message string) {
	o.notices = append(o.notices, message)
}

func fixedDuration(seconds int) Prober {
	return func(context.Context, string) (int, error) {
		return seconds, nil
	}
}

func newTestCollector(t *testing.T, operator Operator, prober Prober) *Collector {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	c, err := New(cfg, operator, WithPreviewer(nil), WithProber(prober))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return c
}

func TestRunAppendsConfirmedSegments(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "01_keynote.wav"), 64)
	testsupport.WriteFile(t, filepath.Join(dir, "02_panel.mp3"), 64)

	operator := &scriptedOperator{answers: []string{
		"Spring Meetup", // event name
		"y",             // include 01_keynote.wav
		"Keynote",       // title
		"Ada Lovelace",  // speaker 1
		"",              // end speakers
		"00:01:00-00:20:00",
		"00:25:00-00:40:00",
		"",  // end segments
		"n", // skip 02_panel.mp3
	}}
	c := newTestCollector(t, operator, fixedDuration(3600))

	summary, err := c.Run(context.Background(), dir, "")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.RowsAppended != 2 || summary.FilesSkipped != 1 || summary.FilesSeen != 2 {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	if summary.EventName != "Spring Meetup" {
		t.Fatalf("event name = %q", summary.EventName)
	}

	rows, err := metadata.ReadFile(summary.CSVPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Title != "Keynote" || rows[0].SpeakerList() != "Ada Lovelace" {
		t.Fatalf("unexpected first row: %#v", rows[0])
	}
	if rows[0].Segment.Start != 60 || rows[0].Segment.End != 1200 {
		t.Fatalf("unexpected first segment: %#v", rows[0].Segment)
	}
	if rows[1].SegmentIndex != 1 {
		t.Fatalf("expected segment index 1, got %d", rows[1].SegmentIndex)
	}
}

func TestRunRejectsMalformedSegmentsUntilValid(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "talk.wav"), 64)

	operator := &scriptedOperator{answers: []string{
		"<default>", // event name
		"y",
		"Talk",
		"Grace Hopper",
		"",
		"not-a-segment",     // malformed, re-prompt
		"00:20:00-00:10:00", // end before start, re-prompt
		"00:10:00-02:00:00", // beyond the 3600s duration, re-prompt
		"00:10:00-00:30:00", // accepted
		"",
	}}
	c := newTestCollector(t, operator, fixedDuration(3600))

	summary, err := c.Run(context.Background(), dir, "")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.RowsAppended != 1 {
		t.Fatalf("expected 1 row, got %d", summary.RowsAppended)
	}

	rows, err := metadata.ReadFile(summary.CSVPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 1 || rows[0].Segment.End != 1800 {
		t.Fatalf("unexpected rows: %#v", rows)
	}
	if len(operator.notices) < 3 {
		t.Fatalf("expected rejection notices, got %v", operator.notices)
	}
}

func TestRunOverlappingSegmentsWarnButAppend(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "talk.wav"), 64)

	operator := &scriptedOperator{answers: []string{
		"<default>",
		"y",
		"Talk",
		"Grace Hopper",
		"",
		"00:10:00-00:30:00",
		"00:20:00-00:40:00", // overlaps the first
		"",
	}}
	c := newTestCollector(t, operator, fixedDuration(3600))

	summary, err := c.Run(context.Background(), dir, "")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.RowsAppended != 2 {
		t.Fatalf("expected both rows appended, got %d", summary.RowsAppended)
	}
	warned := false
	for _, notice := range operator.notices {
		if strings.Contains(notice, "overlaps") {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("expected overlap warning, notices: %v", operator.notices)
	}
}

func TestRunNoSupportedAudio(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "notes.txt"), 16)

	c := newTestCollector(t, &scriptedOperator{}, fixedDuration(0))

	_, err := c.Run(context.Background(), dir, "")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("read dir: %v", readErr)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".csv") {
			t.Fatalf("no CSV should exist, found %s", entry.Name())
		}
	}
}

func TestRunResumeOffersDefaultsAndKeepsHeader(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "talk.wav")
	testsupport.WriteFile(t, source, 64)

	csvPath := filepath.Join(dir, "event.csv")
	appender, err := metadata.OpenAppend(csvPath)
	if err != nil {
		t.Fatalf("seed csv: %v", err)
	}
	seed := metadata.Row{
		SourcePath:   source,
		SegmentIndex: 0,
		Segment:      metadata.Segment{Start: 60, End: 600},
		Title:        "Prior Title",
		Speakers:     []string{"Prior Speaker"},
	}
	if err := appender.Append(seed); err != nil {
		t.Fatalf("seed row: %v", err)
	}
	if err := appender.Close(); err != nil {
		t.Fatalf("close seed: %v", err)
	}

	operator := &scriptedOperator{answers: []string{
		"<default>", // event name
		"y",         // include
		"<default>", // title defaults to the prior title
		"<default>", // speaker 1 defaults to the prior speaker
		"",          // end speakers
		"<default>", // segment defaults to the prior segment
		"",          // end segments
	}}
	c := newTestCollector(t, operator, fixedDuration(3600))

	summary, err := c.Run(context.Background(), dir, csvPath)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.RowsAppended != 1 {
		t.Fatalf("expected 1 appended row, got %d", summary.RowsAppended)
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if got := strings.Count(string(raw), "source_path"); got != 1 {
		t.Fatalf("expected a single header, found %d", got)
	}

	rows, err := metadata.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows total, got %d", len(rows))
	}
	if rows[1].Title != "Prior Title" || rows[1].Segment != seed.Segment {
		t.Fatalf("defaults not carried: %#v", rows[1])
	}
}

func TestRunInterruptKeepsAppendedRows(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "a.wav"), 64)
	testsupport.WriteFile(t, filepath.Join(dir, "b.wav"), 64)

	// The script ends after the first file's rows, simulating Ctrl+D.
	operator := &scriptedOperator{answers: []string{
		"Event",
		"y",
		"First",
		"Speaker",
		"",
		"00:00:10-00:05:00",
		"",
	}}
	c := newTestCollector(t, operator, fixedDuration(3600))

	summary, err := c.Run(context.Background(), dir, "")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !summary.Interrupted {
		t.Fatal("expected interrupted summary")
	}
	if summary.RowsAppended != 1 {
		t.Fatalf("expected 1 row kept, got %d", summary.RowsAppended)
	}
	rows, err := metadata.ReadFile(summary.CSVPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 1 || rows[0].Title != "First" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}

func TestDiscoverAudioSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "b.mp3"), 8)
	testsupport.WriteFile(t, filepath.Join(dir, "nested", "a.flac"), 8)
	testsupport.WriteFile(t, filepath.Join(dir, "skip.txt"), 8)
	testsupport.WriteFile(t, filepath.Join(dir, "c.M4A"), 8)

	files, err := DiscoverAudio(dir)
	if err != nil {
		t.Fatalf("DiscoverAudio returned error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %v", files)
	}
	for i := 1; i < len(files); i++ {
		if files[i-1] > files[i] {
			t.Fatalf("files not sorted: %v", files)
		}
	}
}

package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
)

func writeAudioStub(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.mp3")
	// A tag is prepended to whatever bytes follow, so any payload works.
	if err := os.WriteFile(path, []byte("audio-payload"), 0o644); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestWriteStampsAllFields(t *testing.T) {
	path := writeAudioStub(t)

	meta := Metadata{
		Title:    "Opening Address",
		Speakers: []string{"Ada Lovelace", "Alan Turing"},
		Album:    "Winter Conference",
		Genre:    "Speech",
		Track:    3,
	}
	if err := Write(path, meta); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen tag: %v", err)
	}
	defer tag.Close()

	if got := tag.Title(); got != meta.Title {
		t.Fatalf("title = %q, want %q", got, meta.Title)
	}
	if got := tag.Artist(); got != "Ada Lovelace, Alan Turing" {
		t.Fatalf("artist = %q", got)
	}
	if got := tag.Album(); got != meta.Album {
		t.Fatalf("album = %q, want %q", got, meta.Album)
	}
	if got := tag.Genre(); got != meta.Genre {
		t.Fatalf("genre = %q, want %q", got, meta.Genre)
	}
	track := tag.GetTextFrame(tag.CommonID("Track number/Position in set"))
	if track.Text != "3" {
		t.Fatalf("track = %q, want 3", track.Text)
	}
}

func TestWriteOmitsEmptyFields(t *testing.T) {
	path := writeAudioStub(t)

	if err := Write(path, Metadata{Title: "Solo"}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen tag: %v", err)
	}
	defer tag.Close()

	if got := tag.Artist(); got != "" {
		t.Fatalf("expected no artist, got %q", got)
	}
	track := tag.GetTextFrame(tag.CommonID("Track number/Position in set"))
	if track.Text != "" {
		t.Fatalf("expected no track frame, got %q", track.Text)
	}
}

func TestWriteMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.mp3")
	if err := Write(missing, Metadata{Title: "X"}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

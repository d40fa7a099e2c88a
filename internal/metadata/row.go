package metadata

import (
	"errors"
	"fmt"
	"strings"
)

// SpeakerDelimiter joins speaker names inside the speakers CSV column.
const SpeakerDelimiter = ";"

// Segment is a [Start, End) slice of a source recording, in whole seconds.
type Segment struct {
	Start int
	End   int
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() int {
	return s.End - s.Start
}

// Overlaps reports whether two segments share any time range.
func (s Segment) Overlaps(other Segment) bool {
	return s.Start < other.End && other.Start < s.End
}

// String renders the segment in the interactive start-end form.
func (s Segment) String() string {
	return FormatTimestamp(s.Start) + "-" + FormatTimestamp(s.End)
}

// Row is one CSV record: one segment of one source file.
type Row struct {
	SourcePath   string
	SegmentIndex int
	Segment      Segment
	Title        string
	Speakers     []string
}

// Validate checks the row's internal consistency. durationSeconds bounds the
// segment end when positive; pass 0 when the source duration is unknown.
func (r Row) Validate(durationSeconds int) error {
	if strings.TrimSpace(r.SourcePath) == "" {
		return errors.New("source path required")
	}
	if r.SegmentIndex < 0 {
		return fmt.Errorf("segment index must not be negative, got %d", r.SegmentIndex)
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title required")
	}
	if len(r.Speakers) == 0 {
		return errors.New("at least one speaker required")
	}
	if r.Segment.Start < 0 {
		return fmt.Errorf("start %s must not be negative", FormatTimestamp(r.Segment.Start))
	}
	if r.Segment.Start >= r.Segment.End {
		return fmt.Errorf("start %s must precede end %s", FormatTimestamp(r.Segment.Start), FormatTimestamp(r.Segment.End))
	}
	if durationSeconds > 0 && r.Segment.End > durationSeconds {
		return fmt.Errorf("end %s exceeds source duration %s", FormatTimestamp(r.Segment.End), FormatTimestamp(durationSeconds))
	}
	return nil
}

// SpeakerList joins speakers for display and for the artist tag.
func (r Row) SpeakerList() string {
	return strings.Join(r.Speakers, ", ")
}

package metadata_test

import (
	"testing"

	"lectern/internal/metadata"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00:10", 10, false},
		{"01:02:03", 3723, false},
		{"12:34", 754, false},
		{"90", 90, false},
		{" 00:05:00 ", 300, false},
		{"90:30", 5430, false}, // leading field carries no bound
		{"", 0, true},
		{"abc", 0, true},
		{"00:61:00", 0, true},
		{"-5", 0, true},
		{"1:2:3:4", 0, true},
		// Out-of-range fields must be rejected even when they repeat the
		// leading field's value.
		{"70:70", 0, true},
		{"99:99", 0, true},
		{"01:01:70", 0, true},
	}
	for _, tc := range cases {
		got, err := metadata.ParseTimestamp(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimestamp(%q) expected error, got %d", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimestamp(%q) returned error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimestamp(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestFormatTimestampRoundTrip(t *testing.T) {
	for _, seconds := range []int{0, 10, 59, 60, 3599, 3600, 7403} {
		formatted := metadata.FormatTimestamp(seconds)
		parsed, err := metadata.ParseTimestamp(formatted)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q) returned error: %v", formatted, err)
		}
		if parsed != seconds {
			t.Fatalf("round trip %d -> %q -> %d", seconds, formatted, parsed)
		}
	}
	if got := metadata.FormatTimestamp(3723); got != "01:02:03" {
		t.Fatalf("FormatTimestamp(3723) = %q", got)
	}
}

func TestParseSegmentSpec(t *testing.T) {
	seg, err := metadata.ParseSegmentSpec("00:00:10-00:05:00")
	if err != nil {
		t.Fatalf("ParseSegmentSpec returned error: %v", err)
	}
	if seg.Start != 10 || seg.End != 300 {
		t.Fatalf("unexpected segment: %+v", seg)
	}

	for _, input := range []string{"", "00:05:00", "00:05:00-00:00:10", "00:01:00-00:01:00", "aa-bb"} {
		if _, err := metadata.ParseSegmentSpec(input); err == nil {
			t.Errorf("ParseSegmentSpec(%q) expected error", input)
		}
	}
}

package metadata

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimestamp converts a timestamp string into whole seconds. Accepted
// forms: "HH:MM:SS", "MM:SS", and bare seconds ("754").
func ParseTimestamp(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("timestamp %q: too many fields", value)
	}

	total := 0
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, fmt.Errorf("timestamp %q: %w", value, err)
		}
		if n < 0 {
			return 0, fmt.Errorf("timestamp %q: negative field", value)
		}
		// Only the leading field may exceed 59.
		if i > 0 && n > 59 {
			return 0, fmt.Errorf("timestamp %q: field %d out of range", value, n)
		}
		total = total*60 + n
	}
	return total, nil
}

// FormatTimestamp renders whole seconds in the canonical HH:MM:SS form.
func FormatTimestamp(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
}

// ParseSegmentSpec parses the interactive "start-end" form
// ("HH:MM:SS-HH:MM:SS") used during collect sessions.
func ParseSegmentSpec(value string) (Segment, error) {
	trimmed := strings.TrimSpace(value)
	start, end, ok := strings.Cut(trimmed, "-")
	if !ok {
		return Segment{}, fmt.Errorf("segment %q: expected start-end", value)
	}
	startSec, err := ParseTimestamp(start)
	if err != nil {
		return Segment{}, err
	}
	endSec, err := ParseTimestamp(end)
	if err != nil {
		return Segment{}, err
	}
	seg := Segment{Start: startSec, End: endSec}
	if startSec >= endSec {
		return Segment{}, fmt.Errorf("segment %q: start must precede end", value)
	}
	return seg, nil
}

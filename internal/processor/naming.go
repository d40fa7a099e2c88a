package processor

import (
	"fmt"

	"lectern/internal/fileutil"
)

// OutputName builds the published file name for one row: the track number,
// the sanitized title, and the encode format extension.
func OutputName(track int, title, format string) string {
	sanitized := fileutil.SanitizeFileName(title)
	if sanitized == "" {
		sanitized = "untitled"
	}
	return fmt.Sprintf("%02d - %s.%s", track, sanitized, format)
}

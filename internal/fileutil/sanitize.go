package fileutil

import "strings"

// SanitizeFileName strips characters that are unsafe in file names across
// common filesystems. Path separators and drive markers become "-"; shell
// and glob metacharacters are dropped.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "*", "-", "?", "", "\"", "", "<", "", ">", "", "|", "")
	return strings.TrimSpace(replacer.Replace(name))
}

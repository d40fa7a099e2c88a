package collector

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"lectern/internal/services"
)

var supportedExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".flac": {},
	".m4a":  {},
	".ogg":  {},
}

// DiscoverAudio walks dir recursively and returns every supported audio file,
// sorted by path. A directory without any supported audio is a NotFound
// condition so the caller never produces an empty CSV.
func DiscoverAudio(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := supportedExtensions[ext]; ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "collect", "scan", "walk "+dir, err)
	}
	if len(files) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "collect", "scan", "no supported audio files under "+dir, nil)
	}
	sort.Strings(files)
	return files, nil
}

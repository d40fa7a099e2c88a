// Package tags writes ID3v2 metadata onto finished MP3 files.
package tags

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Metadata holds the fields stamped onto one output file.
type Metadata struct {
	Title    string
	Speakers []string
	Album    string
	Genre    string
	Track    int
}

// Write opens path and replaces its ID3v2 tag with the given metadata.
func Write(path string, meta Metadata) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open tag: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(meta.Title)
	if artist := strings.Join(meta.Speakers, ", "); artist != "" {
		tag.SetArtist(artist)
	}
	if meta.Album != "" {
		tag.SetAlbum(meta.Album)
	}
	if meta.Genre != "" {
		tag.SetGenre(meta.Genre)
	}
	if meta.Track > 0 {
		tag.AddTextFrame(tag.CommonID("Track number/Position in set"), tag.DefaultEncoding(), strconv.Itoa(meta.Track))
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	return nil
}

package probe

import (
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// Tags holds the descriptive metadata embedded in an audio file.
type Tags struct {
	Title  string
	Artist string
	Album  string
}

// Label returns "Artist - Title", just the title, or "" when the file
// carries neither.
func (t Tags) Label() string {
	title := strings.TrimSpace(t.Title)
	artist := strings.TrimSpace(t.Artist)
	switch {
	case title != "" && artist != "":
		return artist + " - " + title
	case title != "":
		return title
	default:
		return ""
	}
}

// ReadTags reads ID3, MP4, FLAC, or Ogg tags from the file at path.
// Files without a recognized tag block return tag.ErrNoTagsFound.
func ReadTags(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Tags{}, err
	}
	return Tags{Title: m.Title(), Artist: m.Artist(), Album: m.Album()}, nil
}

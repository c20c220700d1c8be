package library

import (
	"fmt"
	"strings"

	"tunepull/internal/textutil"
)

// DefaultPlaylist groups tracks whose export row carries no playlist name.
const DefaultPlaylist = "Unknown Playlist"

// Track is one row of the imported library. Fields are free text exactly as
// the export provided them, apart from the combined-title splitting applied
// during import. A Track is never mutated after import.
type Track struct {
	Title      string
	Artists    string
	Album      string
	Playlist   string
	ISRC       string
	SpotifyID  string
	YouTubeID  string
	DurationMS int
}

// Valid reports whether the row carries enough metadata to search for.
func (t Track) Valid() bool {
	return strings.TrimSpace(t.Title) != "" || strings.TrimSpace(t.Artists) != ""
}

// DurationSeconds converts the export's millisecond duration, rounding to the
// nearest second. Returns 0 when the export had no duration.
func (t Track) DurationSeconds() int {
	if t.DurationMS <= 0 {
		return 0
	}
	return (t.DurationMS + 500) / 1000
}

// Display renders the track for logs and tables.
func (t Track) Display() string {
	artists := strings.TrimSpace(t.Artists)
	title := strings.TrimSpace(t.Title)
	switch {
	case artists == "" && title == "":
		return "(unknown track)"
	case artists == "":
		return title
	case title == "":
		return artists
	}
	return fmt.Sprintf("%s - %s", artists, title)
}

// FileStem returns a filesystem-safe base name for downloaded audio.
func (t Track) FileStem() string {
	stem := textutil.SanitizeFileName(t.Display())
	if stem == "" {
		stem = textutil.DisplayTitle(t.Title, "Unknown Track")
	}
	return stem
}

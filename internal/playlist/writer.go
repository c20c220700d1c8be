package playlist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tunepull/internal/textutil"
)

// Entry is one playlist line: a display title, an optional duration, and the
// path to the audio file on disk.
type Entry struct {
	Title           string
	DurationSeconds int
	Path            string
}

// Write renders an extended M3U8 file at path. File paths are written
// relative to the playlist's own directory when possible so the library stays
// relocatable.
func Write(path string, entries []Entry) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("playlist path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create playlist directory: %w", err)
	}

	baseDir := filepath.Dir(path)
	var builder strings.Builder
	builder.WriteString("#EXTM3U\n")
	for _, entry := range entries {
		duration := entry.DurationSeconds
		if duration <= 0 {
			duration = -1
		}
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(entry.Path), filepath.Ext(entry.Path))
		}
		fmt.Fprintf(&builder, "#EXTINF:%d,%s\n", duration, title)
		builder.WriteString(relativePath(baseDir, entry.Path))
		builder.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(builder.String()), 0o644); err != nil {
		return fmt.Errorf("write playlist: %w", err)
	}
	return nil
}

// Generate writes the playlist for name into libraryDir, returning the file
// path. The name is sanitized the same way track files are so the playlist
// sits beside the directory it references.
func Generate(libraryDir, name string, entries []Entry) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("playlist name required")
	}
	path := filepath.Join(libraryDir, textutil.SanitizeFileName(name)+".m3u8")
	if err := Write(path, entries); err != nil {
		return "", err
	}
	return path, nil
}

func relativePath(baseDir, target string) string {
	rel, err := filepath.Rel(baseDir, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return target
	}
	return rel
}

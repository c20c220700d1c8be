package library

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"tunepull/internal/textutil"
)

// Canonical column keys after header normalization. Matching is
// case-insensitive and tolerates spacing/punctuation differences, so
// "Spotify - id", "SPOTIFY ID", and "spotify id" all land on the same column.
const (
	columnTitle    = "track name"
	columnArtists  = "artist name"
	columnAlbum    = "album"
	columnPlaylist = "playlist name"
	columnISRC     = "isrc"
	columnSpotify  = "spotify id"
	columnYouTube  = "youtube id"
	columnDuration = "duration ms"
)

var requiredColumns = []string{columnTitle, columnArtists}

// LoadCSV reads an exported library CSV and converts its rows into tracks.
// It tolerates a UTF-8 BOM and both comma and semicolon separators, and
// ignores rows that do not look like tracks (no title and no artist).
func LoadCSV(path string) ([]Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	records, err := parseRecords(data)
	if err != nil {
		return nil, err
	}
	return TracksFromRecords(records)
}

// parseRecords tries comma first, then semicolon. A parse "wins" when it
// produces a header with more than one column; single-column results usually
// mean the wrong separator.
func parseRecords(data []byte) ([][]string, error) {
	var errs []string
	for _, separator := range []rune{',', ';'} {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = separator
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
		records, err := reader.ReadAll()
		if err != nil {
			errs = append(errs, fmt.Sprintf("separator %q: %v", separator, err))
			continue
		}
		if len(records) == 0 {
			errs = append(errs, fmt.Sprintf("separator %q: empty file", separator))
			continue
		}
		if len(records[0]) > 1 {
			return records, nil
		}
		errs = append(errs, fmt.Sprintf("separator %q: single column header", separator))
	}
	return nil, fmt.Errorf("parse csv: %s", strings.Join(errs, "; "))
}

// TracksFromRecords converts raw CSV records (header row first) into tracks.
func TracksFromRecords(records [][]string) ([]Track, error) {
	if len(records) == 0 {
		return nil, errors.New("csv has no header row")
	}

	columns := make(map[string]int, len(records[0]))
	for idx, header := range records[0] {
		key := normalizeHeader(header)
		if key == "duration ms" || key == "duration" {
			key = columnDuration
		}
		if _, taken := columns[key]; !taken {
			columns[key] = idx
		}
	}

	var missing []string
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv missing required columns: %s", strings.Join(missing, ", "))
	}

	tracks := make([]Track, 0, len(records)-1)
	for _, row := range records[1:] {
		cell := func(key string) string {
			idx, ok := columns[key]
			if !ok || idx >= len(row) {
				return ""
			}
			return cleanCell(row[idx])
		}

		track := Track{
			Title:      cell(columnTitle),
			Artists:    cell(columnArtists),
			Album:      cell(columnAlbum),
			Playlist:   cell(columnPlaylist),
			ISRC:       cell(columnISRC),
			SpotifyID:  cell(columnSpotify),
			YouTubeID:  cell(columnYouTube),
			DurationMS: parseDuration(cell(columnDuration)),
		}
		if !track.Valid() {
			continue
		}
		if track.Artists == "" && track.Title != "" {
			track.Title, track.Artists = textutil.SplitCombinedTitle(track.Title)
		}
		if track.Playlist == "" {
			track.Playlist = DefaultPlaylist
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// normalizeHeader lowercases a header and drops everything but letters,
// digits, and spaces, collapsing whitespace runs.
func normalizeHeader(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(header)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}
	return textutil.CollapseWhitespace(b.String())
}

// cleanCell trims a cell and scrubs the literal "nan" some exports emit for
// missing values.
func cleanCell(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "nan") {
		return ""
	}
	return value
}

func parseDuration(value string) int {
	if value == "" {
		return 0
	}
	if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
		return ms
	}
	if ms, err := strconv.ParseFloat(value, 64); err == nil && ms > 0 {
		return int(ms)
	}
	return 0
}

// Playlists returns the sorted unique playlist names present in tracks.
func Playlists(tracks []Track) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, track := range tracks {
		name := strings.TrimSpace(track.Playlist)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FilterPlaylist returns the tracks belonging to the named playlist.
// An empty name returns all tracks.
func FilterPlaylist(tracks []Track, playlist string) []Track {
	if strings.TrimSpace(playlist) == "" {
		return tracks
	}
	var filtered []Track
	for _, track := range tracks {
		if track.Playlist == playlist {
			filtered = append(filtered, track)
		}
	}
	return filtered
}

package playlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteRendersExtendedM3U(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "House Classics.m3u8")
	entries := []Entry{
		{Title: "Daft Punk - One More Time", DurationSeconds: 320, Path: filepath.Join(dir, "House Classics", "Daft Punk - One More Time.m4a")},
		{Title: "Unknown Length", Path: filepath.Join(dir, "House Classics", "Unknown Length.m4a")},
	}

	if err := Write(path, entries); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read playlist: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{
		"#EXTM3U",
		"#EXTINF:320,Daft Punk - One More Time",
		filepath.Join("House Classics", "Daft Punk - One More Time.m4a"),
		"#EXTINF:-1,Unknown Length",
		filepath.Join("House Classics", "Unknown Length.m4a"),
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i, line := range want {
		if lines[i] != line {
			t.Errorf("line %d = %q, want %q", i, lines[i], line)
		}
	}
}

func TestWriteFallsBackToAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	path := filepath.Join(dir, "list.m3u8")
	target := filepath.Join(other, "song.m4a")

	if err := Write(path, []Entry{{Title: "Song", Path: target}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), target) {
		t.Errorf("expected absolute path in playlist: %s", data)
	}
}

func TestWriteEmptyTitleUsesFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.m3u8")

	if err := Write(path, []Entry{{Path: filepath.Join(dir, "Some Song.m4a")}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "#EXTINF:-1,Some Song") {
		t.Errorf("expected file name fallback title: %s", data)
	}
}

func TestGenerateSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := Generate(dir, `Road/Trip: Vol 1`, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.ContainsAny(filepath.Base(path), `/:`) {
		t.Errorf("name not sanitized: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("playlist not written: %v", err)
	}
}

func TestWriteRequiresPath(t *testing.T) {
	if err := Write("  ", nil); err == nil {
		t.Error("expected error for empty path")
	}
}

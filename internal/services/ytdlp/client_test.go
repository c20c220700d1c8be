package ytdlp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tunepull/internal/services"
)

type fakeExecutor struct {
	lines []string
	err   error
	calls [][]string
	onRun func(binary string, args []string)
}

func (f *fakeExecutor) Run(ctx context.Context, binary string, args []string, onStdout func(string)) error {
	f.calls = append(f.calls, args)
	if f.onRun != nil {
		f.onRun(binary, args)
	}
	if f.err != nil {
		return f.err
	}
	if onStdout != nil {
		for _, line := range f.lines {
			onStdout(line)
		}
	}
	return nil
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := New("  ", 0); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestSearchParsesDumpJSON(t *testing.T) {
	exec := &fakeExecutor{lines: []string{
		`{"id": "abc123", "title": "Song One", "uploader": "Artist A", "duration": 215.0}`,
		`{"id": "", "title": "no id"}`,
		`{"id": "def456", "title": "Song Two", "channel": "Channel B", "duration": 180.4}`,
		"[download] noise line",
	}}
	client, err := New("yt-dlp", 0, WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	candidates, err := client.Search(context.Background(), "some song", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	if candidates[0].VideoID != "abc123" || candidates[0].Artists != "Artist A" || candidates[0].DurationSeconds != 215 {
		t.Errorf("unexpected first candidate: %+v", candidates[0])
	}
	if candidates[1].Artists != "Channel B" {
		t.Errorf("channel should back uploader: %+v", candidates[1])
	}

	args := exec.calls[0]
	if args[0] != "ytsearch5:some song" {
		t.Errorf("search target = %q", args[0])
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	client, _ := New("yt-dlp", 0, WithExecutor(&fakeExecutor{}))
	_, err := client.Search(context.Background(), " ", 5)
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestSearchExecutorFailure(t *testing.T) {
	client, _ := New("yt-dlp", 0, WithExecutor(&fakeExecutor{err: errors.New("exit status 1")}))
	_, err := client.Search(context.Background(), "query", 5)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Errorf("expected ErrExternalTool, got %v", err)
	}
}

func TestDownloadAudioBuildsArgsAndFindsOutput(t *testing.T) {
	destDir := t.TempDir()
	exec := &fakeExecutor{}
	exec.onRun = func(binary string, args []string) {
		// Simulate yt-dlp writing its output file.
		if err := os.WriteFile(filepath.Join(destDir, "Artist - Title.m4a"), []byte("audio"), 0o644); err != nil {
			t.Fatalf("write fake output: %v", err)
		}
	}
	client, err := New("yt-dlp", 0, WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path, err := client.DownloadAudio(context.Background(), "vid123", destDir, "Artist - Title", true)
	if err != nil {
		t.Fatalf("DownloadAudio: %v", err)
	}
	if filepath.Base(path) != "Artist - Title.m4a" {
		t.Errorf("unexpected output path: %s", path)
	}

	args := strings.Join(exec.calls[0], " ")
	if !strings.Contains(args, m4aFormatSelector) {
		t.Errorf("expected m4a selector in args: %s", args)
	}
	if !strings.Contains(args, "https://music.youtube.com/watch?v=vid123") {
		t.Errorf("expected music watch url in args: %s", args)
	}
	if !strings.Contains(args, "--no-playlist") {
		t.Errorf("expected --no-playlist in args: %s", args)
	}
}

func TestDownloadAudioBestAudioSelector(t *testing.T) {
	destDir := t.TempDir()
	exec := &fakeExecutor{}
	exec.onRun = func(binary string, args []string) {
		if err := os.WriteFile(filepath.Join(destDir, "Stem.webm"), []byte("audio"), 0o644); err != nil {
			t.Fatalf("write fake output: %v", err)
		}
	}
	client, _ := New("yt-dlp", 0, WithExecutor(exec))

	path, err := client.DownloadAudio(context.Background(), "vid9", destDir, "Stem", false)
	if err != nil {
		t.Fatalf("DownloadAudio: %v", err)
	}
	if filepath.Base(path) != "Stem.webm" {
		t.Errorf("unexpected output path: %s", path)
	}
	args := strings.Join(exec.calls[0], " ")
	if strings.Contains(args, m4aFormatSelector) {
		t.Errorf("did not expect m4a selector: %s", args)
	}
}

func TestDownloadAudioIgnoresPartialFiles(t *testing.T) {
	destDir := t.TempDir()
	exec := &fakeExecutor{}
	exec.onRun = func(binary string, args []string) {
		for _, name := range []string{"Stem.m4a.part", "Stem.m4a"} {
			if err := os.WriteFile(filepath.Join(destDir, name), []byte("x"), 0o644); err != nil {
				t.Fatalf("write fake output: %v", err)
			}
		}
	}
	client, _ := New("yt-dlp", 0, WithExecutor(exec))

	path, err := client.DownloadAudio(context.Background(), "vid1", destDir, "Stem", true)
	if err != nil {
		t.Fatalf("DownloadAudio: %v", err)
	}
	if filepath.Base(path) != "Stem.m4a" {
		t.Errorf("picked wrong file: %s", path)
	}
}

func TestDownloadAudioMissingOutput(t *testing.T) {
	client, _ := New("yt-dlp", 0, WithExecutor(&fakeExecutor{}))
	_, err := client.DownloadAudio(context.Background(), "vid1", t.TempDir(), "Stem", true)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Errorf("expected ErrExternalTool, got %v", err)
	}
}

func TestDownloadAudioValidation(t *testing.T) {
	client, _ := New("yt-dlp", 0, WithExecutor(&fakeExecutor{}))
	if _, err := client.DownloadAudio(context.Background(), "", t.TempDir(), "Stem", true); !errors.Is(err, services.ErrValidation) {
		t.Errorf("expected ErrValidation for empty video id, got %v", err)
	}
	if _, err := client.DownloadAudio(context.Background(), "vid", "", "Stem", true); !errors.Is(err, services.ErrValidation) {
		t.Errorf("expected ErrValidation for empty dest, got %v", err)
	}
}

package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tunepull/internal/config"
)

func TestCheckDirectoryAccessOK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Library directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass, got %q", result.Detail)
	}
	if !strings.Contains(result.Detail, dir) {
		t.Errorf("detail should name the path: %q", result.Detail)
	}
}

func TestCheckDirectoryAccessMissing(t *testing.T) {
	result := CheckDirectoryAccess("Library directory", filepath.Join(t.TempDir(), "missing"))
	if result.Passed {
		t.Fatal("expected failure for missing directory")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Errorf("unexpected detail: %q", result.Detail)
	}
}

func TestCheckDirectoryAccessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("Library directory", path)
	if result.Passed {
		t.Fatal("expected failure for regular file")
	}
	if !strings.Contains(result.Detail, "not a directory") {
		t.Errorf("unexpected detail: %q", result.Detail)
	}
}

func TestCheckDirectoryAccessReadOnly(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores permission bits")
	}
	dir := filepath.Join(t.TempDir(), "readonly")
	if err := os.Mkdir(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("Library directory", dir)
	if result.Passed {
		t.Fatal("expected failure for read-only directory")
	}
}

func TestCheckSystemDeps(t *testing.T) {
	binDir := t.TempDir()
	ytdlp := filepath.Join(binDir, "yt-dlp")
	if err := os.WriteFile(ytdlp, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	cfg := config.Default()
	cfg.Download.YtDlpBinary = ytdlp
	cfg.Download.FFmpegBinary = "clearly-not-present-binary"

	statuses := CheckSystemDeps(t.Context(), &cfg)
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Errorf("expected stub yt-dlp to be available: %q", statuses[0].Detail)
	}
	if statuses[1].Available {
		t.Error("expected missing ffmpeg to be unavailable")
	}
	if statuses[1].Detail == "" {
		t.Error("expected detail message for missing ffmpeg")
	}
}

func TestCheckBinaryUnset(t *testing.T) {
	status := checkBinary("yt-dlp", "  ", "audio downloads", false)
	if status.Available {
		t.Error("expected unset command to be unavailable")
	}
	if status.Detail != "command not configured" {
		t.Errorf("unexpected detail: %q", status.Detail)
	}
}

func TestAllPassed(t *testing.T) {
	if !AllPassed(nil) {
		t.Error("empty results should pass")
	}
	if !AllPassed([]Result{{Passed: true}, {Passed: true}}) {
		t.Error("all passing results should pass")
	}
	if AllPassed([]Result{{Passed: true}, {Passed: false}}) {
		t.Error("one failure should fail")
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(t.Context(), nil); results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tunepull/internal/library"
	"tunepull/internal/matching"
)

func TestRootCommandShowsHelp(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	help := out.String()
	for _, sub := range []string{"match", "sync", "playlists", "status", "config"} {
		if !strings.Contains(help, sub) {
			t.Errorf("help missing subcommand %q", sub)
		}
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}
	if !strings.Contains(out.String(), target) {
		t.Errorf("output should name the target path: %s", out.String())
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "init", "--path", target})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for existing config without --overwrite")
	}
	data, _ := os.ReadFile(target)
	if string(data) != "existing" {
		t.Error("existing config was overwritten")
	}
}

func TestBuildMatchReports(t *testing.T) {
	track := library.Track{Title: "Song", Artists: "Artist", Playlist: "Mix"}
	results := []matching.Result{
		{
			Track:      track,
			Confidence: 0.91,
			Best: &matching.ScoredCandidate{
				Candidate: matching.Candidate{VideoID: "vid1", Title: "Song (Official)"},
				Score:     0.91,
			},
		},
		{Track: track, Skipped: true, Confidence: 0.42},
		{Track: track, Skipped: true, Err: "search failed"},
	}

	reports := buildMatchReports(results)
	if len(reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(reports))
	}
	if reports[0].VideoID != "vid1" || reports[0].Confidence != 0.91 || reports[0].Skipped {
		t.Errorf("unexpected matched report: %+v", reports[0])
	}
	if !reports[1].Skipped || reports[1].VideoID != "" || reports[1].Confidence != 0.42 {
		t.Errorf("unexpected below-threshold report: %+v", reports[1])
	}
	if reports[2].Error != "search failed" {
		t.Errorf("unexpected error report: %+v", reports[2])
	}
}

func TestTrackKeyDistinguishesPlaylists(t *testing.T) {
	track := library.Track{Title: "Song", Artists: "Artist"}
	a := track
	a.Playlist = "Morning"
	b := track
	b.Playlist = "Evening"
	if trackKey(a) == trackKey(b) {
		t.Error("same track in different playlists should have distinct keys")
	}
}

func TestRenderTableAlignsAndPads(t *testing.T) {
	out := renderTable(
		[]string{"Stage", "Count"},
		[][]string{{"alpha", "5"}, {"beta", "500"}, {"gamma"}},
		1,
	)

	var alphaLine, betaLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "alpha") {
			alphaLine = line
		}
		if strings.Contains(line, "beta") {
			betaLine = line
		}
	}
	if alphaLine == "" || betaLine == "" {
		t.Fatalf("rows missing from table:\n%s", out)
	}
	if strings.Index(alphaLine, "5") <= strings.Index(betaLine, "5") {
		t.Errorf("count column should be right-aligned:\n%s", out)
	}
	if strings.Contains(out, "<nil>") {
		t.Errorf("short rows should pad with empty cells:\n%s", out)
	}
}

func TestRenderSectionHeader(t *testing.T) {
	plain := renderSectionHeader("Dependencies", false)
	lines := strings.Split(plain, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and rule, got %q", plain)
	}
	if lines[0] != "== Dependencies ==" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != strings.Repeat("-", len(lines[0])) {
		t.Errorf("rule should match header width: %q", lines[1])
	}
	if !strings.Contains(renderSectionHeader("Dependencies", true), ansiBlue) {
		t.Error("colorized header should carry ANSI codes")
	}
}

func TestRenderStatusLine(t *testing.T) {
	plain := renderStatusLine("yt-dlp", statusOK, "/usr/bin/yt-dlp", false)
	if !strings.Contains(plain, "[OK]") || !strings.Contains(plain, "yt-dlp:") {
		t.Errorf("unexpected line: %q", plain)
	}
	colored := renderStatusLine("yt-dlp", statusError, "missing", true)
	if !strings.Contains(colored, ansiRed) || !strings.Contains(colored, ansiReset) {
		t.Errorf("expected color codes: %q", colored)
	}
}

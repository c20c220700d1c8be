package ytdlp

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"tunepull/internal/logging"
)

func TestCommandExecutorRoutesStderrToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	exec := commandExecutor{logger: logger}

	var lines []string
	err := exec.Run(t.Context(), "/bin/sh", []string{"-c", "echo result; echo noise 1>&2"}, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(lines) != 1 || lines[0] != "result" {
		t.Errorf("unexpected stdout lines: %v", lines)
	}
	if !strings.Contains(buf.String(), "noise") {
		t.Errorf("stderr should reach the logger, got: %s", buf.String())
	}
	if strings.Contains(strings.Join(lines, "\n"), "noise") {
		t.Error("stderr must not leak into the stdout callback")
	}
}

func TestCommandExecutorReapsProcessOnScanError(t *testing.T) {
	exec := commandExecutor{logger: logging.NewNop()}

	// A single line past the scanner's buffer cap forces a scan error while
	// the child is still writing. Run must kill and reap the child and
	// return instead of hanging on the full pipe.
	script := "head -c 2097152 /dev/zero | tr '\\0' 'a'; echo"
	err := exec.Run(t.Context(), "/bin/sh", []string{"-c", script}, func(string) {})
	if err == nil {
		t.Fatal("expected scan error for oversized line")
	}
	if !strings.Contains(err.Error(), "scan output") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCommandExecutorReportsExitFailure(t *testing.T) {
	exec := commandExecutor{logger: logging.NewNop()}
	err := exec.Run(t.Context(), "/bin/sh", []string{"-c", "exit 3"}, nil)
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
}

package preflight

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"tunepull/internal/config"
)

// BinaryStatus reports whether one of the external tools is runnable.
type BinaryStatus struct {
	Name      string
	Command   string
	Purpose   string
	Optional  bool
	Available bool
	Detail    string
}

// CheckSystemDeps resolves the configured yt-dlp and ffmpeg commands. Both
// the sync and status commands use this so the tool list lives in one place.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []BinaryStatus {
	return []BinaryStatus{
		checkBinary("yt-dlp", cfg.Download.YtDlpBinary, "audio downloads", false),
		checkBinary("FFmpeg", cfg.Download.FFmpegBinary, "remux, transcode, and tagging", false),
	}
}

func checkBinary(name, command, purpose string, optional bool) BinaryStatus {
	status := BinaryStatus{
		Name:     name,
		Command:  strings.TrimSpace(command),
		Purpose:  purpose,
		Optional: optional,
	}
	if status.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	if _, err := exec.LookPath(status.Command); err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", status.Command)
		return status
	}
	status.Available = true
	return status
}

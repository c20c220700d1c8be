package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tunepull/internal/logging"
	"tunepull/internal/matching"
	"tunepull/internal/services"
	"tunepull/internal/textutil"
)

const (
	musicWatchURL = "https://music.youtube.com/watch?v=%s"

	// Format selector preferring a native m4a stream so the remux step can
	// stream-copy instead of transcoding.
	m4aFormatSelector = "ba[ext=m4a]/bestaudio[ext=m4a]/bestaudio"
	bestAudioSelector = "bestaudio"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStdout func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger routes yt-dlp's diagnostic output through the given logger
// instead of discarding it.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary          string
	downloadTimeout time.Duration
	logger          *slog.Logger
	exec            Executor
}

// New constructs a yt-dlp client.
func New(binary string, downloadTimeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{
		binary:          binary,
		downloadTimeout: time.Duration(downloadTimeoutSeconds) * time.Second,
		logger:          logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.exec == nil {
		client.exec = commandExecutor{logger: client.logger}
	}
	return client, nil
}

// searchEntry is the subset of yt-dlp's --dump-json output the ranker needs.
type searchEntry struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Uploader string  `json:"uploader"`
	Channel  string  `json:"channel"`
	Duration float64 `json:"duration"`
}

// Search runs a ytsearch query, returning up to limit candidates. It
// satisfies matching.SearchProvider so the matcher can fall back to yt-dlp
// when the music endpoint is unavailable.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]matching.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "ytdlp", "search", "query required", nil)
	}
	if limit <= 0 {
		limit = 12
	}

	args := []string{
		fmt.Sprintf("ytsearch%d:%s", limit, query),
		"--dump-json",
		"--flat-playlist",
		"--skip-download",
		"--no-warnings",
	}

	var candidates []matching.Candidate
	var decodeErr error
	err := c.exec.Run(ctx, c.binary, args, func(line string) {
		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "{") {
			return
		}
		var entry searchEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			if decodeErr == nil {
				decodeErr = err
			}
			return
		}
		if entry.ID == "" {
			return
		}
		artists := entry.Uploader
		if artists == "" {
			artists = entry.Channel
		}
		candidates = append(candidates, matching.Candidate{
			VideoID:         entry.ID,
			Title:           entry.Title,
			Artists:         artists,
			DurationSeconds: int(entry.Duration),
		})
	})
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ytdlp", "search", "run yt-dlp", err)
	}
	if len(candidates) == 0 && decodeErr != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ytdlp", "search", "parse output", decodeErr)
	}
	return candidates, nil
}

// DownloadAudio fetches the best audio stream for videoID into destDir using
// baseName as the output stem. preferM4A selects a native m4a stream when one
// exists. The returned path is whatever container yt-dlp actually produced;
// the download pipeline remuxes or transcodes afterwards.
func (c *Client) DownloadAudio(ctx context.Context, videoID, destDir, baseName string, preferM4A bool) (string, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return "", services.Wrap(services.ErrValidation, "ytdlp", "download", "video id required", nil)
	}
	if destDir == "" {
		return "", services.Wrap(services.ErrValidation, "ytdlp", "download", "destination directory required", nil)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "ytdlp", "download", "create destination", err)
	}

	stem := textutil.SanitizeFileName(baseName)
	if stem == "" {
		stem = videoID
	}
	cleanupOutputs(destDir, stem)

	selector := bestAudioSelector
	if preferM4A {
		selector = m4aFormatSelector
	}
	args := []string{
		"-f", selector,
		"--no-playlist",
		"--force-overwrites",
		"--retries", "5",
		"--fragment-retries", "5",
		"--socket-timeout", "30",
		"-o", filepath.Join(destDir, stem+".%(ext)s"),
		fmt.Sprintf(musicWatchURL, videoID),
	}

	downloadCtx := ctx
	if c.downloadTimeout > 0 {
		var cancel context.CancelFunc
		downloadCtx, cancel = context.WithTimeout(ctx, c.downloadTimeout)
		defer cancel()
	}

	if err := c.exec.Run(downloadCtx, c.binary, args, nil); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "ytdlp", "download", "run yt-dlp", err)
	}

	path, err := newestOutput(destDir, stem)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "ytdlp", "download", "locate output", err)
	}
	return path, nil
}

// cleanupOutputs removes stale files from a previous attempt so newestOutput
// cannot pick up a partial download.
func cleanupOutputs(dir, stem string) {
	matches, err := filepath.Glob(filepath.Join(dir, stem+".*"))
	if err != nil {
		return
	}
	for _, path := range matches {
		_ = os.Remove(path)
	}
}

// newestOutput finds the most recent file written with the given stem.
// yt-dlp controls the final extension, so the stem is all we can match on.
func newestOutput(dir, stem string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	type output struct {
		path    string
		modTime time.Time
	}
	var outputs []output
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasPrefix(entry.Name(), stem+".") {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".part") || strings.HasSuffix(entry.Name(), ".ytdl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		outputs = append(outputs, output{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime(),
		})
	}
	if len(outputs) == 0 {
		return "", fmt.Errorf("no output file with stem %q in %s", stem, dir)
	}
	sort.Slice(outputs, func(i, j int) bool {
		return outputs[i].modTime.After(outputs[j].modTime)
	})
	return outputs[0].path, nil
}

package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"tunepull/internal/library"
	"tunepull/internal/logging"
	"tunepull/internal/services"
	"tunepull/internal/textutil"
)

// Format selects the audio container the pipeline produces.
type Format string

const (
	FormatM4A Format = "m4a"
	FormatMP3 Format = "mp3"
)

// ParseFormat validates a config or flag value.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "m4a", "":
		return FormatM4A, nil
	case "mp3":
		return FormatMP3, nil
	default:
		return "", fmt.Errorf("unsupported audio format %q (want m4a or mp3)", value)
	}
}

// AudioDownloader fetches the raw audio stream; *ytdlp.Client satisfies it.
type AudioDownloader interface {
	DownloadAudio(ctx context.Context, videoID, destDir, baseName string, preferM4A bool) (string, error)
}

// Options configures the pipeline.
type Options struct {
	Format     Format
	MP3CBR320  bool
	LibraryDir string
	WorkDir    string
	Overwrite  bool
	// SkipCoverArt disables the YouTube thumbnail fetch for mp3 output.
	SkipCoverArt bool
	HTTPClient   *http.Client
	Logger       *slog.Logger
}

// Pipeline downloads, converts, and tags matched tracks.
type Pipeline struct {
	downloader AudioDownloader
	ffmpeg     *FFmpeg
	opts       Options
	logger     *slog.Logger
}

// NewPipeline wires the downloader and ffmpeg wrapper together.
func NewPipeline(downloader AudioDownloader, ffmpeg *FFmpeg, opts Options) (*Pipeline, error) {
	if downloader == nil {
		return nil, errors.New("audio downloader required")
	}
	if ffmpeg == nil {
		return nil, errors.New("ffmpeg wrapper required")
	}
	if strings.TrimSpace(opts.LibraryDir) == "" {
		return nil, errors.New("library directory required")
	}
	if opts.Format == "" {
		opts.Format = FormatM4A
	}
	if opts.WorkDir == "" {
		opts.WorkDir = os.TempDir()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{downloader: downloader, ffmpeg: ffmpeg, opts: opts, logger: logger}, nil
}

// TargetPath reports where a track's finished file will live without
// downloading anything. Used for skip detection and playlist generation.
func (p *Pipeline) TargetPath(track library.Track) string {
	playlist := strings.TrimSpace(track.Playlist)
	if playlist == "" {
		playlist = library.DefaultPlaylist
	}
	dir := filepath.Join(p.opts.LibraryDir, textutil.SanitizeFileName(playlist))
	return filepath.Join(dir, track.FileStem()+"."+string(p.opts.Format))
}

// Download produces the final tagged audio file for a matched track and
// returns its path. Existing files are kept unless Overwrite is set.
func (p *Pipeline) Download(ctx context.Context, track library.Track, videoID string) (string, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return "", services.Wrap(services.ErrValidation, "download", "pipeline", "video id required", nil)
	}

	target := p.TargetPath(track)
	if !p.opts.Overwrite {
		if _, err := os.Stat(target); err == nil {
			p.logger.Debug("track already downloaded",
				logging.String("track", track.Display()),
				logging.String("path", target))
			return target, nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "download", "pipeline", "create playlist directory", err)
	}

	workDir := filepath.Join(p.opts.WorkDir, "tunepull-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "download", "pipeline", "create work directory", err)
	}
	defer os.RemoveAll(workDir)

	p.logger.Debug("downloading audio",
		logging.String("track", track.Display()),
		logging.String("video_id", videoID),
		logging.String("format", string(p.opts.Format)))

	rawPath, err := p.downloader.DownloadAudio(ctx, videoID, workDir, track.FileStem(), p.opts.Format == FormatM4A)
	if err != nil {
		return "", err
	}

	tags := Tags{
		Title:   strings.TrimSpace(track.Title),
		Artists: strings.TrimSpace(track.Artists),
		Album:   strings.TrimSpace(track.Album),
	}

	switch p.opts.Format {
	case FormatMP3:
		coverPath := p.fetchCover(ctx, videoID, workDir)
		if err := p.ffmpeg.ProduceMP3(ctx, rawPath, target, tags, p.opts.MP3CBR320, coverPath); err != nil {
			return "", err
		}
	default:
		if err := p.ffmpeg.ProduceM4A(ctx, rawPath, target, tags); err != nil {
			return "", err
		}
	}

	p.logger.Info("track downloaded",
		logging.String("track", track.Display()),
		logging.String("path", target))
	return target, nil
}

// fetchCover writes cover art into the work directory, returning its path or
// "" when no usable thumbnail exists. Cover failures never fail the download.
func (p *Pipeline) fetchCover(ctx context.Context, videoID, workDir string) string {
	if p.opts.SkipCoverArt {
		return ""
	}
	data := FetchThumbnail(ctx, p.opts.HTTPClient, videoID)
	if len(data) == 0 {
		return ""
	}
	coverPath := filepath.Join(workDir, "cover.jpg")
	if err := os.WriteFile(coverPath, data, 0o644); err != nil {
		p.logger.Debug("cover art write failed", logging.Error(err))
		return ""
	}
	return coverPath
}

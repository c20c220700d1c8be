package download

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"tunepull/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStdout func(string)) error
}

// Tags holds the metadata written into produced audio files.
type Tags struct {
	Title   string
	Artists string
	Album   string
	Year    int
}

func (t Tags) args() []string {
	out := make([]string, 0, 8)
	if t.Title != "" {
		out = append(out, "-metadata", "title="+t.Title)
	}
	if t.Artists != "" {
		out = append(out, "-metadata", "artist="+t.Artists)
	}
	if t.Album != "" {
		out = append(out, "-metadata", "album="+t.Album)
	}
	if t.Year > 0 {
		out = append(out, "-metadata", "date="+strconv.Itoa(t.Year))
	}
	return out
}

// FFmpegOption configures the ffmpeg wrapper.
type FFmpegOption func(*FFmpeg)

// WithFFmpegExecutor injects a custom executor (primarily for tests).
func WithFFmpegExecutor(exec Executor) FFmpegOption {
	return func(f *FFmpeg) {
		if exec != nil {
			f.exec = exec
		}
	}
}

// FFmpeg wraps the ffmpeg CLI for the conversions the pipeline needs.
type FFmpeg struct {
	binary string
	exec   Executor
}

// NewFFmpeg constructs an ffmpeg wrapper.
func NewFFmpeg(binary string, opts ...FFmpegOption) (*FFmpeg, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	ff := &FFmpeg{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(ff)
	}
	return ff, nil
}

// ProduceM4A writes a tagged .m4a from src. Stream copy is attempted first so
// native m4a downloads keep their original encoding; only when the copy fails
// does it transcode to AAC 192k.
func (f *FFmpeg) ProduceM4A(ctx context.Context, src, dst string, tags Tags) error {
	copyArgs := []string{"-y", "-i", src, "-vn", "-sn", "-c:a", "copy"}
	copyArgs = append(copyArgs, tags.args()...)
	copyArgs = append(copyArgs, dst)
	if err := f.exec.Run(ctx, f.binary, copyArgs, nil); err == nil {
		return nil
	}

	transcodeArgs := []string{"-y", "-i", src, "-vn", "-sn", "-c:a", "aac", "-b:a", "192k"}
	transcodeArgs = append(transcodeArgs, tags.args()...)
	transcodeArgs = append(transcodeArgs, dst)
	if err := f.exec.Run(ctx, f.binary, transcodeArgs, nil); err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "produce m4a", "remux and transcode failed", err)
	}
	return nil
}

// ProduceMP3 transcodes src to mp3 at V0 quality, or CBR 320k when cbr320 is
// set. coverPath, when non-empty, is embedded as ID3v2 front cover art.
func (f *FFmpeg) ProduceMP3(ctx context.Context, src, dst string, tags Tags, cbr320 bool, coverPath string) error {
	args := []string{"-y", "-i", src}
	if coverPath != "" {
		args = append(args,
			"-i", coverPath,
			"-map", "0:a", "-map", "1:v",
			"-c:v", "copy",
			"-id3v2_version", "3",
			"-metadata:s:v", "title=Album cover",
			"-metadata:s:v", "comment=Cover (front)",
		)
	}
	if cbr320 {
		args = append(args, "-codec:a", "libmp3lame", "-b:a", "320k")
	} else {
		args = append(args, "-codec:a", "libmp3lame", "-q:a", "0")
	}
	args = append(args, tags.args()...)
	args = append(args, dst)
	if err := f.exec.Run(ctx, f.binary, args, nil); err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "produce mp3", "transcode failed", err)
	}
	return nil
}

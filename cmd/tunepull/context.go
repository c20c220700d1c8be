package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"tunepull/internal/config"
	"tunepull/internal/download"
	"tunepull/internal/logging"
	"tunepull/internal/matching"
	"tunepull/internal/services/ytdlp"
	"tunepull/internal/services/ytmusic"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// searchProvider builds the configured search backend.
func (c *commandContext) searchProvider() (matching.SearchProvider, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	switch cfg.Search.Backend {
	case "ytdlp":
		logger, err := c.ensureLogger()
		if err != nil {
			return nil, err
		}
		return ytdlp.New(cfg.Download.YtDlpBinary, cfg.Download.TimeoutSeconds, ytdlp.WithLogger(logger))
	default:
		return ytmusic.NewClient(ytmusic.Config{
			BaseURL:        cfg.Search.BaseURL,
			Language:       cfg.Search.Language,
			TimeoutSeconds: cfg.Search.TimeoutSeconds,
		}), nil
	}
}

// matcher wires the search backend into a ranked matcher using the
// configured thresholds.
func (c *commandContext) matcher() (*matching.Matcher, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	provider, err := c.searchProvider()
	if err != nil {
		return nil, err
	}
	return matching.New(provider, matching.Options{
		ConfidenceMin: cfg.Matching.ConfidenceMin,
		SearchLimit:   cfg.Matching.SearchLimit,
		RateLimit:     time.Duration(cfg.Matching.RateLimitMS) * time.Millisecond,
		Logger:        logger,
	})
}

// pipeline wires yt-dlp and ffmpeg into the download pipeline.
func (c *commandContext) pipeline() (*download.Pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	format, err := download.ParseFormat(cfg.Download.Format)
	if err != nil {
		return nil, err
	}
	downloader, err := ytdlp.New(cfg.Download.YtDlpBinary, cfg.Download.TimeoutSeconds, ytdlp.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	ffmpeg, err := download.NewFFmpeg(cfg.Download.FFmpegBinary)
	if err != nil {
		return nil, err
	}
	return download.NewPipeline(downloader, ffmpeg, download.Options{
		Format:       format,
		MP3CBR320:    cfg.Download.MP3CBR320,
		LibraryDir:   cfg.Paths.LibraryDir,
		WorkDir:      cfg.Paths.WorkDir,
		Overwrite:    cfg.Download.Overwrite,
		SkipCoverArt: !cfg.Download.EmbedCoverArt,
		Logger:       logger,
	})
}

// lockLibrary takes an advisory lock on the library directory so concurrent
// sync runs cannot interleave downloads. The caller must invoke the returned
// release function.
func (c *commandContext) lockLibrary() (func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	lock := flock.New(filepath.Join(cfg.Paths.LibraryDir, ".tunepull.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock library: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("library %s is locked by another tunepull run", cfg.Paths.LibraryDir)
	}
	return func() { _ = lock.Unlock() }, nil
}

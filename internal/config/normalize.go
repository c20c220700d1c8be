package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeSearch()
	c.normalizeDownload()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	if c.Matching.ConfidenceMin == 0 {
		c.Matching.ConfidenceMin = defaultConfidenceMin
	}
	if c.Matching.SearchLimit <= 0 {
		c.Matching.SearchLimit = defaultSearchLimit
	}
	if c.Matching.RateLimitMS < 0 {
		c.Matching.RateLimitMS = defaultRateLimitMS
	}
}

func (c *Config) normalizeSearch() {
	c.Search.Backend = strings.ToLower(strings.TrimSpace(c.Search.Backend))
	if c.Search.Backend == "" {
		c.Search.Backend = defaultSearchBackend
	}
	c.Search.BaseURL = strings.TrimSpace(c.Search.BaseURL)
	c.Search.Language = strings.TrimSpace(c.Search.Language)
	if c.Search.Language == "" {
		c.Search.Language = defaultSearchLanguage
	}
	if c.Search.TimeoutSeconds <= 0 {
		c.Search.TimeoutSeconds = defaultSearchTimeout
	}
}

func (c *Config) normalizeDownload() {
	c.Download.Format = strings.ToLower(strings.TrimSpace(c.Download.Format))
	if c.Download.Format == "" {
		c.Download.Format = defaultAudioFormat
	}
	if c.Download.TimeoutSeconds <= 0 {
		c.Download.TimeoutSeconds = defaultDownloadWait
	}
	c.Download.YtDlpBinary = strings.TrimSpace(c.Download.YtDlpBinary)
	if c.Download.YtDlpBinary == "" {
		c.Download.YtDlpBinary = defaultYtDlpBinary
	}
	c.Download.FFmpegBinary = strings.TrimSpace(c.Download.FFmpegBinary)
	if c.Download.FFmpegBinary == "" {
		c.Download.FFmpegBinary = defaultFFmpegBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

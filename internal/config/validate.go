package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for values the rest of the program
// cannot work with. It assumes normalize has already run.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		problems = append(problems, "paths.library_dir must be set")
	}
	if c.Matching.ConfidenceMin <= 0 || c.Matching.ConfidenceMin > 1 {
		problems = append(problems, fmt.Sprintf("matching.confidence_min must be in (0, 1], got %v", c.Matching.ConfidenceMin))
	}
	if c.Matching.SearchLimit <= 0 {
		problems = append(problems, fmt.Sprintf("matching.search_limit must be positive, got %d", c.Matching.SearchLimit))
	}
	switch c.Search.Backend {
	case "ytmusic", "ytdlp":
	default:
		problems = append(problems, fmt.Sprintf("search.backend must be ytmusic or ytdlp, got %q", c.Search.Backend))
	}
	switch c.Download.Format {
	case "m4a", "mp3":
	default:
		problems = append(problems, fmt.Sprintf("download.format must be m4a or mp3, got %q", c.Download.Format))
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New("invalid configuration: " + strings.Join(problems, "; "))
}

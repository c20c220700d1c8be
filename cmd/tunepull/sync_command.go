package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tunepull/internal/library"
	"tunepull/internal/logging"
	"tunepull/internal/matching"
	"tunepull/internal/playlist"
	"tunepull/internal/preflight"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var playlistFilter string
	var limit int
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "sync <csv-file>",
		Short: "Match, download, and tag every track from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logger.With(logging.String("session_id", uuid.NewString()))

			tracks, err := library.LoadCSV(args[0])
			if err != nil {
				return fmt.Errorf("load csv: %w", err)
			}
			if playlistFilter != "" {
				tracks = library.FilterPlaylist(tracks, playlistFilter)
			}
			if limit > 0 && limit < len(tracks) {
				tracks = tracks[:limit]
			}
			if len(tracks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tracks to sync")
				return nil
			}

			if !skipPreflight {
				if err := runSyncPreflight(cmd, ctx); err != nil {
					return err
				}
			}

			release, err := ctx.lockLibrary()
			if err != nil {
				return err
			}
			defer release()

			matcher, err := ctx.matcher()
			if err != nil {
				return err
			}
			pipeline, err := ctx.pipeline()
			if err != nil {
				return err
			}

			results, err := matcher.MatchAll(cmd.Context(), tracks, func(p matching.Progress) {
				logger.Info("match progress",
					logging.Int("done", p.Done),
					logging.Int("total", p.Total),
					logging.String("track", p.Track.Display()))
			})
			if err != nil {
				return err
			}

			downloaded := make(map[string]string, len(results))
			failures := 0
			for _, result := range results {
				if result.Best == nil {
					continue
				}
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				path, err := pipeline.Download(cmd.Context(), result.Track, result.Best.VideoID)
				if err != nil {
					failures++
					logger.Error("download failed",
						logging.String("track", result.Track.Display()),
						logging.Error(err))
					continue
				}
				downloaded[trackKey(result.Track)] = path
			}

			if cfg.Playlist.Enabled {
				if err := writePlaylists(cfg.Paths.LibraryDir, results, downloaded, logger); err != nil {
					return err
				}
			}

			renderSyncSummary(cmd, results, downloaded, failures)
			return nil
		},
	}

	cmd.Flags().StringVar(&playlistFilter, "playlist", "", "Only sync tracks from this playlist")
	cmd.Flags().IntVar(&limit, "limit", 0, "Only sync the first N tracks")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip dependency and directory checks")
	return cmd
}

func runSyncPreflight(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	for _, status := range preflight.CheckSystemDeps(cmd.Context(), cfg) {
		if !status.Available && !status.Optional {
			return fmt.Errorf("missing dependency %s (needed for %s): %s", status.Name, status.Purpose, status.Detail)
		}
	}
	results := preflight.RunAll(cmd.Context(), cfg)
	if !preflight.AllPassed(results) {
		var problems []string
		for _, result := range results {
			if !result.Passed {
				problems = append(problems, fmt.Sprintf("%s: %s", result.Name, result.Detail))
			}
		}
		return fmt.Errorf("preflight failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func trackKey(track library.Track) string {
	return track.Playlist + "\x00" + track.Display()
}

// writePlaylists emits one M3U8 per source playlist covering the tracks that
// made it to disk in this run.
func writePlaylists(libraryDir string, results []matching.Result, downloaded map[string]string, logger *slog.Logger) error {
	grouped := make(map[string][]playlist.Entry)
	for _, result := range results {
		path, ok := downloaded[trackKey(result.Track)]
		if !ok {
			continue
		}
		name := strings.TrimSpace(result.Track.Playlist)
		if name == "" {
			name = library.DefaultPlaylist
		}
		grouped[name] = append(grouped[name], playlist.Entry{
			Title:           result.Track.Display(),
			DurationSeconds: result.Track.DurationSeconds(),
			Path:            path,
		})
	}

	for name, entries := range grouped {
		path, err := playlist.Generate(libraryDir, name, entries)
		if err != nil {
			return fmt.Errorf("write playlist %q: %w", name, err)
		}
		logger.Info("playlist written",
			logging.String("playlist", name),
			logging.String("path", path),
			logging.Int("tracks", len(entries)))
	}
	return nil
}

func renderSyncSummary(cmd *cobra.Command, results []matching.Result, downloaded map[string]string, failures int) {
	matched := 0
	skipped := 0
	for _, result := range results {
		if result.Best != nil {
			matched++
		} else {
			skipped++
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Stage", "Count"},
		[][]string{
			{"Tracks in scope", fmt.Sprintf("%d", len(results))},
			{"Matched", fmt.Sprintf("%d", matched)},
			{"Skipped (no match)", fmt.Sprintf("%d", skipped)},
			{"Downloaded", fmt.Sprintf("%d", len(downloaded))},
			{"Download failures", fmt.Sprintf("%d", failures)},
		},
		1,
	))
}

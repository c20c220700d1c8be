package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tunepull/internal/library"
	"tunepull/internal/playlist"
)

func newPlaylistsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlists <csv-file>",
		Short: "Regenerate M3U8 playlists from files already in the library",
		Long: "Rebuilds one .m3u8 per source playlist, covering only the tracks whose " +
			"audio files already exist in the library. No searching or downloading happens.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			pipeline, err := ctx.pipeline()
			if err != nil {
				return err
			}

			tracks, err := library.LoadCSV(args[0])
			if err != nil {
				return fmt.Errorf("load csv: %w", err)
			}

			grouped := make(map[string][]playlist.Entry)
			missing := 0
			for _, track := range tracks {
				target := pipeline.TargetPath(track)
				if _, err := os.Stat(target); err != nil {
					missing++
					continue
				}
				name := strings.TrimSpace(track.Playlist)
				if name == "" {
					name = library.DefaultPlaylist
				}
				grouped[name] = append(grouped[name], playlist.Entry{
					Title:           track.Display(),
					DurationSeconds: track.DurationSeconds(),
					Path:            target,
				})
			}

			out := cmd.OutOrStdout()
			for name, entries := range grouped {
				path, err := playlist.Generate(cfg.Paths.LibraryDir, name, entries)
				if err != nil {
					return fmt.Errorf("write playlist %q: %w", name, err)
				}
				fmt.Fprintf(out, "Wrote %s (%d tracks)\n", path, len(entries))
			}
			if len(grouped) == 0 {
				fmt.Fprintln(out, "No downloaded tracks found; nothing to write")
			}
			if missing > 0 {
				fmt.Fprintf(out, "%d tracks have no file in the library yet\n", missing)
			}
			return nil
		},
	}
	return cmd
}

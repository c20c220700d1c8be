package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tunepull/internal/library"
	"tunepull/internal/matching"
)

type matchReport struct {
	Track      string  `json:"track"`
	Playlist   string  `json:"playlist"`
	VideoID    string  `json:"video_id,omitempty"`
	MatchTitle string  `json:"match_title,omitempty"`
	Confidence float64 `json:"confidence"`
	Skipped    bool    `json:"skipped"`
	Error      string  `json:"error,omitempty"`
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var limit int

	cmd := &cobra.Command{
		Use:   "match <csv-file>",
		Short: "Match a CSV export against YouTube Music without downloading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracks, err := library.LoadCSV(args[0])
			if err != nil {
				return fmt.Errorf("load csv: %w", err)
			}
			if limit > 0 && limit < len(tracks) {
				tracks = tracks[:limit]
			}
			if len(tracks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tracks found in CSV")
				return nil
			}

			matcher, err := ctx.matcher()
			if err != nil {
				return err
			}

			results, err := matcher.MatchAll(cmd.Context(), tracks, nil)
			if err != nil {
				return err
			}

			reports := buildMatchReports(results)
			if jsonOutput {
				return writeJSON(cmd, reports)
			}
			renderMatchResults(cmd, reports)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	cmd.Flags().IntVar(&limit, "limit", 0, "Only match the first N tracks")
	return cmd
}

func buildMatchReports(results []matching.Result) []matchReport {
	reports := make([]matchReport, 0, len(results))
	for _, result := range results {
		report := matchReport{
			Track:      result.Track.Display(),
			Playlist:   result.Track.Playlist,
			Confidence: result.Confidence,
			Skipped:    result.Skipped,
			Error:      result.Err,
		}
		if result.Best != nil {
			report.VideoID = result.Best.VideoID
			report.MatchTitle = result.Best.Title
			report.Confidence = result.Best.Score
		}
		reports = append(reports, report)
	}
	return reports
}

func renderMatchResults(cmd *cobra.Command, reports []matchReport) {
	rows := make([][]string, 0, len(reports))
	matched := 0
	for _, report := range reports {
		status := "matched"
		switch {
		case report.Error != "":
			status = "error"
		case report.Skipped:
			status = "skipped"
		default:
			matched++
		}
		rows = append(rows, []string{
			report.Track,
			report.MatchTitle,
			report.VideoID,
			strconv.FormatFloat(report.Confidence, 'f', 2, 64),
			status,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Track", "Match", "Video ID", "Confidence", "Status"},
		rows,
		3,
	))
	fmt.Fprintf(out, "%d/%d tracks matched\n", matched, len(reports))
}

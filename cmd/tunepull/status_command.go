package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tunepull/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show dependency and directory readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintln(out, renderSectionHeader("Dependencies", colorize))
			for _, status := range preflight.CheckSystemDeps(cmd.Context(), cfg) {
				kind := statusOK
				detail := status.Command
				if !status.Available {
					kind = statusError
					if status.Optional {
						kind = statusWarn
					}
					detail = status.Detail
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, detail, colorize))
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, renderSectionHeader("Environment", colorize))
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, renderSectionHeader("Configuration", colorize))
			fmt.Fprintln(out, renderStatusLine("Library", statusInfo, cfg.Paths.LibraryDir, colorize))
			fmt.Fprintln(out, renderStatusLine("Search backend", statusInfo, cfg.Search.Backend, colorize))
			fmt.Fprintln(out, renderStatusLine("Audio format", statusInfo, cfg.Download.Format, colorize))
			fmt.Fprintln(out, renderStatusLine("Confidence min", statusInfo, fmt.Sprintf("%.2f", cfg.Matching.ConfidenceMin), colorize))
			return nil
		},
	}
}

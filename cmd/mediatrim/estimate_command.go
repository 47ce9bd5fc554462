package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mediatrim/internal/deps"
	"mediatrim/internal/discovery"
	"mediatrim/internal/logging"
	"mediatrim/internal/media/tracks"
	"mediatrim/internal/savings"
)

func newEstimateCommand(ctx *commandContext) *cobra.Command {
	var rules ruleFlags
	var recursive bool

	cmd := &cobra.Command{
		Use:   "estimate [directory]",
		Short: "Report the space the configured rules would reclaim",
		Long: `Probe every video file under the directory and report, per file and in
total, how many bytes the language rules would strip. Nothing is modified.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			selection, err := rules.rules(cmd, cfg)
			if err != nil {
				return err
			}
			if !selection.Active() {
				return errors.New("no language rules configured; set them in the config file or pass --remove/--keep flags")
			}

			if err := deps.Verify(deps.Required(cfg.FFmpegBinary(), cfg.FFprobeBinary())); err != nil {
				return err
			}

			if cmd.Flags().Changed("recursive") {
				cfg.Processing.Recursive = recursive
			}
			dir := scanDirectory(args)
			paths, err := discovery.Scan(dir, discovery.Options{
				Recursive:  cfg.Processing.Recursive,
				Extensions: cfg.Processing.Extensions,
			})
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No video files found in %s\n", dir)
				return nil
			}

			inspector := tracks.NewInspector(cfg.FFprobeBinary(), logger)
			estimator := savings.NewEstimator(logger)

			var rows [][]string
			var totalSaved, totalSize int64
			var failures int
			for _, path := range paths {
				probe, list, err := inspector.Inspect(cmd.Context(), path)
				if err != nil {
					failures++
					logger.Warn("probe failed", logging.String(logging.FieldFile, path), logging.Error(err))
					continue
				}
				remove := tracks.SelectAll(list, selection)
				if len(remove) == 0 {
					continue
				}
				estimate, err := estimator.Estimate(path, probe, selection)
				if err != nil {
					failures++
					logger.Warn("estimation failed", logging.String(logging.FieldFile, path), logging.Error(err))
					continue
				}
				totalSaved += estimate.TotalBytes
				totalSize += estimate.OriginalSize
				rows = append(rows, []string{
					filepath.Base(path),
					strconv.Itoa(len(remove)),
					humanize.IBytes(uint64(estimate.TotalBytes)),
					fmt.Sprintf("%.1f%%", estimate.Percent()),
				})
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No tracks match the rules in %d files\n", len(paths))
			} else {
				headers := []string{"File", "Tracks", "Savings", "Of size"}
				fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignRight, alignRight, alignRight}))
				fmt.Fprintf(out, "Total: %s across %d files\n", formatSavings(totalSaved, totalSize), len(rows))
			}
			if failures > 0 {
				return fmt.Errorf("%d files could not be analyzed", failures)
			}
			return nil
		},
	}

	rules.register(cmd)
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Walk subdirectories of the scan root")

	return cmd
}

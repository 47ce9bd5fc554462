package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mediatrim/internal/batch"
	"mediatrim/internal/deps"
	"mediatrim/internal/discovery"
	"mediatrim/internal/logging"
	"mediatrim/internal/media/tracks"
	"mediatrim/internal/runlock"
	"mediatrim/internal/savings"
	"mediatrim/internal/services/ffmpeg"
	"mediatrim/internal/transcode"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var rules ruleFlags
	var dryRun bool
	var backup bool
	var recursive bool
	var batchSize int
	var maxWorkers int
	var fileLimit int
	var timeoutSeconds int
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "run [directory]",
		Short: "Trim matching tracks from every video file in a directory",
		Long: `Scan a directory for video files, estimate the space the configured
language rules would reclaim, and remux each file in place with the
selected tracks removed. Files are processed in batches; within a batch
remuxes run concurrently up to the worker limit.`,
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

			flags := cmd.Flags()
			if flags.Changed("backup") {
				cfg.Processing.Backup = backup
			}
			if flags.Changed("recursive") {
				cfg.Processing.Recursive = recursive
			}
			if flags.Changed("batch-size") {
				cfg.Processing.BatchSize = batchSize
			}
			if flags.Changed("max-workers") {
				cfg.Processing.MaxWorkers = maxWorkers
			}
			if flags.Changed("limit") {
				cfg.Processing.FileLimit = fileLimit
			}
			if flags.Changed("timeout") {
				cfg.Processing.TimeoutSeconds = timeoutSeconds
			}
			if err := cfg.Validate(); err != nil {
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

			lock, err := runlock.Acquire(dir)
			if err != nil {
				return err
			}
			defer lock.Release()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := ffmpeg.NewCLI(ffmpeg.WithBinary(cfg.FFmpegBinary()))
			supervisor := transcode.NewSupervisor(runner, transcode.ProbeDuration(cfg.FFprobeBinary()), logger)
			scheduler := batch.NewScheduler(
				tracks.NewInspector(cfg.FFprobeBinary(), logger),
				savings.NewEstimator(logger),
				supervisor,
				newRunReporter(cmd.OutOrStdout(), noProgress),
				logger,
			)

			summary := scheduler.Run(runCtx, paths, batch.Options{
				Rules: selection,
				Transcode: transcode.Options{
					DryRun:  dryRun,
					Backup:  cfg.Processing.Backup,
					Timeout: cfg.Timeout(),
				},
				BatchSize:  cfg.Processing.BatchSize,
				MaxWorkers: cfg.MaxWorkers(),
				FileLimit:  cfg.Processing.FileLimit,
			})

			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))

			if runCtx.Err() != nil {
				logger.Warn("run interrupted", logging.Int("remaining", summary.NeedingChanges-summary.Successful-summary.Failed))
				return runCtx.Err()
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d files failed", summary.Failed, summary.NeedingChanges)
			}
			return nil
		},
	}

	rules.register(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Analyze and report without modifying any file")
	cmd.Flags().BoolVar(&backup, "backup", false, "Keep a .bak copy of each original")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Walk subdirectories of the scan root")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Files grouped per execution batch")
	cmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Concurrent remuxes within a batch (0 = CPU count - 1)")
	cmd.Flags().IntVar(&fileLimit, "limit", 0, "Stop after this many files needing changes (0 = unlimited)")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "Per-file timeout in seconds (0 = none)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	return cmd
}

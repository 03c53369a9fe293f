package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stubgen/stubgen/core/config"
	"github.com/stubgen/stubgen/core/logger"
	"github.com/stubgen/stubgen/core/pipeline"
	"github.com/stubgen/stubgen/core/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the project and report unreferenced files on change",
	Long: `Watch monitors the project tree and, whenever entry or generated files
change, re-runs the pruner in dry-run mode and reports which generated files
became unreferenced. It never deletes anything; run prune or update with
--no-dry-run to apply.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("watch called")

		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		pipe := pipeline.New(cfg, wd)
		w, err := watcher.NewWatcher(wd, cfg.Prune.Exclude, func() error {
			report, err := pipe.Prune(true)
			if err != nil {
				return err
			}
			if len(report.Unreferenced) == 0 {
				logger.Info("All %d candidate files are reachable", report.Candidates)
				return nil
			}
			logger.Warn("%d unreferenced files:", len(report.Unreferenced))
			for _, f := range report.Unreferenced {
				logger.Warn("  %s", f)
			}
			return nil
		})
		if err != nil {
			return err
		}
		defer w.Close()

		color.Cyan("Watching %s (Ctrl+C to stop)", wd)
		return w.Watch()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

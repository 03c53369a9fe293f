package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stubgen/stubgen/core/config"
	"github.com/stubgen/stubgen/core/logger"
	"github.com/stubgen/stubgen/core/pipeline"
)

var (
	updateNoDryRun bool
	skipFetch      bool
	updateRefresh  bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run the whole pipeline: fetch, filter, generate, prune",
	Long: `Update runs every stage in order against the config in stubgen.yaml:
download the upstream spec, filter it to the configured paths, run the
external generator, copy and patch its output, then prune generated files
unreachable from the configured entry files. The prune stage is a dry run
unless --no-dry-run is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("update called")

		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		report, err := pipeline.New(cfg, wd).Run(cmd.Context(), pipeline.RunOptions{
			SkipFetch: skipFetch,
			Refresh:   updateRefresh,
			DryRun:    !updateNoDryRun,
		})
		if err != nil {
			return err
		}

		printPruneReport(report, !updateNoDryRun)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVar(&updateNoDryRun, "no-dry-run", false, "Actually delete unreferenced files in the prune stage")
	updateCmd.Flags().BoolVar(&skipFetch, "skip-fetch", false, "Use the local spec file instead of downloading")
	updateCmd.Flags().BoolVar(&updateRefresh, "refresh", false, "Bypass the download cache")
}

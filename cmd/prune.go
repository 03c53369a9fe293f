/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stubgen/stubgen/core/logger"
	"github.com/stubgen/stubgen/core/models"
	"github.com/stubgen/stubgen/core/prune"
	"github.com/stubgen/stubgen/core/scan"
	"github.com/stubgen/stubgen/core/walker"
)

var (
	pruneFiles []string
	entryFiles []string
	noDryRun   bool
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete generated files unreachable from the entry files",
	Long: `Prune builds a reference graph over the candidate files, seeds it with the
entry files' references, and deletes every candidate no entry file reaches.

Entry files are never deleted; a file matching both --entry-files and
--prune-files counts as an entry. Without --no-dry-run the prunable set is
only reported.

Flag values may be repeated and may be glob patterns (quote them to keep the
shell from expanding early):

  stubgen prune --prune-files 'api/models/*.py' \
                --entry-files 'api/*.py' --entry-files 'api/impl/**/*.py'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("prune called")

		entries, err := walker.ExpandGlobs(entryFiles)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("no entry files matched %v", entryFiles)
		}

		candidates, err := walker.ExpandGlobs(pruneFiles)
		if err != nil {
			return err
		}

		pruner := prune.NewPruner(scan.NewExtractor())
		report, err := pruner.Prune(entries, candidates, !noDryRun)
		if err != nil {
			return err
		}

		printPruneReport(report, !noDryRun)
		return nil
	},
}

func printPruneReport(report *models.PruneReport, dryRun bool) {
	if len(report.Unreferenced) == 0 {
		color.Green("No unreferenced files found (%d candidates, %d reachable).",
			report.Candidates, report.Reachable)
		return
	}

	fmt.Println("The following files appear unreferenced:")
	for _, f := range report.Unreferenced {
		fmt.Printf("  %s\n", f)
	}

	if dryRun {
		color.Yellow("\n(dry run) No files were removed. Run again with --no-dry-run to remove.")
		return
	}

	for path, msg := range report.Failed {
		color.Red("Failed to remove %s: %s", path, msg)
	}
	color.Green("\nRemoved %d unreferenced files.", len(report.Deleted))
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().StringArrayVar(&pruneFiles, "prune-files", nil, "Files eligible for deletion; repeatable, globs allowed")
	pruneCmd.Flags().StringArrayVar(&entryFiles, "entry-files", nil, "Always-reachable root files; repeatable, globs allowed")
	pruneCmd.Flags().BoolVar(&noDryRun, "no-dry-run", false, "Actually delete files instead of only reporting")
	pruneCmd.MarkFlagRequired("prune-files")
	pruneCmd.MarkFlagRequired("entry-files")
}

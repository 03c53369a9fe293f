/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stubgen/stubgen/core/config"
	"github.com/stubgen/stubgen/core/logger"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter stubgen.yaml",
	Long:  `Creates a stubgen.yaml with default settings in the current directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("init called")

		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		path := filepath.Join(wd, "stubgen.yaml")
		if _, err := os.Stat(path); err == nil && !force {
			fmt.Printf("%s already exists. Use --force to overwrite.\n", path)
			return nil
		}

		if err := config.Default().Write(path); err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", path)
		fmt.Printf("Next Steps:\n")
		fmt.Printf("  - set spec.url and spec.paths\n")
		fmt.Printf("  - set prune.entry_globs and prune.prune_globs\n")
		fmt.Printf("  - stubgen update\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Force overwrite existing files")
}

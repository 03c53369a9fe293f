/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stubgen/stubgen/core/config"
	"github.com/stubgen/stubgen/core/logger"
	"github.com/stubgen/stubgen/core/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the external generator and copy its output into the project",
	Long: `Generate invokes the configured code generator against the local spec file,
copies the configured outputs into the project tree, and applies the patch
rules to the copied files. The spec file must already exist; run fetch and
filter first, or use update for the whole pipeline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("generate called")

		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := pipeline.New(cfg, wd).Generate(cmd.Context()); err != nil {
			return fmt.Errorf("failed to generate stub: %w", err)
		}

		color.Green("Generated stub from %s", cfg.Spec.File)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

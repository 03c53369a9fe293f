package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stubgen/stubgen/core/config"
	"github.com/stubgen/stubgen/core/logger"
	"github.com/stubgen/stubgen/core/spec"
)

var (
	filterSpec  string
	filterOut   string
	filterPaths []string
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter a spec down to an allowlist of paths",
	Long: `Filter keeps only the allowlisted paths in an OpenAPI document, drops paths
without operations, and writes the bundled result back out. Paths default to
spec.paths from stubgen.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("filter called")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		specFile := filterSpec
		if specFile == "" {
			specFile = cfg.Spec.File
		}
		out := filterOut
		if out == "" {
			out = specFile
		}
		paths := filterPaths
		if len(paths) == 0 {
			paths = cfg.Spec.Paths
		}
		if len(paths) == 0 {
			return fmt.Errorf("no paths given (pass --path or set spec.paths in stubgen.yaml)")
		}

		data, err := os.ReadFile(specFile)
		if err != nil {
			return fmt.Errorf("failed to read spec file: %w", err)
		}

		filtered, err := spec.Filter(data, paths)
		if err != nil {
			return err
		}

		if err := os.WriteFile(out, filtered, 0644); err != nil {
			return fmt.Errorf("failed to write filtered spec: %w", err)
		}

		color.Green("Filtered %s to %d paths -> %s", specFile, len(paths), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringVar(&filterSpec, "spec", "", "Spec file to filter (defaults to spec.file from stubgen.yaml)")
	filterCmd.Flags().StringVar(&filterOut, "out", "", "Output file (defaults to overwriting the input)")
	filterCmd.Flags().StringArrayVarP(&filterPaths, "path", "p", nil, "Path to keep; repeatable")
}

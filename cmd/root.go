/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stubgen/stubgen/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "stubgen",
	Short: "A CLI tool for maintaining generated OpenAPI server stubs.",
	Long: `Stubgen keeps a generated OpenAPI server stub in sync with its upstream spec.
It downloads the spec, filters it to the endpoints you serve, drives an
external code generator, patches the output, and prunes generated model
files that nothing references anymore.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		if logfile != "" {
			return logger.SetLogFile(logfile)
		}
		return nil
	},
}

var logfile string
var verbose bool

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface for cmdspec.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	output  string
	format  string
	verbose bool
	quiet   bool
)

// Destinations of the print helpers, rebound to the executing command's
// writers before every run.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cmdspec",
	Short: "Command spec extractor for documented API declarations",
	Long: `cmdspec extracts machine-readable command specs from TypeScript API
declarations annotated with documentation comments.

Every documented member of the form "name: (params) => Promise<Result>;"
becomes one JSON record with its description, parameters and output type,
written to <output>/<group>/<name>.json. The records drive command-line
bindings, usage text and shell completion.

Example:
  cmdspec generate                     # Generate specs from the configured paths
  cmdspec init                         # Initialize a new config file
  cmdspec check --ci                   # Verify specs are up to date
  cmdspec list                         # Show usage for every command
  cmdspec watch                        # Watch for changes and regenerate`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		stdout = cmd.OutOrStdout()
		stderr = cmd.ErrOrStderr()
		slog.SetDefault(newLogger(stderr))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: cmdspec.yaml)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output directory (default: specs)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format: json, yaml (default: json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(completionDataCmd)
}

// newLogger returns the structured logger for diagnostics such as skipped
// blocks and watch events.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelWarn
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// printInfo prints a message if not in quiet mode.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(stdout, format+"\n", args...)
	}
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(stdout, format+"\n", args...)
	}
}

// printError prints an error message.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
}

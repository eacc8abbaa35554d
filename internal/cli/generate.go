// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avashell/cmdspec/internal/config"
	"github.com/avashell/cmdspec/internal/output"
	"github.com/avashell/cmdspec/internal/pipeline"
)

var (
	generateDryRun  bool
	generateClean   bool
	generateStrict  bool
	generateExtract string
	generateWorkers int
	generateInclude []string
	generateExclude []string
)

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Generate command specs from declaration files",
	Long: `Generate command specs by parsing documented API declarations.

The generate command scans your declaration files, splits them into
documentation blocks and writes one spec file per function to
<output>/<group>/<name>.json. The group is derived from the file name
unless the config maps the file to another group.

A block that cannot be parsed is reported and skipped; the other blocks
are still written.

Extract modes:
  split  Every /** comment starts a block (default)
  ast    Only documented function-typed members of TypeScript interfaces

Example:
  cmdspec generate                           # Generate from configured paths
  cmdspec generate ./src/apis                # Generate from specific paths
  cmdspec generate --extract ast             # Use the TypeScript syntax tree
  cmdspec generate --clean                   # Remove stale specs first
  cmdspec generate --dry-run                 # Preview without writing`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "preview output without writing files")
	generateCmd.Flags().BoolVar(&generateClean, "clean", false, "remove the output directory before writing")
	generateCmd.Flags().BoolVar(&generateStrict, "strict", false, "fail when any block cannot be parsed")
	generateCmd.Flags().StringVar(&generateExtract, "extract", "", "block extract mode: split, ast")
	generateCmd.Flags().IntVar(&generateWorkers, "workers", 0, "maximum concurrent block parsers (default: GOMAXPROCS)")
	generateCmd.Flags().StringSliceVarP(&generateInclude, "include", "i", nil, "glob patterns to include")
	generateCmd.Flags().StringSliceVarP(&generateExclude, "exclude", "e", nil, "glob patterns to exclude")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if generateExtract != "" {
		cfg.Source.Extract = generateExtract
	}
	if generateWorkers > 0 {
		cfg.Parser.Workers = generateWorkers
	}
	if len(generateInclude) > 0 {
		cfg.Source.Include = generateInclude
	}
	if len(generateExclude) > 0 {
		cfg.Source.Exclude = generateExclude
	}

	paths := sourcePaths(cfg, args)

	// Validate config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	printVerbose("Configuration:")
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Format: %s", cfg.Format)
	printVerbose("  Extract: %s", cfg.Source.Extract)
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	if generateDryRun {
		printInfo("Dry run mode - no files will be written")
		return previewSpecs(cmd.Context(), cfg, paths)
	}

	report, err := generateSpecs(cmd.Context(), cfg, paths, generateClean)
	if err != nil {
		return err
	}

	printInfo("%s, written to %s", report.Summary(), cfg.Output)
	if generateStrict && !report.OK() {
		return fmt.Errorf("%d block(s) could not be parsed: %w", len(report.Failures), report.Err())
	}
	return nil
}

// newWriter returns the spec file writer configured by cfg.
func newWriter(cfg *config.Config) *output.Writer {
	writer := output.NewWriter(cfg.Output)
	writer.Format = cfg.Format
	writer.Indent = cfg.Indent
	return writer
}

// generateSpecs scans paths and writes every parsed spec under cfg.Output.
func generateSpecs(ctx context.Context, cfg *config.Config, paths []string, clean bool) (*pipeline.Report, error) {
	sources, err := scanSources(cfg, paths)
	if err != nil {
		return nil, err
	}

	if clean {
		printVerbose("Removing %s", cfg.Output)
		if err := os.RemoveAll(cfg.Output); err != nil {
			return nil, fmt.Errorf("failed to clean output directory: %w", err)
		}
	}

	report, err := extract(ctx, cfg, sources, newWriter(cfg))
	if err != nil {
		return report, fmt.Errorf("failed to generate specs: %w", err)
	}
	return report, nil
}

// previewSpecs lists the files generate would write.
func previewSpecs(ctx context.Context, cfg *config.Config, paths []string) error {
	sources, err := scanSources(cfg, paths)
	if err != nil {
		return err
	}

	specs := output.Specs{}
	report, err := extract(ctx, cfg, sources, specs)
	if err != nil {
		return fmt.Errorf("failed to generate specs: %w", err)
	}

	writer := newWriter(cfg)
	for _, group := range specs.Groups() {
		for _, spec := range specs[group] {
			path, err := writer.Path(group, spec.Name)
			if err != nil {
				return err
			}
			printInfo("  %s", path)
		}
	}
	printInfo("%s", report.Summary())
	return nil
}

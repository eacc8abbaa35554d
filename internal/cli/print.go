// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/avashell/cmdspec/internal/config"
	"github.com/avashell/cmdspec/internal/output"
	"github.com/avashell/cmdspec/internal/pipeline"
	"github.com/avashell/cmdspec/internal/scanner"
	"github.com/avashell/cmdspec/internal/source"
	"github.com/avashell/cmdspec/pkg/types"
)

var printGroup string

var printCmd = &cobra.Command{
	Use:   "print [files...]",
	Short: "Parse declarations and print the specs to stdout",
	Long: `Parse declarations and print the resulting specs to standard output.

If files are provided, each one is parsed as is, whatever its extension;
"-" reads from standard input. Otherwise the configured paths are scanned.
Nothing is written to the output directory.

This is useful for piping the output to other tools or for quick inspection.

Example:
  cmdspec print                       # Parse configured paths and print
  cmdspec print apis/PlatformVM.ts    # Parse a single file
  cmdspec print -f yaml               # Print in YAML format
  cat api.ts | cmdspec print -        # Parse standard input
  cmdspec print | jq '.name'          # Pipe to jq for processing`,
	RunE: runPrint,
}

func init() {
	printCmd.Flags().StringVar(&printGroup, "group", "", "group for files given as arguments (default: derived from the file name)")
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	printVerbose("Print configuration:")
	printVerbose("  Format: %s", cfg.Format)

	var sources []pipeline.Source
	if len(args) == 0 {
		sources, err = scanSources(cfg, cfg.Source.Paths)
		if err != nil {
			return err
		}
	} else {
		sources, err = argSources(cfg, cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
	}

	writer := newWriter(cfg)
	first := true
	sink := pipeline.SinkFunc(func(group string, spec types.FunctionSpec) error {
		if writer.Format == output.FormatYAML && !first {
			fmt.Fprintln(cmd.OutOrStdout(), "---")
		}
		first = false
		return writer.Write(spec, cmd.OutOrStdout())
	})

	report, err := extract(cmd.Context(), cfg, sources, sink)
	if err != nil {
		return err
	}
	if !report.OK() {
		printError("%s", report.Summary())
	}
	return nil
}

// argSources builds sources from command-line file arguments.
func argSources(cfg *config.Config, stdin io.Reader, args []string) ([]pipeline.Source, error) {
	sources := make([]pipeline.Source, 0, len(args))
	for _, arg := range args {
		group := printGroup
		if arg == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			if group == "" {
				group = "stdin"
			}
			sources = append(sources, pipeline.Source{Name: "stdin", Group: group, Text: source.Bytes(data)})
			continue
		}

		if group == "" {
			group = scanner.GroupName(arg)
		}
		extract := pipeline.ExtractSplit
		if cfg.Source.Extract == pipeline.ExtractAST && scanner.DetectLanguage(arg) == "typescript" {
			extract = pipeline.ExtractAST
		}
		sources = append(sources, pipeline.Source{
			Name:    arg,
			Group:   group,
			Text:    source.File{Path: arg},
			Extract: extract,
		})
	}
	return sources, nil
}

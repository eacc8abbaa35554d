// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avashell/cmdspec/internal/output"
)

var (
	diffSummary      bool
	diffFailBreaking bool
)

var diffCmd = &cobra.Command{
	Use:   "diff [dir1] [dir2]",
	Short: "Compare two spec directories",
	Long: `Compare two spec directories and show the differences.

If only one directory is provided, it will be compared against the specs
generated from the current declarations.

If no directories are provided, the configured output directory will be
compared against what would be generated from the current declarations.

Example:
  cmdspec diff                            # Compare current vs generated
  cmdspec diff specs                      # Compare directory vs generated
  cmdspec diff old/specs new/specs        # Compare two directories
  cmdspec diff --summary                  # Print only the summary line
  cmdspec diff --fail-on-breaking a b     # Exit with an error on breaking changes`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffSummary, "summary", false, "print only the summary line")
	diffCmd.Flags().BoolVar(&diffFailBreaking, "fail-on-breaking", false, "return an error when breaking changes are found")
}

func runDiff(cmd *cobra.Command, args []string) error {
	var oldSpecs, newSpecs output.Specs
	var err error

	switch len(args) {
	case 2:
		printVerbose("Comparing %s against %s...", args[0], args[1])
		if oldSpecs, err = readSpecDir(args[0]); err != nil {
			return err
		}
		if newSpecs, err = readSpecDir(args[1]); err != nil {
			return err
		}
	case 0, 1:
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		dir := cfg.Output
		if len(args) == 1 {
			dir = args[0]
		}
		printVerbose("Comparing %s against generated...", dir)

		if oldSpecs, err = readSpecDir(dir); err != nil {
			return err
		}
		if newSpecs, err = specsFromSource(cmd.Context(), cfg, cfg.Source.Paths); err != nil {
			return fmt.Errorf("failed to generate specs from source: %w", err)
		}
	default:
		return fmt.Errorf("too many arguments: expected at most 2 directories")
	}

	result := output.NewDiffer().Diff(oldSpecs, newSpecs)

	if diffSummary {
		fmt.Fprintln(stdout, result.Summary)
	} else {
		fmt.Fprintln(stdout, output.FormatDiff(result))
	}

	if diffFailBreaking && result.HasBreakingChanges {
		return errors.New("breaking changes detected")
	}
	return nil
}

// readSpecDir reads a spec directory that must exist.
func readSpecDir(dir string) (output.Specs, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("failed to read spec directory %s: %w", dir, err)
	}
	specs, err := output.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec directory %s: %w", dir, err)
	}
	return specs, nil
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/avashell/cmdspec/internal/config"
	"github.com/avashell/cmdspec/internal/output"
)

// Exit codes for check command
const (
	ExitCodeMatch      = 0 // Specs match the declarations
	ExitCodeDifference = 1 // Specs differ from the declarations
	ExitCodeCheckError = 2 // Error during analysis
)

// osExit is replaced in tests.
var osExit = os.Exit

var (
	checkStrict bool
	checkIgnore []string
	checkCI     bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check if the spec directory matches the declarations",
	Long: `Check validates that the generated specs match the current declarations.

This command parses your declaration files in memory and compares the
result with the spec files in the output directory. It's useful for CI
pipelines to ensure the specs are always regenerated after an API change.

Removed functions and changed parameters or output types are reported as
breaking changes; description edits are not.

Exit codes:
  0  Specs match the declarations
  1  Specs differ from the declarations
  2  Error during analysis

Example:
  cmdspec check                       # Basic validation
  cmdspec check --strict=false        # Report differences without failing
  cmdspec check --ci                  # CI mode with appropriate exit codes
  cmdspec check --ignore 'admin/*'    # Ignore functions of the admin group`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", true, "fail on any difference")
	checkCmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "group/name glob patterns to ignore in comparison")
	checkCmd.Flags().BoolVar(&checkCI, "ci", false, "CI mode: use exit codes for status")
}

func runCheck(cmd *cobra.Command, args []string) error {
	code, err := check(cmd.Context(), args)
	if checkCI {
		if err != nil {
			printError("%v", err)
		}
		osExit(code)
		return nil
	}
	return err
}

// check compares the spec directory with freshly parsed declarations and
// returns the exit code for the outcome.
func check(ctx context.Context, args []string) (int, error) {
	cfg, err := loadConfig()
	if err != nil {
		return ExitCodeCheckError, err
	}

	paths := sourcePaths(cfg, args)

	if err := cfg.Validate(); err != nil {
		return ExitCodeCheckError, fmt.Errorf("invalid configuration: %w", err)
	}

	printVerbose("Check configuration:")
	printVerbose("  Strict mode: %t", checkStrict)
	printVerbose("  CI mode: %t", checkCI)
	if len(checkIgnore) > 0 {
		printVerbose("  Ignored patterns: %s", strings.Join(checkIgnore, ", "))
	}
	printVerbose("  Paths: %s", strings.Join(paths, ", "))
	printVerbose("  Spec directory: %s", cfg.Output)

	if _, err := os.Stat(cfg.Output); errors.Is(err, os.ErrNotExist) {
		printError("Spec directory not found: %s", cfg.Output)
		printInfo("Run 'cmdspec generate' first to create the spec files")
		return ExitCodeDifference, fmt.Errorf("spec directory not found: %s", cfg.Output)
	}

	existing, err := output.ReadDir(cfg.Output)
	if err != nil {
		return ExitCodeCheckError, fmt.Errorf("failed to read existing specs: %w", err)
	}

	generated, err := specsFromSource(ctx, cfg, paths)
	if err != nil {
		return ExitCodeCheckError, fmt.Errorf("failed to generate specs from source: %w", err)
	}

	diffResult := output.NewDiffer().Diff(existing, generated)
	diffResult = applyIgnorePatterns(diffResult, checkIgnore)

	if diffResult.IsEmpty() {
		printInfo("Specs are in sync with the declarations")
		return ExitCodeMatch, nil
	}

	printInfo("Specs differ from the declarations:\n")
	printInfo("%s", diffResult.Summary)
	printInfo("")
	for _, change := range diffResult.Changes {
		printInfo("  %s %s/%s", output.ChangeSymbol(change.Type), change.Group, change.Name)
	}
	printInfo("")

	if diffResult.HasBreakingChanges {
		printError("Breaking changes detected!")
	}

	printInfo("Run 'cmdspec generate' to update the spec files")

	if checkStrict || checkCI {
		return ExitCodeDifference, errors.New("specs differ from the declarations")
	}
	return ExitCodeMatch, nil
}

// specsFromSource parses the declarations under paths into memory.
func specsFromSource(ctx context.Context, cfg *config.Config, paths []string) (output.Specs, error) {
	sources, err := scanSources(cfg, paths)
	if err != nil {
		return nil, err
	}

	specs := output.Specs{}
	if _, err := extract(ctx, cfg, sources, specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// applyIgnorePatterns filters out changes whose "group/name" matches one
// of the glob patterns.
func applyIgnorePatterns(result *output.DiffResult, patterns []string) *output.DiffResult {
	if len(patterns) == 0 {
		return result
	}

	filtered := &output.DiffResult{
		Changes: make([]output.FunctionChange, 0, len(result.Changes)),
	}

	for _, change := range result.Changes {
		if matchesAnyPattern(change.Group+"/"+change.Name, patterns) {
			continue
		}
		filtered.Changes = append(filtered.Changes, change)
		if change.Breaking {
			filtered.HasBreakingChanges = true
		}
	}

	filtered.Summary = generateFilteredSummary(filtered)

	return filtered
}

// matchesAnyPattern checks if a string matches any of the given patterns.
func matchesAnyPattern(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, s); err == nil && matched {
			return true
		}
	}
	return false
}

// generateFilteredSummary summarizes the changes left after ignore
// patterns were applied.
func generateFilteredSummary(result *output.DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected (after applying filters)"
	}
	return output.Summarize(result)
}

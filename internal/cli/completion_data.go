// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avashell/cmdspec/internal/output"
)

var completionDataOut string

var completionDataCmd = &cobra.Command{
	Use:   "completion-data [dir]",
	Short: "Generate bash completion data from a spec directory",
	Long: `Generate the data a bash completion script needs to complete groups and
commands:

  ALL_CONTEXT="avm platform"

  declare -A COMMAND_MAP
  COMMAND_MAP[avm]="getBalance send"

Example:
  cmdspec completion-data                          # Print for the output directory
  cmdspec completion-data --out bin/complete_data.sh`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompletionData,
}

func init() {
	completionDataCmd.Flags().StringVar(&completionDataOut, "out", "", "write to a file instead of stdout")
}

func runCompletionData(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := cfg.Output
	if len(args) == 1 {
		dir = args[0]
	}

	specs, err := readSpecDir(dir)
	if err != nil {
		return err
	}

	if completionDataOut == "" {
		fmt.Fprint(stdout, output.CompletionData(specs))
		return nil
	}

	if err := output.WriteCompletionData(specs, completionDataOut); err != nil {
		return err
	}
	printInfo("Wrote completion data for %d group(s) to %s", len(specs), completionDataOut)
	return nil
}

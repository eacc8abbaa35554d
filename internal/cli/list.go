// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/avashell/cmdspec/internal/output"
	"github.com/avashell/cmdspec/internal/util"
)

var (
	listGroups []string
	listHidden []string
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List the commands in a spec directory with their usage",
	Long: `List every command of a spec directory, grouped, with a usage line.

Required parameters are shown as <name>, optional ones as (name).
Parameters filled in from the keystore (username and password by default)
are left out and never count as required.

Example:
  cmdspec list                          # List the configured output directory
  cmdspec list --group platform         # List one group
  cmdspec list --hidden username        # Only hide the username parameter`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringSliceVar(&listGroups, "group", nil, "groups to list (default: all)")
	listCmd.Flags().StringSliceVar(&listHidden, "hidden", nil, "parameters left out of usage lines")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := cfg.Output
	if len(args) == 1 {
		dir = args[0]
	}
	hidden := cfg.Usage.HiddenParams
	if len(listHidden) > 0 {
		hidden = listHidden
	}

	specs, err := readSpecDir(dir)
	if err != nil {
		return err
	}

	for _, group := range specs.Groups() {
		if len(listGroups) > 0 && !slices.Contains(listGroups, group) {
			continue
		}
		fmt.Fprintln(stdout, group)
		for _, spec := range specs[group] {
			fmt.Fprintf(stdout, "  %s\n", util.JoinNonEmpty([]string{spec.Usage(hidden), spec.Desc}, "  # "))
			printVerbose("      %d required, output %s", spec.RequiredParamCount(hidden), spec.Output)
		}
	}
	return nil
}

// countSpecs returns the number of specs in a directory, 0 when unreadable.
func countSpecs(dir string) int {
	specs, err := output.ReadDir(dir)
	if err != nil {
		return 0
	}
	return specs.Count()
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CompletionData renders a bash snippet listing every group and the
// function names in it:
//
//	ALL_CONTEXT="avm platform"
//
//	declare -A COMMAND_MAP
//	COMMAND_MAP[avm]="getBalance send"
func CompletionData(specs Specs) string {
	groups := specs.Groups()

	var out []string
	out = append(out, fmt.Sprintf("ALL_CONTEXT=%q", strings.Join(groups, " ")))
	out = append(out, "")
	out = append(out, "declare -A COMMAND_MAP")

	for _, g := range groups {
		names := make([]string, 0, len(specs[g]))
		for _, fn := range specs[g] {
			names = append(names, fn.Name)
		}
		out = append(out, fmt.Sprintf("COMMAND_MAP[%s]=%q", g, strings.Join(names, " ")))
	}

	return strings.Join(out, "\n") + "\n"
}

// WriteCompletionData writes CompletionData to path.
func WriteCompletionData(specs Specs, path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(CompletionData(specs)), 0o644); err != nil {
		return fmt.Errorf("failed to write completion data: %w", err)
	}
	return nil
}

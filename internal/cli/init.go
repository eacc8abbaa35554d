// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/avashell/cmdspec/internal/config"
	"github.com/avashell/cmdspec/internal/scanner"
)

var (
	initForce   bool
	initExtract string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new cmdspec configuration file",
	Long: `Initialize a new cmdspec configuration file in the current directory.

This command creates a cmdspec.yaml file with sensible defaults
that you can customize for your project.

Features:
  - Detects common declaration directories (src/apis, apis, api, src)
  - Sets up appropriate exclude patterns
  - Honors the global --output and --format flags

Example:
  cmdspec init                         # Create config with detected paths
  cmdspec init --extract ast           # Use the TypeScript syntax tree
  cmdspec init -o bindings/specs       # Write specs somewhere else
  cmdspec init --force                 # Overwrite existing config`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().StringVar(&initExtract, "extract", "", "block extract mode: split, ast")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := "cmdspec.yaml"

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	// Determine project root
	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	// Create config with sensible defaults
	cfg := config.Default()
	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}
	if initExtract != "" {
		cfg.Source.Extract = initExtract
	}

	// Detect entry points based on project structure
	entryPoints := detectEntryPoints(projectRoot)
	cfg.Source.Paths = entryPoints
	printVerbose("Detected entry points: %s", strings.Join(entryPoints, ", "))

	found := 0
	for _, p := range entryPoints {
		n, err := newScanner(cfg, filepath.Join(projectRoot, p)).FileCount()
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", p, err)
		}
		found += n
	}
	printInfo("Found %d declaration file(s)", found)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	content, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Output: %s", cfg.Output)
	printVerbose("Paths: %s", strings.Join(cfg.Source.Paths, ", "))

	return nil
}

// detectEntryPoints returns the common declaration directories present in
// the project that contain at least one supported file, or "." when none do.
func detectEntryPoints(projectRoot string) []string {
	var paths []string

	candidates := []string{
		"./src/apis",
		"./apis",
		"./api",
		"./src",
	}

	for _, p := range candidates {
		fullPath := filepath.Join(projectRoot, p)
		if stat, err := os.Stat(fullPath); err != nil || !stat.IsDir() {
			continue
		}
		if hasSupportedFile(fullPath) {
			paths = append(paths, p)
		}
	}

	// If no common directories found, use current directory
	if len(paths) == 0 {
		return []string{"."}
	}

	// a directory scanned through its parent would be counted twice
	return slices.DeleteFunc(slices.Clone(paths), func(p string) bool {
		return slices.ContainsFunc(paths, func(parent string) bool {
			return isWithin(p, parent)
		})
	})
}

// isWithin reports whether dir lies strictly inside parent.
func isWithin(dir, parent string) bool {
	rel, err := filepath.Rel(parent, dir)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// hasSupportedFile reports whether dir directly contains a declaration file.
func hasSupportedFile(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && scanner.IsSupportedFile(e.Name()) {
			return true
		}
	}
	return false
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	header := `# cmdspec configuration file
# Specs are written to <output>/<group>/<name>.json

`
	return header + string(data), nil
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/avashell/cmdspec/internal/config"
	"github.com/avashell/cmdspec/internal/pipeline"
	"github.com/avashell/cmdspec/internal/scanner"
)

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}
	return cfg, nil
}

// sourcePaths returns args, or the configured paths when args is empty.
func sourcePaths(cfg *config.Config, args []string) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.Source.Paths
}

// newScanner returns a scanner for one base path.
func newScanner(cfg *config.Config, basePath string) *scanner.Scanner {
	return scanner.New(scanner.Config{
		BasePath:        basePath,
		IncludePatterns: cfg.Source.Include,
		ExcludePatterns: cfg.Source.Exclude,
		Groups:          cfg.GroupOverrides(),
	})
}

// scanSources discovers the declaration files under paths.
func scanSources(cfg *config.Config, paths []string) ([]pipeline.Source, error) {
	var sources []pipeline.Source
	seen := make(map[string]bool)

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		files, err := newScanner(cfg, absPath).Scan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan path %s: %w", path, err)
		}
		for _, f := range files {
			if seen[f.Path] {
				continue
			}
			seen[f.Path] = true
			sources = append(sources, sourceFor(cfg, f))
		}
	}

	printVerbose("Scanned %d source files", len(sources))
	return sources, nil
}

// sourceFor turns a scanned file into a pipeline source. Syntax-tree
// extraction only applies to TypeScript files.
func sourceFor(cfg *config.Config, f scanner.SourceFile) pipeline.Source {
	extract := pipeline.ExtractSplit
	if cfg.Source.Extract == pipeline.ExtractAST && f.Language == "typescript" {
		extract = pipeline.ExtractAST
	}
	return pipeline.Source{
		Name:    f.RelPath,
		Group:   f.Group,
		Text:    f,
		Extract: extract,
	}
}

// extract runs every source through the pipeline into sink.
func extract(ctx context.Context, cfg *config.Config, sources []pipeline.Source, sink pipeline.Sink) (*pipeline.Report, error) {
	p := pipeline.New(pipeline.Options{
		Workers: cfg.Parser.Workers,
		Logger:  slog.Default(),
	})

	report, err := p.RunAll(ctx, sources, sink)
	if err != nil {
		return report, err
	}

	printVerbose("%s", report.Summary())
	for _, f := range report.Failures {
		printVerbose("  skipped %v", f)
	}
	return report, nil
}

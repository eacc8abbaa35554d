// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/avashell/cmdspec/internal/scanner"
)

var (
	watchDebounce int
	watchClean    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch for file changes and regenerate specs",
	Long: `Watch for file changes and automatically regenerate the command specs.

This command monitors your declaration files for changes and triggers a
regeneration when files are modified. Bursts of changes, such as a
formatter rewriting many files, are coalesced into one regeneration.

Example:
  cmdspec watch                          # Watch configured paths
  cmdspec watch ./src/apis               # Watch specific paths
  cmdspec watch --debounce 1000          # Wait 1s before regenerating
  cmdspec watch --clean                  # Remove stale specs on every run`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default: from config)")
	watchCmd.Flags().BoolVar(&watchClean, "clean", false, "remove the output directory before every regeneration")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}

	paths := sourcePaths(cfg, args)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	printVerbose("Watch configuration:")
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	outputDir, _ := filepath.Abs(cfg.Output)
	tree := &watchTree{
		watcher:   watcher,
		outputDir: outputDir,
		scanners:  make(map[string]*scanner.Scanner),
	}
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		tree.scanners[absPath] = newScanner(cfg, absPath)
		if err := tree.addDir(absPath); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	regenerate := func() error {
		start := time.Now()
		report, err := generateSpecs(ctx, cfg, paths, watchClean)
		if err != nil {
			return err
		}
		printInfo("%s in %s (%d specs in %s)",
			report.Summary(), time.Since(start).Round(time.Millisecond), countSpecs(cfg.Output), cfg.Output)
		return nil
	}

	if err := regenerate(); err != nil {
		printError("%v", err)
	}

	printInfo("Watching for changes in: %s", strings.Join(paths, ", "))
	printInfo("Press Ctrl+C to stop")

	return watchLoop(ctx, watcher.Events, watcher.Errors, cfg.Watch.DebounceDuration(), tree.handle, regenerate)
}

// watchTree tracks the watched directories of every scanned path.
type watchTree struct {
	watcher   *fsnotify.Watcher
	outputDir string

	// scanners are keyed by absolute base path
	scanners map[string]*scanner.Scanner
}

// addDir watches root and every directory below it that is not excluded.
func (t *watchTree) addDir(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return t.watcher.Add(root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if t.excluded(path) {
			return filepath.SkipDir
		}
		if err := t.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// excluded reports whether dir is the output directory or excluded by the
// scanner of the base path containing it.
func (t *watchTree) excluded(dir string) bool {
	if dir == t.outputDir {
		return true
	}
	for base, s := range t.scanners {
		rel, err := filepath.Rel(base, dir)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		if s.ShouldExcludeDir(rel) {
			return true
		}
	}
	return false
}

// handle reports whether an event should trigger a regeneration. New
// directories are watched as they appear.
func (t *watchTree) handle(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !t.excluded(event.Name) {
				if err := t.addDir(event.Name); err != nil {
					slog.Warn("failed to watch new directory", "path", event.Name, "error", err)
				}
			}
			return false
		}
	}
	if strings.HasPrefix(event.Name, t.outputDir+string(filepath.Separator)) {
		return false
	}
	return isRelevantEvent(event)
}

// isRelevantEvent reports whether an event changes the content of a
// declaration file.
func isRelevantEvent(event fsnotify.Event) bool {
	if !scanner.IsSupportedFile(event.Name) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// watchLoop calls regenerate once per burst of relevant events, after no
// event arrived for debounce. It returns when ctx is done or a channel is
// closed.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	debounce time.Duration,
	relevant func(fsnotify.Event) bool,
	regenerate func() error,
) error {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			slog.Debug("change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)

		case <-timer.C:
			if err := regenerate(); err != nil {
				printError("%v", err)
			}
		}
	}
}

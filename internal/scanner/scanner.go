// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Config holds scanner configuration.
type Config struct {
	// BasePath is the directory patterns and group overrides are relative to
	// (defaults to the current directory)
	BasePath string

	// IncludePatterns are glob patterns for files to include (e.g., "**/*.ts")
	IncludePatterns []string

	// ExcludePatterns are glob patterns for files and directories to skip
	// (e.g., "node_modules/**")
	ExcludePatterns []string

	// Extensions restricts files by extension (e.g., []string{".txt"}).
	// If empty, every supported extension is accepted.
	Extensions []string

	// Groups overrides the derived group of a file, keyed by its
	// slash-separated path relative to BasePath
	Groups map[string]string
}

// Scanner discovers declaration files in a project.
type Scanner struct {
	config Config
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	if config.BasePath == "" {
		config.BasePath = "."
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = []string{"**/*.ts", "**/*.txt"}
	}
	return &Scanner{config: config}
}

// Scan discovers all source files under the base path.
func (s *Scanner) Scan() ([]SourceFile, error) {
	return s.ScanPath(s.config.BasePath)
}

// ScanPath scans a file or directory. Unreadable entries are skipped.
func (s *Scanner) ScanPath(path string) ([]SourceFile, error) {
	root, err := s.root(path)
	if err != nil {
		return nil, err
	}

	var files []SourceFile
	err = s.walk(root, func(filePath string, info fs.FileInfo) error {
		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil
		}
		files = append(files, s.newSourceFile(filePath, content, info))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

// ScanPaths scans several paths, keeping the first occurrence of each file.
func (s *Scanner) ScanPaths(paths []string) ([]SourceFile, error) {
	var all []SourceFile
	seen := make(map[string]bool)

	for _, path := range paths {
		files, err := s.ScanPath(path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if seen[f.Path] {
				continue
			}
			seen[f.Path] = true
			all = append(all, f)
		}
	}
	return all, nil
}

// FileCount counts matching files under the base path without reading them.
func (s *Scanner) FileCount() (int, error) {
	root, err := s.root(s.config.BasePath)
	if err != nil {
		return 0, err
	}

	count := 0
	err = s.walk(root, func(string, fs.FileInfo) error {
		count++
		return nil
	})
	return count, err
}

// ShouldExcludeDir reports whether a directory, relative to the base path,
// is excluded. "vendor" is excluded by "vendor/**" as well as by any
// pattern that would match a file directly inside it.
func (s *Scanner) ShouldExcludeDir(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	if relPath == "" || relPath == "." {
		return false
	}

	for _, pattern := range s.config.ExcludePatterns {
		dir := strings.TrimSuffix(strings.TrimSuffix(pattern, "/**"), "/*")
		if relPath == dir {
			return true
		}
		if ok, _ := doublestar.Match(pattern, relPath+"/x.ts"); ok {
			return true
		}
	}
	return false
}

// root resolves path and checks that it exists.
func (s *Scanner) root(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("path does not exist: %s", abs)
		}
		return "", fmt.Errorf("failed to stat path: %w", err)
	}
	return abs, nil
}

// walk calls fn for every matching file under root, which may itself be a
// file. Excluded directories are pruned.
func (s *Scanner) walk(root string, fn func(filePath string, info fs.FileInfo) error) error {
	return filepath.WalkDir(root, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if filePath != root && s.ShouldExcludeDir(s.relPath(filePath)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.matches(filePath) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		return fn(filePath, info)
	})
}

// matches applies the extension filter, then exclude and include globs to
// the base-relative path.
func (s *Scanner) matches(filePath string) bool {
	if len(s.config.Extensions) > 0 {
		ext := filepath.Ext(filePath)
		if !slices.ContainsFunc(s.config.Extensions, func(e string) bool { return strings.EqualFold(e, ext) }) {
			return false
		}
	} else if !IsSupportedFile(filePath) {
		return false
	}

	rel := s.relPath(filePath)
	if matchAny(rel, s.config.ExcludePatterns) {
		return false
	}
	return matchAny(rel, s.config.IncludePatterns)
}

// newSourceFile builds a SourceFile, resolving its group from the
// configured overrides or the file name.
func (s *Scanner) newSourceFile(filePath string, content []byte, info fs.FileInfo) SourceFile {
	relPath := s.relPath(filePath)
	group := s.config.Groups[relPath]
	if group == "" {
		group = GroupName(filePath)
	}
	return SourceFile{
		Path:     filePath,
		RelPath:  relPath,
		Group:    group,
		Language: DetectLanguage(filePath),
		Content:  content,
		ModTime:  info.ModTime(),
	}
}

// relPath returns filePath relative to the base path, slash-separated.
func (s *Scanner) relPath(filePath string) string {
	basePath, _ := filepath.Abs(s.config.BasePath)
	relPath, err := filepath.Rel(basePath, filePath)
	if err != nil || relPath == "." {
		// the base path is the file itself
		relPath = filepath.Base(filePath)
	}
	return filepath.ToSlash(relPath)
}

// matchAny reports whether path matches one of patterns. Invalid patterns
// never match.
func matchAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

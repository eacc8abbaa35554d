// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner provides discovery of annotated API declaration files.
package scanner

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SourceFile represents a discovered source file.
type SourceFile struct {
	// Path is the absolute path to the file
	Path string

	// RelPath is the slash-separated path relative to the scan base
	RelPath string

	// Group is the endpoint group the file's functions are emitted under
	Group string

	// Language is the detected language ("typescript", "javascript", "text")
	Language string

	// Content is the file content
	Content []byte

	// ModTime is the last modification time
	ModTime time.Time
}

// Text returns the file content as a string.
func (f SourceFile) Text() (string, error) {
	return string(f.Content), nil
}

// languageExtensions maps file extensions to language identifiers.
var languageExtensions = map[string]string{
	".ts":  "typescript",
	".mts": "typescript",
	".cts": "typescript",
	".js":  "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".txt": "text",
}

// DetectLanguage detects the language from a file path.
func DetectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := languageExtensions[ext]; ok {
		return lang
	}
	return ""
}

// SupportedExtensions returns a list of supported file extensions.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(languageExtensions))
	for ext := range languageExtensions {
		exts = append(exts, ext)
	}
	return exts
}

// IsSupportedFile checks if a file path has a supported extension.
func IsSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := languageExtensions[ext]
	return ok
}

var groupCaser = cases.Lower(language.Und)

// GroupName derives an endpoint group from a file name: the base name
// without extensions, case-folded, with runs of other characters collapsed
// to '-'. For example "PlatformVM.d.ts" becomes "platformvm".
func GroupName(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	base = groupCaser.String(base)

	var sb strings.Builder
	dash := false
	for _, r := range base {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if sb.Len() > 0 && !dash {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

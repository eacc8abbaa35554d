// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package source provides the text the spec extractor reads.
package source

import (
	"fmt"
	"os"
)

// String is text held in memory, such as an embedded sample.
type String string

// Text returns the string itself.
func (s String) Text() (string, error) {
	return string(s), nil
}

// File reads text from a path on every call.
type File struct {
	Path string
}

// Text reads the file.
func (f File) Text() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", f.Path, err)
	}
	return string(data), nil
}

// Bytes is already-loaded file content, such as a scanned source file.
type Bytes []byte

// Text returns the content as a string.
func (b Bytes) Text() (string, error) {
	return string(b), nil
}

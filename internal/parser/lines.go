// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"regexp"
	"strings"
)

// LineKind tags a classified line.
type LineKind int

const (
	// Comment is a documentation comment line.
	Comment LineKind = iota
	// Code is a declaration line.
	Code
)

// String returns a string representation of the LineKind.
func (k LineKind) String() string {
	switch k {
	case Comment:
		return "comment"
	case Code:
		return "code"
	default:
		return "unknown"
	}
}

// Line is a non-empty line with its comment marker stripped.
type Line struct {
	Kind LineKind
	Text string
}

var (
	commentPrefix = regexp.MustCompile(`^\s*/?\*+`)
	commentMarker = regexp.MustCompile(`^\s*/?\*+\s*/?`)
)

// ClassifyLines tags every line of block as comment or code. A comment line
// begins, after optional whitespace, with an optional '/' and one or more
// '*'. Lines that are empty once stripped carry nothing and are dropped.
func ClassifyLines(block string) []Line {
	var lines []Line
	for _, raw := range strings.Split(block, "\n") {
		kind := Code
		text := raw
		if commentPrefix.MatchString(raw) {
			kind = Comment
			text = commentMarker.ReplaceAllString(raw, "")
			// single-line form: /** text */
			text = strings.TrimSuffix(strings.TrimSpace(text), "*/")
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		lines = append(lines, Line{Kind: kind, Text: text})
	}
	return lines
}

// SplitLines partitions classified lines into comment and code text,
// preserving order within each.
func SplitLines(lines []Line) (comments, code []string) {
	for _, l := range lines {
		if l.Kind == Comment {
			comments = append(comments, l.Text)
		} else {
			code = append(code, l.Text)
		}
	}
	return comments, code
}

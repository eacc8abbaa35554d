// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package util provides small string helpers shared by the parser and CLI.
package util

import (
	"strings"
	"unicode"
)

// UnwrapGeneric removes one layer of generic syntax from a type expression.
// For example: "Promise<User>" returns "User" and "Promise<Array<User>>"
// returns "Array<User>". It reports false when t is not a single
// "Name<Inner>" expression.
func UnwrapGeneric(t string) (string, bool) {
	t = strings.TrimSpace(t)
	start := strings.Index(t, "<")
	if start <= 0 || !strings.HasSuffix(t, ">") {
		return t, false
	}
	if !isTypeName(t[:start]) {
		return t, false
	}

	// The '<' after the name must close at the final '>'.
	depth := 0
	for i := start; i < len(t); i++ {
		switch t[i] {
		case '<':
			depth++
		case '>':
			if i > 0 && t[i-1] == '=' {
				continue
			}
			depth--
			if depth == 0 && i != len(t)-1 {
				return t, false
			}
		}
	}
	if depth != 0 {
		return t, false
	}

	inner := strings.TrimSpace(t[start+1 : len(t)-1])
	if inner == "" {
		return t, false
	}
	return inner, true
}

// isTypeName reports whether s looks like a (possibly qualified) type name.
func isTypeName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && (r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

// JoinNonEmpty joins the non-blank elements of parts with sep.
func JoinNonEmpty(parts []string, sep string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

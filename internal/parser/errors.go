// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"errors"
	"fmt"
)

// Block-scoped parse failures. Match them with errors.Is.
var (
	// ErrMalformedDeclaration is returned when the declaration lines do not
	// have the shape "name: (params) => Return".
	ErrMalformedDeclaration = errors.New("malformed declaration")

	// ErrParamCountMismatch is returned when the number of @param tags
	// differs from the number of declared parameters.
	ErrParamCountMismatch = errors.New("param count mismatch")

	// ErrUnsupportedType is returned for a union type without a string
	// alternative.
	ErrUnsupportedType = errors.New("unsupported type")
)

// ParseError describes why a single block could not be parsed.
type ParseError struct {
	// Kind is one of the Err* sentinels above
	Kind error

	// Detail describes the offending input
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func malformed(format string, args ...any) error {
	return &ParseError{Kind: ErrMalformedDeclaration, Detail: fmt.Sprintf(format, args...)}
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides the records produced by the spec extractor.
package types

import (
	"slices"
	"strings"
)

// FunctionSpec is the normalized record for one documented function.
//
// Field order is the serialization order: name, desc, params, output.
type FunctionSpec struct {
	// Name is the declared function name
	Name string `json:"name" yaml:"name"`

	// Desc is the free-text description preceding the first doc tag
	Desc string `json:"desc" yaml:"desc"`

	// Params are the merged parameters in declaration order
	Params []ParamSpec `json:"params" yaml:"params"`

	// Output is the return type with one wrapper layer removed
	Output string `json:"output" yaml:"output"`
}

// ParamSpec is one merged parameter: name and description come from the
// documentation, type and optionality from the declaration.
type ParamSpec struct {
	// Name is the documented parameter name
	Name string `json:"name" yaml:"name"`

	// Desc is the documented parameter description
	Desc string `json:"desc" yaml:"desc"`

	// Type is the normalized declared type
	Type string `json:"type" yaml:"type"`

	// Optional is set when the declared name carries a trailing '?'
	Optional bool `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// DefaultHiddenParams are parameters filled in from the active keystore
// user rather than typed on the command line.
var DefaultHiddenParams = []string{"username", "password"}

// IsHidden reports whether the parameter is one of hidden.
func (p ParamSpec) IsHidden(hidden []string) bool {
	return slices.Contains(hidden, p.Name)
}

// VisibleParams returns the parameters that are not hidden.
func (f FunctionSpec) VisibleParams(hidden []string) []ParamSpec {
	out := make([]ParamSpec, 0, len(f.Params))
	for _, p := range f.Params {
		if p.IsHidden(hidden) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// RequiredParamCount counts parameters a caller must supply.
// Hidden parameters never count as required.
func (f FunctionSpec) RequiredParamCount(hidden []string) int {
	n := 0
	for _, p := range f.Params {
		if p.Optional || p.IsHidden(hidden) {
			continue
		}
		n++
	}
	return n
}

// Usage renders a one-line synopsis such as "createAddress <name> (alias)".
func (f FunctionSpec) Usage(hidden []string) string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	for _, p := range f.VisibleParams(hidden) {
		sb.WriteByte(' ')
		if p.Optional {
			sb.WriteString("(" + p.Name + ")")
		} else {
			sb.WriteString("<" + p.Name + ">")
		}
	}
	return sb.String()
}

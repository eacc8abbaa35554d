// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package parser turns documented function-type declarations into
// FunctionSpec records.
//
// A block is one documentation comment followed by a single member of the
// form "name: (params) => Return;". Parameter names and descriptions come
// from the @param tags, parameter types and optionality from the
// declaration; the two are joined by position.
package parser

import (
	"fmt"
	"strings"

	"github.com/avashell/cmdspec/pkg/types"
)

// Parse converts one raw block into a FunctionSpec. It fails with
// ErrMalformedDeclaration, ErrParamCountMismatch or ErrUnsupportedType and
// never returns a partial record.
func Parse(block string) (types.FunctionSpec, error) {
	comments, code := SplitLines(ClassifyLines(block))

	doc, err := InterpretComments(comments)
	if err != nil {
		return types.FunctionSpec{}, err
	}

	decl, err := ParseDeclaration(strings.Join(code, " "))
	if err != nil {
		return types.FunctionSpec{}, err
	}

	params, err := Merge(doc.Params, decl.Params)
	if err != nil {
		return types.FunctionSpec{}, fmt.Errorf("%s: %w", decl.Name, err)
	}

	return types.FunctionSpec{
		Name:   decl.Name,
		Desc:   doc.Description,
		Params: params,
		Output: NormalizeReturn(decl.Return),
	}, nil
}

// Merge joins documented and declared parameters by position. The
// documented name wins over the declared one; type and optionality always
// come from the declaration.
func Merge(docs []ParamDoc, declared []DeclaredParam) ([]types.ParamSpec, error) {
	if len(docs) != len(declared) {
		return nil, &ParseError{
			Kind:   ErrParamCountMismatch,
			Detail: fmt.Sprintf("%d @param tags, %d declared parameters", len(docs), len(declared)),
		}
	}

	params := make([]types.ParamSpec, len(docs))
	for i, d := range docs {
		params[i] = types.ParamSpec{
			Name:     d.Name,
			Desc:     d.Description,
			Type:     declared[i].Type,
			Optional: declared[i].Optional,
		}
	}
	return params, nil
}

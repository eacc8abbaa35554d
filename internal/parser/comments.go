// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import "strings"

// Documentation tags recognized in comment lines.
const (
	TagParam   = "@param"
	TagReturns = "@returns"
)

// ParamDoc is a parameter documented with an @param tag. ParamDocs are
// joined to declared parameters by position, not by name.
type ParamDoc struct {
	Name        string
	Description string
}

// Doc is the information carried by a block's comment lines.
type Doc struct {
	// Description is the space-joined text before the first tag
	Description string

	// Params are the @param tags in order
	Params []ParamDoc
}

// InterpretComments walks comment lines in order. Free text counts toward
// the description only until the first tag; @returns text is recognized and
// dropped because the output type comes from the declaration.
func InterpretComments(lines []string) (Doc, error) {
	var (
		doc       Doc
		descLines []string
		seenTag   bool
	)

	for _, line := range lines {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}

		switch tokens[0] {
		case TagParam:
			seenTag = true
			if len(tokens) < 2 {
				return Doc{}, malformed("%s tag without a parameter name", TagParam)
			}
			doc.Params = append(doc.Params, ParamDoc{
				Name:        tokens[1],
				Description: strings.Join(tokens[2:], " "),
			})
		case TagReturns:
			seenTag = true
		default:
			if !seenTag {
				descLines = append(descLines, line)
			}
		}
	}

	doc.Description = strings.Join(descLines, " ")
	return doc, nil
}

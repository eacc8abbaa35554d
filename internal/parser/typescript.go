// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// TypeScriptParser locates documented function-typed members in TypeScript
// sources using tree-sitter. It is an alternative to Split for files where
// documentation comments also appear outside API declarations.
//
// A TypeScriptParser is not safe for concurrent use.
type TypeScriptParser struct {
	parser *sitter.Parser
}

// MemberBlock is a raw block recovered from the syntax tree.
type MemberBlock struct {
	// Name is the member name as written in the source
	Name string

	// Text is the doc comment followed by the member declaration
	Text string

	// Line is the 1-based source line of the member
	Line int
}

// NewTypeScriptParser creates a new TypeScript parser.
func NewTypeScriptParser() *TypeScriptParser {
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())
	return &TypeScriptParser{
		parser: parser,
	}
}

// ExtractBlocks parses content and returns one block per property signature
// whose type is a function type and which is preceded by a /** comment.
// Blocks are returned in source order.
func (p *TypeScriptParser) ExtractBlocks(ctx context.Context, content []byte) ([]MemberBlock, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TypeScript: %w", err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("failed to get root node")
	}

	var blocks []MemberBlock
	p.walkNodes(rootNode, func(node *sitter.Node) bool {
		if node.Type() != "property_signature" {
			return true
		}
		if !p.isFunctionMember(node) {
			return false
		}

		doc := p.precedingDocComment(node, content)
		if doc == "" {
			return false
		}

		member := node.Content(content)
		if !strings.HasSuffix(member, ";") {
			member += ";"
		}
		blocks = append(blocks, MemberBlock{
			Name: p.memberName(node, content),
			Text: doc + "\n" + member,
			Line: int(node.StartPoint().Row) + 1,
		})
		return false // Don't recurse into property_signature
	})

	return blocks, nil
}

// isFunctionMember reports whether a property_signature is typed with a
// function type, e.g. "name: (a: string) => Promise<void>".
func (p *TypeScriptParser) isFunctionMember(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "type_annotation" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			if child.Child(j).Type() == "function_type" {
				return true
			}
		}
	}
	return false
}

func (p *TypeScriptParser) memberName(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "property_identifier" {
			return child.Content(content)
		}
	}
	return ""
}

// precedingDocComment returns the /** comment directly before node, if any.
func (p *TypeScriptParser) precedingDocComment(node *sitter.Node, content []byte) string {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return ""
	}
	comment := prev.Content(content)
	if !strings.HasPrefix(comment, BlockMarker) {
		return ""
	}
	return comment
}

// walkNodes walks all nodes in the tree, calling fn for each node.
// If fn returns false, it stops recursing into that node's children.
func (p *TypeScriptParser) walkNodes(node *sitter.Node, fn func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !fn(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		p.walkNodes(node.Child(i), fn)
	}
}

// Close cleans up parser resources.
func (p *TypeScriptParser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

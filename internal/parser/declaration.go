// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"slices"
	"strings"
	"unicode"

	"github.com/avashell/cmdspec/internal/util"
)

// StringType is the alternative every supported union must contain.
const StringType = "string"

// Declaration is a tokenized "name: (params) => Return" member.
type Declaration struct {
	// Name is the member name
	Name string

	// Params are the declared parameters in order
	Params []DeclaredParam

	// Return is the return expression without the statement terminator
	Return string
}

// DeclaredParam is one "name: type" fragment of the parameter list.
type DeclaredParam struct {
	Name     string
	Type     string
	Optional bool
}

// declScanner walks a joined declaration one state at a time. Each state
// reports its own malformed-declaration error.
type declScanner struct {
	src string
	pos int
}

// ParseDeclaration tokenizes the space-joined code lines of a block.
func ParseDeclaration(code string) (Declaration, error) {
	s := &declScanner{src: strings.TrimSpace(code)}
	if s.src == "" {
		return Declaration{}, malformed("no declaration found")
	}

	name, err := s.name()
	if err != nil {
		return Declaration{}, err
	}
	if err := s.expect(":"); err != nil {
		return Declaration{}, err
	}
	if err := s.expect("("); err != nil {
		return Declaration{}, err
	}
	rawParams, err := s.paramList()
	if err != nil {
		return Declaration{}, err
	}
	if err := s.expect("=>"); err != nil {
		return Declaration{}, err
	}
	ret, err := s.returnExpr()
	if err != nil {
		return Declaration{}, err
	}

	params, err := parseParams(rawParams)
	if err != nil {
		return Declaration{}, err
	}

	return Declaration{Name: name, Params: params, Return: ret}, nil
}

func (s *declScanner) skipSpace() {
	for s.pos < len(s.src) && unicode.IsSpace(rune(s.src[s.pos])) {
		s.pos++
	}
}

func (s *declScanner) name() (string, error) {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == ':' || c == '(' || c == ')' || unicode.IsSpace(rune(c)) {
			break
		}
		s.pos++
	}
	if s.pos == start {
		return "", malformed("missing member name in %q", s.src)
	}
	return s.src[start:s.pos], nil
}

func (s *declScanner) expect(tok string) error {
	s.skipSpace()
	if !strings.HasPrefix(s.src[s.pos:], tok) {
		return malformed("expected %q at offset %d in %q", tok, s.pos, s.src)
	}
	s.pos += len(tok)
	return nil
}

// paramList consumes up to and including the ')' that closes the list and
// returns the text between the parentheses.
func (s *declScanner) paramList() (string, error) {
	start := s.pos
	depth := 0
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '=' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '>':
			// arrow of a function-typed parameter, not a closing '>'
			s.pos++
		case c == '(' || c == '<' || c == '[' || c == '{':
			depth++
		case c == ')' && depth == 0:
			inner := s.src[start:s.pos]
			s.pos++
			return inner, nil
		case c == ')' || c == '>' || c == ']' || c == '}':
			depth--
		}
		s.pos++
	}
	return "", malformed("unterminated parameter list in %q", s.src)
}

// returnExpr consumes the return type. It ends at the first top-level ';'
// or at a closer of the enclosing body; code after that belongs to the
// surrounding source and is ignored.
func (s *declScanner) returnExpr() (string, error) {
	s.skipSpace()
	rest := s.src[s.pos:]

	end := len(rest)
	depth := 0
scan:
	for i := 0; i < len(rest); i++ {
		switch c := rest[i]; {
		case c == '=' && i+1 < len(rest) && rest[i+1] == '>':
			i++
		case c == '(' || c == '<' || c == '[' || c == '{':
			depth++
		case c == ')' || c == '>' || c == ']' || c == '}':
			if depth == 0 {
				end = i
				break scan
			}
			depth--
		case c == ';' && depth == 0:
			end = i
			break scan
		}
	}

	ret := strings.TrimSpace(rest[:end])
	if ret == "" {
		return "", malformed("missing return type in %q", s.src)
	}
	s.pos = len(s.src)
	return ret, nil
}

// parseParams splits the parameter list on commas. Commas nested inside
// generics or defaults are not supported: such a list yields a fragment
// without ':' and is reported as malformed.
func parseParams(raw string) ([]DeclaredParam, error) {
	if strings.TrimSpace(raw) == "" {
		return []DeclaredParam{}, nil
	}

	fragments := strings.Split(raw, ",")
	// trailing comma of a multi-line list
	if last := len(fragments) - 1; last > 0 && strings.TrimSpace(fragments[last]) == "" {
		fragments = fragments[:last]
	}

	params := make([]DeclaredParam, 0, len(fragments))
	for _, frag := range fragments {
		p, err := parseParam(frag)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func parseParam(frag string) (DeclaredParam, error) {
	name, typ, ok := strings.Cut(frag, ":")
	if !ok {
		return DeclaredParam{}, malformed("parameter %q has no type", strings.TrimSpace(frag))
	}

	var p DeclaredParam
	p.Name = strings.TrimSpace(name)
	if n, found := strings.CutSuffix(p.Name, "?"); found {
		p.Name = strings.TrimSpace(n)
		p.Optional = true
	}
	if p.Name == "" {
		return DeclaredParam{}, malformed("parameter %q has no name", strings.TrimSpace(frag))
	}

	t, err := NormalizeType(typ)
	if err != nil {
		return DeclaredParam{}, err
	}
	if t == "" {
		return DeclaredParam{}, malformed("parameter %q has an empty type", p.Name)
	}
	p.Type = t
	return p, nil
}

// NormalizeType collapses a union to "string" when string is one of its
// alternatives. Any other union is unsupported.
func NormalizeType(t string) (string, error) {
	t = strings.TrimSpace(t)
	if !strings.Contains(t, "|") {
		return t, nil
	}

	var alts []string
	for _, alt := range strings.Split(t, "|") {
		if alt = strings.TrimSpace(alt); alt != "" {
			alts = append(alts, alt)
		}
	}
	if len(alts) <= 1 {
		return strings.Join(alts, ""), nil
	}
	if !slices.Contains(alts, StringType) {
		return "", &ParseError{Kind: ErrUnsupportedType, Detail: strings.Join(alts, " | ")}
	}
	return StringType, nil
}

// NormalizeReturn strips the statement terminator and removes one generic
// wrapper layer, so "Promise<string>;" becomes "string".
func NormalizeReturn(expr string) string {
	expr = strings.TrimSpace(expr)
	expr = strings.TrimSpace(strings.TrimSuffix(expr, ";"))
	if inner, ok := util.UnwrapGeneric(expr); ok {
		return inner
	}
	return expr
}

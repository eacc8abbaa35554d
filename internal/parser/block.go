// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"iter"
	"strings"
)

// BlockMarker opens every documentation comment and delimits blocks.
const BlockMarker = "/**"

// Blocks yields one raw block per documentation comment found in text.
//
// Text before the first marker is boilerplate and never forms a block, and
// fragments that are blank after trimming are skipped, so input without a
// marker yields nothing. The marker is kept at the start of each block so
// its first line still reads as a comment.
func Blocks(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		idx := strings.Index(text, BlockMarker)
		if idx < 0 {
			return
		}
		rest := text[idx+len(BlockMarker):]

		for {
			frag, next, found := strings.Cut(rest, BlockMarker)
			if strings.TrimSpace(frag) != "" {
				if !yield(BlockMarker + frag) {
					return
				}
			}
			if !found {
				return
			}
			rest = next
		}
	}
}

// Split returns all blocks of text in order.
func Split(text string) []string {
	var blocks []string
	for b := range Blocks(text) {
		blocks = append(blocks, b)
	}
	return blocks
}

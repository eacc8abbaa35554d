// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedCount int
	}{
		{"empty input", "", 0},
		{"whitespace only", "  \n\t\n", 0},
		{"no marker", "init: () => Promise<boolean>;", 0},
		{"blank fragments", "/**   /**  \n", 0},
		{
			name: "single block",
			input: `/**
 * Initializes.
 */
init: () => Promise<boolean>;`,
			expectedCount: 1,
		},
		{
			name: "leading boilerplate is dropped",
			input: `export interface InfoAPI {
  /**
   * Node ID.
   */
  getNodeID: () => Promise<string>;
  /**
   * Network ID.
   */
  getNetworkID: () => Promise<number>;
  /** Peers. */
  peers: () => Promise<Array<string>>;
}`,
			expectedCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Split(tt.input)
			assert.Len(t, blocks, tt.expectedCount)
			for _, b := range blocks {
				assert.True(t, strings.HasPrefix(b, BlockMarker))
			}
		})
	}
}

func TestSplit_PreservesOrder(t *testing.T) {
	input := "/** a */ a: () => x;\n/** b */ b: () => x;\n/** c */ c: () => x;"

	blocks := Split(input)
	require.Len(t, blocks, 3)
	assert.Contains(t, blocks[0], "a: ()")
	assert.Contains(t, blocks[1], "b: ()")
	assert.Contains(t, blocks[2], "c: ()")
}

func TestBlocks_StopsEarly(t *testing.T) {
	input := "/** a */ a: () => x;\n/** b */ b: () => x;"

	var seen []string
	for b := range Blocks(input) {
		seen = append(seen, b)
		break
	}
	require.Len(t, seen, 1)
	assert.Contains(t, seen[0], "a: ()")
}

func TestBlocks_Restartable(t *testing.T) {
	seq := Blocks("/** a */ a: () => x;\n/** b */ b: () => x;")

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	assert.Equal(t, 2, count())
	assert.Equal(t, 2, count())
}

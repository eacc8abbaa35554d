// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionData(t *testing.T) {
	specs := Specs{
		"platform": {{Name: "createAddress"}, {Name: "getHeight"}},
		"avm":      {{Name: "send"}},
	}

	expected := `ALL_CONTEXT="avm platform"

declare -A COMMAND_MAP
COMMAND_MAP[avm]="send"
COMMAND_MAP[platform]="createAddress getHeight"
`
	assert.Equal(t, expected, CompletionData(specs))
}

func TestCompletionData_Empty(t *testing.T) {
	assert.Equal(t, "ALL_CONTEXT=\"\"\n\ndeclare -A COMMAND_MAP\n", CompletionData(Specs{}))
}

func TestWriteCompletionData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin", "complete_data.sh")

	require.NoError(t, WriteCompletionData(Specs{"info": {{Name: "getNodeID"}}}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `COMMAND_MAP[info]="getNodeID"`)
}

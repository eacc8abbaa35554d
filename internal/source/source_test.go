// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString_Text(t *testing.T) {
	text, err := String("/** a */ a: () => x;").Text()
	require.NoError(t, err)
	assert.Equal(t, "/** a */ a: () => x;", text)
}

func TestBytes_Text(t *testing.T) {
	text, err := Bytes([]byte("abc")).Text()
	require.NoError(t, err)
	assert.Equal(t, "abc", text)
}

func TestFile_Text(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "info.ts")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

	text, err := File{Path: path}.Text()
	require.NoError(t, err)
	assert.Equal(t, "content", text)
}

func TestFile_TextMissing(t *testing.T) {
	_, err := File{Path: filepath.Join(t.TempDir(), "missing.ts")}.Text()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

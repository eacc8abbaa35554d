// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avashell/cmdspec/internal/config"
)

func TestInitCommand(t *testing.T) {
	dir := setupProject(t, map[string]string{"src/apis/PlatformVM.ts": platformVM})

	out, err := executeCommand(rootCmd, "init", "--extract", "ast", "-o", "bindings")
	require.NoError(t, err)
	assert.Contains(t, out, "Created cmdspec.yaml")

	cfg, err := config.Load(filepath.Join(dir, "cmdspec.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "bindings", cfg.Output)
	assert.Equal(t, "ast", cfg.Source.Extract)
	assert.Equal(t, []string{"./src/apis"}, cfg.Source.Paths)
	assert.Equal(t, []string{"username", "password"}, cfg.Usage.HiddenParams)
	assert.NoError(t, cfg.Validate())
}

func TestInitCommand_ExistingConfig(t *testing.T) {
	setupProject(t, map[string]string{"cmdspec.yaml": "output: keep\n"})

	_, err := executeCommand(rootCmd, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeCommand(rootCmd, "init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile("cmdspec.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "output: specs")
}

func TestInitCommand_InvalidExtract(t *testing.T) {
	setupProject(t, nil)

	_, err := executeCommand(rootCmd, "init", "--extract", "regex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source.extract")
	assert.NoFileExists(t, "cmdspec.yaml")
}

func TestDetectEntryPoints(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected []string
	}{
		{
			name:     "src apis directory",
			files:    []string{"src/apis/AVM.ts"},
			expected: []string{"./src/apis"},
		},
		{
			name:     "several directories",
			files:    []string{"apis/AVM.ts", "api/info.txt", "src/index.ts"},
			expected: []string{"./apis", "./api", "./src"},
		},
		{
			name:     "nested directory is covered by its parent",
			files:    []string{"src/apis/AVM.ts", "src/index.ts"},
			expected: []string{"./src"},
		},
		{
			name:     "directory without declarations",
			files:    []string{"api/README.md"},
			expected: []string{"."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			for _, f := range tt.files {
				path := filepath.Join(tmpDir, f)
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
				require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
			}

			assert.Equal(t, tt.expected, detectEntryPoints(tmpDir))
		})
	}
}

func TestDetectEntryPoints_Empty(t *testing.T) {
	tmpDir := t.TempDir()

	paths := detectEntryPoints(tmpDir)

	assert.Equal(t, []string{"."}, paths)
}

func TestBuildConfigYAML(t *testing.T) {
	cfg := config.Default()
	cfg.Output = "out"
	cfg.Format = "yaml"

	content, err := buildConfigYAML(cfg)
	require.NoError(t, err)

	assert.Contains(t, content, "# cmdspec configuration file")
	assert.Contains(t, content, "output: out")
	assert.Contains(t, content, "format: yaml")
	assert.Contains(t, content, "hiddenParams:")
	assert.Contains(t, content, "debounce: 500")
}

func TestInitCommand_CountsFiles(t *testing.T) {
	setupProject(t, map[string]string{
		"apis/AVM.ts":        platformVM,
		"apis/PlatformVM.ts": platformVM,
		"apis/notes.md":      "ignored",
	})

	out, err := executeCommand(rootCmd, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 declaration file(s)")
}

func TestInitCommand_CountsNestedFilesOnce(t *testing.T) {
	setupProject(t, map[string]string{
		"src/apis/AVM.ts": platformVM,
		"src/index.ts":    platformVM,
	})

	out, err := executeCommand(rootCmd, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 declaration file(s)")

	data, err := os.ReadFile("cmdspec.yaml")
	require.NoError(t, err)
	assert.NotContains(t, string(data), "src/apis")
}

func TestIsWithin(t *testing.T) {
	assert.True(t, isWithin("./src/apis", "./src"))
	assert.False(t, isWithin("./src", "./src"))
	assert.False(t, isWithin("./src", "./src/apis"))
	assert.False(t, isWithin("./apis", "./api"))
	assert.True(t, isWithin("src/apis/v2", "src"))
}

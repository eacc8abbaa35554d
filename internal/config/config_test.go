// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "specs", cfg.Output)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 4, cfg.Indent)
	assert.Equal(t, []string{"."}, cfg.Source.Paths)
	assert.Equal(t, "split", cfg.Source.Extract)
	assert.Contains(t, cfg.Source.Include, "**/*.ts")
	assert.Contains(t, cfg.Source.Exclude, "node_modules/**")
	assert.Empty(t, cfg.Groups)
	assert.Equal(t, 0, cfg.Parser.Workers)
	assert.Equal(t, []string{"username", "password"}, cfg.Usage.HiddenParams)
	assert.Equal(t, 500, cfg.Watch.Debounce)
}

func TestDefault_IndependentSlices(t *testing.T) {
	a := Default()
	a.Usage.HiddenParams[0] = "changed"

	assert.Equal(t, "username", Default().Usage.HiddenParams[0])
}

func TestLoad_NoConfigFile(t *testing.T) {
	// Create a temp directory with no config file
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	// Should return default config
	assert.Equal(t, "specs", cfg.Output)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_YAMLConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
output: out/specs
format: yaml
indent: 2
source:
  paths: ["api"]
  extract: ast
groups:
  - path: api/PlatformVM.ts
    name: platform
parser:
  workers: 8
usage:
  hiddenParams: [username]
watch:
  debounce: 250
`
	err := os.WriteFile(filepath.Join(tmpDir, "cmdspec.yaml"), []byte(configContent), 0644)
	require.NoError(t, err)

	t.Chdir(tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "out/specs", cfg.Output)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, 2, cfg.Indent)
	assert.Equal(t, []string{"api"}, cfg.Source.Paths)
	assert.Equal(t, "ast", cfg.Source.Extract)
	// unset keys keep their defaults
	assert.Contains(t, cfg.Source.Include, "**/*.ts")
	require.Len(t, cfg.Groups, 1)
	assert.Equal(t, GroupConfig{Path: "api/PlatformVM.ts", Name: "platform"}, cfg.Groups[0])
	assert.Equal(t, 8, cfg.Parser.Workers)
	assert.Equal(t, []string{"username"}, cfg.Usage.HiddenParams)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.DebounceDuration())
}

func TestLoad_JSONConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `{
  "output": "json-specs",
  "format": "json",
  "indent": 2
}`
	err := os.WriteFile(filepath.Join(tmpDir, "cmdspec.json"), []byte(configContent), 0644)
	require.NoError(t, err)

	t.Chdir(tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "json-specs", cfg.Output)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 2, cfg.Indent)
}

func TestLoad_DotPrefixedConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, ".cmdspec.yaml"), []byte("output: hidden\n"), 0644)
	require.NoError(t, err)

	t.Chdir(tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "hidden", cfg.Output)
}

func TestLoad_ExplicitConfigPath(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "custom-config.yaml")
	err := os.WriteFile(configPath, []byte("output: custom\nformat: yaml\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "custom", cfg.Output)
	assert.Equal(t, "yaml", cfg.Format)
}

func TestLoad_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "cmdspec.yaml")
	err := os.WriteFile(configPath, []byte("output: [unterminated\n"), 0644)
	require.NoError(t, err)

	_, err = Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_ConfigFilePriority(t *testing.T) {
	tmpDir := t.TempDir()

	// cmdspec.yaml should take priority over .cmdspec.yaml
	err := os.WriteFile(filepath.Join(tmpDir, "cmdspec.yaml"), []byte("output: first\n"), 0644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(tmpDir, ".cmdspec.yaml"), []byte("output: second\n"), 0644)
	require.NoError(t, err)

	t.Chdir(tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "first", cfg.Output)
	assert.Equal(t, "cmdspec.yaml", ConfigFilePath())
}

func TestConfig_GroupOverrides(t *testing.T) {
	cfg := Default()
	cfg.Groups = []GroupConfig{
		{Path: "api/PlatformVM.ts", Name: "platform"},
		{Path: "api/AVM.ts", Name: "avm"},
	}

	assert.Equal(t, map[string]string{
		"api/PlatformVM.ts": "platform",
		"api/AVM.ts":        "avm",
	}, cfg.GroupOverrides())
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_SingleField(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"empty output", func(c *Config) { c.Output = "" }, "output"},
		{"invalid format", func(c *Config) { c.Format = "xml" }, "format"},
		{"negative indent", func(c *Config) { c.Indent = -1 }, "indent"},
		{"invalid extract mode", func(c *Config) { c.Source.Extract = "regex" }, "source.extract"},
		{"incomplete group", func(c *Config) { c.Groups = []GroupConfig{{Path: "a.ts"}} }, "groups[0]"},
		{"negative workers", func(c *Config) { c.Parser.Workers = -2 }, "parser.workers"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -1 }, "watch.debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var valErrs ValidationErrors
			require.ErrorAs(t, err, &valErrs)
			require.Len(t, valErrs, 1)
			assert.Equal(t, tt.field, valErrs[0].Field)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Format = "xml"
	cfg.Source.Extract = "bad"
	cfg.Parser.Workers = -1

	err := cfg.Validate()
	require.Error(t, err)

	var valErrs ValidationErrors
	require.ErrorAs(t, err, &valErrs)
	assert.Len(t, valErrs, 3)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Field:   "format",
		Message: "unsupported format",
	}
	assert.Contains(t, err.Error(), "format")
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "field1", Message: "error1"},
		{Field: "field2", Message: "error2"},
	}
	errStr := errs.Error()
	assert.Contains(t, errStr, "field1")
	assert.Contains(t, errStr, "error1")
	assert.Contains(t, errStr, "field2")
	assert.Contains(t, errStr, "error2")
}

func TestValidationErrors_ErrorEmpty(t *testing.T) {
	errs := ValidationErrors{}
	assert.Equal(t, "no validation errors", errs.Error())
}

func TestValidationErrors_ErrorSingle(t *testing.T) {
	errs := ValidationErrors{
		{Field: "field1", Message: "error1"},
	}
	// Single error should use the ValidationError format
	assert.Contains(t, errs.Error(), "config validation error")
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, "cmdspec.yaml"), []byte("output: from-path\n"), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "from-path", cfg.Output)
}

func TestLoadFromPath_NoConfig(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadFromPath(tmpDir)
	require.NoError(t, err)

	// Should return default config
	assert.Equal(t, "specs", cfg.Output)
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for cmdspec.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the cmdspec configuration.
type Config struct {
	// Output is the root directory specs are written to, one sub-directory per group
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Format is the spec file format (json, yaml)
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// Indent is the JSON indentation in spaces
	Indent int `mapstructure:"indent" yaml:"indent" json:"indent"`

	// Source contains source scanning configuration
	Source SourceConfig `mapstructure:"source" yaml:"source" json:"source"`

	// Groups overrides the group derived from a file name
	Groups []GroupConfig `mapstructure:"groups" yaml:"groups" json:"groups"`

	// Parser contains block parsing configuration
	Parser ParserConfig `mapstructure:"parser" yaml:"parser" json:"parser"`

	// Usage contains usage rendering configuration
	Usage UsageConfig `mapstructure:"usage" yaml:"usage" json:"usage"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// SourceConfig contains source scanning configuration.
type SourceConfig struct {
	// Paths is a list of paths to scan
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Include is a list of glob patterns to include
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude is a list of glob patterns to exclude
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`

	// Extract is how blocks are found in a file (split, ast)
	Extract string `mapstructure:"extract" yaml:"extract" json:"extract"`
}

// GroupConfig maps one source file to a group name.
type GroupConfig struct {
	// Path is the slash-separated file path relative to the scanned directory
	Path string `mapstructure:"path" yaml:"path" json:"path"`

	// Name is the group the file's functions are emitted under
	Name string `mapstructure:"name" yaml:"name" json:"name"`
}

// ParserConfig contains block parsing configuration.
type ParserConfig struct {
	// Workers bounds concurrent block parsing; 0 uses GOMAXPROCS
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
}

// UsageConfig contains usage rendering configuration.
type UsageConfig struct {
	// HiddenParams are supplied by the keystore and left out of usage lines
	HiddenParams []string `mapstructure:"hiddenParams" yaml:"hiddenParams" json:"hiddenParams"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// DebounceDuration returns Debounce as a time.Duration.
func (w WatchConfig) DebounceDuration() time.Duration {
	return time.Duration(w.Debounce) * time.Millisecond
}

// GroupOverrides returns the group overrides keyed by path.
func (c *Config) GroupOverrides() map[string]string {
	overrides := make(map[string]string, len(c.Groups))
	for _, g := range c.Groups {
		overrides[filepath.ToSlash(g.Path)] = g.Name
	}
	return overrides
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"cmdspec.yaml",
	"cmdspec.json",
	".cmdspec.yaml",
	".cmdspec.json",
}

// supportedFormats is the list of supported output formats.
var supportedFormats = []string{
	"json",
	"yaml",
}

// supportedExtractModes is the list of supported block extraction modes.
var supportedExtractModes = []string{
	"split",
	"ast",
}

var (
	defaultInclude = []string{"**/*.ts", "**/*.txt"}
	defaultExclude = []string{
		"node_modules/**",
		".git/**",
		"dist/**",
		"build/**",
		"**/*.test.ts",
		"**/*.spec.ts",
	}
	defaultHiddenParams = []string{"username", "password"}
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Output: "specs",
		Format: "json",
		Indent: 4,
		Source: SourceConfig{
			Paths:   []string{"."},
			Include: slices.Clone(defaultInclude),
			Exclude: slices.Clone(defaultExclude),
			Extract: "split",
		},
		Groups: []GroupConfig{},
		Parser: ParserConfig{
			Workers: 0,
		},
		Usage: UsageConfig{
			HiddenParams: slices.Clone(defaultHiddenParams),
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
	}
}

// Load loads the configuration from a file.
// It searches for config files in the following order:
// 1. cmdspec.yaml
// 2. cmdspec.json
// 3. .cmdspec.yaml
// 4. .cmdspec.json
//
// If configPath is provided, it will use that path instead.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		name := ConfigFilePath()
		if name == "" {
			return Default(), nil
		}
		v.SetConfigFile(name)
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("output", "specs")
	v.SetDefault("format", "json")
	v.SetDefault("indent", 4)
	v.SetDefault("source.paths", []string{"."})
	v.SetDefault("source.include", defaultInclude)
	v.SetDefault("source.exclude", defaultExclude)
	v.SetDefault("source.extract", "split")
	v.SetDefault("parser.workers", 0)
	v.SetDefault("usage.hiddenParams", defaultHiddenParams)
	v.SetDefault("watch.debounce", 500)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Output == "" {
		errs = append(errs, ValidationError{
			Field:   "output",
			Message: "output directory is required",
		})
	}

	if c.Format != "" && !slices.Contains(supportedFormats, c.Format) {
		errs = append(errs, ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported format %q, must be one of: %s", c.Format, strings.Join(supportedFormats, ", ")),
		})
	}

	if c.Indent < 0 {
		errs = append(errs, ValidationError{
			Field:   "indent",
			Message: "indent must be non-negative",
		})
	}

	if c.Source.Extract != "" && !slices.Contains(supportedExtractModes, c.Source.Extract) {
		errs = append(errs, ValidationError{
			Field:   "source.extract",
			Message: fmt.Sprintf("unsupported extract mode %q, must be one of: %s", c.Source.Extract, strings.Join(supportedExtractModes, ", ")),
		})
	}

	for i, g := range c.Groups {
		if g.Path == "" || g.Name == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("groups[%d]", i),
				Message: "path and name are required",
			})
		}
	}

	if c.Parser.Workers < 0 {
		errs = append(errs, ValidationError{
			Field:   "parser.workers",
			Message: "workers must be non-negative",
		})
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ConfigFilePath returns the first config file present in the working
// directory, or "" when there is none.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

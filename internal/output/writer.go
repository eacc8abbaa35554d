// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package output writes function specs to disk and reads them back.
//
// The on-disk layout is one directory per group and one file per function:
//
//	<dir>/<group>/<name>.json
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/avashell/cmdspec/pkg/types"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrInvalidName is returned for a group or function name that cannot be
// used as a path element.
var ErrInvalidName = errors.New("invalid name")

// Specs holds function specs keyed by group.
type Specs map[string][]types.FunctionSpec

// Count returns the number of functions across all groups.
func (s Specs) Count() int {
	n := 0
	for _, fns := range s {
		n += len(fns)
	}
	return n
}

// Emit collects spec in memory under group. A function already present in
// group is replaced.
func (s Specs) Emit(group string, spec types.FunctionSpec) error {
	spec = normalize(spec)
	for i, fn := range s[group] {
		if fn.Name == spec.Name {
			warnDuplicate(group, spec.Name)
			s[group][i] = spec
			return nil
		}
	}
	s[group] = append(s[group], spec)
	return nil
}

// warnDuplicate logs a function emitted twice into one group. The later
// declaration replaces the earlier one.
func warnDuplicate(group, name string) {
	slog.Warn("duplicate function in group, keeping the last declaration", "group", group, "function", name)
}

// Groups returns the group names in sorted order.
func (s Specs) Groups() []string {
	groups := make([]string, 0, len(s))
	for g := range s {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// Writer emits function specs into a directory tree.
type Writer struct {
	// Dir is the root output directory
	Dir string

	// Format is the file format, "json" (default) or "yaml"
	Format string

	// Indent specifies the indentation for JSON output (default: 4 spaces)
	Indent int

	// written tracks group/name pairs emitted by this writer
	written map[string]bool
}

// NewWriter creates a new Writer with default settings.
func NewWriter(dir string) *Writer {
	return &Writer{
		Dir:    dir,
		Format: FormatJSON,
		Indent: 4,
	}
}

// WriteJSON writes a spec as indented JSON with keys in record order.
func (w *Writer) WriteJSON(spec types.FunctionSpec, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", w.Indent))
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(normalize(spec)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// WriteYAML writes a spec as YAML.
func (w *Writer) WriteYAML(spec types.FunctionSpec, out io.Writer) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(normalize(spec)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// Write encodes a spec in the writer's format.
func (w *Writer) Write(spec types.FunctionSpec, out io.Writer) error {
	switch strings.ToLower(w.format()) {
	case FormatJSON:
		return w.WriteJSON(spec, out)
	case FormatYAML, "yml":
		return w.WriteYAML(spec, out)
	default:
		return fmt.Errorf("unsupported format: %s", w.Format)
	}
}

// Emit writes spec to <Dir>/<group>/<spec.Name>.<ext>, creating the group
// directory when needed. Emitting the same group/name twice overwrites the
// file and logs a warning. Emit is not safe for concurrent use.
func (w *Writer) Emit(group string, spec types.FunctionSpec) error {
	path, err := w.Path(group, spec.Name)
	if err != nil {
		return err
	}

	key := group + "/" + spec.Name
	if w.written[key] {
		warnDuplicate(group, spec.Name)
	}
	if w.written == nil {
		w.written = make(map[string]bool)
	}
	w.written[key] = true

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := w.Write(spec, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Path returns the file a function of group is written to.
func (w *Writer) Path(group, name string) (string, error) {
	if err := checkName(group); err != nil {
		return "", fmt.Errorf("group %q: %w", group, err)
	}
	if err := checkName(name); err != nil {
		return "", fmt.Errorf("function %q: %w", name, err)
	}
	return filepath.Join(w.Dir, group, name+"."+w.extension()), nil
}

// ToJSON returns the JSON representation of a spec as a string.
func (w *Writer) ToJSON(spec types.FunctionSpec) (string, error) {
	var buf strings.Builder
	if err := w.WriteJSON(spec, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (w *Writer) format() string {
	if w.Format == "" {
		return FormatJSON
	}
	return w.Format
}

func (w *Writer) extension() string {
	if strings.ToLower(w.format()) == "yml" {
		return FormatYAML
	}
	return strings.ToLower(w.format())
}

// normalize makes an absent parameter list serialize as [].
func normalize(spec types.FunctionSpec) types.FunctionSpec {
	if spec.Params == nil {
		spec.Params = []types.ParamSpec{}
	}
	return spec
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}

// ReadFile reads a function spec from a file.
// The format is inferred from the file extension.
func ReadFile(path string) (types.FunctionSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.FunctionSpec{}, fmt.Errorf("failed to read file: %w", err)
	}

	var spec types.FunctionSpec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return types.FunctionSpec{}, fmt.Errorf("failed to parse YAML %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &spec); err != nil {
			return types.FunctionSpec{}, fmt.Errorf("failed to parse JSON %s: %w", path, err)
		}
	}

	return normalize(spec), nil
}

// ReadDir loads every spec under dir, one sub-directory per group. Files
// other than .json, .yaml and .yml are ignored. Functions are sorted by name
// within each group. A missing dir yields empty Specs.
func ReadDir(dir string) (Specs, error) {
	specs := Specs{}

	groups, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return specs, nil
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	for _, g := range groups {
		if !g.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(dir, g.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read group %s: %w", g.Name(), err)
		}

		var fns []types.FunctionSpec
		for _, e := range entries {
			if e.IsDir() || !isSpecFile(e.Name()) {
				continue
			}
			spec, err := ReadFile(filepath.Join(dir, g.Name(), e.Name()))
			if err != nil {
				return nil, err
			}
			fns = append(fns, spec)
		}
		if len(fns) == 0 {
			continue
		}
		sort.Slice(fns, func(i, j int) bool { return fns[i].Name < fns[j].Name })
		specs[g.Name()] = fns
	}

	return specs, nil
}

func isSpecFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

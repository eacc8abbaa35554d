// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/avashell/cmdspec/pkg/types"
)

// DiffType represents the type of change detected.
type DiffType string

const (
	// DiffTypeAdded indicates a new function was added.
	DiffTypeAdded DiffType = "added"

	// DiffTypeRemoved indicates a function was removed.
	DiffTypeRemoved DiffType = "removed"

	// DiffTypeModified indicates a function was modified.
	DiffTypeModified DiffType = "modified"
)

// FunctionChange represents a change to one function of a group.
type FunctionChange struct {
	Type  DiffType
	Group string
	Name  string

	// Breaking is set for removals and for changes to parameters or
	// output that existing callers depend on
	Breaking bool

	// Detail is a field-level diff for modified functions (-old +new)
	Detail string
}

// DiffResult contains the differences between two sets of specs.
type DiffResult struct {
	// Changes are sorted by group then name.
	Changes []FunctionChange

	// HasBreakingChanges indicates if any breaking changes were detected.
	HasBreakingChanges bool

	// Summary provides a human-readable summary of changes.
	Summary string
}

// IsEmpty returns true if there are no differences.
func (d *DiffResult) IsEmpty() bool {
	return len(d.Changes) == 0
}

// Differ compares two sets of function specs.
type Differ struct{}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	return &Differ{}
}

// emptyParams treats a nil and an empty parameter list as equal.
var emptyParams = cmpopts.EquateEmpty()

// Diff compares old specs a with new specs b.
func (d *Differ) Diff(a, b Specs) *DiffResult {
	result := &DiffResult{Changes: []FunctionChange{}}

	aIndex := index(a)
	bIndex := index(b)

	for key, aSpec := range aIndex {
		bSpec, exists := bIndex[key]
		if !exists {
			result.Changes = append(result.Changes, FunctionChange{
				Type:     DiffTypeRemoved,
				Group:    key.group,
				Name:     key.name,
				Breaking: true,
			})
			continue
		}
		if cmp.Equal(aSpec, bSpec, emptyParams) {
			continue
		}
		result.Changes = append(result.Changes, FunctionChange{
			Type:     DiffTypeModified,
			Group:    key.group,
			Name:     key.name,
			Breaking: d.signatureChanged(aSpec, bSpec),
			Detail:   cmp.Diff(aSpec, bSpec, emptyParams),
		})
	}

	for key := range bIndex {
		if _, exists := aIndex[key]; !exists {
			result.Changes = append(result.Changes, FunctionChange{
				Type:  DiffTypeAdded,
				Group: key.group,
				Name:  key.name,
			})
		}
	}

	sort.Slice(result.Changes, func(i, j int) bool {
		if result.Changes[i].Group != result.Changes[j].Group {
			return result.Changes[i].Group < result.Changes[j].Group
		}
		return result.Changes[i].Name < result.Changes[j].Name
	})

	for _, c := range result.Changes {
		if c.Breaking {
			result.HasBreakingChanges = true
			break
		}
	}
	result.Summary = Summarize(result)

	return result
}

type specKey struct {
	group string
	name  string
}

func index(s Specs) map[specKey]types.FunctionSpec {
	out := make(map[specKey]types.FunctionSpec)
	for group, fns := range s {
		for _, fn := range fns {
			key := specKey{group: group, name: fn.Name}
			if _, dup := out[key]; dup {
				warnDuplicate(group, fn.Name)
			}
			out[key] = fn
		}
	}
	return out
}

// signatureChanged reports changes callers notice: output type, parameter
// count, order, types or optionality. Description edits are not breaking.
func (d *Differ) signatureChanged(a, b types.FunctionSpec) bool {
	if a.Output != b.Output || len(a.Params) != len(b.Params) {
		return true
	}
	for i := range a.Params {
		pa, pb := a.Params[i], b.Params[i]
		if pa.Name != pb.Name || pa.Type != pb.Type || pa.Optional != pb.Optional {
			return true
		}
	}
	return false
}

// Summarize counts the changes of result by type, for example
// "1 function(s) added, 2 function(s) removed [BREAKING CHANGES DETECTED]".
func Summarize(result *DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected"
	}

	added, removed, modified := 0, 0, 0
	for _, c := range result.Changes {
		switch c.Type {
		case DiffTypeAdded:
			added++
		case DiffTypeRemoved:
			removed++
		case DiffTypeModified:
			modified++
		}
	}

	var parts []string
	if added > 0 {
		parts = append(parts, fmt.Sprintf("%d function(s) added", added))
	}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("%d function(s) removed", removed))
	}
	if modified > 0 {
		parts = append(parts, fmt.Sprintf("%d function(s) modified", modified))
	}

	summary := strings.Join(parts, ", ")
	if result.HasBreakingChanges {
		summary += " [BREAKING CHANGES DETECTED]"
	}
	return summary
}

// ChangeSymbol returns the marker used when listing a change.
func ChangeSymbol(t DiffType) string {
	switch t {
	case DiffTypeAdded:
		return "+"
	case DiffTypeRemoved:
		return "-"
	case DiffTypeModified:
		return "~"
	default:
		return " "
	}
}

// FormatDiff renders a DiffResult for terminal output.
func FormatDiff(result *DiffResult) string {
	if result.IsEmpty() {
		return "No differences found."
	}

	var sb strings.Builder

	sb.WriteString("=== Spec Diff ===\n\n")
	sb.WriteString(result.Summary)
	sb.WriteString("\n\n")

	for _, c := range result.Changes {
		fmt.Fprintf(&sb, "%s %s/%s\n", ChangeSymbol(c.Type), c.Group, c.Name)
		if c.Detail != "" {
			for _, line := range strings.Split(strings.TrimRight(c.Detail, "\n"), "\n") {
				sb.WriteString("    " + line + "\n")
			}
		}
	}

	return sb.String()
}

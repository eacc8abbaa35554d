// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avashell/cmdspec/pkg/types"
)

func TestNewDiffer(t *testing.T) {
	differ := NewDiffer()
	assert.NotNil(t, differ)
}

func TestDiffer_Diff_NoDifferences(t *testing.T) {
	specs := Specs{"platform": {createTestSpec()}}

	result := NewDiffer().Diff(specs, specs)

	assert.True(t, result.IsEmpty())
	assert.False(t, result.HasBreakingChanges)
	assert.Equal(t, "No changes detected", result.Summary)
}

func TestDiffer_Diff_NilAndEmptyParamsAreEqual(t *testing.T) {
	a := Specs{"info": {{Name: "getNodeID", Output: "string"}}}
	b := Specs{"info": {{Name: "getNodeID", Params: []types.ParamSpec{}, Output: "string"}}}

	assert.True(t, NewDiffer().Diff(a, b).IsEmpty())
}

func TestDiffer_Diff_Added(t *testing.T) {
	a := Specs{"platform": {createTestSpec()}}
	b := Specs{
		"platform": {createTestSpec()},
		"info":     {{Name: "getNodeID", Output: "string"}},
	}

	result := NewDiffer().Diff(a, b)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, DiffTypeAdded, result.Changes[0].Type)
	assert.Equal(t, "info", result.Changes[0].Group)
	assert.Equal(t, "getNodeID", result.Changes[0].Name)
	assert.False(t, result.HasBreakingChanges)
	assert.Equal(t, "1 function(s) added", result.Summary)
}

func TestDiffer_Diff_RemovedIsBreaking(t *testing.T) {
	a := Specs{"platform": {createTestSpec()}}

	result := NewDiffer().Diff(a, Specs{})

	require.Len(t, result.Changes, 1)
	assert.Equal(t, DiffTypeRemoved, result.Changes[0].Type)
	assert.True(t, result.HasBreakingChanges)
	assert.Contains(t, result.Summary, "BREAKING")
}

func TestDiffer_Diff_Modified(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*types.FunctionSpec)
		breaking bool
	}{
		{
			name:     "description only",
			modify:   func(s *types.FunctionSpec) { s.Desc = "Makes an address." },
			breaking: false,
		},
		{
			name:     "output type",
			modify:   func(s *types.FunctionSpec) { s.Output = "object" },
			breaking: true,
		},
		{
			name:     "parameter becomes required",
			modify:   func(s *types.FunctionSpec) { s.Params[1].Optional = false },
			breaking: true,
		},
		{
			name: "parameter added",
			modify: func(s *types.FunctionSpec) {
				s.Params = append(s.Params, types.ParamSpec{Name: "extra", Type: "string"})
			},
			breaking: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := createTestSpec()
			tt.modify(&changed)

			result := NewDiffer().Diff(
				Specs{"platform": {createTestSpec()}},
				Specs{"platform": {changed}},
			)

			require.Len(t, result.Changes, 1)
			assert.Equal(t, DiffTypeModified, result.Changes[0].Type)
			assert.Equal(t, tt.breaking, result.Changes[0].Breaking)
			assert.Equal(t, tt.breaking, result.HasBreakingChanges)
			assert.NotEmpty(t, result.Changes[0].Detail)
		})
	}
}

func TestDiffer_Diff_SortedChanges(t *testing.T) {
	b := Specs{
		"platform": {{Name: "b"}, {Name: "a"}},
		"avm":      {{Name: "z"}},
	}

	result := NewDiffer().Diff(Specs{}, b)

	require.Len(t, result.Changes, 3)
	assert.Equal(t, "avm", result.Changes[0].Group)
	assert.Equal(t, "a", result.Changes[1].Name)
	assert.Equal(t, "b", result.Changes[2].Name)
}

func TestFormatDiff(t *testing.T) {
	assert.Equal(t, "No differences found.", FormatDiff(&DiffResult{}))

	changed := createTestSpec()
	changed.Output = "object"
	result := NewDiffer().Diff(
		Specs{"platform": {createTestSpec()}, "info": {{Name: "getNodeID"}}},
		Specs{"platform": {changed}},
	)

	out := FormatDiff(result)
	assert.Contains(t, out, "- info/getNodeID")
	assert.Contains(t, out, "~ platform/createAddress")
	assert.Contains(t, out, "object")
}

func TestChangeSymbol(t *testing.T) {
	assert.Equal(t, "+", ChangeSymbol(DiffTypeAdded))
	assert.Equal(t, "-", ChangeSymbol(DiffTypeRemoved))
	assert.Equal(t, "~", ChangeSymbol(DiffTypeModified))
	assert.Equal(t, " ", ChangeSymbol(DiffType("other")))
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		result   *DiffResult
		expected string
	}{
		{"empty", &DiffResult{}, "No changes detected"},
		{
			name: "mixed breaking",
			result: &DiffResult{
				Changes: []FunctionChange{
					{Type: DiffTypeAdded},
					{Type: DiffTypeRemoved, Breaking: true},
					{Type: DiffTypeModified},
				},
				HasBreakingChanges: true,
			},
			expected: "1 function(s) added, 1 function(s) removed, 1 function(s) modified [BREAKING CHANGES DETECTED]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Summarize(tt.result))
		})
	}
}

func TestDiffer_Diff_DuplicateNamesWarn(t *testing.T) {
	logs := captureLogs(t)

	result := NewDiffer().Diff(
		Specs{"info": {{Name: "getNodeID"}, {Name: "getNodeID", Output: "string"}}},
		Specs{"info": {{Name: "getNodeID", Output: "string"}}},
	)

	assert.True(t, result.IsEmpty())
	assert.Contains(t, logs.String(), "duplicate function")
	assert.Contains(t, logs.String(), "function=getNodeID")
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"api.ts", "typescript"},
		{"api.d.ts", "typescript"},
		{"api.mts", "typescript"},
		{"API.TS", "typescript"},
		{"client.js", "javascript"},
		{"platform.txt", "text"},
		{"main.go", ""},
		{"README", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectLanguage(tt.path))
		})
	}
}

func TestSupportedExtensions(t *testing.T) {
	exts := SupportedExtensions()

	assert.Contains(t, exts, ".ts")
	assert.Contains(t, exts, ".txt")
	assert.NotContains(t, exts, ".go")
}

func TestIsSupportedFile(t *testing.T) {
	assert.True(t, IsSupportedFile("src/apis/platformvm/api.ts"))
	assert.True(t, IsSupportedFile("specs.txt"))
	assert.False(t, IsSupportedFile("main.go"))
	assert.False(t, IsSupportedFile("Makefile"))
}

func TestGroupName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"platform.ts", "platform"},
		{"src/apis/PlatformVM.d.ts", "platformvm"},
		{"AVM.txt", "avm"},
		{"key store.ts", "key-store"},
		{"info_api.ts", "info-api"},
		{"Über.ts", "über"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, GroupName(tt.path))
		})
	}
}

package utils

import (
	"strings"
	"testing"
)

func TestBuildReplicationCommand(t *testing.T) {
	tests := []struct {
		name       string
		command    string
		flags      map[string]interface{}
		expected   []string // Expected substrings in the command
		unexpected []string
	}{
		{
			name:    "Sync with org and file",
			command: "sync",
			flags: map[string]interface{}{
				"org":  "octo-org",
				"file": "teams.yml",
			},
			expected: []string{
				"gh advanced-security sync",
				"-o octo-org",
				"-f teams.yml",
			},
			unexpected: []string{"--force-enable", "-d"},
		},
		{
			name:    "Sync with force enable and delay",
			command: "sync",
			flags: map[string]interface{}{
				"org":          "octo-org",
				"file":         "teams.yml",
				"force-enable": true,
				"delay":        5,
			},
			expected: []string{
				"gh advanced-security sync",
				"--force-enable",
				"-d 5",
			},
		},
		{
			name:    "Zero delay and false booleans are omitted",
			command: "sync",
			flags: map[string]interface{}{
				"org":          "octo-org",
				"force-enable": false,
				"delay":        0,
			},
			expected:   []string{"-o octo-org"},
			unexpected: []string{"--force-enable", "-d 0"},
		},
		{
			name:    "Enterprise server and reports",
			command: "sync",
			flags: map[string]interface{}{
				"github-enterprise-server-url": "github.company.com",
				"org":                          "octo-org",
				"file":                         "teams.yml",
				"report":                       "audit.csv",
				"output":                       "changed.json",
			},
			expected: []string{
				"-u github.company.com",
				"-r audit.csv",
				"--output changed.json",
			},
		},
		{
			name:    "Committers command",
			command: "committers",
			flags: map[string]interface{}{
				"org":  "octo-org",
				"file": "teams.yml",
				"json": true,
			},
			expected: []string{
				"gh advanced-security committers",
				"--json",
			},
		},
		{
			name:    "String with spaces gets quoted",
			command: "sync",
			flags: map[string]interface{}{
				"org":  "octo-org",
				"file": "my teams.yml",
			},
			expected: []string{
				"-f \"my teams.yml\"",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildReplicationCommand(tt.command, tt.flags)

			for _, expected := range tt.expected {
				if !strings.Contains(result, expected) {
					t.Errorf("BuildReplicationCommand() result missing expected substring:\n  Expected: %s\n  Got: %s", expected, result)
				}
			}
			for _, unexpected := range tt.unexpected {
				if strings.Contains(result, unexpected) {
					t.Errorf("BuildReplicationCommand() result should not contain %q, got %q", unexpected, result)
				}
			}

			expectedPrefix := "gh advanced-security " + tt.command
			if !strings.HasPrefix(result, expectedPrefix) {
				t.Errorf("BuildReplicationCommand() result should start with %q, got %q", expectedPrefix, result)
			}
		})
	}
}

func TestQuoteIfNeeded(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "No spaces - no quotes", input: "teams.yml", expected: "teams.yml"},
		{name: "With spaces - add quotes", input: "my teams.yml", expected: "\"my teams.yml\""},
		{name: "Empty string - no quotes", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := quoteIfNeeded(tt.input); result != tt.expected {
				t.Errorf("quoteIfNeeded() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestGetShortFlag(t *testing.T) {
	tests := []struct {
		flagName string
		expected string
	}{
		{"org", "o"},
		{"file", "f"},
		{"github-enterprise-server-url", "u"},
		{"delay", "d"},
		{"report", "r"},
		{"force-enable", ""},
		{"unknown-flag", ""},
	}

	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			if result := getShortFlag(tt.flagName); result != tt.expected {
				t.Errorf("getShortFlag(%q) = %q, want %q", tt.flagName, result, tt.expected)
			}
		})
	}
}

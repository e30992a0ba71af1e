package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/pterm/pterm"
)

// CanPrompt reports whether interactive prompts can be shown
func CanPrompt() bool {
	return os.Getenv("GITHUB_ACTIONS") != "true" && term.IsTerminal(os.Stdin)
}

// GetOrgInput prompts for the organization or uses the provided value
func GetOrgInput(orgValue string) (string, error) {
	if strings.TrimSpace(orgValue) != "" {
		return strings.TrimSpace(orgValue), nil
	}
	if !CanPrompt() {
		return "", nil
	}

	org, err := pterm.DefaultInteractiveTextInput.WithDefaultText("").WithMultiLine(false).Show("Enter the organization name (e.g., octo-org)")
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(org) == "" {
		return "", fmt.Errorf("organization is required")
	}

	return strings.TrimSpace(org), nil
}

// GetPolicyFileInput prompts for the team policy file or uses the provided value
func GetPolicyFileInput(fileValue string) (string, error) {
	if strings.TrimSpace(fileValue) != "" {
		return strings.TrimSpace(fileValue), nil
	}
	if !CanPrompt() {
		return "", nil
	}

	path, err := pterm.DefaultInteractiveTextInput.WithDefaultText("").WithMultiLine(false).Show("Enter the path to the team policy file (e.g., teams.yml)")
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("policy file path is required")
	}

	return strings.TrimSpace(path), nil
}

// ShowGitHubHost reports the GitHub Enterprise Server in use
func ShowGitHubHost(serverURL string) {
	if serverURL != "" {
		pterm.Info.Printf("Using GitHub Enterprise Server: %s\n", serverURL)
	}
}

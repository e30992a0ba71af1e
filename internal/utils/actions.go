package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// IsGitHubActions reports whether the process runs inside a GitHub Actions job
func IsGitHubActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// SetActionOutput appends a step output to the file named by GITHUB_OUTPUT.
// It is a no-op outside of GitHub Actions.
func SetActionOutput(name, value string) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open GITHUB_OUTPUT: %w", err)
	}
	defer file.Close()

	if err := writeOutputBlock(file, name, value, "ghadelimiter_"+uuid.NewString()); err != nil {
		return fmt.Errorf("failed to write GITHUB_OUTPUT: %w", err)
	}
	return file.Close()
}

func writeOutputBlock(w io.Writer, name, value, delimiter string) error {
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return fmt.Errorf("output %q contains the delimiter", name)
	}
	_, err := fmt.Fprintf(w, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	return err
}

// ReportActionFailure emits an error annotation when running inside GitHub Actions
func ReportActionFailure(w io.Writer, message string) {
	if !IsGitHubActions() {
		return
	}
	fmt.Fprintf(w, "::error::%s\n", escapeWorkflowData(message))
}

func escapeWorkflowData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

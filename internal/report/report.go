package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

// Changed returns the repositories whose update was attempted and succeeded, in processing order
func Changed(results []types.ComplianceResult) []string {
	changed := make([]string, 0, len(results))
	for _, result := range results {
		if result.Applied && result.Error == nil {
			changed = append(changed, result.Repository)
		}
	}
	return changed
}

// MarshalChanged encodes the changed repositories as a JSON array, never null
func MarshalChanged(changed []string) ([]byte, error) {
	if changed == nil {
		changed = []string{}
	}
	return json.Marshal(changed)
}

// WriteJSON writes the changed repositories as a JSON array followed by a newline
func WriteJSON(w io.Writer, changed []string) error {
	data, err := MarshalChanged(changed)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// WriteJSONFile writes the changed repositories to a file, or to w when path is empty
func WriteJSONFile(path string, w io.Writer, changed []string) error {
	if path == "" {
		return WriteJSON(w, changed)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := WriteJSON(file, changed); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return file.Close()
}

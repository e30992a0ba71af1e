package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

var csvHeader = []string{"repository", "desired_status", "outcome", "error"}

// WriteCSV writes one row per processed repository
func WriteCSV(filePath string, results []types.ComplianceResult) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}

	for _, result := range results {
		errMessage := ""
		if result.Error != nil {
			errMessage = result.Error.Error()
		}
		record := []string{result.Repository, string(result.Desired), result.Outcome(), errMessage}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV file: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return file.Close()
}

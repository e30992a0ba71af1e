package processors

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

// SequentialProcessor handles repository processing one at a time with optional delay
type SequentialProcessor struct {
	repositories []string
	processor    RepositoryProcessor
	delay        int
	progressBar  *pterm.ProgressbarPrinter
	successCount int
	skippedCount int
	errorCount   int
}

// NewSequentialProcessor creates a new sequential processor with optional delay in seconds
func NewSequentialProcessor(repositories []string, processor RepositoryProcessor, delay int) *SequentialProcessor {
	return &SequentialProcessor{
		repositories: repositories,
		processor:    processor,
		delay:        delay,
	}
}

// Process runs the processor over every repository in order.
// A failed repository is logged and counted, it does not stop the run.
func (sp *SequentialProcessor) Process(ctx context.Context) []types.ComplianceResult {
	totalRepos := len(sp.repositories)
	results := make([]types.ComplianceResult, 0, totalRepos)
	if totalRepos == 0 {
		return results
	}

	progressBar, _ := pterm.DefaultProgressbar.WithTotal(totalRepos).WithTitle("Processing repositories").Start()
	sp.progressBar = progressBar

	if sp.delay > 0 {
		pterm.Info.Printf("Processing repositories with %d second delay between each repository\n", sp.delay)
	}

	for i, repo := range sp.repositories {
		if err := ctx.Err(); err != nil {
			pterm.Warning.Printf("Stopping before repository '%s': %v\n", repo, err)
			break
		}

		// Add delay between repositories (not before the first one)
		if i > 0 && sp.delay > 0 {
			spinner, _ := pterm.DefaultSpinner.WithText(fmt.Sprintf("Waiting %d seconds before processing next repository...", sp.delay)).Start()
			if err := sleepContext(ctx, time.Duration(sp.delay)*time.Second); err != nil {
				spinner.Warning("Wait interrupted")
				pterm.Warning.Printf("Stopping before repository '%s': %v\n", repo, err)
				break
			}
			spinner.Success("Ready to process next repository")
		}

		sp.progressBar.UpdateTitle(fmt.Sprintf("Processing %s", repo))

		result := sp.processor.ProcessRepository(ctx, repo)
		results = append(results, result)

		if result.Error != nil {
			sp.errorCount++
			pterm.Warning.Printf("%v\n", result.Error)
		} else if result.Skipped {
			sp.skippedCount++
		} else if result.Applied {
			sp.successCount++
			pterm.Success.Printf("Set advanced security to '%s' on repository '%s'\n", result.Desired, result.Repository)
		}

		sp.progressBar.Increment()
	}

	progressBar.Stop()
	return results
}

// Counts returns the number of applied, skipped and failed repositories
func (sp *SequentialProcessor) Counts() (successCount, skippedCount, errorCount int) {
	return sp.successCount, sp.skippedCount, sp.errorCount
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package ui

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

func colorStatus(status types.Status) string {
	switch status {
	case types.StatusEnabled:
		return pterm.Green(string(status))
	case types.StatusDisabled:
		return pterm.Red(string(status))
	default:
		return pterm.Yellow(string(status))
	}
}

func colorAction(action string) string {
	if action == "update" {
		return pterm.Cyan(action)
	}
	return pterm.Yellow(action)
}

// ShowPlan prints the desired status and planned action for every repository
func ShowPlan(plan []types.ComplianceResult) {
	data := pterm.TableData{{"Repository", "Desired", "Action"}}
	for _, result := range plan {
		action := "update"
		if result.Skipped {
			action = "skip"
		}
		data = append(data, []string{result.Repository, colorStatus(result.Desired), colorAction(action)})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Debug.Printf("Failed to render plan table: %v\n", err)
	}
}

// ShowPlanSummary prints how many repositories will be enabled, disabled or skipped
func ShowPlanSummary(plan []types.ComplianceResult) {
	var enable, disable, skip int
	for _, result := range plan {
		switch {
		case result.Skipped:
			skip++
		case result.Desired == types.StatusEnabled:
			enable++
		default:
			disable++
		}
	}
	pterm.Printf("  %s: %d\n", pterm.Cyan("enable"), enable)
	pterm.Printf("  %s: %d\n", pterm.Cyan("disable"), disable)
	pterm.Printf("  %s: %d\n", pterm.Cyan("skip"), skip)
}

// ShowCommitterReport prints active committer counts per team and per repository
func ShowCommitterReport(report types.CommitterReport) {
	pterm.DefaultSection.Printf("Active committers in '%s': %d", report.Organization, report.TotalCommitters)

	teams := pterm.TableData{{"Team", "Repositories", "Committers"}}
	for _, team := range report.Teams {
		teams = append(teams, []string{team.Team, fmt.Sprintf("%d", len(team.Repositories)), fmt.Sprintf("%d", team.Committers)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(teams).Render(); err != nil {
		pterm.Debug.Printf("Failed to render team table: %v\n", err)
	}
	pterm.Println()

	repos := pterm.TableData{{"Repository", "Committers", "Allowed"}}
	for _, repo := range report.Repositories {
		allowed := pterm.Red("no")
		if repo.Allowed {
			allowed = pterm.Green("yes")
		}
		repos = append(repos, []string{repo.Name, fmt.Sprintf("%d", repo.Committers), allowed})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(repos).Render(); err != nil {
		pterm.Debug.Printf("Failed to render repository table: %v\n", err)
	}
}

// ShowNoRepositoriesWarning displays a warning when the organization has no repositories
func ShowNoRepositoriesWarning(org string) {
	pterm.Warning.Printf("No repositories found in organization '%s'.\n", org)
}

// ShowOperationCancelled displays cancellation message
func ShowOperationCancelled() {
	pterm.Info.Println("Operation cancelled.")
}

// ShowDryRun displays the dry run notice
func ShowDryRun() {
	pterm.Info.Println("Dry run: no repositories were changed.")
}

// ShowProcessingStart displays the start of processing
func ShowProcessingStart(repoCount int) {
	pterm.Info.Printf("Processing %d repositories...\n", repoCount)
}

// ShowProcessingStartWithDelay displays the start of processing with delay info
func ShowProcessingStartWithDelay(repoCount, delay int) {
	pterm.Info.Printf("Processing %d repositories sequentially with %d second delay between repositories...\n", repoCount, delay)
}

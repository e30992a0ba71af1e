package ui

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

// ConfirmSync shows the sync summary and asks for confirmation
func ConfirmSync(org string, plan []types.ComplianceResult, forceEnable bool) (bool, error) {
	pterm.Println()
	pterm.DefaultHeader.WithFullWidth().WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).WithTextStyle(pterm.NewStyle(pterm.FgBlack)).Println("Sync Operation Summary")

	pterm.Printf("Organization: %s\n", pterm.Yellow(org))
	pterm.Printf("Repositories: %d\n", len(plan))
	pterm.Printf("Force Enable: %s\n", pterm.Cyan(fmt.Sprintf("%t", forceEnable)))
	pterm.Println()

	pterm.Info.Println("Planned changes:")
	ShowPlanSummary(plan)
	pterm.Println()

	if !forceEnable {
		pterm.Warning.Println("Repositories covered by the policy are skipped. Use --force-enable to enable them.")
		pterm.Println()
	}

	confirmed, err := pterm.DefaultInteractiveConfirm.WithDefaultText("Proceed with updating advanced security on these repositories?").WithDefaultValue(false).Show()
	if err != nil {
		return false, err
	}

	return confirmed, nil
}

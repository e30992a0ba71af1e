package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/callmegreg/gh-advanced-security-sync/internal/api"
	"github.com/callmegreg/gh-advanced-security-sync/internal/config"
	"github.com/callmegreg/gh-advanced-security-sync/internal/policy"
	"github.com/callmegreg/gh-advanced-security-sync/internal/processors"
	"github.com/callmegreg/gh-advanced-security-sync/internal/report"
	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
	"github.com/callmegreg/gh-advanced-security-sync/internal/ui"
	"github.com/callmegreg/gh-advanced-security-sync/internal/utils"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Enable or disable Advanced Security on every repository according to the team policy",
	Long: `Lists every repository of the organization and sets GitHub Advanced Security to enabled
for repositories named in the team policy file and to disabled for all others.

Repositories named in the policy are skipped unless --force-enable is given.
The names of the repositories that were changed are written to stdout as a JSON array.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().Bool("force-enable", false, "Also send enable requests for repositories named in the policy")
	syncCmd.Flags().IntP("delay", "d", 0, "Delay in seconds between repositories (0-600)")
	syncCmd.Flags().Bool("dry-run", false, "Show the planned changes without updating any repository")
	syncCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	syncCmd.Flags().String("output", "", "Write the changed repositories to this file instead of stdout")
	syncCmd.Flags().StringP("report", "r", "", "Write a per-repository CSV report to this file")
}

func runSync(cmd *cobra.Command, args []string) error {
	pterm.DefaultHeader.WithFullWidth().WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).WithTextStyle(pterm.NewStyle(pterm.FgWhite)).Println("GitHub Advanced Security Sync")
	pterm.Println()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	commonFlags, err := utils.ExtractCommonFlags(cmd)
	if err != nil {
		return err
	}
	utils.MergeConfig(cfg, commonFlags)

	syncFlags, err := utils.ExtractSyncFlags(cmd, cfg)
	if err != nil {
		return err
	}

	if cfg.Org, err = ui.GetOrgInput(cfg.Org); err != nil {
		return err
	}
	if cfg.PolicyFile, err = ui.GetPolicyFileInput(cfg.PolicyFile); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := utils.ValidateDelay(syncFlags.Delay); err != nil {
		return err
	}

	teams, allow, err := policy.LoadAllowSet(cfg.PolicyFile)
	if err != nil {
		return err
	}
	pterm.Info.Printf("Loaded policy '%s': %s\n", cfg.PolicyFile, policy.Describe(teams, allow))

	ui.ShowGitHubHost(commonFlags.ServerURL)

	client, err := api.NewClient(api.ClientOptions{
		Host:            cfg.Host,
		AuthToken:       cfg.Token,
		RateLimitPolicy: api.RetryOncePolicy{},
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client.ValidateMembership(ctx, cfg.Org)

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Fetching repositories of '%s'...", cfg.Org))
	repos, err := client.ListRepositories(ctx, cfg.Org)
	if err != nil {
		spinner.Fail("Failed to fetch repositories")
		return err
	}
	spinner.Success(fmt.Sprintf("Found %d repositories in '%s'", len(repos), cfg.Org))

	if len(repos) == 0 {
		ui.ShowNoRepositoriesWarning(cfg.Org)
		return writeChanged(cmd, syncFlags, nil)
	}

	plan := processors.Plan(repos, allow, syncFlags.ForceEnable)
	if syncFlags.DryRun || commonFlags.Verbose {
		ui.ShowPlan(plan)
	}

	if syncFlags.DryRun {
		ui.ShowPlanSummary(plan)
		ui.ShowDryRun()
		if syncFlags.ReportPath != "" {
			if err := report.WriteCSV(syncFlags.ReportPath, plan); err != nil {
				return err
			}
		}
		return writeChanged(cmd, syncFlags, nil)
	}

	if !syncFlags.Yes && ui.CanPrompt() {
		confirmed, err := ui.ConfirmSync(cfg.Org, plan, syncFlags.ForceEnable)
		if err != nil {
			return err
		}
		if !confirmed {
			ui.ShowOperationCancelled()
			return nil
		}
	}

	processor := &processors.ComplianceProcessor{
		Org:         cfg.Org,
		AllowSet:    allow,
		ForceEnable: syncFlags.ForceEnable,
		Updater:     client,
	}

	if syncFlags.Delay > 0 {
		ui.ShowProcessingStartWithDelay(len(repos), syncFlags.Delay)
	} else {
		ui.ShowProcessingStart(len(repos))
	}
	sequentialProcessor := processors.NewSequentialProcessor(repos, processor, syncFlags.Delay)
	results := sequentialProcessor.Process(ctx)

	if syncFlags.ReportPath != "" {
		if err := report.WriteCSV(syncFlags.ReportPath, results); err != nil {
			pterm.Warning.Printf("Failed to write report: %v\n", err)
		} else {
			pterm.Info.Printf("Report written to %s\n", syncFlags.ReportPath)
		}
	}

	if err := writeChanged(cmd, syncFlags, results); err != nil {
		return err
	}

	successCount, skippedCount, errorCount := sequentialProcessor.Counts()
	utils.PrintCompletionHeader("Advanced Security Sync", successCount, skippedCount, errorCount)

	replicationFlags := map[string]interface{}{
		"github-enterprise-server-url": commonFlags.ServerURL,
		"org":                          cfg.Org,
		"file":                         cfg.PolicyFile,
		"force-enable":                 syncFlags.ForceEnable,
		"delay":                        syncFlags.Delay,
		"report":                       syncFlags.ReportPath,
		"output":                       syncFlags.OutputPath,
	}
	utils.ShowReplicationCommand(utils.BuildReplicationCommand("sync", replicationFlags))

	return ctx.Err()
}

// writeChanged emits the changed repositories to stdout or --output, and as a step output in GitHub Actions
func writeChanged(cmd *cobra.Command, flags *utils.SyncFlags, results []types.ComplianceResult) error {
	changed := report.Changed(results)
	if err := report.WriteJSONFile(flags.OutputPath, cmd.OutOrStdout(), changed); err != nil {
		return err
	}

	data, err := report.MarshalChanged(changed)
	if err != nil {
		return err
	}
	if err := utils.SetActionOutput("changed", string(data)); err != nil {
		pterm.Warning.Printf("Failed to set step output: %v\n", err)
	}
	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/callmegreg/gh-advanced-security-sync/internal/api"
	"github.com/callmegreg/gh-advanced-security-sync/internal/config"
	"github.com/callmegreg/gh-advanced-security-sync/internal/policy"
	"github.com/callmegreg/gh-advanced-security-sync/internal/ui"
	"github.com/callmegreg/gh-advanced-security-sync/internal/utils"
)

var committersCmd = &cobra.Command{
	Use:   "committers",
	Short: "Report active Advanced Security committers per team",
	Long: `Reads the organization's Advanced Security billing data and counts distinct active
committers per repository and per team of the policy file. A team's count is the
number of distinct committers across all of its repositories.`,
	RunE: runCommitters,
}

func init() {
	committersCmd.Flags().Bool("json", false, "Write the report as JSON to stdout")
}

func runCommitters(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	commonFlags, err := utils.ExtractCommonFlags(cmd)
	if err != nil {
		return err
	}
	utils.MergeConfig(cfg, commonFlags)

	asJSON, err := cmd.Flags().GetBool("json")
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

	teams, err := policy.Load(cfg.PolicyFile)
	if err != nil {
		return err
	}

	ui.ShowGitHubHost(commonFlags.ServerURL)

	client, err := api.NewClient(api.ClientOptions{
		Host:            cfg.Host,
		AuthToken:       cfg.Token,
		RateLimitPolicy: api.RetryOncePolicy{},
	})
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Fetching active committers of '%s'...", cfg.Org))
	repos, err := client.ListActiveCommitters(cmd.Context(), cfg.Org)
	if err != nil {
		spinner.Fail("Failed to fetch active committers")
		return err
	}
	spinner.Success(fmt.Sprintf("Found committers for %d repositories", len(repos)))

	committerReport := policy.CommitterReport(cfg.Org, teams, repos)

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(committerReport)
	}

	ui.ShowCommitterReport(committerReport)

	replicationFlags := map[string]interface{}{
		"github-enterprise-server-url": commonFlags.ServerURL,
		"org":                          cfg.Org,
		"file":                         cfg.PolicyFile,
	}
	utils.ShowReplicationCommand(utils.BuildReplicationCommand("committers", replicationFlags))
	return nil
}

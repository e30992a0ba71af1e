package utils

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/callmegreg/gh-advanced-security-sync/internal/config"
)

// CommonFlags holds flags shared by all commands
type CommonFlags struct {
	Org        string
	PolicyFile string
	ServerURL  string
	Verbose    bool
}

// SyncFlags holds flags specific to the sync command
type SyncFlags struct {
	ForceEnable bool
	Delay       int
	DryRun      bool
	Yes         bool
	OutputPath  string
	ReportPath  string
}

// ExtractCommonFlags gets org, policy file and host flags from command
func ExtractCommonFlags(cmd *cobra.Command) (*CommonFlags, error) {
	org, err := cmd.Flags().GetString("org")
	if err != nil {
		return nil, err
	}

	policyFile, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, err
	}

	serverURL, err := cmd.Flags().GetString("github-enterprise-server-url")
	if err != nil {
		return nil, err
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	return &CommonFlags{
		Org:        org,
		PolicyFile: policyFile,
		ServerURL:  serverURL,
		Verbose:    verbose,
	}, nil
}

// ExtractSyncFlags gets the sync command flags, falling back to cfg for force-enable
func ExtractSyncFlags(cmd *cobra.Command, cfg *config.Config) (*SyncFlags, error) {
	forceEnable, err := cmd.Flags().GetBool("force-enable")
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("force-enable") {
		forceEnable = cfg.ForceEnable
	}

	delay, err := cmd.Flags().GetInt("delay")
	if err != nil {
		return nil, err
	}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return nil, err
	}

	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return nil, err
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	reportPath, err := cmd.Flags().GetString("report")
	if err != nil {
		return nil, err
	}

	return &SyncFlags{
		ForceEnable: forceEnable,
		Delay:       delay,
		DryRun:      dryRun,
		Yes:         yes,
		OutputPath:  outputPath,
		ReportPath:  reportPath,
	}, nil
}

// MergeConfig applies command line values over environment configuration
func MergeConfig(cfg *config.Config, flags *CommonFlags) {
	if flags.Org != "" {
		cfg.Org = flags.Org
	}
	if flags.PolicyFile != "" {
		cfg.PolicyFile = flags.PolicyFile
	}
	if flags.ServerURL != "" {
		cfg.Host = flags.ServerURL
	}
}

// PrintCompletionHeader prints the completion header with results
func PrintCompletionHeader(operation string, successCount, skippedCount, errorCount int) {
	pterm.DefaultHeader.WithFullWidth().WithBackgroundStyle(pterm.NewStyle(pterm.BgGreen)).WithTextStyle(pterm.NewStyle(pterm.FgBlack)).Printf("%s Complete! (Changed: %d, Skipped: %d, Errors: %d)", operation, successCount, skippedCount, errorCount)
}

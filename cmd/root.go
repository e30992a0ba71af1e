package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/callmegreg/gh-advanced-security-sync/internal/utils"
)

var rootCmd = &cobra.Command{
	Use:   "advanced-security",
	Short: "Keep GitHub Advanced Security in line with a team policy file",
	Long:  "A GitHub CLI extension that enables or disables GitHub Advanced Security on every repository of an organization according to a team policy file",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// stdout is reserved for machine readable output
		pterm.SetDefaultOutput(os.Stderr)
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			pterm.EnableDebugMessages()
		}
	},
}

func init() {
	// Add persistent flags that are common to all commands
	rootCmd.PersistentFlags().StringP("org", "o", "", "Organization whose repositories are managed")
	rootCmd.PersistentFlags().StringP("file", "f", "", "Path to the team policy file (YAML mapping of team to repositories)")
	rootCmd.PersistentFlags().StringP("github-enterprise-server-url", "u", "", "GitHub Enterprise Server URL (e.g., github.company.com)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug output")

	// Add subcommands
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(committersCmd)
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		pterm.Error.Printf("Error: %v\n", err)
		utils.ReportActionFailure(os.Stdout, err.Error())
		os.Exit(1)
	}
}

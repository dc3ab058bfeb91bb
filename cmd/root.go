package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "addonsync",
		Short: "World of Warcraft addon update manager",
		Long: `A CLI tool that keeps a curated set of WoW addons in sync with their
GitHub repositories. It compares installed versions against the latest
release or branch head and installs updates on demand.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Add status flags to root command so `addonsync` and `addonsync status`
	// work identically
	addStatusFlags(rootCmd, opts)

	// Register subcommands
	rootCmd.AddCommand(NewCmdStatus(opts))
	rootCmd.AddCommand(NewCmdInstall(opts))
	rootCmd.AddCommand(NewCmdUpdate(opts))
	rootCmd.AddCommand(NewCmdUninstall(opts))
	rootCmd.AddCommand(NewCmdOverride())
	rootCmd.AddCommand(NewCmdPath())
	rootCmd.AddCommand(NewCmdInfo(opts))
	rootCmd.AddCommand(NewCmdWatch(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdCache())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}

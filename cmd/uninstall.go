package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wowsmith/addonsync/internal/installer"
	"github.com/wowsmith/addonsync/internal/log"
)

// NewCmdUninstall creates the uninstall command.
func NewCmdUninstall(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall <addon>...",
		Short: "Remove installed addons",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.WowPath, "wow-path", "", "WoW installation root (overrides config and detection)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")

	return cmd
}

func runUninstall(cmd *cobra.Command, args []string, opts *Options) error {
	log.Initialize(opts.Verbosity, os.Stderr)

	a, err := newApp(opts)
	if err != nil {
		return err
	}

	targets, err := a.findAddons(args, false)
	if err != nil {
		return err
	}

	wow, err := a.wowPath(opts)
	if err != nil {
		return err
	}

	inst := installer.New(a.client, a.resolver)
	for _, def := range targets {
		if err := inst.Uninstall(wow, def.LocalName); err != nil {
			return err
		}
		fmt.Printf("Uninstalled %s\n", def.NiceName)
	}
	return nil
}

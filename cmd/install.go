package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wowsmith/addonsync/internal/installer"
	"github.com/wowsmith/addonsync/internal/log"
	"github.com/wowsmith/addonsync/internal/policy"
)

// NewCmdInstall creates the install command.
func NewCmdInstall(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <addon>...",
		Short: "Install addons from the catalog",
		Long: `Downloads the selected addons from GitHub and installs them into the
AddOns directory. Existing installations are replaced.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "Install every addon in the catalog")
	cmd.Flags().StringVar(&opts.WowPath, "wow-path", "", "WoW installation root (overrides config and detection)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")

	return cmd
}

func runInstall(cmd *cobra.Command, args []string, opts *Options) error {
	ctx := cmd.Context()
	log.Initialize(opts.Verbosity, os.Stderr)

	a, err := newApp(opts)
	if err != nil {
		return err
	}

	targets, err := a.findAddons(args, opts.All)
	if err != nil {
		return err
	}

	wow, err := a.wowPath(opts)
	if err != nil {
		return err
	}

	inst := installer.New(a.client, a.resolver)

	var failures []error
	for _, def := range targets {
		pol, err := policy.Resolve(def, a.cfg.AddonOverrides)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", def.LocalName, err))
			continue
		}

		version, err := inst.Install(ctx, wow, def, pol)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", def.LocalName, err))
			fmt.Fprintf(os.Stderr, "Failed to install %s: %v\n", def.NiceName, err)
			continue
		}
		fmt.Printf("Installed %s %s\n", def.NiceName, version)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d installs failed: %w", len(failures), len(targets), errors.Join(failures...))
	}
	return nil
}

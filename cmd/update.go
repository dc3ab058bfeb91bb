package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wowsmith/addonsync/internal/installer"
	"github.com/wowsmith/addonsync/internal/log"
	"github.com/wowsmith/addonsync/internal/model"
	"github.com/wowsmith/addonsync/internal/policy"
	"github.com/wowsmith/addonsync/internal/reconcile"
)

// NewCmdUpdate creates the update command.
func NewCmdUpdate(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [addon]...",
		Short: "Install available updates",
		Long: `Checks every catalog addon and reinstalls the ones whose upstream
version differs from the installed one. With addon names given, only
those addons are considered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.WowPath, "wow-path", "", "WoW installation root (overrides config and detection)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Bypass the version cache")
	cmd.Flags().BoolVar(&opts.Notify, "notify", false, "Send a notification when the update run completes")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", reconcile.DefaultWorkers, "Number of concurrent version checks")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string, opts *Options) error {
	ctx := cmd.Context()
	log.Initialize(opts.Verbosity, os.Stderr)

	a, err := newApp(opts)
	if err != nil {
		return err
	}

	statuses, err := a.reconcile(ctx, opts)
	if err != nil {
		return err
	}

	pending := reconcile.UpdatesAvailable(statuses)
	if len(args) > 0 {
		requested := make(map[string]bool, len(args))
		for _, name := range args {
			if _, err := a.findAddons([]string{name}, false); err != nil {
				return err
			}
			requested[name] = true
		}
		var filtered []model.AddonStatus
		for _, s := range pending {
			if requested[s.Name()] {
				filtered = append(filtered, s)
			}
		}
		pending = filtered
	}

	if len(pending) == 0 {
		fmt.Println("All addons are up to date.")
		return nil
	}

	wow, err := a.wowPath(opts)
	if err != nil {
		return err
	}

	gate := a.gate()
	gate.Init()
	inst := installer.New(a.client, a.resolver)

	var installed int
	var failures []error
	for _, s := range pending {
		def := s.Definition

		pol, err := policy.Resolve(def, a.cfg.AddonOverrides)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", def.LocalName, err))
			continue
		}

		version, err := inst.Install(ctx, wow, def, pol)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", def.LocalName, err))
			fmt.Fprintf(os.Stderr, "Failed to update %s: %v\n", def.NiceName, err)
			continue
		}

		// Successful updates become re-notifiable on the next check
		gate.MarkUpdated(def.LocalName)
		installed++
		fmt.Printf("Updated %s to %s\n", def.NiceName, version)
	}

	if opts.Notify && installed > 0 {
		gate.NotifySuccess(installed)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d updates failed: %w", len(failures), len(pending), errors.Join(failures...))
	}
	return nil
}

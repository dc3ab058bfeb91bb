package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/wowsmith/addonsync/internal/installer"
	"github.com/wowsmith/addonsync/internal/log"
	"github.com/wowsmith/addonsync/internal/model"
	"github.com/wowsmith/addonsync/internal/output"
	"github.com/wowsmith/addonsync/internal/policy"
	"github.com/wowsmith/addonsync/internal/reconcile"
	"github.com/wowsmith/addonsync/internal/tui"
)

// NewCmdStatus creates the status command.
func NewCmdStatus(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show addon update status (same as bare addonsync)",
		Long: `Scans the AddOns directory, resolves the latest upstream version of
every catalog addon, and shows which ones have updates available.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, opts)
		},
	}

	addStatusFlags(cmd, opts)
	return cmd
}

// addStatusFlags adds the status-specific flags to a command.
func addStatusFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, markdown)")
	cmd.Flags().StringVar(&opts.WowPath, "wow-path", "", "WoW installation root (overrides config and detection)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", reconcile.DefaultWorkers, "Number of concurrent version checks")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Bypass the version cache")
	cmd.Flags().BoolVar(&opts.Notify, "notify", false, "Send a notification when updates are available")

	// TUI flag with tri-state: nil = auto, true = force, false = disable
	cmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable interactive dashboard (default: auto-detect)")
}

func runStatus(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()
	log.Initialize(opts.Verbosity, os.Stderr)

	a, err := newApp(opts)
	if err != nil {
		return err
	}

	format := output.Format(opts.Format)

	// If running in a TTY with table format, launch the interactive dashboard
	if shouldUseTUI(opts) && (format == "" || format == output.FormatTable) {
		return tui.Run(tuiDeps(a, opts))
	}

	statuses, err := a.reconcile(ctx, opts)
	if err != nil {
		return err
	}

	if opts.Notify {
		gate := a.gate()
		gate.Init()
		if dec := gate.Evaluate(statuses); dec.Send {
			log.Info("notification sent", "addons", len(dec.Addons))
		}
	}

	formatter := output.NewFormatter(format)
	return formatter.Format(statuses, os.Stdout)
}

// tuiDeps wires the dashboard callbacks against the app services.
func tuiDeps(a *app, opts *Options) tui.Deps {
	return tui.Deps{
		Refresh: func(ctx context.Context) ([]model.AddonStatus, error) {
			return a.reconcile(ctx, opts)
		},
		Install: func(ctx context.Context, name string) (string, error) {
			targets, err := a.findAddons([]string{name}, false)
			if err != nil {
				return "", err
			}
			def := targets[0]

			pol, err := policy.Resolve(def, a.cfg.AddonOverrides)
			if err != nil {
				return "", err
			}

			wow, err := a.wowPath(opts)
			if err != nil {
				return "", err
			}

			inst := installer.New(a.client, a.resolver)
			return inst.Install(ctx, wow, def, pol)
		},
	}
}

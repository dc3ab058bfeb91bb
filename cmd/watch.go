package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wowsmith/addonsync/internal/log"
	"github.com/wowsmith/addonsync/internal/reconcile"
)

// defaultWatchInterval is how often watch mode re-checks upstream.
const defaultWatchInterval = 15 * time.Minute

// NewCmdWatch creates the watch command.
func NewCmdWatch(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll for updates and notify when new ones appear",
		Long: `Runs the update check in a loop. Each addon is announced once per
session; a notified addon is announced again only after it has been
updated. Configure notify_urls in the config file to receive
notifications.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Interval, "interval", "", "Polling interval (e.g., 5m, 1h; default 15m)")
	cmd.Flags().StringVar(&opts.WowPath, "wow-path", "", "WoW installation root (overrides config and detection)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", reconcile.DefaultWorkers, "Number of concurrent version checks")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Bypass the version cache")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()
	log.Initialize(opts.Verbosity, os.Stderr)

	interval := defaultWatchInterval
	if opts.Interval != "" {
		d, err := time.ParseDuration(opts.Interval)
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", opts.Interval, err)
		}
		if d < time.Minute {
			return fmt.Errorf("interval %s is below the 1m minimum", d)
		}
		interval = d
	}

	a, err := newApp(opts)
	if err != nil {
		return err
	}

	gate := a.gate()
	gate.Init()

	fmt.Printf("Watching %d addons every %s. Press Ctrl-C to stop.\n", len(a.defs), interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		statuses, err := a.reconcile(ctx, opts)
		if err != nil {
			log.Error("check failed", "error", err)
		} else {
			pending := reconcile.UpdatesAvailable(statuses)
			log.Info("check complete", "addons", len(statuses), "updates", len(pending))
			if dec := gate.Evaluate(statuses); dec.Send {
				log.Info("notification sent", "addons", len(dec.Addons))
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

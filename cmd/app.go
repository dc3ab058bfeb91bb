package cmd

import (
	"context"
	"fmt"

	"github.com/wowsmith/addonsync/config"
	"github.com/wowsmith/addonsync/internal/catalog"
	"github.com/wowsmith/addonsync/internal/gh"
	"github.com/wowsmith/addonsync/internal/inventory"
	"github.com/wowsmith/addonsync/internal/log"
	"github.com/wowsmith/addonsync/internal/model"
	"github.com/wowsmith/addonsync/internal/notify"
	"github.com/wowsmith/addonsync/internal/reconcile"
	"github.com/wowsmith/addonsync/internal/wowpath"
)

// app bundles the wired services shared by most commands.
type app struct {
	cfg      *config.Config
	defs     []model.AddonDefinition
	client   *gh.Client
	resolver gh.Resolver
	engine   *reconcile.Engine
}

// newApp loads config and the catalog, then wires the GitHub client,
// resolver, and reconciliation engine.
func newApp(opts *Options) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	defs, err := catalog.List(config.CatalogPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	client := gh.NewClient(cfg.GetGitHubToken())
	compare := gh.BranchCompare(cfg.BranchCompare)

	var resolver gh.Resolver = gh.NewResolver(client, compare)
	if !opts.NoCache {
		cache, err := gh.NewVersionCache()
		if err != nil {
			log.Warn("failed to initialize version cache", "error", err)
		} else {
			resolver = gh.NewCachedResolver(resolver, cache, compare)
		}
	}

	return &app{
		cfg:      cfg,
		defs:     defs,
		client:   client,
		resolver: resolver,
		engine:   reconcile.NewEngine(resolver, opts.Workers),
	}, nil
}

// wowPath resolves the WoW installation root: explicit flag, then config,
// then product database detection.
func (a *app) wowPath(opts *Options) (string, error) {
	if opts.WowPath != "" {
		if !wowpath.Validate(opts.WowPath) {
			return "", fmt.Errorf("no AddOns directory under %s", opts.WowPath)
		}
		return opts.WowPath, nil
	}

	if a.cfg.WowPath != "" {
		if wowpath.Validate(a.cfg.WowPath) {
			return a.cfg.WowPath, nil
		}
		log.Warn("configured WoW path is not valid", "path", a.cfg.WowPath)
	}

	paths, err := wowpath.Detect()
	if err != nil {
		return "", fmt.Errorf("WoW installation not found. Run 'addonsync path --set <path>' to configure it: %w", err)
	}
	log.Info("detected WoW installation", "path", paths[0])
	return paths[0], nil
}

// reconcile scans the local inventory and checks every catalog addon
// against its upstream.
func (a *app) reconcile(ctx context.Context, opts *Options) ([]model.AddonStatus, error) {
	wow, err := a.wowPath(opts)
	if err != nil {
		return nil, err
	}

	local, err := inventory.Scan(wow, a.defs)
	if err != nil {
		return nil, err
	}

	return a.engine.Reconcile(ctx, a.defs, local, a.cfg.AddonOverrides), nil
}

// gate builds the notification gate from the configured transport URLs.
func (a *app) gate() *notify.Gate {
	cooldown := a.cfg.NotifyCooldown()
	if cooldown == 0 {
		cooldown = notify.DefaultCooldown
	}
	return notify.NewGate(notify.NewShoutrrrTransport(a.cfg.NotifyURLs), cooldown)
}

// findAddons resolves addon names to catalog definitions, or all
// definitions when all is set.
func (a *app) findAddons(args []string, all bool) ([]model.AddonDefinition, error) {
	if all {
		return a.defs, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("specify at least one addon name or use --all")
	}

	targets := make([]model.AddonDefinition, 0, len(args))
	for _, name := range args {
		def, ok := catalog.Find(a.defs, name)
		if !ok {
			return nil, fmt.Errorf("addon %q is not in the catalog. Run 'addonsync status' to list known addons", name)
		}
		targets = append(targets, def)
	}
	return targets, nil
}

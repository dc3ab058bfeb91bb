// Package reconcile joins the addon catalog, the local inventory and
// resolved remote versions into per-addon statuses.
package reconcile

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/wowsmith/addonsync/internal/gh"
	"github.com/wowsmith/addonsync/internal/log"
	"github.com/wowsmith/addonsync/internal/model"
	"github.com/wowsmith/addonsync/internal/policy"
)

// DefaultWorkers bounds the concurrent remote resolutions per pass.
const DefaultWorkers = 8

// Engine runs reconciliation passes.
type Engine struct {
	resolver gh.Resolver
	workers  int
}

// NewEngine creates an engine using the given resolver. workers <= 0 uses
// DefaultWorkers.
func NewEngine(resolver gh.Resolver, workers int) *Engine {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Engine{resolver: resolver, workers: workers}
}

// Reconcile produces one AddonStatus per catalog definition, in catalog
// order. Remote resolutions run concurrently; results land by index so
// completion order never reorders the output. A failure in one addon's
// policy resolution or remote lookup marks that addon as errored and leaves
// the rest of the batch untouched.
func (e *Engine) Reconcile(
	ctx context.Context,
	defs []model.AddonDefinition,
	local map[string]model.AddonInfo,
	overrides map[string]model.AddonOverride,
) []model.AddonStatus {
	statuses := make([]model.AddonStatus, len(defs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, def := range defs {
		statuses[i] = model.AddonStatus{
			Definition: def,
			State:      model.StateChecking,
		}

		g.Go(func() error {
			statuses[i] = e.reconcileOne(gctx, def, local, overrides)
			// Always nil: per-addon failures are folded into the status,
			// never allowed to cancel the group.
			return nil
		})
	}

	// Workers never return errors, so this only waits.
	_ = g.Wait()

	return statuses
}

// reconcileOne computes the status of a single addon.
func (e *Engine) reconcileOne(
	ctx context.Context,
	def model.AddonDefinition,
	local map[string]model.AddonInfo,
	overrides map[string]model.AddonOverride,
) model.AddonStatus {
	status := model.AddonStatus{
		Definition: def,
		State:      model.StateChecking,
	}

	pol, err := policy.Resolve(def, overrides)
	if err != nil {
		log.Debug("policy resolution failed", "addon", def.LocalName, "error", err)
		status.State = model.StateError
		status.Err = err.Error()
		return status
	}

	info, installed := local[def.LocalName]
	status.IsInstalled = installed
	if installed {
		status.LocalInfo = &info
	}

	if !installed {
		status.State = model.StateNotInstalled
		return status
	}

	remote, err := e.resolver.Resolve(ctx, def, pol)
	if err != nil {
		log.Debug("remote resolution failed", "addon", def.LocalName, "error", err)
		status.State = model.StateError
		status.Err = err.Error()
		return status
	}
	status.RemoteVersion = remote

	// Versions are opaque identifiers (tags or commit SHAs); only exact
	// inequality is meaningful.
	if remote != info.Version {
		status.UpdateAvailable = true
		status.State = model.StateUpdateAvailable
	} else {
		status.State = model.StateUpToDate
	}
	return status
}

// UpdatesAvailable filters a pass result down to addons with pending
// updates.
func UpdatesAvailable(statuses []model.AddonStatus) []model.AddonStatus {
	out := make([]model.AddonStatus, 0, len(statuses))
	for _, s := range statuses {
		if s.State == model.StateUpdateAvailable {
			out = append(out, s)
		}
	}
	return out
}

// Errored filters a pass result down to addons that failed to reconcile.
func Errored(statuses []model.AddonStatus) []model.AddonStatus {
	out := make([]model.AddonStatus, 0, len(statuses))
	for _, s := range statuses {
		if s.State == model.StateError {
			out = append(out, s)
		}
	}
	return out
}

// Package notify decides whether addon update events reach the user,
// suppressing duplicates within a session and rapid-fire batches within a
// cooldown window.
package notify

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wowsmith/addonsync/internal/log"
	"github.com/wowsmith/addonsync/internal/model"
)

// DefaultCooldown is the minimum interval between two update
// notifications.
const DefaultCooldown = 60 * time.Second

const updateTitle = "🔔 Addon Updates Available"
const successTitle = "✅ Update Complete"

// Decision is the outcome of one gate evaluation.
type Decision struct {
	Send   bool
	Title  string
	Body   string
	Addons []string // names included in the notification
}

// none is the empty decision.
var none = Decision{}

// Gate owns the session-scoped notification state: permission, the last
// send timestamp, and the set of already-notified addons. All state sits
// behind one mutex so concurrent reconciliation passes cannot double-send
// within the cooldown window. State is never persisted; a fresh process
// starts clean.
type Gate struct {
	transport Transport
	cooldown  time.Duration
	now       func() time.Time

	mu                sync.Mutex
	permissionGranted bool
	lastNotification  time.Time
	notified          map[string]struct{}
}

// NewGate creates a gate over the given transport. cooldown <= 0 uses
// DefaultCooldown.
func NewGate(transport Transport, cooldown time.Duration) *Gate {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Gate{
		transport: transport,
		cooldown:  cooldown,
		now:       time.Now,
		notified:  make(map[string]struct{}),
	}
}

// Init requests notification permission up front. Denial is not fatal;
// later evaluations will retry the request.
func (g *Gate) Init() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensurePermissionLocked()
}

// Evaluate inspects a reconciliation result and decides whether to notify
// the user about newly available updates. Addons already notified this
// session are filtered out; if the batch lands inside the cooldown window
// it is dropped entirely (not queued), leaving the filtered addons eligible
// for the next evaluation after the window expires.
func (g *Gate) Evaluate(statuses []model.AddonStatus) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	var fresh []string
	for _, s := range statuses {
		if s.State != model.StateUpdateAvailable {
			continue
		}
		if _, seen := g.notified[s.Name()]; seen {
			continue
		}
		fresh = append(fresh, s.Name())
	}

	if len(fresh) == 0 {
		return none
	}

	now := g.now()
	if now.Sub(g.lastNotification) < g.cooldown {
		log.Debug("notification suppressed by cooldown", "addons", strings.Join(fresh, ","))
		return none
	}

	if !g.ensurePermissionLocked() {
		return none
	}

	decision := Decision{
		Send:   true,
		Title:  updateTitle,
		Body:   updateBody(fresh),
		Addons: fresh,
	}

	if err := g.transport.Send(decision.Title, decision.Body); err != nil {
		log.Warn("update notification failed", "error", err)
		return none
	}

	g.lastNotification = now
	for _, name := range fresh {
		g.notified[name] = struct{}{}
	}
	return decision
}

// NotifySuccess announces completed updates. It is gated by permission only:
// success messages are direct responses to a user action, so neither the
// cooldown nor the dedup set applies.
func (g *Gate) NotifySuccess(count int) Decision {
	if count <= 0 {
		return none
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.ensurePermissionLocked() {
		return none
	}

	decision := Decision{
		Send:  true,
		Title: successTitle,
		Body:  successBody(count),
	}
	if err := g.transport.Send(decision.Title, decision.Body); err != nil {
		log.Warn("success notification failed", "error", err)
		return none
	}
	return decision
}

// MarkUpdated removes one addon from the notified set so a future update
// for it notifies again. Idempotent.
func (g *Gate) MarkUpdated(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.notified, name)
}

// ClearHistory empties the notified set unconditionally.
func (g *Gate) ClearHistory() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.notified = make(map[string]struct{})
}

// ensurePermissionLocked requests permission once per need. Caller holds
// the mutex.
func (g *Gate) ensurePermissionLocked() bool {
	if g.permissionGranted {
		return true
	}
	g.permissionGranted = g.transport.RequestPermission()
	if !g.permissionGranted {
		log.Warn("notification permission not granted")
	}
	return g.permissionGranted
}

// updateBody composes the notification text: singular phrasing for one
// addon, a count plus comma-joined names otherwise.
func updateBody(names []string) string {
	list := strings.Join(names, ", ")
	if len(names) == 1 {
		return fmt.Sprintf("%s has an update available. Run 'addonsync update' to install.", list)
	}
	return fmt.Sprintf("%d addons have updates available: %s. Run 'addonsync update' to install.", len(names), list)
}

func successBody(count int) string {
	if count == 1 {
		return "1 addon has been updated successfully!"
	}
	return fmt.Sprintf("%d addons have been updated successfully!", count)
}

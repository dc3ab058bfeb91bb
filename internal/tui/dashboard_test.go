package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wowsmith/addonsync/internal/model"
)

func testDeps() Deps {
	return Deps{
		Refresh: func(context.Context) ([]model.AddonStatus, error) {
			return nil, nil
		},
		Install: func(_ context.Context, name string) (string, error) {
			return "v1.0.0", nil
		},
	}
}

func testStatuses() []model.AddonStatus {
	return []model.AddonStatus{
		{
			Definition:      model.AddonDefinition{LocalName: "Nihui_uf", NiceName: "Nihui Unit Frames", Owner: "Nihilop", Repo: "nihui_uf"},
			LocalInfo:       &model.AddonInfo{Name: "Nihui_uf", Version: "abc1234"},
			RemoteVersion:   "def5678",
			IsInstalled:     true,
			UpdateAvailable: true,
			State:           model.StateUpdateAvailable,
		},
		{
			Definition: model.AddonDefinition{LocalName: "Nihui_ab", NiceName: "Nihui Action Bars", Owner: "Nihilop", Repo: "nihui_ab"},
			State:      model.StateNotInstalled,
		},
		{
			Definition:  model.AddonDefinition{LocalName: "Nihui_iv", NiceName: "Nihui Inventory", Owner: "Nihilop", Repo: "nihui_iv"},
			IsInstalled: true,
			State:       model.StateError,
			Err:         "network error",
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func updated(t *testing.T, m tea.Model, msg tea.Msg) DashboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	dm, ok := next.(DashboardModel)
	if !ok {
		t.Fatalf("Update() returned %T, want DashboardModel", next)
	}
	return dm
}

func TestDashboardRefreshDone(t *testing.T) {
	m := NewDashboard(testDeps())
	if !m.refreshing {
		t.Error("new dashboard should start refreshing")
	}

	m = updated(t, m, refreshDoneMsg{statuses: testStatuses()})
	if m.refreshing {
		t.Error("refreshing flag not cleared")
	}
	if len(m.statuses) != 3 {
		t.Fatalf("got %d statuses, want 3", len(m.statuses))
	}
}

func TestDashboardRefreshError(t *testing.T) {
	m := NewDashboard(testDeps())
	m = updated(t, m, refreshDoneMsg{err: errors.New("boom")})

	if m.refreshing {
		t.Error("refreshing flag not cleared on error")
	}
	if !strings.Contains(m.statusMsg, "boom") {
		t.Errorf("statusMsg = %q, want the refresh error", m.statusMsg)
	}
}

func TestDashboardNavigation(t *testing.T) {
	m := NewDashboard(testDeps())
	m = updated(t, m, refreshDoneMsg{statuses: testStatuses()})

	m = updated(t, m, keyMsg("j"))
	if m.cursor != 1 {
		t.Errorf("cursor after j = %d, want 1", m.cursor)
	}

	m = updated(t, m, keyMsg("G"))
	if m.cursor != 2 {
		t.Errorf("cursor after G = %d, want 2", m.cursor)
	}

	// Moving past the end is clamped
	m = updated(t, m, keyMsg("j"))
	if m.cursor != 2 {
		t.Errorf("cursor past end = %d, want 2", m.cursor)
	}

	m = updated(t, m, keyMsg("g"))
	if m.cursor != 0 {
		t.Errorf("cursor after g = %d, want 0", m.cursor)
	}

	m = updated(t, m, keyMsg("k"))
	if m.cursor != 0 {
		t.Errorf("cursor before start = %d, want 0", m.cursor)
	}
}

func TestDashboardCursorClampedAfterRefresh(t *testing.T) {
	m := NewDashboard(testDeps())
	m = updated(t, m, refreshDoneMsg{statuses: testStatuses()})
	m = updated(t, m, keyMsg("G"))

	// A shorter catalog after refresh pulls the cursor back in range
	m = updated(t, m, refreshDoneMsg{statuses: testStatuses()[:1]})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after shrinking refresh", m.cursor)
	}
}

func TestDashboardInstallSelected(t *testing.T) {
	m := NewDashboard(testDeps())
	m = updated(t, m, refreshDoneMsg{statuses: testStatuses()})

	next, cmd := m.handleKey(keyMsg("i"))
	m = next.(DashboardModel)
	if m.installing != "Nihui_uf" {
		t.Errorf("installing = %q, want Nihui_uf", m.installing)
	}
	if cmd == nil {
		t.Error("install key produced no command")
	}

	m = updated(t, m, installDoneMsg{name: "Nihui_uf", version: "def5678"})
	if m.installing != "" {
		t.Error("installing flag not cleared")
	}
	if !m.refreshing {
		t.Error("successful install should trigger a refresh")
	}
	if !strings.Contains(m.statusMsg, "def5678") {
		t.Errorf("statusMsg = %q, want installed version", m.statusMsg)
	}
}

func TestDashboardInstallErroredAddonRefused(t *testing.T) {
	m := NewDashboard(testDeps())
	m = updated(t, m, refreshDoneMsg{statuses: testStatuses()})
	m = updated(t, m, keyMsg("G")) // cursor on the errored addon

	m = updated(t, m, keyMsg("i"))
	if m.installing != "" {
		t.Errorf("installing = %q, want refusal for errored addon", m.installing)
	}
	if !strings.Contains(m.statusMsg, "last check failed") {
		t.Errorf("statusMsg = %q, want a refusal message", m.statusMsg)
	}
}

func TestDashboardInstallFailure(t *testing.T) {
	m := NewDashboard(testDeps())
	m = updated(t, m, refreshDoneMsg{statuses: testStatuses()})
	m.installing = "Nihui_uf"

	m = updated(t, m, installDoneMsg{name: "Nihui_uf", err: errors.New("download failed")})
	if m.installing != "" {
		t.Error("installing flag not cleared on failure")
	}
	if m.refreshing {
		t.Error("failed install must not trigger a refresh")
	}
	if !strings.Contains(m.statusMsg, "download failed") {
		t.Errorf("statusMsg = %q, want the install error", m.statusMsg)
	}
}

func TestDashboardQuit(t *testing.T) {
	m := NewDashboard(testDeps())
	next, cmd := m.handleKey(keyMsg("q"))
	dm := next.(DashboardModel)
	if !dm.quitting {
		t.Error("q did not set quitting")
	}
	if cmd == nil {
		t.Error("q did not return the quit command")
	}
	if dm.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestDashboardView(t *testing.T) {
	m := NewDashboard(testDeps())
	m = updated(t, m, refreshDoneMsg{statuses: testStatuses()})
	m = updated(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	for _, want := range []string{
		"addonsync",
		"Nihui Unit Frames",
		"abc1234 → def5678",
		"not installed",
		"network error",
		"q quit",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		statuses []model.AddonStatus
		want     string
	}{
		{"empty", nil, "all addons up to date"},
		{"updates and errors", testStatuses(), "1 updates available, 1 errors"},
		{
			"clean",
			[]model.AddonStatus{{State: model.StateUpToDate}},
			"all addons up to date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := summarize(tt.statuses); got != tt.want {
				t.Errorf("summarize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScrollWindow(t *testing.T) {
	tests := []struct {
		name                  string
		cursor, total, height int
		wantStart, wantEnd    int
	}{
		{"fits entirely", 0, 5, 10, 0, 5},
		{"cursor at top", 0, 20, 10, 0, 10},
		{"cursor centered", 10, 20, 10, 5, 15},
		{"cursor at bottom", 19, 20, 10, 10, 20},
		{"zero height", 3, 20, 0, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := scrollWindow(tt.cursor, tt.total, tt.height)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("scrollWindow(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.cursor, tt.total, tt.height, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

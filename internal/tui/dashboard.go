package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wowsmith/addonsync/internal/model"
)

// DashboardModel is the Bubble Tea model for the addon dashboard.
type DashboardModel struct {
	deps Deps

	statuses []model.AddonStatus
	cursor   int

	spinner      spinner.Model
	refreshing   bool
	installing   string // local name of the addon being installed, "" when idle
	statusMsg    string
	windowWidth  int
	windowHeight int
	quitting     bool
}

// NewDashboard creates the dashboard model.
func NewDashboard(deps Deps) DashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return DashboardModel{
		deps:         deps,
		spinner:      sp,
		refreshing:   true,
		windowWidth:  80,
		windowHeight: 24,
	}
}

// refreshDoneMsg carries the result of a background refresh.
type refreshDoneMsg struct {
	statuses []model.AddonStatus
	err      error
}

// installDoneMsg carries the result of a background install.
type installDoneMsg struct {
	name    string
	version string
	err     error
}

// clearStatusMsg clears the transient status line.
type clearStatusMsg struct{}

// Init implements tea.Model
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshCmd())
}

func (m DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		statuses, err := m.deps.Refresh(context.Background())
		return refreshDoneMsg{statuses: statuses, err: err}
	}
}

func (m DashboardModel) installCmd(name string) tea.Cmd {
	return func() tea.Msg {
		version, err := m.deps.Install(context.Background(), name)
		return installDoneMsg{name: name, version: version, err: err}
	}
}

// Update implements tea.Model
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case refreshDoneMsg:
		m.refreshing = false
		if msg.err != nil {
			m.statusMsg = "Refresh failed: " + msg.err.Error()
			return m, clearStatusAfter(5 * time.Second)
		}
		m.statuses = msg.statuses
		if m.cursor >= len(m.statuses) && m.cursor > 0 {
			m.cursor = len(m.statuses) - 1
		}
		return m, nil

	case installDoneMsg:
		m.installing = ""
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Failed to install %s: %v", msg.name, msg.err)
			return m, clearStatusAfter(5 * time.Second)
		}
		m.statusMsg = fmt.Sprintf("Installed %s %s", msg.name, msg.version)
		m.refreshing = true
		return m, tea.Batch(m.refreshCmd(), clearStatusAfter(3*time.Second))

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input
func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.statuses)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "g", "home":
		m.cursor = 0
		return m, nil

	case "G", "end":
		if len(m.statuses) > 0 {
			m.cursor = len(m.statuses) - 1
		}
		return m, nil

	case "r":
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, m.refreshCmd()

	case "i":
		return m.installSelected()

	case "enter":
		return m.openInBrowser()
	}

	return m, nil
}

// installSelected installs or updates the addon under the cursor.
func (m DashboardModel) installSelected() (tea.Model, tea.Cmd) {
	if len(m.statuses) == 0 || m.installing != "" || m.refreshing {
		return m, nil
	}

	s := m.statuses[m.cursor]
	if s.State == model.StateError {
		m.statusMsg = "Cannot install " + s.Name() + ": last check failed"
		return m, clearStatusAfter(3 * time.Second)
	}
	if s.State == model.StateUpToDate {
		m.statusMsg = s.Name() + " is already up to date"
		return m, clearStatusAfter(3 * time.Second)
	}

	m.installing = s.Name()
	return m, m.installCmd(s.Name())
}

// openInBrowser opens the selected addon's repository.
func (m DashboardModel) openInBrowser() (tea.Model, tea.Cmd) {
	if len(m.statuses) == 0 {
		return m, nil
	}

	def := m.statuses[m.cursor].Definition
	url := fmt.Sprintf("https://github.com/%s/%s", def.Owner, def.Repo)
	return m, openURL(url)
}

// View implements tea.Model
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	return renderDashboard(m)
}

// clearStatusAfter returns a command that clears the status after a delay
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// openURL opens a URL in the default browser
func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd

		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "linux":
			cmd = exec.Command("xdg-open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			return nil
		}

		_ = cmd.Start()
		return nil
	}
}

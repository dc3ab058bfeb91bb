// Package tui implements the interactive addon dashboard.
package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/wowsmith/addonsync/internal/model"
)

// Deps are the callbacks the dashboard drives. They run on background
// goroutines via tea commands and must be safe to call repeatedly.
type Deps struct {
	// Refresh scans the local inventory and resolves upstream versions.
	Refresh func(ctx context.Context) ([]model.AddonStatus, error)
	// Install installs or updates one addon and returns the new version.
	Install func(ctx context.Context, name string) (string, error)
}

// Run starts the dashboard and blocks until the user quits.
func Run(deps Deps) error {
	p := tea.NewProgram(NewDashboard(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ShouldUseTUI returns true if the TUI should be used based on environment.
func ShouldUseTUI() bool {
	// Check if stdout is a TTY
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}

	// Check for CI environment variables
	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"JENKINS_URL",
		"TRAVIS",
		"CIRCLECI",
		"GITLAB_CI",
		"BUILDKITE",
	}

	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return false
		}
	}

	return true
}

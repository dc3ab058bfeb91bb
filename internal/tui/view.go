package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/wowsmith/addonsync/internal/model"
)

// headerLines and footerLines account for the fixed chrome around the list.
const (
	headerLines = 3
	footerLines = 3
)

// renderDashboard renders the complete dashboard view.
func renderDashboard(m DashboardModel) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  addonsync"))
	if m.refreshing {
		b.WriteString("  " + m.spinner.View() + statusStyle.Render(" checking for updates..."))
	} else {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %s", summarize(m.statuses))))
	}
	b.WriteString("\n\n")

	if len(m.statuses) == 0 && !m.refreshing {
		b.WriteString(dimStyle.Render("  No addons in catalog."))
		b.WriteString("\n")
	}

	available := m.windowHeight - headerLines - footerLines
	start, end := scrollWindow(m.cursor, len(m.statuses), available)

	for i := start; i < end; i++ {
		b.WriteString(renderRow(m, i))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render("  j/k move · r refresh · i install · enter open repo · q quit"))

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("  " + m.statusMsg))
	}

	return b.String()
}

// renderRow renders one addon line.
func renderRow(m DashboardModel, i int) string {
	s := &m.statuses[i]

	icon := stateIcon(s.State)
	if m.installing == s.Name() {
		icon = m.spinner.View()
	}

	name := padTo(s.Definition.NiceName, 26)
	versions := renderVersions(s)

	line := fmt.Sprintf(" %s %s %s", icon, name, versions)
	if i == m.cursor {
		return selectedStyle.Render(line)
	}
	return nameStyle.Render(line)
}

// renderVersions shows installed and upstream versions for one addon.
func renderVersions(s *model.AddonStatus) string {
	switch s.State {
	case model.StateUpdateAvailable:
		installed := "?"
		if s.LocalInfo != nil {
			installed = s.LocalInfo.Version
		}
		return updateStyle.Render(fmt.Sprintf("%s → %s", installed, s.RemoteVersion))
	case model.StateUpToDate:
		return versionStyle.Render(s.RemoteVersion)
	case model.StateNotInstalled:
		return dimStyle.Render("not installed")
	case model.StateError:
		return errorStyle.Render(s.Err)
	default:
		return dimStyle.Render("...")
	}
}

// stateIcon maps an addon state to its list icon.
func stateIcon(state model.AddonState) string {
	switch state {
	case model.StateUpToDate:
		return iconUpToDate
	case model.StateUpdateAvailable:
		return iconUpdate
	case model.StateNotInstalled:
		return iconNotInstalled
	case model.StateError:
		return iconError
	default:
		return iconNotInstalled
	}
}

// summarize builds the one-line header summary.
func summarize(statuses []model.AddonStatus) string {
	var updates, errs int
	for i := range statuses {
		switch statuses[i].State {
		case model.StateUpdateAvailable:
			updates++
		case model.StateError:
			errs++
		}
	}

	switch {
	case errs > 0 && updates > 0:
		return fmt.Sprintf("%d updates available, %d errors", updates, errs)
	case errs > 0:
		return fmt.Sprintf("%d errors", errs)
	case updates > 0:
		return fmt.Sprintf("%d updates available", updates)
	default:
		return "all addons up to date"
	}
}

// scrollWindow keeps the cursor inside the visible slice of rows.
func scrollWindow(cursor, total, height int) (start, end int) {
	if height <= 0 || total <= height {
		return 0, total
	}

	start = cursor - height/2
	if start < 0 {
		start = 0
	}
	end = start + height
	if end > total {
		end = total
		start = end - height
	}
	return start, end
}

// padTo pads or truncates a string to a fixed display width.
func padTo(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w > width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-w)
}

package output

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/wowsmith/addonsync/internal/model"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// TableFormatter formats output as a terminal table
type TableFormatter struct{}

// hyperlink creates a clickable terminal hyperlink using OSC 8
// Format: \033]8;;URL\033\\TEXT\033]8;;\033\\
func hyperlink(text, url string) string {
	// Only use hyperlinks if stdout is a terminal
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// displayWidth returns the visible width of a string in terminal columns
// accounting for wide characters and stripping ANSI escape sequences
func displayWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}

// truncateToWidth truncates a string to fit within maxWidth display columns
func truncateToWidth(s string, maxWidth int) (string, int) {
	plain := stripAnsi(s)
	width := runewidth.StringWidth(plain)

	if width <= maxWidth {
		return s, width
	}

	cutWidth := 0
	cutIndex := 0
	for i, r := range plain {
		rw := runewidth.RuneWidth(r)
		if cutWidth+rw > maxWidth-3 { // Leave room for "..."
			cutIndex = i
			break
		}
		cutWidth += rw
	}

	if cutIndex > 0 && cutIndex < len(plain) {
		return plain[:cutIndex] + "...", maxWidth
	}
	return plain[:maxWidth-3] + "...", maxWidth
}

// padRight pads a string with spaces to reach the target visible width
func padRight(s string, visibleWidth, targetWidth int) string {
	if visibleWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visibleWidth)
}

// Format outputs addon statuses as a table
func (f *TableFormatter) Format(statuses []model.AddonStatus, w io.Writer) error {
	if len(statuses) == 0 {
		fmt.Fprintln(w, "No addons in catalog.")
		return nil
	}

	// Column widths
	const (
		colAddon     = 24
		colMode      = 12
		colInstalled = 16
		colLatest    = 16
		colState     = 18
	)

	// Header
	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %-*s  %s\n",
		colAddon, "Addon",
		colMode, "Mode",
		colInstalled, "Installed",
		colLatest, "Latest",
		"State")
	fmt.Fprintln(w, strings.Repeat("-", colAddon+colMode+colInstalled+colLatest+colState+8))

	for i := range statuses {
		s := &statuses[i]
		def := s.Definition

		name, nameWidth := truncateToWidth(def.NiceName, colAddon)
		url := fmt.Sprintf("https://github.com/%s/%s", def.Owner, def.Repo)
		linkedName := padRight(hyperlink(name, url), nameWidth, colAddon)

		mode := def.UpdateMode.Display()
		if def.UpdateMode == model.ModeBranch && def.Branch != "" {
			mode = fmt.Sprintf("%s:%s", mode, def.Branch)
		}
		mode, modeWidth := truncateToWidth(mode, colMode)

		installed := "-"
		if s.LocalInfo != nil && s.LocalInfo.Version != "" {
			installed = s.LocalInfo.Version
		}
		installed, instWidth := truncateToWidth(installed, colInstalled)

		latest := "-"
		if s.RemoteVersion != "" {
			latest = s.RemoteVersion
		}
		latest, latestWidth := truncateToWidth(latest, colLatest)

		fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
			linkedName,
			padRight(mode, modeWidth, colMode),
			padRight(installed, instWidth, colInstalled),
			padRight(latest, latestWidth, colLatest),
			colorState(s),
		)
	}

	printFooterSummary(statuses, w)

	return nil
}

// colorState renders the state column with color, appending the error message
// for failed addons.
func colorState(s *model.AddonStatus) string {
	switch s.State {
	case model.StateUpToDate:
		return color.GreenString("✓ up to date")
	case model.StateUpdateAvailable:
		return color.YellowString("↑ update available")
	case model.StateNotInstalled:
		return color.WhiteString("not installed")
	case model.StateChecking:
		return color.CyanString("checking...")
	case model.StateError:
		if s.Err != "" {
			return color.RedString("✗ %s", s.Err)
		}
		return color.RedString("✗ error")
	default:
		return string(s.State)
	}
}

// printFooterSummary prints an actionable summary footer
func printFooterSummary(statuses []model.AddonStatus, w io.Writer) {
	var updateCount, missingCount, errCount int
	for i := range statuses {
		switch statuses[i].State {
		case model.StateUpdateAvailable:
			updateCount++
		case model.StateNotInstalled:
			missingCount++
		case model.StateError:
			errCount++
		}
	}

	if updateCount == 0 && missingCount == 0 && errCount == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("━", 60))

	if updateCount > 0 {
		fmt.Fprintf(w, "  %s %d updates available, run 'addonsync update' to install\n",
			color.YellowString("↑"), updateCount)
	}
	if missingCount > 0 {
		fmt.Fprintf(w, "  %s %d addons not installed\n",
			color.WhiteString("○"), missingCount)
	}
	if errCount > 0 {
		fmt.Fprintf(w, "  %s %d addons could not be checked\n",
			color.RedString("✗"), errCount)
	}
}

package output

import (
	"fmt"
	"io"
	"time"

	"github.com/wowsmith/addonsync/internal/model"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct{}

// Format outputs addon statuses as a Markdown report
func (f *MarkdownFormatter) Format(statuses []model.AddonStatus, w io.Writer) error {
	if len(statuses) == 0 {
		fmt.Fprintln(w, "No addons in catalog.")
		return nil
	}

	fmt.Fprintln(w, "# Addon Status Report")
	fmt.Fprintf(w, "\n*Generated: %s*\n\n", time.Now().Format("2006-01-02 15:04"))

	fmt.Fprintln(w, "| Addon | Mode | Installed | Latest | State |")
	fmt.Fprintln(w, "|-------|------|-----------|--------|-------|")

	for i := range statuses {
		s := &statuses[i]
		def := s.Definition

		mode := def.UpdateMode.Display()
		if def.UpdateMode == model.ModeBranch && def.Branch != "" {
			mode = fmt.Sprintf("%s (%s)", mode, def.Branch)
		}

		installed := "-"
		if s.LocalInfo != nil && s.LocalInfo.Version != "" {
			installed = s.LocalInfo.Version
		}
		latest := "-"
		if s.RemoteVersion != "" {
			latest = s.RemoteVersion
		}

		state := s.State.Display()
		if s.State == model.StateError && s.Err != "" {
			state = fmt.Sprintf("%s: %s", state, s.Err)
		}

		fmt.Fprintf(w, "| [%s](https://github.com/%s/%s) | %s | %s | %s | %s |\n",
			def.NiceName, def.Owner, def.Repo, mode, installed, latest, state)
	}

	var updateCount int
	for i := range statuses {
		if statuses[i].State == model.StateUpdateAvailable {
			updateCount++
		}
	}
	if updateCount > 0 {
		fmt.Fprintf(w, "\n**%d updates available.**\n", updateCount)
	}

	return nil
}

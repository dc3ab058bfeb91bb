package output

import (
	"encoding/json"
	"io"

	"github.com/wowsmith/addonsync/internal/model"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format outputs addon statuses as JSON
func (f *JSONFormatter) Format(statuses []model.AddonStatus, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(statuses)
}

// Report wraps statuses with aggregate counts for machine consumers
type Report struct {
	Addons           []model.AddonStatus `json:"addons"`
	UpdatesAvailable int                 `json:"updates_available"`
	NotInstalled     int                 `json:"not_installed"`
	Errors           int                 `json:"errors"`
}

// FormatReport outputs statuses with a summary header
func (f *JSONFormatter) FormatReport(statuses []model.AddonStatus, w io.Writer) error {
	report := Report{Addons: statuses}
	for i := range statuses {
		switch statuses[i].State {
		case model.StateUpdateAvailable:
			report.UpdatesAvailable++
		case model.StateNotInstalled:
			report.NotInstalled++
		case model.StateError:
			report.Errors++
		}
	}

	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(report)
}

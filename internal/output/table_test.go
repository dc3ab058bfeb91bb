package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/wowsmith/addonsync/internal/model"
)

func sampleStatuses() []model.AddonStatus {
	return []model.AddonStatus{
		{
			Definition: model.AddonDefinition{
				LocalName:  "Nihui_uf",
				NiceName:   "Nihui Unit Frames",
				Owner:      "Nihilop",
				Repo:       "nihui_uf",
				UpdateMode: model.ModeBranch,
				Branch:     "main",
			},
			LocalInfo:     &model.AddonInfo{Name: "Nihui_uf", Version: "abc1234"},
			RemoteVersion: "def5678",
			IsInstalled:   true, UpdateAvailable: true,
			State: model.StateUpdateAvailable,
		},
		{
			Definition: model.AddonDefinition{
				LocalName:  "WaypointUI",
				NiceName:   "Waypoint UI",
				Owner:      "Adaptvx",
				Repo:       "WaypointUI",
				UpdateMode: model.ModeRelease,
			},
			State: model.StateNotInstalled,
		},
		{
			Definition: model.AddonDefinition{
				LocalName:  "Nihui_ab",
				NiceName:   "Nihui Action Bars",
				Owner:      "Nihilop",
				Repo:       "nihui_ab",
				UpdateMode: model.ModeBranch,
				Branch:     "main",
			},
			LocalInfo:     &model.AddonInfo{Name: "Nihui_ab", Version: "abc1234"},
			RemoteVersion: "abc1234",
			IsInstalled:   true,
			State:         model.StateUpToDate,
		},
		{
			Definition: model.AddonDefinition{
				LocalName:  "Nihui_iv",
				NiceName:   "Nihui Inventory",
				Owner:      "Nihilop",
				Repo:       "nihui_iv",
				UpdateMode: model.ModeBranch,
				Branch:     "main",
			},
			IsInstalled: true,
			LocalInfo:   &model.AddonInfo{Name: "Nihui_iv", Version: "abc1234"},
			State:       model.StateError,
			Err:         "network error",
		},
	}
}

func TestTableFormat(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	f := &TableFormatter{}
	if err := f.Format(sampleStatuses(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Addon", "Mode", "Installed", "Latest", "State",
		"Nihui Unit Frames",
		"update available",
		"up to date",
		"not installed",
		"network error",
		"1 updates available",
		"1 addons not installed",
		"1 addons could not be checked",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q\noutput:\n%s", want, out)
		}
	}
}

func TestTableFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(nil, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No addons in catalog.") {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestTableFormatNoFooterWhenClean(t *testing.T) {
	color.NoColor = true
	statuses := []model.AddonStatus{
		{
			Definition: model.AddonDefinition{
				LocalName: "Nihui_uf", NiceName: "Nihui Unit Frames",
				Owner: "Nihilop", Repo: "nihui_uf",
				UpdateMode: model.ModeBranch, Branch: "main",
			},
			LocalInfo:     &model.AddonInfo{Name: "Nihui_uf", Version: "abc1234"},
			RemoteVersion: "abc1234",
			IsInstalled:   true,
			State:         model.StateUpToDate,
		},
	}

	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(statuses, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Contains(buf.String(), "━") {
		t.Errorf("footer printed for all-clean statuses:\n%s", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	if err := f.Format(sampleStatuses(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded []model.AddonStatus
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 4 {
		t.Fatalf("decoded %d statuses, want 4", len(decoded))
	}
	if decoded[0].State != model.StateUpdateAvailable {
		t.Errorf("State = %q, want %q", decoded[0].State, model.StateUpdateAvailable)
	}
}

func TestJSONFormatReport(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{Pretty: true}
	if err := f.FormatReport(sampleStatuses(), &buf); err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}

	var report Report
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if report.UpdatesAvailable != 1 {
		t.Errorf("UpdatesAvailable = %d, want 1", report.UpdatesAvailable)
	}
	if report.NotInstalled != 1 {
		t.Errorf("NotInstalled = %d, want 1", report.NotInstalled)
	}
	if report.Errors != 1 {
		t.Errorf("Errors = %d, want 1", report.Errors)
	}
}

func TestMarkdownFormat(t *testing.T) {
	var buf bytes.Buffer
	f := &MarkdownFormatter{}
	if err := f.Format(sampleStatuses(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Addon Status Report",
		"| Addon | Mode | Installed | Latest | State |",
		"[Nihui Unit Frames](https://github.com/Nihilop/nihui_uf)",
		"Error: network error",
		"**1 updates available.**",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q\noutput:\n%s", want, out)
		}
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatTable, "*output.TableFormatter"},
		{FormatJSON, "*output.JSONFormatter"},
		{FormatMarkdown, "*output.MarkdownFormatter"},
		{Format("bogus"), "*output.TableFormatter"},
	}
	for _, tt := range tests {
		f := NewFormatter(tt.format)
		switch tt.want {
		case "*output.TableFormatter":
			if _, ok := f.(*TableFormatter); !ok {
				t.Errorf("NewFormatter(%q) = %T, want TableFormatter", tt.format, f)
			}
		case "*output.JSONFormatter":
			if _, ok := f.(*JSONFormatter); !ok {
				t.Errorf("NewFormatter(%q) = %T, want JSONFormatter", tt.format, f)
			}
		case "*output.MarkdownFormatter":
			if _, ok := f.(*MarkdownFormatter); !ok {
				t.Errorf("NewFormatter(%q) = %T, want MarkdownFormatter", tt.format, f)
			}
		}
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxWidth int
		want     string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "exactly10!", 10, "exactly10!"},
		{"truncated", "this is a long addon name", 10, "this is..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, width := truncateToWidth(tt.in, tt.maxWidth)
			if got != tt.want {
				t.Errorf("truncateToWidth(%q, %d) = %q, want %q", tt.in, tt.maxWidth, got, tt.want)
			}
			if width > tt.maxWidth {
				t.Errorf("reported width %d exceeds max %d", width, tt.maxWidth)
			}
		})
	}
}

func TestDisplayWidthStripsAnsi(t *testing.T) {
	colored := "\x1b[31mred\x1b[0m"
	if got := displayWidth(colored); got != 3 {
		t.Errorf("displayWidth(%q) = %d, want 3", colored, got)
	}
}

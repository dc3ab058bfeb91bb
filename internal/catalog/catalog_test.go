package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wowsmith/addonsync/internal/model"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}
	return path
}

func TestListBuiltins(t *testing.T) {
	defs, err := List("")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(defs) == 0 {
		t.Fatal("List() returned no built-in definitions")
	}
	if defs[0].LocalName != "Nihui_uf" {
		t.Errorf("first builtin = %s, want Nihui_uf", defs[0].LocalName)
	}
	for _, d := range defs {
		if !d.UpdateMode.Valid() {
			t.Errorf("builtin %s has invalid mode %q", d.LocalName, d.UpdateMode)
		}
	}
}

func TestListMissingFileUsesBuiltins(t *testing.T) {
	defs, err := List(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	builtin, err := List("")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(defs) != len(builtin) {
		t.Errorf("missing file changed catalog size: %d vs %d", len(defs), len(builtin))
	}
}

func TestListUserCatalogAppends(t *testing.T) {
	path := writeCatalog(t, `
addons:
  - local_name: MyAddon
    nice_name: My Addon
    github_owner: someone
    github_repo: my-addon
    update_mode: release
`)

	defs, err := List(path)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	last := defs[len(defs)-1]
	if last.LocalName != "MyAddon" {
		t.Errorf("appended entry = %s, want MyAddon", last.LocalName)
	}
	if last.UpdateMode != model.ModeRelease {
		t.Errorf("appended entry mode = %s, want release", last.UpdateMode)
	}
}

func TestListUserCatalogOverridesBuiltinInPlace(t *testing.T) {
	path := writeCatalog(t, `
addons:
  - local_name: Nihui_uf
    nice_name: Unit Frames Fork
    github_owner: forker
    github_repo: Nihui_unitframe
    update_mode: branch
    branch: dev
`)

	defs, err := List(path)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	got, ok := Find(defs, "Nihui_uf")
	if !ok {
		t.Fatal("Nihui_uf missing after override")
	}
	if got.Owner != "forker" || got.Branch != "dev" {
		t.Errorf("builtin not replaced: %+v", got)
	}
	// Order must be preserved: the replaced entry stays first.
	if defs[0].LocalName != "Nihui_uf" {
		t.Errorf("replaced entry moved, first = %s", defs[0].LocalName)
	}
}

func TestListReplaceDropsBuiltins(t *testing.T) {
	path := writeCatalog(t, `
replace: true
addons:
  - local_name: OnlyOne
    github_owner: o
    github_repo: r
    update_mode: release
`)

	defs, err := List(path)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(defs) != 1 || defs[0].LocalName != "OnlyOne" {
		t.Errorf("replace catalog = %+v, want a single OnlyOne entry", defs)
	}
}

func TestListRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing local_name",
			content: `
addons:
  - github_owner: o
    github_repo: r
    update_mode: release
`,
		},
		{
			name: "missing coordinates",
			content: `
addons:
  - local_name: X
    update_mode: release
`,
		},
		{
			name: "bad update mode",
			content: `
addons:
  - local_name: X
    github_owner: o
    github_repo: r
    update_mode: nightly
`,
		},
		{
			name: "duplicate entries",
			content: `
addons:
  - local_name: X
    github_owner: o
    github_repo: r
    update_mode: release
  - local_name: X
    github_owner: o
    github_repo: r2
    update_mode: release
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalog(t, tt.content)
			if _, err := List(path); err == nil {
				t.Error("List() accepted invalid catalog")
			}
		})
	}
}

func TestFind(t *testing.T) {
	defs, err := List("")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	if _, ok := Find(defs, "Nihui_chat"); !ok {
		t.Error("Find() missed a builtin")
	}
	if _, ok := Find(defs, "nope"); ok {
		t.Error("Find() matched a nonexistent addon")
	}
}

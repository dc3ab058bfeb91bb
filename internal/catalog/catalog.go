// Package catalog holds the list of known addon definitions. The built-in
// set covers the Nihui addon suite; users can extend or replace it with a
// catalog.yaml next to the config file.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wowsmith/addonsync/internal/model"
)

// builtins returns the built-in addon definitions. Order defines display
// and reconciliation order.
func builtins() []model.AddonDefinition {
	return []model.AddonDefinition{
		{
			LocalName:   "Nihui_uf",
			NiceName:    "Unit Frames",
			Owner:       "Nihilop",
			Repo:        "Nihui_unitframe",
			Description: "Unit frames addon",
			UpdateMode:  model.ModeBranch,
			Branch:      "main",
		},
		{
			LocalName:   "Nihui_ab",
			NiceName:    "Action Bars",
			Owner:       "Nihilop",
			Repo:        "Nihui_actionbars",
			Description: "Action bars addon",
			UpdateMode:  model.ModeBranch,
			Branch:      "main",
		},
		{
			LocalName:   "Nihui_iv",
			NiceName:    "Inventory",
			Owner:       "Nihilop",
			Repo:        "Nihui_inventory",
			Description: "Inventory addon",
			UpdateMode:  model.ModeBranch,
			Branch:      "main",
		},
		{
			LocalName:   "Nihui_cb",
			NiceName:    "Cast Bars",
			Owner:       "Nihilop",
			Repo:        "Nihui_castbars",
			Description: "Castbars addon",
			UpdateMode:  model.ModeBranch,
			Branch:      "main",
		},
		{
			LocalName:   "Nihui_np",
			NiceName:    "Nameplates",
			Owner:       "Nihilop",
			Repo:        "Nihui_nameplate",
			Description: "Nameplate addon",
			UpdateMode:  model.ModeBranch,
			Branch:      "main",
		},
		{
			LocalName:   "Nihui_chat",
			NiceName:    "Nihui Chatbox",
			Owner:       "Nihilop",
			Repo:        "Nihui_chat",
			Description: "Chatbox addon",
			UpdateMode:  model.ModeBranch,
			Branch:      "main",
		},
		{
			LocalName:   "WaypointUI",
			NiceName:    "Waypoint UI",
			Owner:       "Adaptvx",
			Repo:        "Waypoint-UI",
			Description: "waypoint addon",
			UpdateMode:  model.ModeBranch,
			Branch:      "main",
		},
	}
}

// userCatalog is the on-disk shape of a user catalog file.
type userCatalog struct {
	// Replace drops the built-in definitions entirely instead of
	// appending to them.
	Replace bool                    `yaml:"replace,omitempty"`
	Addons  []model.AddonDefinition `yaml:"addons"`
}

// List returns the addon definitions, merging an optional user catalog file
// on top of the built-ins. A missing file is not an error. User entries with
// a LocalName matching a built-in replace that entry in place; new entries
// are appended in file order.
func List(userPath string) ([]model.AddonDefinition, error) {
	defs := builtins()

	if userPath == "" {
		return defs, nil
	}
	data, err := os.ReadFile(userPath)
	if err != nil {
		if os.IsNotExist(err) {
			return defs, nil
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var user userCatalog
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	if err := validate(user.Addons); err != nil {
		return nil, err
	}

	if user.Replace {
		return user.Addons, nil
	}

	index := make(map[string]int, len(defs))
	for i, d := range defs {
		index[d.LocalName] = i
	}
	for _, d := range user.Addons {
		if i, ok := index[d.LocalName]; ok {
			defs[i] = d
			continue
		}
		index[d.LocalName] = len(defs)
		defs = append(defs, d)
	}

	return defs, nil
}

// Find returns the definition with the given local name.
func Find(defs []model.AddonDefinition, name string) (model.AddonDefinition, bool) {
	for _, d := range defs {
		if d.LocalName == name {
			return d, true
		}
	}
	return model.AddonDefinition{}, false
}

func validate(defs []model.AddonDefinition) error {
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if d.LocalName == "" {
			return fmt.Errorf("catalog entry missing local_name")
		}
		if seen[d.LocalName] {
			return fmt.Errorf("duplicate catalog entry %q", d.LocalName)
		}
		seen[d.LocalName] = true
		if d.Owner == "" || d.Repo == "" {
			return fmt.Errorf("catalog entry %q missing github coordinates", d.LocalName)
		}
		if !d.UpdateMode.Valid() {
			return fmt.Errorf("catalog entry %q has unknown update mode %q", d.LocalName, d.UpdateMode)
		}
	}
	return nil
}

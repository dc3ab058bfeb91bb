// Package inventory takes a snapshot of addon installations under a WoW
// AddOns directory. Versions come from the installer's stamp file when
// present, otherwise from the addon's TOC manifest.
package inventory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wowsmith/addonsync/internal/log"
	"github.com/wowsmith/addonsync/internal/model"
)

// UnknownVersion is recorded when an addon directory exists but its TOC
// declares no version.
const UnknownVersion = "unknown"

// AddOnsDir returns the AddOns directory under a WoW installation root.
func AddOnsDir(wowPath string) string {
	return filepath.Join(wowPath, "_retail_", "Interface", "AddOns")
}

// Scan reads the local versions of all catalog-known addons. The result is
// keyed by local name; addons without a directory are simply absent. The
// snapshot is ephemeral: callers rebuild it on every refresh.
func Scan(wowPath string, defs []model.AddonDefinition) (map[string]model.AddonInfo, error) {
	addonsPath := AddOnsDir(wowPath)
	if _, err := os.Stat(addonsPath); err != nil {
		return nil, fmt.Errorf("AddOns directory not found at %s: %w", addonsPath, err)
	}

	known := make(map[string]bool, len(defs))
	for _, d := range defs {
		known[d.LocalName] = true
	}

	entries, err := os.ReadDir(addonsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read AddOns directory: %w", err)
	}

	installed := make(map[string]model.AddonInfo)
	for _, entry := range entries {
		if !entry.IsDir() || !known[entry.Name()] {
			continue
		}

		name := entry.Name()
		dir := filepath.Join(addonsPath, name)
		version, ok := readStamp(dir)
		if !ok {
			v, err := readTOCVersion(filepath.Join(dir, name+".toc"))
			if err != nil {
				log.Debug("no TOC version", "addon", name, "error", err)
				v = UnknownVersion
			}
			version = v
		}

		installed[name] = model.AddonInfo{
			Name:    name,
			Version: version,
			Path:    dir,
		}
	}

	log.Info("inventory scan complete", "installed", len(installed), "known", len(defs))
	return installed, nil
}

// Package wowpath locates and validates World of Warcraft installations.
// Detection reads the Battle.net agent's product database, which embeds the
// install paths of managed games inside an otherwise binary file.
package wowpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/wowsmith/addonsync/internal/log"
)

// ErrNotFound is returned when no valid installation could be detected.
var ErrNotFound = errors.New("no WoW installation found")

// installPathRe matches drive-letter paths ending in "World of Warcraft"
// embedded in the Battle.net product database.
var installPathRe = regexp.MustCompile(`([A-Z]:[/\\][^\x00-\x1F]*World of Warcraft)`)

// productDBPath returns the Battle.net product database location for the
// current platform, or "" when the platform has no known location.
func productDBPath() string {
	if runtime.GOOS != "windows" {
		return ""
	}
	return `C:\ProgramData\Battle.net\Agent\product.db`
}

// Validate reports whether path looks like a WoW installation root, i.e.
// _retail_/Interface/AddOns exists underneath it.
func Validate(path string) bool {
	addons := filepath.Join(path, "_retail_", "Interface", "AddOns")
	info, err := os.Stat(addons)
	return err == nil && info.IsDir()
}

// Detect scans the Battle.net product database for WoW install paths and
// returns the validated candidates.
func Detect() ([]string, error) {
	dbPath := productDBPath()
	if dbPath == "" {
		return nil, fmt.Errorf("%w: automatic detection is only supported on Windows", ErrNotFound)
	}
	return detectFrom(dbPath)
}

// detectFrom is the testable core of Detect.
func detectFrom(dbPath string) ([]string, error) {
	data, err := os.ReadFile(dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read %s", ErrNotFound, dbPath)
	}

	var paths []string
	seen := make(map[string]bool)
	for _, m := range installPathRe.FindAllString(string(data), -1) {
		p := cleanCandidate(m)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		if Validate(p) {
			paths = append(paths, p)
		} else {
			log.Debug("candidate path failed validation", "path", p)
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: please select the installation manually", ErrNotFound)
	}
	return paths, nil
}

// cleanCandidate strips trailing control garbage from a matched path and
// normalizes separators.
func cleanCandidate(p string) string {
	if i := strings.IndexFunc(p, func(r rune) bool { return r < ' ' }); i >= 0 {
		p = p[:i]
	}
	p = strings.ReplaceAll(p, "/", string(filepath.Separator))
	return p
}

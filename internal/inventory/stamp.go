package inventory

import (
	"os"
	"path/filepath"
	"strings"
)

// stampFile records the version written by the installer. It takes
// precedence over the TOC so commit-tracked addons compare against the
// exact string the resolver produced.
const stampFile = ".addonsync-version"

// WriteStamp records the installed version inside the addon directory.
func WriteStamp(dir, version string) error {
	return os.WriteFile(filepath.Join(dir, stampFile), []byte(version+"\n"), 0644)
}

// readStamp returns the stamped version, if present.
func readStamp(dir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, stampFile))
	if err != nil {
		return "", false
	}
	version := strings.TrimSpace(string(data))
	if version == "" {
		return "", false
	}
	return version, true
}

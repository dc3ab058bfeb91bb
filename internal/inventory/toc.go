package inventory

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// versionRe matches the "## Version:" metadata line of a WoW TOC file.
var versionRe = regexp.MustCompile(`(?m)^##\s*Version:\s*(.+)$`)

// VersionFromTOC extracts the declared version from TOC file content.
func VersionFromTOC(content string) (string, bool) {
	m := versionRe.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// readTOCVersion reads the version line from a TOC file on disk.
func readTOCVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read TOC file: %w", err)
	}
	v, ok := VersionFromTOC(string(data))
	if !ok {
		return "", fmt.Errorf("version not found in %s", path)
	}
	return v, nil
}

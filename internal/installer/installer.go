// Package installer downloads addon archives from GitHub and installs them
// into the WoW AddOns directory.
package installer

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wowsmith/addonsync/internal/gh"
	"github.com/wowsmith/addonsync/internal/inventory"
	"github.com/wowsmith/addonsync/internal/log"
	"github.com/wowsmith/addonsync/internal/model"
)

const downloadTimeout = 5 * time.Minute

// Installer performs addon install/update side effects.
type Installer struct {
	client   *gh.Client
	resolver gh.Resolver
	http     *http.Client
}

// New creates an installer. The resolver is used to report the installed
// version with the same comparison flavor the reconciliation engine uses.
func New(client *gh.Client, resolver gh.Resolver) *Installer {
	return &Installer{
		client:   client,
		resolver: resolver,
		http:     &http.Client{Timeout: downloadTimeout},
	}
}

// Install downloads the addon archive selected by the policy and replaces
// the installation under the AddOns directory. It returns the version
// string now installed. The caller is responsible for clearing the addon's
// notification dedup state on success, and must not clear it on failure.
func (i *Installer) Install(ctx context.Context, wowPath string, def model.AddonDefinition, pol model.ResolvedPolicy) (string, error) {
	var downloadURL, version string

	switch pol.Mode {
	case model.ModeRelease:
		release, err := i.client.LatestRelease(ctx, def.Owner, def.Repo)
		if err != nil {
			return "", err
		}
		downloadURL = release.ZipballURL
		version = release.TagName

	case model.ModeBranch:
		downloadURL = gh.BranchArchiveURL(def.Owner, def.Repo, pol.Branch)
		v, err := i.resolver.Resolve(ctx, def, pol)
		if err != nil {
			return "", err
		}
		version = v

	default:
		return "", fmt.Errorf("unknown update mode %q", pol.Mode)
	}

	log.Info("downloading addon", "addon", def.LocalName, "url", downloadURL)
	archive, err := i.download(ctx, downloadURL)
	if err != nil {
		return "", err
	}
	defer os.Remove(archive)

	if err := installFromZip(archive, wowPath, def.LocalName); err != nil {
		return "", err
	}

	dest := filepath.Join(inventory.AddOnsDir(wowPath), def.LocalName)
	if err := inventory.WriteStamp(dest, version); err != nil {
		log.Warn("failed to record installed version", "addon", def.LocalName, "error", err)
	}

	log.Info("installed addon", "addon", def.LocalName, "version", version)
	return version, nil
}

// Uninstall removes the addon directory.
func (i *Installer) Uninstall(wowPath, name string) error {
	dir := filepath.Join(inventory.AddOnsDir(wowPath), name)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("addon %q is not installed", name)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to uninstall %s: %w", name, err)
	}
	return nil
}

// download fetches a URL to a temp file and returns its path.
func (i *Installer) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("User-Agent", "addonsync")

	resp, err := i.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "addonsync-*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// installFromZip extracts the archive to a staging directory, locates the
// folder holding <localName>.toc (GitHub archives wrap everything in a
// repo-name-ref root folder), and swaps it into the AddOns directory.
func installFromZip(archivePath, wowPath, localName string) error {
	staging, err := os.MkdirTemp("", "addonsync-extract-")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := extractZip(archivePath, staging); err != nil {
		return err
	}

	source, err := findAddonRoot(staging, localName)
	if err != nil {
		return err
	}

	dest := filepath.Join(inventory.AddOnsDir(wowPath), localName)
	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("failed to remove existing addon: %w", err)
	}
	if err := copyDir(source, dest); err != nil {
		return fmt.Errorf("failed to copy addon into place: %w", err)
	}
	return nil
}

// extractZip unpacks archivePath into dir, rejecting entries that would
// escape it.
func extractZip(archivePath, dir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		target := filepath.Join(dir, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(target, filepath.Clean(dir)+string(filepath.Separator)) {
			return fmt.Errorf("archive entry %q escapes extraction directory", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to read archive entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return nil
}

// findAddonRoot locates the extracted folder containing <localName>.toc.
func findAddonRoot(staging, localName string) (string, error) {
	tocName := localName + ".toc"

	// The TOC usually sits at the root of the archive's single wrapper
	// folder; check top-level directories first, then the staging root
	// itself for flat archives.
	entries, err := os.ReadDir(staging)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(staging, e.Name())
		if _, err := os.Stat(filepath.Join(dir, tocName)); err == nil {
			return dir, nil
		}
	}
	if _, err := os.Stat(filepath.Join(staging, tocName)); err == nil {
		return staging, nil
	}

	return "", fmt.Errorf("%s not found in the downloaded archive", tocName)
}

// copyDir recursively copies src into dst.
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := os.Create(target)
		if err != nil {
			return err
		}
		defer out.Close()

		_, err = io.Copy(out, in)
		return err
	})
}

package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wowsmith/addonsync/internal/log"
	"github.com/wowsmith/addonsync/internal/model"
)

// cacheVersion invalidates old entries when the on-disk format changes.
const cacheVersion = 1

// DefaultCacheTTL bounds how long a resolved remote version is reused
// before hitting the API again.
const DefaultCacheTTL = 5 * time.Minute

// cacheEntry is the on-disk shape of one cached resolution.
type cacheEntry struct {
	Version      int       `json:"version"`
	RemoteValue  string    `json:"remote_value"`
	CachedAt     time.Time `json:"cached_at"`
}

// VersionCache stores resolved remote versions to avoid burning API quota
// on repeated status checks.
type VersionCache struct {
	dir string
	ttl time.Duration
}

// NewVersionCache creates a cache rooted in the user cache directory.
func NewVersionCache() (*VersionCache, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	cacheDir = filepath.Join(cacheDir, "addonsync", "versions")
	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &VersionCache{dir: cacheDir, ttl: DefaultCacheTTL}, nil
}

// NewVersionCacheAt creates a cache in a specific directory (used in tests).
func NewVersionCacheAt(dir string, ttl time.Duration) *VersionCache {
	return &VersionCache{dir: dir, ttl: ttl}
}

// key builds a file name for one addon/policy combination. The compare
// flavor is part of the key so switching branch comparison modes never
// mixes incompatible version strings.
func (c *VersionCache) key(def model.AddonDefinition, pol model.ResolvedPolicy, compare BranchCompare) string {
	parts := []string{def.Owner, def.Repo, string(pol.Mode)}
	if pol.Mode == model.ModeBranch {
		parts = append(parts, pol.Branch, string(compare))
	}
	return strings.ReplaceAll(strings.Join(parts, "_"), "/", "_") + ".json"
}

// Get returns a cached remote version if present and fresh.
func (c *VersionCache) Get(def model.AddonDefinition, pol model.ResolvedPolicy, compare BranchCompare) (string, bool) {
	path := filepath.Join(c.dir, c.key(def, pol, compare))

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", false
	}
	if entry.Version != cacheVersion {
		log.Debug("cache version mismatch", "cached", entry.Version, "current", cacheVersion)
		return "", false
	}
	if time.Since(entry.CachedAt) > c.ttl {
		return "", false
	}

	return entry.RemoteValue, true
}

// Set stores a resolved remote version.
func (c *VersionCache) Set(def model.AddonDefinition, pol model.ResolvedPolicy, compare BranchCompare, value string) error {
	entry := cacheEntry{
		Version:     cacheVersion,
		RemoteValue: value,
		CachedAt:    time.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	path := filepath.Join(c.dir, c.key(def, pol, compare))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Clear removes all cached entries.
func (c *VersionCache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stats reports the total and still-fresh entry counts.
func (c *VersionCache) Stats() (total, valid int, err error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		total++

		data, err := os.ReadFile(filepath.Join(c.dir, e.Name()))
		if err != nil {
			continue
		}
		var entry cacheEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		if entry.Version == cacheVersion && time.Since(entry.CachedAt) <= c.ttl {
			valid++
		}
	}
	return total, valid, nil
}

// CachedResolver wraps a Resolver with the version cache.
type CachedResolver struct {
	next    Resolver
	cache   *VersionCache
	compare BranchCompare
}

// NewCachedResolver wraps next with cache. A nil cache disables caching.
func NewCachedResolver(next Resolver, cache *VersionCache, compare BranchCompare) *CachedResolver {
	if compare == "" {
		compare = CompareCommit
	}
	return &CachedResolver{next: next, cache: cache, compare: compare}
}

var _ Resolver = (*CachedResolver)(nil)

// Resolve consults the cache before delegating. Resolution failures are
// never cached.
func (r *CachedResolver) Resolve(ctx context.Context, def model.AddonDefinition, pol model.ResolvedPolicy) (string, error) {
	if r.cache != nil {
		if v, ok := r.cache.Get(def, pol, r.compare); ok {
			log.Debug("cache hit", "repo", RepoSlug(def.Owner, def.Repo))
			return v, nil
		}
	}

	v, err := r.next.Resolve(ctx, def, pol)
	if err != nil {
		return "", err
	}

	if r.cache != nil {
		if err := r.cache.Set(def, pol, r.compare, v); err != nil {
			log.Debug("failed to cache remote version", "repo", RepoSlug(def.Owner, def.Repo), "error", err)
		}
	}
	return v, nil
}

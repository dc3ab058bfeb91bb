package gh

import (
	"context"
	"fmt"

	"github.com/wowsmith/addonsync/internal/inventory"
	"github.com/wowsmith/addonsync/internal/model"
)

// BranchCompare selects what counts as the "remote version" of a
// branch-tracked addon: the head commit SHA or the version declared in the
// addon's TOC manifest on that branch.
type BranchCompare string

const (
	CompareCommit BranchCompare = "commit"
	CompareTOC    BranchCompare = "toc"
)

// Resolver resolves the current remote version for an addon under a
// resolved policy. Implementations must be safe for concurrent use.
type Resolver interface {
	Resolve(ctx context.Context, def model.AddonDefinition, pol model.ResolvedPolicy) (string, error)
}

// RemoteResolver resolves versions against the GitHub API.
type RemoteResolver struct {
	client  *Client
	compare BranchCompare
}

// NewResolver creates a resolver. An empty compare mode defaults to commit
// comparison.
func NewResolver(client *Client, compare BranchCompare) *RemoteResolver {
	if compare == "" {
		compare = CompareCommit
	}
	return &RemoteResolver{client: client, compare: compare}
}

// Ensure RemoteResolver implements Resolver.
var _ Resolver = (*RemoteResolver)(nil)

// Resolve returns the remote version string for the addon. Release mode
// yields the latest release tag; branch mode yields either the short head
// SHA or the TOC-declared version, depending on the configured comparison.
func (r *RemoteResolver) Resolve(ctx context.Context, def model.AddonDefinition, pol model.ResolvedPolicy) (string, error) {
	switch pol.Mode {
	case model.ModeRelease:
		release, err := r.client.LatestRelease(ctx, def.Owner, def.Repo)
		if err != nil {
			return "", err
		}
		return release.TagName, nil

	case model.ModeBranch:
		if r.compare == CompareTOC {
			return r.resolveTOC(ctx, def, pol.Branch)
		}
		return r.client.BranchHead(ctx, def.Owner, def.Repo, pol.Branch)

	default:
		return "", fmt.Errorf("unknown update mode %q", pol.Mode)
	}
}

// resolveTOC reads the addon's TOC manifest from the branch and extracts its
// declared version. Addon repos keep the TOC at the repository root.
func (r *RemoteResolver) resolveTOC(ctx context.Context, def model.AddonDefinition, branch string) (string, error) {
	content, err := r.client.FileContent(ctx, def.Owner, def.Repo, branch, def.LocalName+".toc")
	if err != nil {
		return "", err
	}
	version, ok := inventory.VersionFromTOC(content)
	if !ok {
		return "", fmt.Errorf("%w: no version in %s.toc on %s", ErrNotFound, def.LocalName, branch)
	}
	return version, nil
}

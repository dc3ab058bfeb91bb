// Package gh wraps the GitHub API for addon version resolution and
// downloads.
package gh

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/wowsmith/addonsync/internal/log"
)

// shortSHALen is the abbreviated commit length used as a branch version
// identifier. Must stay consistent within a session for comparisons to work.
const shortSHALen = 7

// ReleaseInfo is the subset of a GitHub release the engine cares about.
type ReleaseInfo struct {
	TagName    string
	Name       string
	ZipballURL string
}

// Client wraps the GitHub API client.
type Client struct {
	gh *github.Client
}

// NewClient creates a GitHub client. An empty token falls back to the
// GITHUB_TOKEN environment variable; with no token at all the client is
// unauthenticated, which is fine for public addon repos at a lower rate
// limit.
func NewClient(token string) *Client {
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	if token == "" {
		log.Debug("no GitHub token, using unauthenticated client")
		return &Client{gh: github.NewClient(nil)}
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return &Client{gh: github.NewClient(tc)}
}

// LatestRelease fetches the latest published release of a repository.
func (c *Client) LatestRelease(ctx context.Context, owner, repo string) (*ReleaseInfo, error) {
	release, _, err := c.gh.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return nil, classify(fmt.Sprintf("latest release of %s/%s", owner, repo), err)
	}
	log.Debug("fetched latest release", "repo", owner+"/"+repo, "tag", release.GetTagName())
	return &ReleaseInfo{
		TagName:    release.GetTagName(),
		Name:       release.GetName(),
		ZipballURL: release.GetZipballURL(),
	}, nil
}

// BranchHead returns the abbreviated commit SHA at the head of a branch.
func (c *Client) BranchHead(ctx context.Context, owner, repo, branch string) (string, error) {
	sha, _, err := c.gh.Repositories.GetCommitSHA1(ctx, owner, repo, branch, "")
	if err != nil {
		return "", classify(fmt.Sprintf("head of %s/%s@%s", owner, repo, branch), err)
	}
	if len(sha) > shortSHALen {
		sha = sha[:shortSHALen]
	}
	log.Debug("fetched branch head", "repo", owner+"/"+repo, "branch", branch, "sha", sha)
	return sha, nil
}

// FileContent downloads a file from a branch of a repository.
func (c *Client) FileContent(ctx context.Context, owner, repo, branch, path string) (string, error) {
	rc, _, err := c.gh.Repositories.DownloadContents(ctx, owner, repo, path, &github.RepositoryContentGetOptions{
		Ref: branch,
	})
	if err != nil {
		return "", classify(fmt.Sprintf("download %s from %s/%s@%s", path, owner, repo, branch), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", &NetworkError{Op: fmt.Sprintf("read %s from %s/%s", path, owner, repo), Err: err}
	}
	return string(data), nil
}

// Branches lists the branch names of a repository.
func (c *Client) Branches(ctx context.Context, owner, repo string) ([]string, error) {
	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var names []string
	for {
		branches, resp, err := c.gh.Repositories.ListBranches(ctx, owner, repo, opts)
		if err != nil {
			return nil, classify(fmt.Sprintf("list branches of %s/%s", owner, repo), err)
		}
		for _, b := range branches {
			names = append(names, b.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}

// Readme fetches the decoded README of a repository at the given ref.
func (c *Client) Readme(ctx context.Context, owner, repo, ref string) (string, error) {
	content, _, err := c.gh.Repositories.GetReadme(ctx, owner, repo, &github.RepositoryContentGetOptions{
		Ref: ref,
	})
	if err != nil {
		return "", classify(fmt.Sprintf("readme of %s/%s", owner, repo), err)
	}
	text, err := content.GetContent()
	if err != nil {
		return "", &NetworkError{Op: fmt.Sprintf("decode readme of %s/%s", owner, repo), Err: err}
	}
	return text, nil
}

// BranchArchiveURL returns the zip archive URL for a branch head. GitHub
// serves these without authentication for public repos.
func BranchArchiveURL(owner, repo, branch string) string {
	return fmt.Sprintf("https://github.com/%s/%s/archive/refs/heads/%s.zip", owner, repo, branch)
}

// RepoSlug joins owner and repo for logging and cache keys.
func RepoSlug(owner, repo string) string {
	return strings.Join([]string{owner, repo}, "/")
}

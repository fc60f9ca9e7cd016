package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"text/template"

	gh "github.com/google/go-github/v60/github"
)

// Client wraps the GitHub API for release-wheel operations.
type Client struct {
	gh           *gh.Client
	httpClient   *http.Client
	defaultOwner string
	wheelTmpl    *template.Template
	wheelDir     string
}

// New creates a GitHub client with the given token, default owner, wheel
// name pattern, and download directory.
func New(token, defaultOwner, wheelPattern, wheelDir string) (*Client, error) {
	tmpl, err := template.New("wheel").Parse(wheelPattern)
	if err != nil {
		return nil, fmt.Errorf("parsing wheel pattern %q: %w", wheelPattern, err)
	}

	httpClient := &http.Client{}
	ghClient := gh.NewClient(httpClient).WithAuthToken(token)

	return &Client{
		gh:           ghClient,
		httpClient:   httpClient,
		defaultOwner: defaultOwner,
		wheelTmpl:    tmpl,
		wheelDir:     wheelDir,
	}, nil
}

// newWithClients creates a Client with injected HTTP and GitHub clients (for testing).
func newWithClients(ghClient *gh.Client, httpClient *http.Client, defaultOwner, wheelPattern, wheelDir string) (*Client, error) {
	tmpl, err := template.New("wheel").Parse(wheelPattern)
	if err != nil {
		return nil, fmt.Errorf("parsing wheel pattern %q: %w", wheelPattern, err)
	}
	return &Client{
		gh:           ghClient,
		httpClient:   httpClient,
		defaultOwner: defaultOwner,
		wheelTmpl:    tmpl,
		wheelDir:     wheelDir,
	}, nil
}

// ResolveVersion resolves "latest" to the actual release tag, or returns the version as-is.
func (c *Client) ResolveVersion(ctx context.Context, owner, repo, version string) (string, error) {
	if owner == "" {
		owner = c.defaultOwner
	}

	if version == "latest" || version == "" {
		release, _, err := c.gh.Repositories.GetLatestRelease(ctx, owner, repo)
		if err != nil {
			return "", fmt.Errorf("getting latest release for %s/%s: %w", owner, repo, err)
		}
		return release.GetTagName(), nil
	}
	return version, nil
}

// DownloadWheel downloads the wheel asset matching the configured pattern
// from the given release into the wheel directory and returns its path.
func (c *Client) DownloadWheel(ctx context.Context, owner, repo, version, pkgName string) (string, error) {
	if owner == "" {
		owner = c.defaultOwner
	}

	release, _, err := c.gh.Repositories.GetReleaseByTag(ctx, owner, repo, version)
	if err != nil {
		return "", fmt.Errorf("getting release %s for %s/%s: %w", version, owner, repo, err)
	}

	expected, err := ResolveWheelName(c.wheelTmpl, pkgName, version)
	if err != nil {
		return "", err
	}

	// Collect asset names and find the matching one
	var assetNames []string
	var matchedAsset *gh.ReleaseAsset
	for _, a := range release.Assets {
		name := a.GetName()
		assetNames = append(assetNames, name)
		if name == expected {
			matchedAsset = a
		}
	}

	if matchedAsset == nil {
		_, findErr := FindAsset(assetNames, expected)
		return "", findErr
	}

	rc, _, err := c.gh.Repositories.DownloadReleaseAsset(ctx, owner, repo, matchedAsset.GetID(), c.httpClient)
	if err != nil {
		return "", fmt.Errorf("downloading wheel %s: %w", expected, err)
	}
	defer rc.Close()

	if err := os.MkdirAll(c.wheelDir, 0755); err != nil {
		return "", fmt.Errorf("creating wheel dir %s: %w", c.wheelDir, err)
	}

	destPath := filepath.Join(c.wheelDir, expected)
	f, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating file %s: %w", destPath, err)
	}
	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return "", fmt.Errorf("writing wheel to %s: %w", destPath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", destPath, err)
	}

	return destPath, nil
}

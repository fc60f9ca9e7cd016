// Package orchestrator ties the pip wrapper to the state store and the
// GitHub wheel fetcher. Commands talk to it, not to the pieces directly.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ecairns22/PipCaptain/internal/config"
	ghclient "github.com/ecairns22/PipCaptain/internal/github"
	"github.com/ecairns22/PipCaptain/internal/index"
	"github.com/ecairns22/PipCaptain/internal/pip"
	"github.com/ecairns22/PipCaptain/internal/state"
)

// Orchestrator coordinates pip invocations with inventory bookkeeping.
// The GitHub client is nil when no token is configured; only Fetch
// needs it.
type Orchestrator struct {
	cfg   *config.Config
	store *state.Store
	pip   *pip.Pip
	gh    *ghclient.Client
}

// New creates an Orchestrator from the loaded config and initialized parts.
func New(cfg *config.Config, store *state.Store, p *pip.Pip, gh *ghclient.Client) *Orchestrator {
	return &Orchestrator{
		cfg:   cfg,
		store: store,
		pip:   p,
		gh:    gh,
	}
}

// InstallRequest holds the parameters for an install.
type InstallRequest struct {
	Package string   // name or requirement specifier
	Options []string // extra pip options, passed through verbatim
}

// InstallResult holds the outcome of a successful install.
type InstallResult struct {
	Package string // base name recorded in the inventory
	Version string // best-effort, empty when pip's output gave none
}

// Install runs pip install and records the outcome.
func (o *Orchestrator) Install(ctx context.Context, req InstallRequest, step func(string)) (*InstallResult, error) {
	if err := o.checkPip(); err != nil {
		return nil, err
	}

	step(fmt.Sprintf("installing %s", req.Package))
	stdout, _, err := o.pip.Install(ctx, req.Package, req.Options...)
	name := BaseName(req.Package)
	if err != nil {
		o.journalFailure(ctx, name, "install", err)
		return nil, err
	}

	version := parseInstalledVersion(stdout, name)
	now := time.Now()
	if err := o.store.UpsertPackage(ctx, &state.Package{
		Name:        name,
		Version:     version,
		InstalledAt: now,
		UpdatedAt:   now,
	}); err != nil {
		return nil, err
	}
	if err := o.journal(ctx, name, "install", 0, map[string]string{"argument": req.Package}); err != nil {
		return nil, err
	}

	step(fmt.Sprintf("recorded %s in the inventory", name))
	return &InstallResult{Package: name, Version: version}, nil
}

// Uninstall runs pip uninstall -y and records the outcome.
func (o *Orchestrator) Uninstall(ctx context.Context, pkg string, step func(string)) error {
	if err := o.checkPip(); err != nil {
		return err
	}

	step(fmt.Sprintf("uninstalling %s", pkg))
	_, _, err := o.pip.Uninstall(ctx, pkg)
	name := BaseName(pkg)
	if err != nil {
		o.journalFailure(ctx, name, "uninstall", err)
		return err
	}

	if err := o.store.DeletePackage(ctx, name); err != nil && !errors.Is(err, state.ErrNotFound) {
		return err
	}
	return o.journal(ctx, name, "uninstall", 0, nil)
}

// Wheel runs pip wheel and records the outcome. Built wheels land in the
// working directory (the environment root) unless options say otherwise.
func (o *Orchestrator) Wheel(ctx context.Context, pkg string, options []string, step func(string)) error {
	if err := o.checkPip(); err != nil {
		return err
	}

	step(fmt.Sprintf("building wheel for %s", pkg))
	_, _, err := o.pip.Wheel(ctx, pkg, options...)
	name := BaseName(pkg)
	if err != nil {
		o.journalFailure(ctx, name, "wheel", err)
		return err
	}
	return o.journal(ctx, name, "wheel", 0, nil)
}

// Search runs pip search and returns the parsed results. Searches are
// not journaled.
func (o *Orchestrator) Search(ctx context.Context, term string) (map[string]string, error) {
	if err := o.checkPip(); err != nil {
		return nil, err
	}
	return o.pip.Search(ctx, term)
}

// FetchRequest holds the parameters for a release-wheel fetch.
type FetchRequest struct {
	Repo    string // "repo" or "owner/repo"
	Version string // "latest" or explicit tag
	Package string // wheel package name, defaults to the repo name
	Install bool   // install the wheel after downloading
}

// FetchResult holds the outcome of a fetch.
type FetchResult struct {
	Version   string
	WheelPath string
	Installed bool
}

// Fetch downloads a wheel asset from a GitHub release, optionally
// installing it afterwards.
func (o *Orchestrator) Fetch(ctx context.Context, req FetchRequest, step func(string)) (*FetchResult, error) {
	if o.gh == nil {
		return nil, fmt.Errorf("github.token is not configured; set it in %s", config.DefaultPath())
	}

	owner := ""
	repo := req.Repo
	if strings.Contains(repo, "/") {
		parts := strings.SplitN(repo, "/", 2)
		owner, repo = parts[0], parts[1]
	}
	pkgName := req.Package
	if pkgName == "" {
		pkgName = repo
	}

	version, err := o.gh.ResolveVersion(ctx, owner, repo, req.Version)
	if err != nil {
		return nil, fmt.Errorf("resolving version: %w", err)
	}
	step(fmt.Sprintf("fetching %s %s", pkgName, version))

	wheelPath, err := o.gh.DownloadWheel(ctx, owner, repo, version, pkgName)
	if err != nil {
		return nil, fmt.Errorf("fetching wheel: %w", err)
	}
	if err := o.journal(ctx, pkgName, "fetch", 0, map[string]string{"wheel": wheelPath, "version": version}); err != nil {
		return nil, err
	}

	result := &FetchResult{Version: version, WheelPath: wheelPath}
	if !req.Install {
		return result, nil
	}

	step(fmt.Sprintf("installing %s", wheelPath))
	if _, _, err := o.pip.Install(ctx, wheelPath); err != nil {
		o.journalFailure(ctx, pkgName, "install", err)
		return nil, err
	}
	now := time.Now()
	if err := o.store.UpsertPackage(ctx, &state.Package{
		Name:        pkgName,
		Version:     strings.TrimPrefix(version, "v"),
		InstalledAt: now,
		UpdatedAt:   now,
	}); err != nil {
		return nil, err
	}
	if err := o.journal(ctx, pkgName, "install", 0, map[string]string{"argument": wheelPath}); err != nil {
		return nil, err
	}
	result.Installed = true
	return result, nil
}

// Packages returns the recorded inventory.
func (o *Orchestrator) Packages(ctx context.Context) ([]*state.Package, error) {
	return o.store.ListPackages(ctx)
}

// History returns recorded operations, newest first; pkg may be empty.
func (o *Orchestrator) History(ctx context.Context, pkg string) ([]*state.Operation, error) {
	return o.store.ListOperations(ctx, pkg)
}

// StatusInfo summarizes the environment for the status command.
type StatusInfo struct {
	PipPath   string
	PipExists bool
	IndexURL  string
	IndexErr  error
	Packages  int
}

// Status reports pip presence, index reachability, and inventory size.
func (o *Orchestrator) Status(ctx context.Context) (*StatusInfo, error) {
	info := &StatusInfo{
		PipPath:   o.pip.Path(),
		PipExists: o.pip.Exists(),
		IndexURL:  o.cfg.Index.URL,
	}
	info.IndexErr = index.Reachable(ctx, o.cfg.Index.URL, 5*time.Second)

	pkgs, err := o.store.ListPackages(ctx)
	if err != nil {
		return nil, err
	}
	info.Packages = len(pkgs)
	return info, nil
}

func (o *Orchestrator) checkPip() error {
	if !o.pip.Exists() {
		return fmt.Errorf("pip not found at %s; is the environment root correct?", o.pip.Path())
	}
	return nil
}

func (o *Orchestrator) journal(ctx context.Context, pkg, action string, exitCode int, detail map[string]string) error {
	return o.store.AppendOperation(ctx, &state.Operation{
		Package:   pkg,
		Action:    action,
		ExitCode:  exitCode,
		Timestamp: time.Now(),
		Detail:    detail,
	})
}

// journalFailure records a failed pip invocation. Launch failures are not
// journaled; nothing actually ran.
func (o *Orchestrator) journalFailure(ctx context.Context, pkg, action string, err error) {
	var cmdErr *pip.CommandError
	if !errors.As(err, &cmdErr) {
		return
	}
	detail := map[string]string{}
	if cmdErr.Output != "" {
		detail["output"] = cmdErr.Output
	}
	// Best effort; the pip error is what the caller needs to see.
	_ = o.journal(ctx, pkg, action, cmdErr.Code, detail)
}

// Package pip is a low-level wrapper around the pip executable inside an
// environment root. It is meant to be driven by the orchestrator, not
// used directly.
package pip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ecairns22/PipCaptain/internal/runner"
)

// Pip invokes `<root>/bin/pip` with a fixed set of global arguments.
// Every invocation runs with the environment root as working directory
// and a copy of the process environment captured at construction time.
// Not safe for concurrent use against the same root.
type Pip struct {
	root       string
	globalArgs []string
	env        []string
	runner     runner.CommandRunner
	diag       io.Writer
}

// Option customizes a Pip wrapper at construction time.
type Option func(*Pip)

// WithCacheDir adds `--cache-dir <dir>` to the global arguments.
// `~` and `$VAR` references in dir are expanded once, here.
func WithCacheDir(dir string) Option {
	return func(p *Pip) {
		if dir == "" {
			return
		}
		p.globalArgs = append(p.globalArgs, "--cache-dir", expandPath(dir))
	}
}

// WithRunner replaces the command runner (used by tests).
func WithRunner(r runner.CommandRunner) Option {
	return func(p *Pip) { p.runner = r }
}

// WithEnv replaces the captured process environment.
func WithEnv(env []string) Option {
	return func(p *Pip) { p.env = env }
}

// WithDiagnostics redirects the output dump written when pip fails.
func WithDiagnostics(w io.Writer) Option {
	return func(p *Pip) { p.diag = w }
}

// New creates a wrapper for the pip executable under root. The global
// argument list is assembled once and never mutated afterwards.
func New(root string, opts ...Option) *Pip {
	p := &Pip{
		root:       root,
		globalArgs: []string{"--disable-pip-version-check"},
		env:        os.Environ(),
		runner:     &runner.OSRunner{},
		diag:       os.Stderr,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RelPath is the path to pip relative to the environment root.
func (p *Pip) RelPath() string {
	return filepath.Join("bin", "pip")
}

// Path is the absolute path to the pip executable.
func (p *Pip) Path() string {
	return filepath.Join(p.root, p.RelPath())
}

// Root returns the environment root directory.
func (p *Pip) Root() string {
	return p.root
}

// Exists reports whether the pip executable is present under the root.
func (p *Pip) Exists() bool {
	info, err := os.Stat(p.Path())
	return err == nil && info.Mode().IsRegular()
}

// execute runs pip with the global arguments plus args, cwd pinned to the
// environment root. Returns trimmed (stdout, stderr). A non-zero exit
// dumps the captured output to the diagnostics writer and returns a
// *CommandError; a process that never started returns a *LaunchError.
func (p *Pip) execute(ctx context.Context, args ...string) (string, string, error) {
	full := append(append([]string{}, p.globalArgs...), args...)
	stdout, stderr, err := p.runner.Run(ctx, runner.Options{Dir: p.root, Env: p.env}, p.RelPath(), full...)
	stdout = strings.TrimSpace(stdout)
	stderr = strings.TrimSpace(stderr)
	if err != nil {
		// An error carrying an exit code means pip ran and failed;
		// anything else means it never started.
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			fmt.Fprintln(p.diag, stdout, stderr)
			return stdout, stderr, &CommandError{Code: coder.ExitCode(), Output: combineOutput(stdout, stderr)}
		}
		return stdout, stderr, &LaunchError{Prog: p.Path(), Err: err}
	}
	return stdout, stderr, nil
}

// Install runs `pip install <name> <options...>`.
func (p *Pip) Install(ctx context.Context, name string, options ...string) (string, string, error) {
	args := append([]string{"install", name}, options...)
	stdout, stderr, err := p.execute(ctx, args...)
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return stdout, stderr, &InstallError{Package: name, cmdErr: cmdErr}
	}
	return stdout, stderr, err
}

// Uninstall runs `pip uninstall -y <name>`.
func (p *Pip) Uninstall(ctx context.Context, name string) (string, string, error) {
	stdout, stderr, err := p.execute(ctx, "uninstall", "-y", name)
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return stdout, stderr, &RemovalError{Package: name, cmdErr: cmdErr}
	}
	return stdout, stderr, err
}

// Wheel runs `pip wheel <name> <options...>`.
func (p *Pip) Wheel(ctx context.Context, name string, options ...string) (string, string, error) {
	args := append([]string{"wheel", name}, options...)
	stdout, stderr, err := p.execute(ctx, args...)
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return stdout, stderr, &WheelError{Package: name, cmdErr: cmdErr}
	}
	return stdout, stderr, err
}

// Search runs `pip search <term>` and parses stdout into a map of
// package name to description.
func (p *Pip) Search(ctx context.Context, term string) (map[string]string, error) {
	stdout, _, err := p.execute(ctx, "search", term)
	if err != nil {
		return nil, err
	}
	return ParseSearchResults(stdout), nil
}

func combineOutput(stdout, stderr string) string {
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	default:
		return stdout + "\n" + stderr
	}
}

// expandPath expands a leading ~ and any $VAR references.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + strings.TrimPrefix(path, "~")
		}
	}
	return os.ExpandEnv(path)
}

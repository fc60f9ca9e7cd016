package pip

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ecairns22/PipCaptain/internal/runner"
)

func newTestPip(t *testing.T, fake *runner.FakeRunner, opts ...Option) *Pip {
	t.Helper()
	opts = append([]Option{
		WithRunner(fake),
		WithEnv([]string{"PATH=/usr/bin"}),
		WithDiagnostics(&bytes.Buffer{}),
	}, opts...)
	return New(t.TempDir(), opts...)
}

func TestExists(t *testing.T) {
	root := t.TempDir()
	p := New(root, WithRunner(runner.NewFakeRunner()))

	if p.Exists() {
		t.Error("Exists should be false before bin/pip is created")
	}

	if err := os.MkdirAll(filepath.Join(root, "bin"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "bin", "pip"), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	if !p.Exists() {
		t.Error("Exists should be true once bin/pip is present")
	}
}

func TestExistsIgnoresDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "bin", "pip"), 0755); err != nil {
		t.Fatal(err)
	}
	p := New(root)
	if p.Exists() {
		t.Error("a directory at bin/pip is not an executable")
	}
}

func TestInstallSuccess(t *testing.T) {
	fake := runner.NewFakeRunner()
	fake.SetFallback(runner.Response{Stdout: "Successfully installed requests-2.31.0\n", Stderr: "  \n"})
	p := newTestPip(t, fake)

	stdout, stderr, err := p.Install(context.Background(), "requests")
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if stdout != "Successfully installed requests-2.31.0" {
		t.Errorf("stdout = %q, want trimmed output", stdout)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty after trimming", stderr)
	}

	call := fake.LastCall()
	want := []string{"--disable-pip-version-check", "install", "requests"}
	if strings.Join(call.Args, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", call.Args, want)
	}
	if call.Name != filepath.Join("bin", "pip") {
		t.Errorf("command = %q, want bin/pip", call.Name)
	}
	if call.Opts.Dir != p.Root() {
		t.Errorf("cwd = %q, want environment root %q", call.Opts.Dir, p.Root())
	}
	if len(call.Opts.Env) != 1 || call.Opts.Env[0] != "PATH=/usr/bin" {
		t.Errorf("env = %v, want the stored environment", call.Opts.Env)
	}
}

func TestInstallPassesOptions(t *testing.T) {
	fake := runner.NewFakeRunner()
	p := newTestPip(t, fake)

	if _, _, err := p.Install(context.Background(), "flask", "--upgrade", "--no-deps"); err != nil {
		t.Fatalf("Install: %v", err)
	}
	args := strings.Join(fake.LastCall().Args, " ")
	if !strings.HasSuffix(args, "install flask --upgrade --no-deps") {
		t.Errorf("args = %q", args)
	}
}

func TestInstallFailure(t *testing.T) {
	fake := runner.NewFakeRunner()
	fake.SetFallback(runner.Response{
		Stdout: "Collecting nosuchpkg",
		Stderr: "ERROR: No matching distribution found for nosuchpkg",
		Err:    &runner.ExitError{Code: 1},
	})
	p := newTestPip(t, fake)

	_, _, err := p.Install(context.Background(), "nosuchpkg")
	var instErr *InstallError
	if !errors.As(err, &instErr) {
		t.Fatalf("expected *InstallError, got %T: %v", err, err)
	}
	if instErr.Package != "nosuchpkg" {
		t.Errorf("Package = %q", instErr.Package)
	}
	if instErr.ExitCode() != 1 {
		t.Errorf("ExitCode = %d, want 1", instErr.ExitCode())
	}
	if !strings.Contains(instErr.Output(), "No matching distribution") {
		t.Errorf("Output = %q, should carry stderr", instErr.Output())
	}

	// the domain error still unwraps to the generic one
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Error("InstallError should unwrap to *CommandError")
	}
}

func TestUninstallArgsAndFailureKind(t *testing.T) {
	fake := runner.NewFakeRunner()
	fake.SetFallback(runner.Response{Stderr: "not installed", Err: &runner.ExitError{Code: 2}})
	p := newTestPip(t, fake)

	_, _, err := p.Uninstall(context.Background(), "requests")
	var rmErr *RemovalError
	if !errors.As(err, &rmErr) {
		t.Fatalf("expected *RemovalError, got %T", err)
	}
	if rmErr.Package != "requests" || rmErr.ExitCode() != 2 {
		t.Errorf("RemovalError = %+v", rmErr)
	}
	var instErr *InstallError
	if errors.As(err, &instErr) {
		t.Error("uninstall failures must not be install failures")
	}

	args := strings.Join(fake.LastCall().Args, " ")
	if !strings.HasSuffix(args, "uninstall -y requests") {
		t.Errorf("args = %q, want uninstall -y", args)
	}
}

func TestWheelFailureKind(t *testing.T) {
	fake := runner.NewFakeRunner()
	fake.SetFallback(runner.Response{Stderr: "build failed", Err: &runner.ExitError{Code: 1}})
	p := newTestPip(t, fake)

	_, _, err := p.Wheel(context.Background(), "numpy", "--no-binary", ":all:")
	var whlErr *WheelError
	if !errors.As(err, &whlErr) {
		t.Fatalf("expected *WheelError, got %T", err)
	}
	if whlErr.Package != "numpy" {
		t.Errorf("Package = %q", whlErr.Package)
	}

	args := strings.Join(fake.LastCall().Args, " ")
	if !strings.HasSuffix(args, "wheel numpy --no-binary :all:") {
		t.Errorf("args = %q", args)
	}
}

func TestLaunchFailure(t *testing.T) {
	fake := runner.NewFakeRunner()
	fake.SetFallback(runner.Response{Err: errors.New("fork/exec bin/pip: no such file or directory")})
	p := newTestPip(t, fake)

	_, _, err := p.Install(context.Background(), "requests")
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("expected *LaunchError, got %T: %v", err, err)
	}
	if launchErr.Prog != p.Path() {
		t.Errorf("Prog = %q, want resolved path %q", launchErr.Prog, p.Path())
	}
	if !strings.Contains(launchErr.Error(), "no such file") {
		t.Errorf("Error() = %q, should include the OS error", launchErr.Error())
	}
}

func TestFailureWritesDiagnostics(t *testing.T) {
	fake := runner.NewFakeRunner()
	fake.SetFallback(runner.Response{Stdout: "partial output", Stderr: "boom", Err: &runner.ExitError{Code: 1}})
	var diag bytes.Buffer
	p := New(t.TempDir(), WithRunner(fake), WithDiagnostics(&diag))

	if _, _, err := p.Install(context.Background(), "requests"); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(diag.String(), "partial output") || !strings.Contains(diag.String(), "boom") {
		t.Errorf("diagnostics = %q, should carry captured output", diag.String())
	}
}

func TestCacheDirGlobalArg(t *testing.T) {
	t.Setenv("PC_CACHE_BASE", "/var/cache")
	fake := runner.NewFakeRunner()
	p := newTestPip(t, fake, WithCacheDir("$PC_CACHE_BASE/pip"))

	if _, _, err := p.Install(context.Background(), "requests"); err != nil {
		t.Fatalf("Install: %v", err)
	}
	args := strings.Join(fake.LastCall().Args, " ")
	want := "--disable-pip-version-check --cache-dir /var/cache/pip install requests"
	if args != want {
		t.Errorf("args = %q, want %q", args, want)
	}
}

func TestGlobalArgsNotSharedBetweenInstances(t *testing.T) {
	fake := runner.NewFakeRunner()
	withCache := newTestPip(t, fake, WithCacheDir("/tmp/cache"))
	plain := newTestPip(t, fake)

	ctx := context.Background()
	if _, _, err := withCache.Install(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := plain.Install(ctx, "b"); err != nil {
		t.Fatal(err)
	}

	args := strings.Join(fake.LastCall().Args, " ")
	if strings.Contains(args, "--cache-dir") {
		t.Errorf("cache dir leaked across instances: %q", args)
	}
}

func TestSearch(t *testing.T) {
	fake := runner.NewFakeRunner()
	fake.SetFallback(runner.Response{Stdout: "foo - bar baz\nno-separator-line\nqux - quux<br>extra"})
	p := newTestPip(t, fake)

	got, err := p.Search(context.Background(), "foo")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := map[string]string{"foo": "bar baz", "qux": "quux"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("got[%q] = %q, want %q", k, got[k], v)
		}
	}

	args := strings.Join(fake.LastCall().Args, " ")
	if !strings.HasSuffix(args, "search foo") {
		t.Errorf("args = %q", args)
	}
}

func TestSearchEmptyOutput(t *testing.T) {
	fake := runner.NewFakeRunner()
	p := newTestPip(t, fake)

	got, err := p.Search(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil map", got)
	}
}

func TestParseSearchResults(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "whitespace name skipped",
			input: "   - orphaned description",
			want:  map[string]string{},
		},
		{
			name:  "crlf lines",
			input: "foo - bar\r\nbaz - qux\r\n",
			want:  map[string]string{"foo": "bar", "baz": "qux"},
		},
		{
			name:  "description split only once",
			input: "foo - a - b - c",
			want:  map[string]string{"foo": "a - b - c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSearchResults(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("got[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

func TestOSRunnerCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on sh")
	}

	r := &OSRunner{}
	stdout, stderr, err := r.Run(context.Background(), Options{}, "sh", "-c", "echo out; echo err 1>&2")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(stdout) != "out" {
		t.Errorf("stdout = %q", stdout)
	}
	if strings.TrimSpace(stderr) != "err" {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestOSRunnerDirAndEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on sh")
	}

	dir := t.TempDir()
	r := &OSRunner{}
	stdout, _, err := r.Run(context.Background(), Options{Dir: dir, Env: []string{"PC_TEST=hello"}}, "sh", "-c", "pwd; echo $PC_TEST")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected output: %q", stdout)
	}
	// Dir may resolve through symlinks (e.g. /tmp on macOS), so match the suffix.
	if !strings.HasSuffix(lines[0], strings.TrimPrefix(dir, "/private")) && lines[0] != dir {
		t.Errorf("pwd = %q, want %q", lines[0], dir)
	}
	if lines[1] != "hello" {
		t.Errorf("env = %q, want hello", lines[1])
	}
}

func TestExitCodeFromExecError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on sh")
	}

	r := &OSRunner{}
	_, _, err := r.Run(context.Background(), Options{}, "sh", "-c", "exit 3")
	if err == nil {
		t.Fatal("expected error")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *exec.ExitError, got %T", err)
	}
	if ExitCode(err) != 3 {
		t.Errorf("ExitCode = %d, want 3", ExitCode(err))
	}
}

func TestExitCodeFromFake(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &ExitError{Code: 7})
	if ExitCode(err) != 7 {
		t.Errorf("ExitCode = %d, want 7", ExitCode(err))
	}
	if ExitCode(errors.New("no code")) != -1 {
		t.Error("errors without a code should map to -1")
	}
}

func TestFakeRunnerMatching(t *testing.T) {
	f := NewFakeRunner()
	f.SetResponse("pip install requests", Response{Stdout: "exact"})
	f.SetResponse("pip install", Response{Stdout: "partial"})
	f.SetResponse("pip", Response{Stdout: "name"})
	f.SetFallback(Response{Stdout: "fallback"})

	ctx := context.Background()
	if out, _, _ := f.Run(ctx, Options{}, "pip", "install", "requests"); out != "exact" {
		t.Errorf("exact match = %q", out)
	}
	if out, _, _ := f.Run(ctx, Options{}, "pip", "install", "flask"); out != "partial" {
		t.Errorf("partial match = %q", out)
	}
	if out, _, _ := f.Run(ctx, Options{}, "pip", "wheel", "flask"); out != "name" {
		t.Errorf("name match = %q", out)
	}
	if out, _, _ := f.Run(ctx, Options{}, "apt", "update"); out != "fallback" {
		t.Errorf("fallback = %q", out)
	}

	if f.CallCount("pip") != 3 {
		t.Errorf("CallCount(pip) = %d, want 3", f.CallCount("pip"))
	}
	last := f.LastCall()
	if last.Name != "apt" {
		t.Errorf("LastCall.Name = %q", last.Name)
	}
}

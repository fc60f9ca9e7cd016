package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Options controls where and with what environment a command runs.
// A zero Dir inherits the current working directory; a nil Env inherits
// the current process environment.
type Options struct {
	Dir string
	Env []string
}

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, opts Options, name string, args ...string) (stdout, stderr string, err error)
}

// OSRunner executes commands via os/exec.
type OSRunner struct{}

func (r *OSRunner) Run(ctx context.Context, opts Options, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Env = opts.Env
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// ExitError reports a non-zero exit status. The FakeRunner uses it to
// simulate command failures; real commands produce *exec.ExitError, which
// exposes the same ExitCode method.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCode extracts the process exit code from a runner error. Returns -1
// if the error carries no exit code (e.g. the command never started).
func ExitCode(err error) int {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return -1
}

var _ CommandRunner = (*OSRunner)(nil)

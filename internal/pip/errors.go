package pip

import "fmt"

// LaunchError means the pip executable could not be started at all.
// Prog is the resolved absolute program path.
type LaunchError struct {
	Prog string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Prog, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// CommandError is a non-zero pip exit. Output holds the combined trimmed
// stdout and stderr of the failed invocation.
type CommandError struct {
	Code   int
	Output string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("pip exited with status %d", e.Code)
}

func (e *CommandError) ExitCode() int {
	return e.Code
}

// InstallError is a failed `pip install`.
type InstallError struct {
	Package string
	cmdErr  *CommandError
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("installing %s: %v", e.Package, e.cmdErr)
}

func (e *InstallError) Unwrap() error { return e.cmdErr }

func (e *InstallError) ExitCode() int { return e.cmdErr.Code }

// Output returns the captured output of the failed invocation.
func (e *InstallError) Output() string { return e.cmdErr.Output }

// RemovalError is a failed `pip uninstall`.
type RemovalError struct {
	Package string
	cmdErr  *CommandError
}

func (e *RemovalError) Error() string {
	return fmt.Sprintf("uninstalling %s: %v", e.Package, e.cmdErr)
}

func (e *RemovalError) Unwrap() error { return e.cmdErr }

func (e *RemovalError) ExitCode() int { return e.cmdErr.Code }

func (e *RemovalError) Output() string { return e.cmdErr.Output }

// WheelError is a failed `pip wheel`.
type WheelError struct {
	Package string
	cmdErr  *CommandError
}

func (e *WheelError) Error() string {
	return fmt.Sprintf("building wheel for %s: %v", e.Package, e.cmdErr)
}

func (e *WheelError) Unwrap() error { return e.cmdErr }

func (e *WheelError) ExitCode() int { return e.cmdErr.Code }

func (e *WheelError) Output() string { return e.cmdErr.Output }

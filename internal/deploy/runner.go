package deploy

import (
	"context"
	"errors"
	"os/exec"
)

// CommandRunner abstracts external tool invocation so gate tests can
// substitute a double. Output is the combined stdout and stderr of the
// process.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (output []byte, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// exitCode extracts the process exit code from a runner error, or -1
// when the process never ran.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

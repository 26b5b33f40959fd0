package exec_commander

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"time"
)

// waitDelay bounds how long Invoke waits for output pipes after the process is killed.
// A grandchild holding the pipe open must not keep the caller blocked.
const waitDelay = 500 * time.Millisecond

type ExecInvoker struct {
}

func NewExecInvoker() Invoker {
	return &ExecInvoker{}
}

// Invoke runs name with args and a closed stdin, so tools that would prompt fail instead.
// The process runs in its own process group, which is killed as a whole when ctx is
// cancelled or timeout elapses.
func (r *ExecInvoker) Invoke(ctx context.Context, timeout time.Duration, name string, args ...string) ExitResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	configureProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	out, err := cmd.CombinedOutput()
	result := ExitResult{Output: out, ExitCode: -1, Err: err}
	if err == nil {
		result.ExitCode = 0
		return result
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.TimedOut = true
	case errors.Is(ctx.Err(), context.Canceled):
		result.Canceled = true
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		result.NotFound = true
	}
	return result
}

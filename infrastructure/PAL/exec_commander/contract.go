package exec_commander

import (
	"context"
	"time"
)

// Invoker abstracts running an external command with a bounded lifetime.
type Invoker interface {
	Invoke(ctx context.Context, timeout time.Duration, name string, args ...string) ExitResult
}

// ExitResult describes how an invocation ended. Err is nil only when the command exited with status 0.
type ExitResult struct {
	Output []byte
	// ExitCode is -1 when the process did not exit on its own (not started, killed, timed out).
	ExitCode int
	Err      error
	TimedOut bool
	Canceled bool
	NotFound bool
}

func (r ExitResult) OK() bool {
	return r.Err == nil
}

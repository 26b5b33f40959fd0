package renew

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"linkwatch/domain/lease"
	"linkwatch/domain/link"
	"linkwatch/infrastructure/PAL/exec_commander"
)

type call struct {
	name string
	args []string
}

// scriptedInvoker answers invocations from a queue. An empty queue answers success.
type scriptedInvoker struct {
	mu      sync.Mutex
	calls   []call
	answers []exec_commander.ExitResult
	// block, when set, holds every invocation until it is closed or ctx ends.
	block   chan struct{}
	started chan struct{}
}

func (f *scriptedInvoker) Invoke(ctx context.Context, _ time.Duration, name string, args ...string) exec_commander.ExitResult {
	f.mu.Lock()
	f.calls = append(f.calls, call{name: name, args: slices.Clone(args)})
	var res exec_commander.ExitResult
	if len(f.answers) > 0 {
		res, f.answers = f.answers[0], f.answers[1:]
	}
	block, started := f.block, f.started
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return exec_commander.ExitResult{ExitCode: -1, Err: ctx.Err(), Canceled: true}
		}
	}
	return res
}

func (f *scriptedInvoker) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func denied(msg string) exec_commander.ExitResult {
	return exec_commander.ExitResult{Output: []byte(msg), ExitCode: 1, Err: errors.New("exit status 1")}
}

func failed(msg string) exec_commander.ExitResult {
	return exec_commander.ExitResult{Output: []byte(msg), ExitCode: 1, Err: errors.New("exit status 1")}
}

type sequenceSnapshotter struct {
	mu    sync.Mutex
	calls int
	snaps []link.Snapshot
	errs  []error
}

func (s *sequenceSnapshotter) Snapshot(ctx context.Context, name string) (link.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if err := ctx.Err(); err != nil {
		return link.Snapshot{Name: name, Schema: link.SnapshotSchema}, err
	}
	snap := link.Snapshot{Name: name, Schema: link.SnapshotSchema, Sources: link.SourceAll}
	if i < len(s.snaps) {
		snap = s.snaps[i]
	}
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return snap, err
}

func (s *sequenceSnapshotter) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type sudo struct{}

func (sudo) Wrap(name string, args ...string) (string, []string) {
	return "sudo", append([]string{"-n", name}, args...)
}

type rootPrivileges bool

func (r rootPrivileges) IsElevated() bool { return bool(r) }

type memoryRecorder struct {
	mu       sync.Mutex
	outcomes []lease.Outcome
	err      error
}

func (m *memoryRecorder) Record(_ context.Context, o lease.Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, o)
	return m.err
}

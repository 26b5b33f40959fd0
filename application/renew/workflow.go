// Package renew runs the DHCP renew workflow: snapshot before, invoke the renew
// command with a single non-interactive escalation retry, snapshot after, diff.
package renew

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"linkwatch/domain/lease"
	"linkwatch/domain/link"
	"linkwatch/infrastructure/PAL/exec_commander"

	"go.uber.org/zap"
)

var (
	ErrInFlight = errors.New("a renew is already in progress")
	ErrAborted  = errors.New("renew aborted")
)

const DefaultTimeout = 5 * time.Second

// Command is the unprivileged renew command; the interface name is appended to Args.
type Command struct {
	Name string
	Args []string
}

func (c Command) argv(iface string) []string {
	return append(slices.Clone(c.Args), iface)
}

type Option func(*Workflow)

func WithRecorder(r Recorder) Option {
	return func(w *Workflow) { w.recorder = r }
}

func WithPrivileges(p Privileges) Option {
	return func(w *Workflow) { w.privileges = p }
}

func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// WithPhaseObserver registers fn to be called on every phase transition.
func WithPhaseObserver(fn func(lease.Phase)) Option {
	return func(w *Workflow) { w.observe = fn }
}

// Workflow allows one run at a time. Renew requests arriving while a run is
// active are rejected with ErrInFlight, never queued.
type Workflow struct {
	mu    sync.Mutex
	phase lease.Phase

	snapshots  Snapshotter
	invoker    exec_commander.Invoker
	escalation Escalation
	privileges Privileges
	recorder   Recorder
	command    Command
	timeout    time.Duration
	logger     *zap.Logger
	now        func() time.Time
	observe    func(lease.Phase)
}

// NewWorkflow returns a Workflow. escalation may be nil to disable the retry.
// A non-positive timeout falls back to DefaultTimeout.
func NewWorkflow(
	snapshots Snapshotter,
	invoker exec_commander.Invoker,
	escalation Escalation,
	command Command,
	timeout time.Duration,
	logger *zap.Logger,
	opts ...Option,
) *Workflow {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	w := &Workflow{
		phase:      lease.Idle,
		snapshots:  snapshots,
		invoker:    invoker,
		escalation: escalation,
		command:    command,
		timeout:    timeout,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) Phase() lease.Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Run performs one renew of iface. The after-snapshot is taken whatever the
// command result. If ctx is cancelled before the after-snapshot completes the
// run is aborted and the partial outcome is returned with ErrAborted.
func (w *Workflow) Run(ctx context.Context, iface string) (lease.Outcome, error) {
	if !w.begin() {
		return lease.Outcome{}, ErrInFlight
	}
	defer w.transition(lease.Idle)

	out := lease.Outcome{Interface: iface, StartedAt: w.now()}
	log := w.logger.With(zap.String("iface", iface))

	before, err := w.snapshots.Snapshot(ctx, iface)
	if ctx.Err() != nil {
		return w.abort(ctx, log, out)
	}
	out.Before, out.BeforeUnavailable = before, err != nil
	if err != nil {
		log.Warn("before snapshot unavailable", zap.Error(err))
	}

	w.transition(lease.Invoking)
	out.Command = w.invoke(ctx, log, iface)
	if ctx.Err() != nil {
		return w.abort(ctx, log, out)
	}

	w.transition(lease.CapturingAfter)
	after, err := w.snapshots.Snapshot(ctx, iface)
	if ctx.Err() != nil {
		return w.abort(ctx, log, out)
	}
	out.After, out.AfterUnavailable = after, err != nil
	if err != nil {
		log.Warn("after snapshot unavailable", zap.Error(err))
	}

	if diffs, err := link.Diff(out.Before, out.After); err != nil {
		log.Warn("snapshots not comparable", zap.Error(err))
	} else {
		out.Diffs = diffs
	}
	out.FinishedAt = w.now()
	w.transition(lease.Completed)

	log.Info("renew completed",
		zap.Stringer("result", out.Command),
		zap.Int("changes", len(out.Diffs.Changes())),
		zap.Duration("took", out.FinishedAt.Sub(out.StartedAt)),
	)
	if w.recorder != nil {
		if err := w.recorder.Record(context.WithoutCancel(ctx), out); err != nil {
			log.Warn("failed to record renew outcome", zap.Error(err))
		}
	}
	return out, nil
}

func (w *Workflow) begin() bool {
	w.mu.Lock()
	if w.phase.Active() {
		w.mu.Unlock()
		return false
	}
	w.phase = lease.CapturingBefore
	w.mu.Unlock()
	w.notify(lease.CapturingBefore)
	return true
}

func (w *Workflow) transition(p lease.Phase) {
	w.mu.Lock()
	w.phase = p
	w.mu.Unlock()
	w.notify(p)
}

func (w *Workflow) notify(p lease.Phase) {
	if w.observe != nil {
		w.observe(p)
	}
}

func (w *Workflow) abort(ctx context.Context, log *zap.Logger, out lease.Outcome) (lease.Outcome, error) {
	out.FinishedAt = w.now()
	w.transition(lease.Aborted)
	log.Info("renew aborted", zap.Error(ctx.Err()))
	return out, fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
}

func (w *Workflow) invoke(ctx context.Context, log *zap.Logger, iface string) lease.CommandResult {
	args := w.command.argv(iface)
	res := w.invoker.Invoke(ctx, w.timeout, w.command.Name, args...)
	result, denied := classify(w.command.Name, res)
	if !denied {
		if result.Status != lease.Success {
			log.Warn("renew command failed", zap.Stringer("result", result))
		}
		return result
	}
	if w.escalation == nil || (w.privileges != nil && w.privileges.IsElevated()) {
		log.Warn("renew command denied, no escalation possible", zap.String("output", result.Reason))
		return result
	}

	name, eargs := w.escalation.Wrap(w.command.Name, args...)
	log.Info("renew command denied, retrying with escalation", zap.String("wrapper", name))
	res = w.invoker.Invoke(ctx, w.timeout, name, eargs...)
	if res.NotFound {
		log.Warn("escalation wrapper not found", zap.String("wrapper", name))
		return lease.CommandResult{
			Status:    lease.PermissionDenied,
			Reason:    "escalation unavailable: " + name + " not found",
			Escalated: true,
		}
	}
	result, _ = classify(name, res)
	result.Escalated = true
	if result.Status != lease.Success {
		log.Warn("escalated renew failed", zap.Stringer("result", result))
	}
	return result
}

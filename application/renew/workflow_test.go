package renew

import (
	"context"
	"errors"
	"testing"
	"time"

	"linkwatch/domain/lease"
	"linkwatch/domain/link"
	"linkwatch/infrastructure/PAL/exec_commander"
	"linkwatch/internal/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var networkctl = Command{Name: "networkctl", Args: []string{"renew"}}

func newWorkflow(snaps Snapshotter, inv exec_commander.Invoker, esc Escalation, opts ...Option) *Workflow {
	return NewWorkflow(snaps, inv, esc, networkctl, time.Second, zap.NewNop(), opts...)
}

func ptr[T any](v T) *T { return &v }

func TestWorkflow_Success(t *testing.T) {
	inv := &scriptedInvoker{}
	snaps := &sequenceSnapshotter{}
	rec := &memoryRecorder{}
	clock := testutil.NewClock().WithStep(time.Second)
	var phases []lease.Phase
	w := newWorkflow(snaps, inv, sudo{},
		WithRecorder(rec),
		WithClock(clock.Now),
		WithPhaseObserver(func(p lease.Phase) { phases = append(phases, p) }),
	)

	out, err := w.Run(context.Background(), "eth0")

	require.NoError(t, err)
	assert.True(t, out.Succeeded())
	assert.False(t, out.Command.Escalated)
	assert.Equal(t, 2, snaps.Calls())
	assert.Empty(t, out.Diffs.Changes())
	assert.Len(t, out.Diffs, len(link.TrackedFields))
	assert.True(t, out.FinishedAt.After(out.StartedAt))
	if diff := cmp.Diff([]call{{name: "networkctl", args: []string{"renew", "eth0"}}}, inv.Calls(), cmp.AllowUnexported(call{})); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []lease.Phase{lease.CapturingBefore, lease.Invoking, lease.CapturingAfter, lease.Completed, lease.Idle}, phases)
	assert.Equal(t, lease.Idle, w.Phase())
	require.Len(t, rec.outcomes, 1)
	assert.Equal(t, "eth0", rec.outcomes[0].Interface)
}

func TestWorkflow_EscalationSucceeds(t *testing.T) {
	inv := &scriptedInvoker{answers: []exec_commander.ExitResult{
		denied("Failed to renew dynamic configuration of interface: Access denied"),
		{},
	}}
	snaps := &sequenceSnapshotter{snaps: []link.Snapshot{
		{Name: "eth0", Schema: link.SnapshotSchema, Sources: link.SourceAll},
		{Name: "eth0", Schema: link.SnapshotSchema, Sources: link.SourceAll, IPv4Gateway: ptr("10.0.0.1")},
	}}
	w := newWorkflow(snaps, inv, sudo{})

	out, err := w.Run(context.Background(), "eth0")

	require.NoError(t, err)
	assert.Equal(t, lease.Success, out.Command.Status)
	assert.True(t, out.Command.Escalated)
	assert.Equal(t, 2, snaps.Calls(), "after snapshot captured")
	assert.Equal(t, link.Appeared, out.Diffs[link.FieldIPv4Gateway].Kind)
	calls := inv.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "sudo", calls[1].name)
	assert.Equal(t, []string{"-n", "networkctl", "renew", "eth0"}, calls[1].args)
}

func TestWorkflow_ExactlyOneEscalation(t *testing.T) {
	inv := &scriptedInvoker{answers: []exec_commander.ExitResult{
		denied("Interactive authentication required."),
		denied("sudo: a password is required"),
		{},
	}}
	w := newWorkflow(&sequenceSnapshotter{}, inv, sudo{})

	out, err := w.Run(context.Background(), "eth0")

	require.NoError(t, err)
	assert.Len(t, inv.Calls(), 2)
	assert.Equal(t, lease.PermissionDenied, out.Command.Status)
	assert.True(t, out.Command.Escalated)
	assert.Equal(t, "sudo: a password is required", out.Command.Reason)
}

func TestWorkflow_EscalationUnavailable(t *testing.T) {
	inv := &scriptedInvoker{answers: []exec_commander.ExitResult{
		denied("Permission denied"),
		{ExitCode: -1, Err: errors.New("exec: \"sudo\": executable file not found in $PATH"), NotFound: true},
	}}
	snaps := &sequenceSnapshotter{}
	w := newWorkflow(snaps, inv, sudo{})

	out, err := w.Run(context.Background(), "eth0")

	require.NoError(t, err)
	assert.Equal(t, lease.PermissionDenied, out.Command.Status)
	assert.Contains(t, out.Command.Reason, "escalation unavailable")
	assert.Equal(t, 2, snaps.Calls())
	assert.NotNil(t, out.Diffs)
}

func TestWorkflow_NoEscalationConfigured(t *testing.T) {
	inv := &scriptedInvoker{answers: []exec_commander.ExitResult{denied("Access denied")}}
	w := newWorkflow(&sequenceSnapshotter{}, inv, nil)

	out, err := w.Run(context.Background(), "eth0")

	require.NoError(t, err)
	assert.Len(t, inv.Calls(), 1)
	assert.Equal(t, lease.PermissionDenied, out.Command.Status)
	assert.False(t, out.Command.Escalated)
}

func TestWorkflow_RootDoesNotEscalate(t *testing.T) {
	inv := &scriptedInvoker{answers: []exec_commander.ExitResult{denied("Operation not permitted")}}
	w := newWorkflow(&sequenceSnapshotter{}, inv, sudo{}, WithPrivileges(rootPrivileges(true)))

	out, err := w.Run(context.Background(), "eth0")

	require.NoError(t, err)
	assert.Len(t, inv.Calls(), 1)
	assert.Equal(t, lease.PermissionDenied, out.Command.Status)
}

func TestWorkflow_NonPermissionFailuresAreTerminal(t *testing.T) {
	cases := []struct {
		name   string
		answer exec_commander.ExitResult
		reason string
	}{
		{"timeout", exec_commander.ExitResult{ExitCode: -1, Err: context.DeadlineExceeded, TimedOut: true}, lease.ReasonTimeout},
		{"not found", exec_commander.ExitResult{ExitCode: -1, Err: errors.New("not found"), NotFound: true}, "command not found: networkctl"},
		{"bad interface", failed("Failed to resolve interface \"eth7\": No such device"), "Failed to resolve interface \"eth7\": No such device"},
		{"silent failure", exec_commander.ExitResult{ExitCode: 3, Err: errors.New("exit status 3")}, "exit status 3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := &scriptedInvoker{answers: []exec_commander.ExitResult{tc.answer}}
			snaps := &sequenceSnapshotter{}
			w := newWorkflow(snaps, inv, sudo{})

			out, err := w.Run(context.Background(), "eth0")

			require.NoError(t, err)
			assert.Len(t, inv.Calls(), 1)
			assert.Equal(t, lease.Failed, out.Command.Status)
			assert.Equal(t, tc.reason, out.Command.Reason)
			assert.Equal(t, 2, snaps.Calls())
		})
	}
}

func TestWorkflow_UnavailableSnapshotsAreNoted(t *testing.T) {
	unavailable := link.NewScanUnavailableError("eth0", nil)
	snaps := &sequenceSnapshotter{
		snaps: []link.Snapshot{
			{Name: "eth0", Schema: link.SnapshotSchema},
			{Name: "eth0", Schema: link.SnapshotSchema, Sources: link.SourceLink, OperState: link.OperUp},
		},
		errs: []error{unavailable, nil},
	}
	w := newWorkflow(snaps, &scriptedInvoker{}, sudo{})

	out, err := w.Run(context.Background(), "eth0")

	require.NoError(t, err)
	assert.True(t, out.BeforeUnavailable)
	assert.False(t, out.AfterUnavailable)
	assert.Equal(t, link.Appeared, out.Diffs[link.FieldOperState].Kind)
}

func TestWorkflow_RejectsConcurrentRun(t *testing.T) {
	inv := &scriptedInvoker{block: make(chan struct{}), started: make(chan struct{}, 1)}
	snaps := &sequenceSnapshotter{}
	w := newWorkflow(snaps, inv, sudo{})

	done := make(chan error, 1)
	go func() {
		_, err := w.Run(context.Background(), "eth0")
		done <- err
	}()
	<-inv.started
	assert.Equal(t, lease.Invoking, w.Phase())

	_, err := w.Run(context.Background(), "eth1")
	assert.ErrorIs(t, err, ErrInFlight)

	close(inv.block)
	require.NoError(t, <-done)
	assert.Len(t, inv.Calls(), 1)
	assert.Equal(t, 2, snaps.Calls())
	assert.Equal(t, lease.Idle, w.Phase())

	_, err = w.Run(context.Background(), "eth1")
	assert.NoError(t, err, "a new run is accepted once the first completes")
}

func TestWorkflow_CancelAborts(t *testing.T) {
	inv := &scriptedInvoker{block: make(chan struct{}), started: make(chan struct{}, 1)}
	snaps := &sequenceSnapshotter{}
	var phases []lease.Phase
	w := newWorkflow(snaps, inv, sudo{}, WithPhaseObserver(func(p lease.Phase) { phases = append(phases, p) }))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := w.Run(ctx, "eth0")
		done <- err
	}()
	<-inv.started
	cancel()
	err := <-done

	assert.ErrorIs(t, err, ErrAborted)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, snaps.Calls(), "no after snapshot once aborted")
	assert.Contains(t, phases, lease.Aborted)
	assert.Equal(t, lease.Idle, w.Phase())
}

func TestWorkflow_RecorderFailureDoesNotFailRun(t *testing.T) {
	rec := &memoryRecorder{err: errors.New("disk full")}
	w := newWorkflow(&sequenceSnapshotter{}, &scriptedInvoker{}, sudo{}, WithRecorder(rec))

	out, err := w.Run(context.Background(), "eth0")

	require.NoError(t, err)
	assert.True(t, out.Succeeded())
	assert.Len(t, rec.outcomes, 1)
}

func TestNewWorkflow_DefaultTimeout(t *testing.T) {
	w := NewWorkflow(&sequenceSnapshotter{}, &scriptedInvoker{}, nil, networkctl, 0, zap.NewNop())
	assert.Equal(t, DefaultTimeout, w.timeout)
}

package renew

import (
	"context"

	"linkwatch/domain/lease"
	"linkwatch/domain/link"
)

type Snapshotter interface {
	Snapshot(ctx context.Context, name string) (link.Snapshot, error)
}

// Escalation builds the privileged form of a command line.
type Escalation interface {
	Wrap(name string, args ...string) (string, []string)
}

// Privileges reports whether the process is already privileged, in which case
// escalating again cannot help.
type Privileges interface {
	IsElevated() bool
}

// Recorder persists completed outcomes.
type Recorder interface {
	Record(ctx context.Context, outcome lease.Outcome) error
}

package lease

import (
	"fmt"
	"time"

	"linkwatch/domain/link"
)

// Status is the result class of the renew command.
type Status int

const (
	Success Status = iota
	Failed
	PermissionDenied
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Failed:
		return "failed"
	case PermissionDenied:
		return "permission denied"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "success":
		return Success, nil
	case "failed":
		return Failed, nil
	case "permission denied":
		return PermissionDenied, nil
	default:
		return 0, fmt.Errorf("unknown renew status %q", s)
	}
}

// ReasonTimeout is the Failed reason used when the command exceeded its deadline.
const ReasonTimeout = "timeout"

type CommandResult struct {
	Status Status
	// Reason is the command output or a short description; empty on success.
	Reason string
	// Escalated is set when the result comes from the escalation retry.
	Escalated bool
}

func (r CommandResult) String() string {
	s := r.Status.String()
	if r.Escalated {
		s += " (escalated)"
	}
	if r.Reason != "" {
		s += ": " + r.Reason
	}
	return s
}

// Outcome is the record of one renew run.
type Outcome struct {
	Interface         string
	Before            link.Snapshot
	After             link.Snapshot
	BeforeUnavailable bool
	AfterUnavailable  bool
	Command           CommandResult
	Diffs             link.Diffs
	StartedAt         time.Time
	FinishedAt        time.Time
}

func (o Outcome) Succeeded() bool {
	return o.Command.Status == Success
}

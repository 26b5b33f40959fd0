package lease

// Phase is a state of the renew workflow.
type Phase int32

const (
	Idle Phase = iota
	CapturingBefore
	Invoking
	CapturingAfter
	Completed
	Aborted
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case CapturingBefore:
		return "capturing before"
	case Invoking:
		return "invoking"
	case CapturingAfter:
		return "capturing after"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Active reports whether a run is between Idle and its terminal phase.
func (p Phase) Active() bool {
	return p == CapturingBefore || p == Invoking || p == CapturingAfter
}

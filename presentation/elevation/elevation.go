// Package elevation reports the process privilege level and builds escalated
// command lines for the renew fallback.
package elevation

// ProcessElevation tells whether the process already runs with an effective uid of 0.
// A root process gets no benefit from the escalation retry.
type ProcessElevation interface {
	IsElevated() bool
}

// Escalation turns a command line into its privileged form.
type Escalation interface {
	Wrap(name string, args ...string) (string, []string)
}

var _ Escalation = NonInteractive{}

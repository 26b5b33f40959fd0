package elevation

import "slices"

// NonInteractive wraps a command line with a privilege-escalation tool that must
// never prompt, e.g. "sudo -n". If no cached credential exists the tool fails at once.
type NonInteractive struct {
	command string
	args    []string
}

func NewNonInteractive(command string, args ...string) NonInteractive {
	return NonInteractive{command: command, args: slices.Clone(args)}
}

func NewSudo() NonInteractive {
	return NewNonInteractive("sudo", "-n")
}

// Wrap returns the escalated form of name/args.
func (n NonInteractive) Wrap(name string, args ...string) (string, []string) {
	out := make([]string, 0, len(n.args)+1+len(args))
	out = append(out, n.args...)
	out = append(out, name)
	out = append(out, args...)
	return n.command, out
}

func (n NonInteractive) Command() string {
	return n.command
}

package bubble_tea

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

var (
	isInteractiveTerminal = IsInteractiveTerminal
	printToStdout         = func(s string) {
		_, _ = fmt.Fprint(os.Stdout, s)
	}
)

// IsInteractiveTerminal reports whether both stdin and stdout are terminals.
func IsInteractiveTerminal() bool {
	if term := os.Getenv("TERM"); term == "" || term == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func clearTerminalAfterTUI() {
	if !isInteractiveTerminal() {
		return
	}
	// Clear full screen and move cursor home after leaving Bubble Tea.
	printToStdout("\x1b[2J\x1b[H")
}

package signal

import (
	"os"
	"syscall"
)

// Provider lists the signals that end the program.
type Provider interface {
	ShutdownSignals() []os.Signal
}

type DefaultProvider struct {
}

func NewDefaultProvider() *DefaultProvider {
	return &DefaultProvider{}
}

// ShutdownSignals covers Ctrl+C, service stop and a closed controlling terminal.
func (p *DefaultProvider) ShutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
}

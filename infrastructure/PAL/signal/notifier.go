package signal

import (
	"os"
	ossignal "os/signal"
)

// OSNotifier relays process signals through os/signal.
type OSNotifier struct{}

func NewOSNotifier() OSNotifier {
	return OSNotifier{}
}

func (OSNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	ossignal.Notify(c, sig...)
}

func (OSNotifier) Stop(c chan<- os.Signal) {
	ossignal.Stop(c)
}

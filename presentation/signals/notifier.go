package signals

import "os"

type Notifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

// Handler turns OS signals into cancellation of the application context.
type Handler interface {
	Handle()
}

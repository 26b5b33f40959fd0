// Package session holds the dashboard's state. Every change goes through
// State.Apply, a pure function of the current state and one event.
package session

import (
	"errors"

	"linkwatch/application/snapshot"
	"linkwatch/domain/lease"
	"linkwatch/domain/link"
)

var (
	ErrRefreshInFlight = errors.New("a refresh is already in progress")
	ErrRenewInFlight   = errors.New("a renew is already in progress")
	ErrNoSelection     = errors.New("no interface selected")
	ErrUnknownEvent    = errors.New("unknown session event")
)

// NoSelection is the Selected value of an empty list.
const NoSelection = -1

type State struct {
	Interfaces []string
	Results    map[string]link.ScanResult
	Selected   int
	// LastRenew is the outcome of the most recent renew, until a manual refresh or the next renew.
	LastRenew *lease.Outcome
	// Renewing is the interface a renew is running for, empty when idle.
	Renewing   string
	Refreshing bool
	// ScanError is the failure of the latest refresh; the previous data is kept meanwhile.
	ScanError error
	// Notice is the error of the last failed renew, until the next successful refresh.
	Notice string
}

func New() State {
	return State{Selected: NoSelection, Results: map[string]link.ScanResult{}}
}

func (s State) SelectedName() (string, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Interfaces) {
		return "", false
	}
	return s.Interfaces[s.Selected], true
}

// SelectedResult returns the latest scan result of the selected interface.
func (s State) SelectedResult() (link.ScanResult, bool) {
	name, ok := s.SelectedName()
	if !ok {
		return link.ScanResult{}, false
	}
	res, ok := s.Results[name]
	return res, ok
}

// Event is one input to Apply.
type Event interface {
	isEvent()
}

type SelectNext struct{}

type SelectPrevious struct{}

// RefreshStarted begins a refresh. A manual refresh drops the last renew outcome.
type RefreshStarted struct {
	Manual bool
}

type RefreshCompleted struct {
	Round snapshot.Round
	Err   error
}

// RenewStarted begins a renew of the selected interface.
type RenewStarted struct{}

type RenewCompleted struct {
	Outcome lease.Outcome
	Err     error
}

func (SelectNext) isEvent()       {}
func (SelectPrevious) isEvent()   {}
func (RefreshStarted) isEvent()   {}
func (RefreshCompleted) isEvent() {}
func (RenewStarted) isEvent()     {}
func (RenewCompleted) isEvent()   {}

// Apply returns the state after e. A rejected event returns s unchanged with the reason.
func (s State) Apply(e Event) (State, error) {
	switch ev := e.(type) {
	case SelectNext:
		return s.selectAt(s.Selected + 1), nil
	case SelectPrevious:
		return s.selectAt(s.Selected - 1), nil
	case RefreshStarted:
		if s.Refreshing {
			return s, ErrRefreshInFlight
		}
		s.Refreshing = true
		if ev.Manual {
			s.LastRenew = nil
		}
		return s, nil
	case RefreshCompleted:
		return s.refreshed(ev), nil
	case RenewStarted:
		if s.Renewing != "" {
			return s, ErrRenewInFlight
		}
		name, ok := s.SelectedName()
		if !ok {
			return s, ErrNoSelection
		}
		s.Renewing = name
		return s, nil
	case RenewCompleted:
		s.Renewing = ""
		if ev.Err != nil {
			s.Notice = "renew: " + ev.Err.Error()
			return s, nil
		}
		outcome := ev.Outcome
		s.LastRenew = &outcome
		return s, nil
	default:
		return s, ErrUnknownEvent
	}
}

func (s State) selectAt(i int) State {
	if len(s.Interfaces) == 0 {
		s.Selected = NoSelection
		return s
	}
	s.Selected = min(max(i, 0), len(s.Interfaces)-1)
	return s
}

func (s State) refreshed(ev RefreshCompleted) State {
	s.Refreshing = false
	if ev.Err != nil {
		s.ScanError = ev.Err
		return s
	}
	s.ScanError = nil
	s.Notice = ""
	s.Interfaces = ev.Round.Interfaces
	s.Results = ev.Round.Results
	if s.Results == nil {
		s.Results = map[string]link.ScanResult{}
	}
	if s.Selected == NoSelection {
		return s.selectAt(0)
	}
	return s.selectAt(s.Selected)
}

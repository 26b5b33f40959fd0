package link

import "strings"

// OperState is the kernel's RFC 2863 operational state of an interface.
// The zero value means the state could not be read.
type OperState string

const (
	OperUp      OperState = "up"
	OperDown    OperState = "down"
	OperUnknown OperState = "unknown"
)

type OperKind int

const (
	OperKindAbsent OperKind = iota
	OperKindUp
	OperKindDown
	OperKindUnknown
	OperKindOther
)

// ParseOperState normalizes a raw operstate value. Values other than
// up, down and unknown (dormant, lowerlayerdown, testing, ...) are kept verbatim.
func ParseOperState(raw string) OperState {
	return OperState(strings.ToLower(strings.TrimSpace(raw)))
}

func (s OperState) Kind() OperKind {
	switch s {
	case "":
		return OperKindAbsent
	case OperUp:
		return OperKindUp
	case OperDown:
		return OperKindDown
	case OperUnknown:
		return OperKindUnknown
	default:
		return OperKindOther
	}
}

func (s OperState) Present() bool {
	return s != ""
}

func (s OperState) String() string {
	if s == "" {
		return "?"
	}
	return string(s)
}

package link

import "time"

// SnapshotSchema identifies the set of sources and fields a Snapshot is built from.
// Snapshots taken under different schemas are not diffed.
const SnapshotSchema = 1

// Source is a bit set of the independent data sources feeding a Snapshot.
type Source uint8

const (
	SourceLink Source = 1 << iota
	SourceRoute
	SourceAddresses
	SourceResolver

	SourceNone Source = 0
	SourceAll         = SourceLink | SourceRoute | SourceAddresses | SourceResolver
)

func (s Source) Has(other Source) bool {
	return s&other == other
}

func (s Source) String() string {
	if s == SourceNone {
		return "none"
	}
	names := []struct {
		bit  Source
		name string
	}{
		{SourceLink, "link"},
		{SourceRoute, "route"},
		{SourceAddresses, "addresses"},
		{SourceResolver, "resolver"},
	}
	out := ""
	for _, n := range names {
		if !s.Has(n.bit) {
			continue
		}
		if out != "" {
			out += ","
		}
		out += n.name
	}
	return out
}

// Identity is the result of classifying one entry of the kernel's interface list.
type Identity struct {
	Name     string
	Physical bool
}

// Snapshot is a point-in-time, possibly sparse, view of one interface.
// Nil pointers mean the value was unreadable. IPv4/IPv6 are only meaningful when
// Sources has SourceAddresses, DNS only when it has SourceResolver.
//
// A Snapshot is never modified after it is built; refreshes replace it.
type Snapshot struct {
	Name        string
	OperState   OperState
	Carrier     *bool
	MAC         *string
	SpeedMbps   *uint32
	IPv4        []string
	IPv6        []string
	IPv4Gateway *string
	DNS         []string
	TakenAt     time.Time
	Schema      int
	Sources     Source
}

// Connected reports a detected link with at least one IPv4 address.
func (s Snapshot) Connected() bool {
	return s.Carrier != nil && *s.Carrier && s.Sources.Has(SourceAddresses) && len(s.IPv4) > 0
}

// ScanResult is one interface's entry in a refresh round.
type ScanResult struct {
	Snapshot    Snapshot
	Unavailable bool
}

// Attributes are the kernel-exposed per-interface values of a Snapshot.
type Attributes struct {
	OperState OperState
	Carrier   *bool
	MAC       *string
	SpeedMbps *uint32
}

// Any reports whether at least one attribute was readable.
func (a Attributes) Any() bool {
	return a.OperState.Present() || a.Carrier != nil || a.MAC != nil || a.SpeedMbps != nil
}

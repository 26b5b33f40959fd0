package link

import (
	"fmt"
	"net"
	"net/netip"
	"slices"
	"strconv"
	"strings"
)

// Field names a tracked Snapshot attribute.
type Field string

const (
	FieldOperState   Field = "oper_state"
	FieldCarrier     Field = "carrier"
	FieldMAC         Field = "mac"
	FieldSpeed       Field = "speed_mbps"
	FieldIPv4        Field = "ipv4"
	FieldIPv6        Field = "ipv6"
	FieldIPv4Gateway Field = "ipv4_gateway"
	FieldDNS         Field = "dns"
)

// TrackedFields lists every diffed field in display order.
var TrackedFields = []Field{
	FieldOperState,
	FieldCarrier,
	FieldMAC,
	FieldSpeed,
	FieldIPv4,
	FieldIPv6,
	FieldIPv4Gateway,
	FieldDNS,
}

type Kind int

const (
	Unchanged Kind = iota
	Changed
	Appeared
	Disappeared
)

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	case Appeared:
		return "appeared"
	case Disappeared:
		return "disappeared"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{Unchanged, Changed, Appeared, Disappeared} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown diff kind %q", s)
}

// Value is a field as observed in one snapshot. Scalars have at most one item.
type Value struct {
	Present bool
	Items   []string
}

func (v Value) String() string {
	if !v.Present {
		return "?"
	}
	if len(v.Items) == 0 {
		return "-"
	}
	return strings.Join(v.Items, ", ")
}

// Entry classifies one field between two snapshots. Before and After keep the
// literal values in their original order.
type Entry struct {
	Kind   Kind
	Before Value
	After  Value
}

type Diffs map[Field]Entry

// Changes returns the fields that are not Unchanged, in TrackedFields order.
func (d Diffs) Changes() []Field {
	var out []Field
	for _, f := range TrackedFields {
		if e, ok := d[f]; ok && e.Kind != Unchanged {
			out = append(out, f)
		}
	}
	return out
}

// Diff compares two snapshots of the same interface field by field.
// Values are compared in canonical parsed form and sequences as sets, so a
// reordered address list or a differently cased MAC is Unchanged.
func Diff(before, after Snapshot) (Diffs, error) {
	if before.Schema != after.Schema {
		return nil, fmt.Errorf("%w: schema %d vs %d", ErrIncomparable, before.Schema, after.Schema)
	}
	if before.Name != after.Name {
		return nil, fmt.Errorf("%w: %s vs %s", ErrIncomparable, before.Name, after.Name)
	}
	diffs := make(Diffs, len(TrackedFields))
	for _, f := range TrackedFields {
		diffs[f] = compare(before.Value(f), after.Value(f), canonicalizer(f))
	}
	return diffs, nil
}

func compare(before, after Value, canon func(string) string) Entry {
	e := Entry{Before: before, After: after}
	switch {
	case !before.Present && !after.Present:
		e.Kind = Unchanged
	case !before.Present:
		e.Kind = Appeared
	case !after.Present:
		e.Kind = Disappeared
	case slices.Equal(canonicalSet(before.Items, canon), canonicalSet(after.Items, canon)):
		e.Kind = Unchanged
	default:
		e.Kind = Changed
	}
	return e
}

// Value extracts a tracked field.
func (s Snapshot) Value(f Field) Value {
	switch f {
	case FieldOperState:
		if !s.OperState.Present() {
			return Value{}
		}
		return scalar(string(s.OperState))
	case FieldCarrier:
		if s.Carrier == nil {
			return Value{}
		}
		if *s.Carrier {
			return scalar("1")
		}
		return scalar("0")
	case FieldMAC:
		if s.MAC == nil {
			return Value{}
		}
		return scalar(*s.MAC)
	case FieldSpeed:
		if s.SpeedMbps == nil {
			return Value{}
		}
		return scalar(strconv.FormatUint(uint64(*s.SpeedMbps), 10))
	case FieldIPv4:
		return sequence(s.Sources.Has(SourceAddresses), s.IPv4)
	case FieldIPv6:
		return sequence(s.Sources.Has(SourceAddresses), s.IPv6)
	case FieldIPv4Gateway:
		if s.IPv4Gateway == nil {
			return Value{}
		}
		return scalar(*s.IPv4Gateway)
	case FieldDNS:
		return sequence(s.Sources.Has(SourceResolver), s.DNS)
	default:
		return Value{}
	}
}

func scalar(v string) Value {
	return Value{Present: true, Items: []string{v}}
}

func sequence(present bool, items []string) Value {
	if !present {
		return Value{}
	}
	return Value{Present: true, Items: slices.Clone(items)}
}

func canonicalizer(f Field) func(string) string {
	switch f {
	case FieldMAC:
		return canonicalMAC
	case FieldIPv4, FieldIPv6:
		return canonicalPrefix
	case FieldIPv4Gateway, FieldDNS:
		return canonicalAddr
	default:
		return strings.ToLower
	}
}

func canonicalSet(items []string, canon func(string) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, canon(item))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func canonicalMAC(raw string) string {
	hw, err := net.ParseMAC(strings.TrimSpace(raw))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return hw.String()
}

func canonicalPrefix(raw string) string {
	p, err := netip.ParsePrefix(strings.TrimSpace(raw))
	if err != nil {
		return canonicalAddr(raw)
	}
	return p.String()
}

func canonicalAddr(raw string) string {
	a, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return a.Unmap().String()
}

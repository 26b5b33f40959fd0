// Package view turns snapshots and renew outcomes into label/value rows shared by
// the dashboard and the plain command line output.
package view

import (
	"fmt"
	"strings"
	"time"

	"linkwatch/domain/lease"
	"linkwatch/domain/link"
)

const (
	Unknown = "?"
	None    = "-"
)

type Row struct {
	Label string
	Value string
}

// Status is the one-word state shown in interface lists.
func Status(res link.ScanResult) string {
	if res.Unavailable {
		return "status unavailable"
	}
	s := res.Snapshot.OperState.String()
	if res.Snapshot.Connected() {
		s += " (connected)"
	}
	return s
}

// SnapshotRows lists every field of s, "?" for unreadable and "-" for empty values.
func SnapshotRows(s link.Snapshot) []Row {
	return []Row{
		{"State", s.OperState.String()},
		{"Carrier", carrier(s.Carrier)},
		{"MAC", deref(s.MAC)},
		{"Speed", speed(s.SpeedMbps)},
		{"IPv4", s.Value(link.FieldIPv4).String()},
		{"IPv6", s.Value(link.FieldIPv6).String()},
		{"Gateway", gateway(s)},
		{"DNS", s.Value(link.FieldDNS).String()},
	}
}

// OutcomeSummary is the one-line headline of a renew outcome.
func OutcomeSummary(o lease.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "renew %s: %s", o.Interface, o.Command)
	if !o.FinishedAt.IsZero() && !o.StartedAt.IsZero() {
		fmt.Fprintf(&b, " in %s", o.FinishedAt.Sub(o.StartedAt).Round(10*time.Millisecond))
	}
	return b.String()
}

// DiffRows lists the changed fields of o, or a single row saying nothing changed.
func DiffRows(o lease.Outcome) []Row {
	var rows []Row
	if o.BeforeUnavailable {
		rows = append(rows, Row{"Before", "status unavailable"})
	}
	if o.AfterUnavailable {
		rows = append(rows, Row{"After", "status unavailable"})
	}
	changes := o.Diffs.Changes()
	if o.Diffs == nil {
		return append(rows, Row{"Changes", "not comparable"})
	}
	if len(changes) == 0 {
		return append(rows, Row{"Changes", "none visible"})
	}
	for _, f := range changes {
		rows = append(rows, Row{FieldLabel(f), ChangeText(o.Diffs[f])})
	}
	return rows
}

// ChangeText renders an entry as "kind: before -> after".
func ChangeText(e link.Entry) string {
	switch e.Kind {
	case link.Appeared:
		return fmt.Sprintf("appeared: %s", e.After)
	case link.Disappeared:
		return fmt.Sprintf("disappeared: %s", e.Before)
	default:
		return fmt.Sprintf("%s: %s -> %s", e.Kind, e.Before, e.After)
	}
}

func FieldLabel(f link.Field) string {
	switch f {
	case link.FieldOperState:
		return "State"
	case link.FieldCarrier:
		return "Carrier"
	case link.FieldMAC:
		return "MAC"
	case link.FieldSpeed:
		return "Speed"
	case link.FieldIPv4:
		return "IPv4"
	case link.FieldIPv6:
		return "IPv6"
	case link.FieldIPv4Gateway:
		return "Gateway"
	case link.FieldDNS:
		return "DNS"
	default:
		return string(f)
	}
}

func carrier(c *bool) string {
	switch {
	case c == nil:
		return Unknown
	case *c:
		return "yes"
	default:
		return "no"
	}
}

func speed(v *uint32) string {
	if v == nil {
		return Unknown
	}
	return fmt.Sprintf("%d Mb/s", *v)
}

func deref(s *string) string {
	if s == nil {
		return Unknown
	}
	return *s
}

// gateway distinguishes a read table without a default route from an unreadable one.
func gateway(s link.Snapshot) string {
	if s.IPv4Gateway != nil {
		return *s.IPv4Gateway
	}
	if s.Sources.Has(link.SourceRoute) {
		return None
	}
	return Unknown
}

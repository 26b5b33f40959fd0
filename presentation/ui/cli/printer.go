// Package cli prints snapshots, renew outcomes and renew history as plain text
// for non-interactive use.
package cli

import (
	"fmt"
	"io"

	"linkwatch/application/snapshot"
	"linkwatch/domain/lease"
	"linkwatch/domain/link"
	"linkwatch/infrastructure/history"
	"linkwatch/presentation/ui/view"

	"github.com/fatih/color"
)

const timeLayout = "2006-01-02 15:04:05"

type Printer struct {
	w      io.Writer
	header *color.Color
	label  *color.Color
	good   *color.Color
	warn   *color.Color
	bad    *color.Color
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		header: color.New(color.FgCyan, color.Bold),
		label:  color.New(color.Faint),
		good:   color.New(color.FgGreen),
		warn:   color.New(color.FgYellow),
		bad:    color.New(color.FgRed, color.Bold),
	}
}

func (p *Printer) Round(round snapshot.Round) {
	if len(round.Interfaces) == 0 {
		p.warn.Fprintln(p.w, "no physical Ethernet interfaces found")
		return
	}
	for i, name := range round.Interfaces {
		if i > 0 {
			fmt.Fprintln(p.w)
		}
		res := round.Results[name]
		p.header.Fprintf(p.w, "%s", name)
		fmt.Fprint(p.w, "  ")
		p.statusColor(res).Fprintln(p.w, view.Status(res))
		if res.Unavailable {
			continue
		}
		p.rows(view.SnapshotRows(res.Snapshot))
	}
}

func (p *Printer) Outcome(o lease.Outcome) {
	c := p.good
	if !o.Succeeded() {
		c = p.bad
	}
	c.Fprintln(p.w, view.OutcomeSummary(o))
	p.rows(view.DiffRows(o))
}

func (p *Printer) History(entries []history.Entry) {
	if len(entries) == 0 {
		p.warn.Fprintln(p.w, "no renews recorded")
		return
	}
	for _, e := range entries {
		c := p.good
		if e.Command.Status != lease.Success {
			c = p.bad
		}
		p.label.Fprintf(p.w, "%s  ", e.StartedAt.Local().Format(timeLayout))
		p.header.Fprintf(p.w, "%-10s ", e.Interface)
		c.Fprintln(p.w, e.Command.String())
		if e.BeforeUnavailable || e.AfterUnavailable {
			p.warn.Fprintln(p.w, "  snapshots not comparable")
		}
		for _, ch := range e.Changes {
			p.rows([]view.Row{{Label: view.FieldLabel(ch.Field), Value: changeText(ch)}})
		}
	}
}

func (p *Printer) rows(rows []view.Row) {
	for _, r := range rows {
		p.label.Fprintf(p.w, "  %-8s ", r.Label)
		fmt.Fprintln(p.w, r.Value)
	}
}

func (p *Printer) statusColor(res link.ScanResult) *color.Color {
	switch {
	case res.Unavailable:
		return p.warn
	case res.Snapshot.Connected():
		return p.good
	default:
		return p.label
	}
}

func changeText(ch history.Change) string {
	return view.ChangeText(link.Entry{
		Kind:   ch.Kind,
		Before: link.Value{Present: true, Items: []string{ch.Before}},
		After:  link.Value{Present: true, Items: []string{ch.After}},
	})
}

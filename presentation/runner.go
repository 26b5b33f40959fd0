package presentation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"linkwatch/application/snapshot"
	"linkwatch/domain/lease"
	"linkwatch/infrastructure/history"
	"linkwatch/presentation/ui/cli"
	"linkwatch/presentation/ui/tui"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrHistoryDisabled = errors.New("renew history is disabled (history.path is empty)")

// ErrNotPhysical is returned for a named interface that is not a physical Ethernet interface.
var ErrNotPhysical = errors.New("not a physical Ethernet interface")

type Runner struct {
	deps    AppDependencies
	logger  *zap.Logger
	printer *cli.Printer
}

func NewRunner(deps AppDependencies, logger *zap.Logger, out io.Writer) *Runner {
	return &Runner{deps: deps, logger: logger, printer: cli.NewPrinter(out)}
}

// Dashboard runs the interactive dashboard with the resolver watcher alongside it.
func (r *Runner) Dashboard(ctx context.Context, logs tui.LogFeed) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watcher := r.deps.ResolverWatcher()
	var g errgroup.Group
	g.Go(func() error {
		if err := watcher.Run(ctx); err != nil {
			r.logger.Warn("resolver changes will only be seen on refresh", zap.Error(err))
		}
		return nil
	})

	err := tui.Run(ctx, tui.Options{
		Refresher: r.deps.Refresher(),
		Renewer:   r.deps.Workflow(),
		Resolver:  watcher,
		Logs:      logs,
		Interval:  r.deps.Settings().RefreshInterval,
	})
	cancel()
	_ = g.Wait()
	return err
}

// Show prints one refresh round. With names, only those interfaces are read, and
// each must be one the Enumerator lists.
func (r *Runner) Show(ctx context.Context, names []string) error {
	refresher := r.deps.Refresher()
	var round snapshot.Round
	var err error
	if len(names) > 0 {
		if err = r.requirePhysical(ctx, names...); err != nil {
			return err
		}
		round, err = refresher.Only(ctx, names)
	} else {
		round, err = refresher.Refresh(ctx)
	}
	if err != nil {
		return err
	}
	r.printer.Round(round)
	return nil
}

// Renew renews iface and prints the outcome. The outcome is returned so the
// caller can turn a failed command into an exit status.
func (r *Runner) Renew(ctx context.Context, iface string) (lease.Outcome, error) {
	if err := r.requirePhysical(ctx, iface); err != nil {
		return lease.Outcome{}, err
	}
	outcome, err := r.deps.Workflow().Run(ctx, iface)
	if err != nil {
		return outcome, err
	}
	r.printer.Outcome(outcome)
	return outcome, nil
}

// requirePhysical checks names against one enumeration, without taking snapshots.
func (r *Runner) requirePhysical(ctx context.Context, names ...string) error {
	physical, err := r.deps.Enumerator().Interfaces(ctx)
	if err != nil {
		return fmt.Errorf("enumerate interfaces: %w", err)
	}
	var errs []error
	for _, name := range names {
		if !slices.Contains(physical, name) {
			errs = append(errs, fmt.Errorf("%s: %w", name, ErrNotPhysical))
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) History(ctx context.Context, q history.Query) error {
	store := r.deps.History()
	if store == nil {
		return ErrHistoryDisabled
	}
	entries, err := store.List(ctx, q)
	if err != nil {
		return err
	}
	r.printer.History(entries)
	return nil
}

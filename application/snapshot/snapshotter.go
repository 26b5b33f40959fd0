// Package snapshot assembles interface snapshots from independent, individually
// fallible data sources.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"linkwatch/domain/link"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Option func(*Snapshotter)

func WithClock(now func() time.Time) Option {
	return func(s *Snapshotter) { s.now = now }
}

// WithParallelism bounds how many interfaces a round reads at once.
func WithParallelism(n int) Option {
	return func(s *Snapshotter) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// Snapshotter never fails because a single source is missing; the affected
// fields are left absent. Only an interface with no readable source at all is
// reported as unavailable.
type Snapshotter struct {
	links       LinkReader
	routes      GatewayReader
	addresses   AddressReader
	resolver    ResolverReader
	logger      *zap.Logger
	now         func() time.Time
	parallelism int
}

func NewSnapshotter(
	links LinkReader,
	routes GatewayReader,
	addresses AddressReader,
	resolver ResolverReader,
	logger *zap.Logger,
	opts ...Option,
) *Snapshotter {
	s := &Snapshotter{
		links:       links,
		routes:      routes,
		addresses:   addresses,
		resolver:    resolver,
		logger:      logger,
		now:         time.Now,
		parallelism: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot takes one snapshot of name. On total failure the sparse snapshot is
// returned together with a *link.ScanUnavailableError.
func (s *Snapshotter) Snapshot(ctx context.Context, name string) (link.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return link.Snapshot{Name: name, Schema: link.SnapshotSchema}, err
	}
	dns, dnsErr := s.resolver.Nameservers()
	return s.take(ctx, name, dns, dnsErr)
}

// Round snapshots every name concurrently, reading the resolver file once.
// Results keep the order of names. The only error is the context's.
func (s *Snapshotter) Round(ctx context.Context, names []string) ([]link.ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dns, dnsErr := s.resolver.Nameservers()
	if dnsErr != nil {
		s.logger.Debug("resolver unreadable", zap.Error(dnsErr))
	}

	results := make([]link.ScanResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, name := range names {
		g.Go(func() error {
			snap, err := s.take(gctx, name, dns, dnsErr)
			if err != nil && !errors.Is(err, link.ErrScanUnavailable) {
				return err
			}
			results[i] = link.ScanResult{Snapshot: snap, Unavailable: err != nil}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Snapshotter) take(ctx context.Context, name string, dns []string, dnsErr error) (link.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return link.Snapshot{Name: name, Schema: link.SnapshotSchema}, err
	}
	snap := link.Snapshot{
		Name:    name,
		TakenAt: s.now(),
		Schema:  link.SnapshotSchema,
	}
	var causes []error

	if attrs, err := s.links.LinkAttributes(name); err != nil {
		causes = append(causes, fmt.Errorf("link: %w", err))
	} else {
		snap.OperState = attrs.OperState
		snap.Carrier = attrs.Carrier
		snap.MAC = attrs.MAC
		snap.SpeedMbps = attrs.SpeedMbps
		snap.Sources |= link.SourceLink
	}

	if gw, err := s.routes.DefaultGateway(name); err != nil {
		causes = append(causes, fmt.Errorf("route: %w", err))
	} else {
		snap.IPv4Gateway = gw
		snap.Sources |= link.SourceRoute
	}

	if v4, v6, err := s.addresses.Addresses(ctx, name); err != nil {
		causes = append(causes, fmt.Errorf("addresses: %w", err))
	} else {
		snap.IPv4, snap.IPv6 = v4, v6
		snap.Sources |= link.SourceAddresses
	}

	if dnsErr != nil {
		causes = append(causes, fmt.Errorf("resolver: %w", dnsErr))
	} else {
		snap.DNS = append([]string{}, dns...)
		snap.Sources |= link.SourceResolver
	}

	if len(causes) > 0 {
		s.logger.Debug("snapshot incomplete",
			zap.String("iface", name),
			zap.Stringer("sources", snap.Sources),
			zap.Error(errors.Join(causes...)),
		)
	}
	if snap.Sources == link.SourceNone {
		return snap, link.NewScanUnavailableError(name, errors.Join(causes...))
	}
	return snap, nil
}

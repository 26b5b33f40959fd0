package snapshot

import (
	"context"
	"fmt"
	"time"

	"linkwatch/domain/link"

	"go.uber.org/zap"
)

// Round is the result of one refresh: the enumerated interfaces and a scan result for each.
type Round struct {
	Interfaces []string
	Results    map[string]link.ScanResult
	TakenAt    time.Time
}

// Refresher enumerates interfaces and snapshots all of them.
type Refresher struct {
	enumerator  Enumerator
	snapshotter *Snapshotter
	logger      *zap.Logger
}

func NewRefresher(enumerator Enumerator, snapshotter *Snapshotter, logger *zap.Logger) *Refresher {
	return &Refresher{enumerator: enumerator, snapshotter: snapshotter, logger: logger}
}

func (r *Refresher) Snapshotter() *Snapshotter {
	return r.snapshotter
}

func (r *Refresher) Refresh(ctx context.Context) (Round, error) {
	names, err := r.enumerator.Interfaces(ctx)
	if err != nil {
		return Round{}, fmt.Errorf("enumerate interfaces: %w", err)
	}
	return r.Only(ctx, names)
}

// Only snapshots the given names without enumerating.
func (r *Refresher) Only(ctx context.Context, names []string) (Round, error) {
	results, err := r.snapshotter.Round(ctx, names)
	if err != nil {
		return Round{}, err
	}
	round := Round{
		Interfaces: names,
		Results:    make(map[string]link.ScanResult, len(results)),
		TakenAt:    r.snapshotter.now(),
	}
	unavailable := 0
	for _, res := range results {
		round.Results[res.Snapshot.Name] = res
		if res.Unavailable {
			unavailable++
		}
	}
	r.logger.Debug("refresh round complete",
		zap.Int("interfaces", len(names)),
		zap.Int("unavailable", unavailable),
	)
	return round, nil
}

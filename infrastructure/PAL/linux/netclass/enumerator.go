// Package netclass reads interface identity and link attributes from sysfs (/sys/class/net).
package netclass

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"linkwatch/domain/link"
	"linkwatch/infrastructure/PAL/stat"

	"github.com/prometheus/procfs/sysfs"
	"go.uber.org/zap"
)

const loopback = "lo"

// Enumerator lists physical, non-wireless interfaces. Nothing is cached between calls.
type Enumerator struct {
	root   string
	stat   stat.Stat
	probe  WirelessProbe
	logger *zap.Logger
}

// NewEnumerator returns an Enumerator reading the sysfs tree mounted at root.
// probe may be nil, in which case only the sysfs wireless markers are consulted.
func NewEnumerator(root string, st stat.Stat, probe WirelessProbe, logger *zap.Logger) *Enumerator {
	if st == nil {
		st = stat.NewDefaultStat()
	}
	return &Enumerator{root: root, stat: st, probe: probe, logger: logger}
}

// Interfaces returns the names of physical, non-wireless interfaces sorted by name.
// An empty result is not an error.
func (e *Enumerator) Interfaces(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs, err := sysfs.NewFS(e.root)
	if err != nil {
		return nil, fmt.Errorf("open sysfs at %s: %w", e.root, err)
	}
	names, err := fs.NetClassDevices()
	if err != nil {
		return nil, fmt.Errorf("list network devices: %w", err)
	}

	wireless := e.wirelessNames()
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !e.Identify(name).Physical {
			continue
		}
		if _, ok := wireless[name]; ok {
			e.logger.Debug("skipping nl80211 interface", zap.String("iface", name))
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Identify classifies one interface by its sysfs entries: physical means a
// device link is present and neither wireless/ nor phy80211 is.
func (e *Enumerator) Identify(name string) link.Identity {
	dir := filepath.Join(e.root, "class", "net", name)
	physical := name != loopback &&
		stat.Exists(e.stat, filepath.Join(dir, "device")) &&
		!stat.IsDir(e.stat, filepath.Join(dir, "wireless")) &&
		!stat.Exists(e.stat, filepath.Join(dir, "phy80211"))
	return link.Identity{Name: name, Physical: physical}
}

func (e *Enumerator) wirelessNames() map[string]struct{} {
	if e.probe == nil {
		return nil
	}
	names, err := e.probe.WirelessInterfaces()
	if err != nil {
		e.logger.Debug("nl80211 probe unavailable", zap.Error(err))
		return nil
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

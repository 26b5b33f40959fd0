// Package addresses enumerates addresses bound to an interface through the OS.
package addresses

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"

	gnet "github.com/shirou/gopsutil/v3/net"
)

var ErrInterfaceNotFound = errors.New("interface not found")

type lister func(ctx context.Context) (gnet.InterfaceStatList, error)

type Source struct {
	list lister
}

func NewSource() *Source {
	return &Source{list: gnet.InterfacesWithContext}
}

// Addresses returns iface's IPv4 and IPv6 addresses in CIDR notation, in the order
// the OS reports them. An interface absent from the OS list is an error, so a
// vanished interface reads as unknown rather than as having no addresses.
func (s *Source) Addresses(ctx context.Context, iface string) (v4, v6 []string, err error) {
	list, err := s.list(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("enumerate interfaces: %w", err)
	}
	for _, stat := range list {
		if stat.Name != iface {
			continue
		}
		v4, v6 = []string{}, []string{}
		for _, a := range stat.Addrs {
			if is4(a.Addr) {
				v4 = append(v4, a.Addr)
			} else {
				v6 = append(v6, a.Addr)
			}
		}
		return v4, v6, nil
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrInterfaceNotFound, iface)
}

func is4(cidr string) bool {
	if p, err := netip.ParsePrefix(cidr); err == nil {
		return p.Addr().Unmap().Is4()
	}
	if a, err := netip.ParseAddr(cidr); err == nil {
		return a.Unmap().Is4()
	}
	return !strings.Contains(cidr, ":")
}

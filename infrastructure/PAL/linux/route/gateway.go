// Package route reads the default IPv4 gateway from the kernel's flat routing table (/proc/net/route).
package route

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/prometheus/procfs"
)

// GatewayReader looks up default routes in <procfs>/net/route.
type GatewayReader struct {
	root string
}

func NewGatewayReader(procRoot string) *GatewayReader {
	return &GatewayReader{root: procRoot}
}

// DefaultGateway returns the gateway of iface's default route (destination 0.0.0.0),
// picking the lowest metric when several exist. A nil gateway with a nil error means
// the table was read and iface has no default route through a gateway.
// An unreadable or malformed table is an error.
func (r *GatewayReader) DefaultGateway(iface string) (*string, error) {
	fs, err := procfs.NewFS(r.root)
	if err != nil {
		return nil, fmt.Errorf("open procfs at %s: %w", r.root, err)
	}
	lines, err := fs.NetRoute()
	if err != nil {
		return nil, fmt.Errorf("read routing table: %w", err)
	}

	var (
		best  *procfs.NetRouteLine
		found bool
	)
	for i := range lines {
		l := &lines[i]
		if l.Iface != iface || l.Destination != 0 || l.Gateway == 0 {
			continue
		}
		if !found || l.Metric < best.Metric {
			best, found = l, true
		}
	}
	if !found {
		return nil, nil
	}
	gw := decodeGateway(best.Gateway).String()
	return &gw, nil
}

// decodeGateway converts the kernel's host-order hex column, which holds the
// address bytes in network order, back to an address.
func decodeGateway(v uint32) netip.Addr {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}

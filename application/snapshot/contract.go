package snapshot

import (
	"context"

	"linkwatch/domain/link"
)

// LinkReader reads the kernel link attributes of one interface.
type LinkReader interface {
	LinkAttributes(name string) (link.Attributes, error)
}

// GatewayReader resolves the IPv4 default gateway routed through an interface.
// A nil gateway with a nil error means the table was read and has no default route.
type GatewayReader interface {
	DefaultGateway(iface string) (*string, error)
}

// AddressReader lists an interface's addresses in CIDR notation.
type AddressReader interface {
	Addresses(ctx context.Context, iface string) (v4, v6 []string, err error)
}

// ResolverReader returns the system-wide nameservers.
type ResolverReader interface {
	Nameservers() ([]string, error)
}

// Enumerator lists the interfaces a refresh round covers.
type Enumerator interface {
	Interfaces(ctx context.Context) ([]string, error)
}

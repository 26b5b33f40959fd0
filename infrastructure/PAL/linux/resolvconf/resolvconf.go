// Package resolvconf extracts nameservers from the resolver configuration file.
package resolvconf

import (
	"errors"
	"fmt"
	"io"
	"net/netip"
	"os"

	"github.com/miekg/dns"
)

const DefaultPath = "/etc/resolv.conf"

var errNoWatch = errors.New("no resolver directory could be watched")

type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	if path == "" {
		path = DefaultPath
	}
	return &Reader{path: path}
}

func (r *Reader) Path() string {
	return r.path
}

// Nameservers returns the nameserver entries in file order. A missing or
// unreadable file is an error; a file without nameservers is not.
func (r *Reader) Nameservers() ([]string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return Parse(f)
}

// Parse reads resolv.conf syntax. Each nameserver line stands on its own: a value that
// is not an IP address is skipped without affecting the others.
func Parse(r io.Reader) ([]string, error) {
	conf, err := dns.ClientConfigFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse resolver config: %w", err)
	}
	servers := make([]string, 0, len(conf.Servers))
	for _, s := range conf.Servers {
		addr, err := netip.ParseAddr(s)
		if err != nil {
			continue
		}
		servers = append(servers, addr.String())
	}
	return servers, nil
}

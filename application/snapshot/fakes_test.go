package snapshot

import (
	"context"
	"errors"
	"sync"

	"linkwatch/domain/link"
)

var errUnreadable = errors.New("unreadable")

type fakeLinks struct {
	attrs map[string]link.Attributes
}

func (f fakeLinks) LinkAttributes(name string) (link.Attributes, error) {
	a, ok := f.attrs[name]
	if !ok {
		return link.Attributes{}, errUnreadable
	}
	return a, nil
}

type fakeRoutes struct {
	gateways map[string]string
	err      error
}

func (f fakeRoutes) DefaultGateway(iface string) (*string, error) {
	if f.err != nil {
		return nil, f.err
	}
	gw, ok := f.gateways[iface]
	if !ok {
		return nil, nil
	}
	return &gw, nil
}

type addrPair struct{ v4, v6 []string }

type fakeAddresses struct {
	byName map[string]addrPair
}

func (f fakeAddresses) Addresses(_ context.Context, iface string) ([]string, []string, error) {
	p, ok := f.byName[iface]
	if !ok {
		return nil, nil, errUnreadable
	}
	return p.v4, p.v6, nil
}

type countingResolver struct {
	mu      sync.Mutex
	calls   int
	servers []string
	err     error
}

func (r *countingResolver) Nameservers() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.servers, r.err
}

func (r *countingResolver) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type fakeEnumerator struct {
	names []string
	err   error
}

func (f fakeEnumerator) Interfaces(context.Context) ([]string, error) {
	return f.names, f.err
}

/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package dnsutil

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"sort"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	xmppClientService = "xmpp-client"

	defaultClientPort = 5222
)

// Endpoint is a concrete transport address obtained from service resolution.
// Its host and port may legitimately differ from the logical service name.
type Endpoint struct {
	Host string
	Port int
}

// ResolutionError reports a service lookup that failed with no
// usable fallback.
type ResolutionError struct {
	Domain string
	Err    error
}

// Error satisfies error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("dnsutil: resolving service for %s: %v", e.Domain, e.Err)
}

// Unwrap returns the underlying lookup error.
func (e *ResolutionError) Unwrap() error { return e.Err }

type lookupSRVFunc func(ctx context.Context, service, proto, name string) (cname string, addrs []*net.SRV, err error)

// Resolver discovers the transport endpoint of an XMPP service domain
// by performing a client SRV lookup. It never retries and never caches;
// retry policy belongs to whoever orchestrates connection attempts.
type Resolver struct {
	lookupSRV lookupSRVFunc
	randInt   func(n int) int
	logger    log.Logger
}

var srvDialer = net.Dialer{}

// New creates and initializes a new Resolver instance.
func New(logger log.Logger) *Resolver {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	r := net.Resolver{
		Dial: func(ctx context.Context, _, address string) (net.Conn, error) {
			return srvDialer.DialContext(ctx, "tcp", address) // force SRV resolution over TCP
		},
	}
	return &Resolver{
		lookupSRV: r.LookupSRV,
		randInt:   rand.Intn,
		logger:    logger,
	}
}

// ResolveEndpoint looks up the _xmpp-client._tcp SRV record set of domain
// and selects one endpoint honoring priority and weight ordering.
// When the domain publishes no SRV records the domain itself is used as
// host together with the standard client port.
func (r *Resolver) ResolveEndpoint(ctx context.Context, domain string) (Endpoint, error) {
	_, addrs, err := r.lookupSRV(ctx, xmppClientService, "tcp", domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			level.Debug(r.logger).Log("msg", "no SRV records found, using fallback endpoint", "domain", domain)
			return Endpoint{Host: domain, Port: defaultClientPort}, nil
		}
		return Endpoint{}, &ResolutionError{Domain: domain, Err: err}
	}
	usable := addrs[:0]
	for _, addr := range addrs {
		if addr.Target == "." {
			continue // RFC 2782: service decidedly not available
		}
		usable = append(usable, addr)
	}
	if len(usable) == 0 {
		level.Debug(r.logger).Log("msg", "empty SRV record set, using fallback endpoint", "domain", domain)
		return Endpoint{Host: domain, Port: defaultClientPort}, nil
	}
	selected := r.selectAddr(usable)
	return Endpoint{
		Host: strings.TrimSuffix(selected.Target, "."),
		Port: int(selected.Port),
	}, nil
}

// selectAddr picks a record from the lowest priority group, weighted
// random among records sharing that priority.
func (r *Resolver) selectAddr(addrs []*net.SRV) *net.SRV {
	sort.SliceStable(addrs, func(i, j int) bool {
		return addrs[i].Priority < addrs[j].Priority
	})
	group := addrs[:1]
	for _, addr := range addrs[1:] {
		if addr.Priority != addrs[0].Priority {
			break
		}
		group = append(group, addr)
	}
	if len(group) == 1 {
		return group[0]
	}
	var total int
	for _, addr := range group {
		total += int(addr.Weight)
	}
	if total == 0 {
		return group[r.randInt(len(group))]
	}
	n := r.randInt(total)
	for _, addr := range group {
		n -= int(addr.Weight)
		if n < 0 {
			return addr
		}
	}
	return group[len(group)-1]
}

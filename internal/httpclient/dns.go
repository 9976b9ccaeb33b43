package httpclient

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/rs/dnscache"
)

// dnsCache serves host lookups from a dnscache.Resolver and re-resolves the hosts in
// use every refresh interval. Hosts not used since the previous refresh are dropped.
type dnsCache struct {
	resolver *dnscache.Resolver
	dialer   *net.Dialer
	refresh  time.Duration

	stop chan struct{}
	done chan struct{}
}

func newDNSCache(refresh time.Duration, dialer *net.Dialer, upstream dnscache.DNSResolver) *dnsCache {
	return &dnsCache{
		resolver: &dnscache.Resolver{Timeout: dialer.Timeout, Resolver: upstream},
		dialer:   dialer,
		refresh:  refresh,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// start runs the refresh loop until close is called.
func (c *dnsCache) start() {
	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.refresh)
		defer ticker.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				c.resolver.Refresh(true)
			}
		}
	}()
}

func (c *dnsCache) close() {
	close(c.stop)
	<-c.done
}

// DialContext is used as the transport dialer. Cached addresses are tried in order.
func (c *dnsCache) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return nil, err
	}
	if net.ParseIP(host) != nil {
		return c.dialer.DialContext(ctx, network, address)
	}

	addrs, err := c.resolver.LookupHost(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("dns lookup %s: %w", host, err)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("no addresses for host %s", host)
	}

	var lastErr error
	for _, addr := range addrs {
		conn, err := c.dialer.DialContext(ctx, network, net.JoinHostPort(addr, port))
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	slog.Debug("All cached addresses failed", "host", host, "error", lastErr)
	return nil, lastErr
}

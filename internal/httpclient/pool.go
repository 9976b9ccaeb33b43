package httpclient

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/dnscache"
)

const (
	DefaultMaxConns        = 30
	DefaultMaxConnsPerHost = 10
	DefaultDNSTTL          = 300 * time.Second
	DefaultTimeout         = 30 * time.Second
	DefaultConnectTimeout  = 10 * time.Second
)

// Options sizes the pooled client. Zero values fall back to the defaults above.
type Options struct {
	MaxConns        int
	MaxConnsPerHost int
	// DNSTTL is how often cached host lookups are refreshed.
	DNSTTL          time.Duration
	Timeout         time.Duration
	ConnectTimeout  time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxConns <= 0 {
		o.MaxConns = DefaultMaxConns
	}
	if o.MaxConnsPerHost <= 0 {
		o.MaxConnsPerHost = DefaultMaxConnsPerHost
	}
	if o.DNSTTL <= 0 {
		o.DNSTTL = DefaultDNSTTL
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = DefaultConnectTimeout
	}
	return o
}

// Pool owns the single HTTP client shared by every fetch in the process.
// The client is built on first use and its idle connections are released once by Close.
type Pool struct {
	opts     Options
	upstream dnscache.DNSResolver

	mu        sync.Mutex
	closed    bool
	client    *http.Client
	transport *http.Transport
	dns       *dnsCache
}

func NewPool(opts Options) *Pool {
	return &Pool{opts: opts.withDefaults(), upstream: net.DefaultResolver}
}

// Client returns the shared client, creating it on the first call.
func (p *Pool) Client() *http.Client {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil {
		dialer := &net.Dialer{
			Timeout:   p.opts.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}
		p.dns = newDNSCache(p.opts.DNSTTL, dialer, p.upstream)
		if !p.closed {
			p.dns.start()
		}
		p.transport = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         p.dns.DialContext,
			TLSHandshakeTimeout: p.opts.ConnectTimeout,
			MaxIdleConns:        p.opts.MaxConns,
			MaxIdleConnsPerHost: p.opts.MaxConnsPerHost,
			MaxConnsPerHost:     p.opts.MaxConnsPerHost,
			IdleConnTimeout:     90 * time.Second,
		}
		p.client = &http.Client{
			Transport: p.transport,
			Timeout:   p.opts.Timeout,
		}
		slog.Debug("HTTP client pool created", "max_conns", p.opts.MaxConns, "max_conns_per_host", p.opts.MaxConnsPerHost)
	}
	return p.client
}

// Close stops the DNS refresh loop and releases idle connections. Only the first call
// has an effect, and calling it before Client is a no-op.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	if p.transport != nil {
		p.dns.close()
		p.transport.CloseIdleConnections()
		slog.Info("HTTP client pool closed")
	}
}

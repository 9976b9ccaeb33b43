package links

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pauljones0/deal-link-bot/internal/httpclient"
	"github.com/pauljones0/deal-link-bot/internal/models"
)

const (
	DefaultResolveAttempts = 3
	DefaultHeadTimeout     = 10 * time.Second
	DefaultGetTimeout      = 15 * time.Second
	DefaultResolveBackoff  = 1 * time.Second
)

// resolveStep is a state of the resolution loop.
type resolveStep int

const (
	stepHead resolveStep = iota
	stepGet
	stepBackoff
	stepDone
)

func (s resolveStep) String() string {
	switch s {
	case stepHead:
		return "head"
	case stepGet:
		return "get"
	case stepBackoff:
		return "backoff"
	default:
		return "done"
	}
}

// Resolver follows shortener redirects to the destination URL.
type Resolver struct {
	client      *http.Client
	profile     httpclient.Profile
	attempts    int
	headTimeout time.Duration
	getTimeout  time.Duration
	backoff     time.Duration
}

type ResolverOption func(*Resolver)

func WithAttempts(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.attempts = n
		}
	}
}

func WithBackoff(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.backoff = d }
}

func WithRequestTimeouts(head, get time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.headTimeout = head
		r.getTimeout = get
	}
}

func NewResolver(client *http.Client, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client:      client,
		profile:     httpclient.Desktop,
		attempts:    DefaultResolveAttempts,
		headTimeout: DefaultHeadTimeout,
		getTimeout:  DefaultGetTimeout,
		backoff:     DefaultResolveBackoff,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs up to the configured number of attempts, each a HEAD request followed by a
// GET request. A request succeeds when the final URL differs from the current one and is at
// least as long. Failures are swallowed; when nothing succeeds the input is returned.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) models.ResolvedLink {
	current := rawURL
	attempt := 0
	step := stepHead

	for step != stepDone {
		slog.Debug("Unshorten step", "url", rawURL, "step", step.String(), "attempt", attempt+1)
		switch step {
		case stepHead:
			if final, ok := r.follow(ctx, http.MethodHead, current, r.headTimeout); ok {
				slog.Info("HEAD unshorten successful", "url", rawURL, "resolved", final)
				current = final
				step = stepDone
				continue
			}
			step = stepGet
		case stepGet:
			if final, ok := r.follow(ctx, http.MethodGet, current, r.getTimeout); ok {
				slog.Info("GET unshorten successful", "url", rawURL, "resolved", final)
				current = final
				step = stepDone
				continue
			}
			step = stepBackoff
		case stepBackoff:
			attempt++
			if attempt >= r.attempts || !sleepCtx(ctx, r.backoff) {
				slog.Warn("Could not unshorten URL", "url", rawURL, "attempts", attempt)
				step = stepDone
				continue
			}
			step = stepHead
		}
	}

	if current == "" {
		current = rawURL
	}
	return models.ResolvedLink{Original: rawURL, Resolved: current}
}

// follow issues one request and reports the final URL after redirects when it qualifies
// as a resolution of current.
func (r *Resolver) follow(ctx context.Context, method, current string, timeout time.Duration) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, current, nil)
	if err != nil {
		slog.Debug("Invalid URL for unshorten request", "url", current, "error", err)
		return "", false
	}
	r.profile.Apply(req)

	resp, err := r.client.Do(req)
	if err != nil {
		slog.Debug("Unshorten request failed", "method", method, "url", current, "error", err)
		return "", false
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()

	final := resp.Request.URL.String()
	if final != current && len(final) >= len(current) {
		return final, true
	}
	return "", false
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

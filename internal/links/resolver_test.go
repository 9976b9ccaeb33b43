package links

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestResolver(attempts int) *Resolver {
	return NewResolver(&http.Client{Timeout: 5 * time.Second},
		WithAttempts(attempts),
		WithBackoff(0),
		WithRequestTimeouts(2*time.Second, 2*time.Second),
	)
}

func TestResolve_FollowsRedirectWithHead(t *testing.T) {
	var headHits, getHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/abc", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			headHits.Add(1)
		} else {
			getHits.Add(1)
		}
		http.Redirect(w, r, "/products/some-long-product-path-123", http.StatusFound)
	})
	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	got := newTestResolver(3).Resolve(context.Background(), server.URL+"/abc")

	assert.Equal(t, server.URL+"/abc", got.Original)
	assert.Equal(t, server.URL+"/products/some-long-product-path-123", got.Resolved)
	assert.True(t, got.Changed())
	assert.Equal(t, int32(1), headHits.Load())
	assert.Equal(t, int32(0), getHits.Load())
}

func TestResolve_FallsBackToGet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/abc", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		http.Redirect(w, r, "/products/some-long-product-path-123", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	got := newTestResolver(3).Resolve(context.Background(), server.URL+"/abc")
	assert.Equal(t, server.URL+"/products/some-long-product-path-123", got.Resolved)
}

func TestResolve_SendsBrowserHeaders(t *testing.T) {
	var userAgent atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent.Store(r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	newTestResolver(1).Resolve(context.Background(), server.URL+"/abc")
	assert.Contains(t, userAgent.Load(), "Chrome/121")
}

// Shorteners that redirect to a shorter URL are reported as unresolved.
func TestResolve_ShorterDestinationIsNotAccepted(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/a-rather-long-short-link", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Redirect(w, r, "/p", http.StatusFound)
	})
	mux.HandleFunc("/p", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	input := server.URL + "/a-rather-long-short-link"
	got := newTestResolver(2).Resolve(context.Background(), input)

	assert.Equal(t, input, got.Resolved)
	assert.False(t, got.Changed())
	assert.Equal(t, int32(4), hits.Load(), "two attempts of HEAD then GET")
}

func TestResolve_TransportErrorReturnsInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	input := server.URL + "/abc"
	server.Close()

	got := newTestResolver(3).Resolve(context.Background(), input)
	assert.Equal(t, input, got.Resolved)
	assert.NotEmpty(t, got.Resolved)
}

func TestResolve_CancelledContextStopsEarly(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewResolver(server.Client(), WithAttempts(5), WithBackoff(time.Hour))
	got := r.Resolve(ctx, server.URL+"/abc")

	assert.Equal(t, server.URL+"/abc", got.Resolved)
	assert.Equal(t, int32(0), hits.Load())
}

func TestResolveStep_String(t *testing.T) {
	assert.Equal(t, "head", stepHead.String())
	assert.Equal(t, "get", stepGet.String())
	assert.Equal(t, "backoff", stepBackoff.String())
	assert.Equal(t, "done", stepDone.String())
}

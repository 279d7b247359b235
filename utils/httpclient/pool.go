package httpclient

import (
	"net/http"
	"time"
)

// PoolConfig sizes the shared transport.
type PoolConfig struct {
	UserAgent           string
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// Pool hands out clients that share one transport so tile, upload, model and
// product-search traffic reuse connections to the same hosts.
type Pool struct {
	transport http.RoundTripper
}

func NewPool(cfg PoolConfig) *Pool {
	base := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		DisableKeepAlives:   false,
	}

	var rt http.RoundTripper = base
	if cfg.UserAgent != "" {
		rt = &userAgentTransport{base: base, userAgent: cfg.UserAgent}
	}
	return &Pool{transport: rt}
}

// NewPooledClient creates an http.Client with its own overall timeout on the
// shared transport.
func (p *Pool) NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: p.transport,
	}
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(clone)
}

package rate_limiter

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HostRateLimiter spaces calls to one host by a fixed interval. OCR and
// product search each get their own instance.
type HostRateLimiter struct {
	interval time.Duration
	hosts    sync.Map // host -> *rate.Limiter
}

func NewHostRateLimiter(interval time.Duration) *HostRateLimiter {
	return &HostRateLimiter{interval: interval}
}

// Interval returns the minimum spacing between requests to one host.
func (h *HostRateLimiter) Interval() time.Duration {
	return h.interval
}

// WaitForHost blocks until a request to the host of rawURL may proceed.
func (h *HostRateLimiter) WaitForHost(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Host == "" {
		return fmt.Errorf("rate limiter: no host in %q", rawURL)
	}
	return h.limiterFor(u.Host).Wait(ctx)
}

func (h *HostRateLimiter) limiterFor(host string) *rate.Limiter {
	if l, ok := h.hosts.Load(host); ok {
		return l.(*rate.Limiter)
	}
	l, _ := h.hosts.LoadOrStore(host, rate.NewLimiter(rate.Every(h.interval), 1))
	return l.(*rate.Limiter)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/constants"
	"github.com/taibuivan/tabletop/internal/platform/respond"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// NewRateLimiter builds a limiter and starts evicting idle clients until ctx
// is done. Non-positive values fall back to the package defaults.
func NewRateLimiter(ctx context.Context, rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		rps = constants.DefaultRateLimitRPS
	}
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}

	limiter := &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
	go limiter.evictLoop(ctx)
	return limiter
}

func (limiter *RateLimiter) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			limiter.evict(constants.RateLimitClientTTL)
		case <-ctx.Done():
			return
		}
	}
}

// evict drops buckets idle for longer than ttl.
func (limiter *RateLimiter) evict(ttl time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	cutoff := limiter.now().Add(-ttl)
	for client, b := range limiter.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(limiter.buckets, client)
		}
	}
}

// allow consumes a token for client. When none is left it reports how many
// whole seconds until the next one.
func (limiter *RateLimiter) allow(client string) (bool, int) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	b, found := limiter.buckets[client]
	if !found {
		b = &bucket{limiter: rate.NewLimiter(limiter.rps, limiter.burst)}
		limiter.buckets[client] = b
	}

	now := limiter.now()
	b.lastSeen = now
	if b.limiter.AllowN(now, 1) {
		return true, 0
	}

	wait := 1 / float64(limiter.rps)
	return false, int(math.Max(1, math.Ceil(wait)))
}

// Middleware answers 429 with a Retry-After header once a client drains its bucket.
func (limiter *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		allowed, retryAfter := limiter.allow(RealIP(request))
		if !allowed {
			writer.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			respond.Error(writer, request, apperr.RateLimited(retryAfter))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

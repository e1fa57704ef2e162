package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter checks whether a request identified by key may proceed.
// The key is typically a client IP.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// TokenBucket is a per-key token bucket limiter for single-instance
// deployments. Buckets for keys that go quiet are evicted in the
// background to bound memory.
type TokenBucket struct {
	rate  rate.Limit
	burst int

	buckets    sync.Map // map[string]*rate.Limiter
	lastAccess sync.Map // map[string]time.Time

	cleanupInterval time.Duration
	maxAge          time.Duration
	stop            chan struct{}
}

// NewTokenBucket creates a limiter allowing rps requests per second
// per key with the given burst size.
func NewTokenBucket(rps float64, burst int) *TokenBucket {
	tb := &TokenBucket{
		rate:            rate.Limit(rps),
		burst:           burst,
		cleanupInterval: 5 * time.Minute,
		maxAge:          10 * time.Minute,
		stop:            make(chan struct{}),
	}
	go tb.cleanupLoop()
	return tb
}

// Allow reports whether one request for key may proceed now.
func (tb *TokenBucket) Allow(_ context.Context, key string) bool {
	bucket := tb.bucket(key)
	tb.lastAccess.Store(key, time.Now().UTC())
	return bucket.Allow()
}

func (tb *TokenBucket) bucket(key string) *rate.Limiter {
	if b, ok := tb.buckets.Load(key); ok {
		return b.(*rate.Limiter)
	}

	b := rate.NewLimiter(tb.rate, tb.burst)
	// LoadOrStore resolves the race when two goroutines create the
	// same bucket concurrently
	actual, loaded := tb.buckets.LoadOrStore(key, b)
	if loaded {
		return actual.(*rate.Limiter)
	}
	tb.lastAccess.Store(key, time.Now().UTC())
	return b
}

func (tb *TokenBucket) cleanupLoop() {
	ticker := time.NewTicker(tb.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			tb.evictStale()
		case <-tb.stop:
			return
		}
	}
}

func (tb *TokenBucket) evictStale() {
	cutoff := time.Now().UTC().Add(-tb.maxAge)
	var stale []string

	tb.lastAccess.Range(func(key, value interface{}) bool {
		if value.(time.Time).Before(cutoff) {
			stale = append(stale, key.(string))
		}
		return true
	})

	for _, key := range stale {
		tb.buckets.Delete(key)
		tb.lastAccess.Delete(key)
	}
}

// Stop terminates the background eviction goroutine.
func (tb *TokenBucket) Stop() {
	close(tb.stop)
}

// Package ratelimit provides rate limiting functionality using token bucket algorithm.
package ratelimit

import (
	"sync"
	"time"

	"github.com/juju/clock"
)

// bucketIdleTimeout is how long a bucket may go unused before cleanup drops it.
const bucketIdleTimeout = time.Hour

// TokenBucket represents a token bucket rate limiter.
// It allows a certain number of requests (tokens) per time window,
// with tokens refilling at a steady rate.
type TokenBucket struct {
	capacity   int       // Maximum tokens (burst capacity)
	refillRate float64   // Tokens per second
	tokens     float64   // Current tokens available
	lastRefill time.Time // Last time tokens were refilled
	mu         sync.Mutex
}

// newTokenBucket creates a new token bucket with the specified capacity and refill rate.
func newTokenBucket(capacity int, refillRate float64, now time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity), // Start with full bucket
		lastRefill: now,
	}
}

// refill adds the tokens earned since the last refill. Callers hold mu.
func (tb *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill)
	if elapsed > 0 {
		tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
		tb.lastRefill = now
	}
}

// take consumes a token if one is available and reports the bucket state
// after the attempt.
func (tb *TokenBucket) take(now time.Time) (allowed bool, remaining int, resetTime time.Time, retryAfter time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill(now)

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		allowed = true
	} else {
		retryAfter = tb.durationFor(1.0 - tb.tokens)
	}

	remaining = int(tb.tokens)
	resetTime = now.Add(tb.durationFor(float64(tb.capacity) - tb.tokens))
	return allowed, remaining, resetTime, retryAfter
}

// durationFor returns how long the bucket needs to earn n tokens.
func (tb *TokenBucket) durationFor(n float64) time.Duration {
	if n <= 0 || tb.refillRate <= 0 {
		return 0
	}
	return time.Duration(n / tb.refillRate * float64(time.Second))
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	DefaultBurst    int
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter manages rate limiting for multiple clients using token buckets.
type Limiter struct {
	buckets     map[string]*TokenBucket // client:endpoint:method -> bucket
	lastAccess  map[string]time.Time
	mu          sync.Mutex
	config      *Config
	clock       clock.Clock
	cleanupStop chan struct{}
	stopOnce    sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
// A nil clock uses the wall clock.
func NewLimiter(cfg *Config, clk clock.Clock) *Limiter {
	if cfg == nil {
		cfg = &Config{Enabled: false}
	}
	if clk == nil {
		clk = clock.WallClock
	}

	limiter := &Limiter{
		buckets:    make(map[string]*TokenBucket),
		lastAccess: make(map[string]time.Time),
		config:     cfg,
		clock:      clk,
	}

	if cfg.Enabled && cfg.CleanupInterval > 0 {
		limiter.cleanupStop = make(chan struct{})
		go limiter.cleanup()
	}

	return limiter
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Returns true if allowed, false if rate limited, along with rate limit information.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Path:   endpoint,
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultBurst,
		}
	}

	// Unlimited endpoint (e.g., health check)
	if endpointConfig.Limit <= 0 || endpointConfig.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.clock.Now()
	// Paths matching the same pattern share one bucket.
	bucketKey := clientID + ":" + endpointConfig.Path + ":" + method
	bucket := l.getBucket(bucketKey, endpointConfig, now)

	allowed, remaining, resetTime, retryAfter := bucket.take(now)
	return allowed, Info{
		Allowed:    allowed,
		Limit:      endpointConfig.Limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

// getBucket gets or creates the token bucket for key and records the access.
func (l *Limiter) getBucket(key string, cfg *EndpointConfig, now time.Time) *TokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastAccess[key] = now
	if bucket, ok := l.buckets[key]; ok {
		return bucket
	}

	capacity := cfg.Burst
	if capacity <= 0 {
		capacity = cfg.Limit
	}
	bucket := newTokenBucket(capacity, float64(cfg.Limit)/cfg.Window.Seconds(), now)
	l.buckets[key] = bucket
	return bucket
}

// cleanup removes old unused buckets to prevent memory leaks.
func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.clock.After(l.config.CleanupInterval):
			l.cleanupBuckets()
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets removes buckets that have been idle for longer than bucketIdleTimeout.
func (l *Limiter) cleanupBuckets() {
	cutoff := l.clock.Now().Add(-bucketIdleTimeout)

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, lastAccess := range l.lastAccess {
		if lastAccess.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}

// bucketCount returns the number of live buckets.
func (l *Limiter) bucketCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}

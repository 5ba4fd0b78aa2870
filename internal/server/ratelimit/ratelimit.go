// Package ratelimit provides per-client request rate limiting backed by token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

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
	Blacklist       map[string]bool
	Rules           []Rule
}

type bucket struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter manages rate limiting for multiple clients.
type Limiter struct {
	mu            sync.Mutex
	buckets       map[string]*bucket // client:pattern -> bucket
	config        *Config
	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
	now           func() time.Time
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    300,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}
	if config.Whitelist == nil {
		config.Whitelist = make(map[string]bool)
	}
	if config.Blacklist == nil {
		config.Blacklist = make(map[string]bool)
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
		now:     time.Now,
	}

	// Start cleanup goroutine if enabled
	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanup()
	}

	return l
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Returns true if allowed, false if rate limited, along with rate limit information.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	key := clientID + ":" + method + " " + endpoint
	rule := Match(l.config.Rules, method, endpoint)
	if rule == nil {
		rule = &Rule{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultBurst,
		}
	} else {
		key = clientID + ":" + rule.Pattern
	}

	if rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	lim := l.getLimiter(key, rule, now)

	allowed := lim.AllowN(now, 1)
	info := Info{
		Allowed: allowed,
		Limit:   rule.Limit,
	}

	tokens := lim.TokensAt(now)
	if tokens < 0 {
		tokens = 0
	}
	info.Remaining = int(tokens)
	missing := float64(lim.Burst()) - tokens
	info.ResetTime = now.Add(time.Duration(missing / float64(lim.Limit()) * float64(time.Second)))

	if !allowed {
		r := lim.ReserveN(now, 1)
		info.RetryAfter = r.DelayFrom(now)
		r.CancelAt(now)
	}
	return allowed, info
}

// getLimiter gets or creates the token bucket for key.
func (l *Limiter) getLimiter(key string, rule *Rule, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		b.lastAccess = now
		return b.limiter
	}

	burst := rule.Burst
	if burst <= 0 {
		burst = rule.Limit
	}
	every := rate.Limit(float64(rule.Limit) / rule.Window.Seconds())
	b := &bucket{limiter: rate.NewLimiter(every, burst), lastAccess: now}
	l.buckets[key] = b
	return b.limiter
}

// cleanup removes old unused buckets to prevent memory leaks.
func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanupBuckets(l.now().Add(-1 * time.Hour))
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets removes buckets that haven't been accessed since cutoff.
func (l *Limiter) cleanupBuckets(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}

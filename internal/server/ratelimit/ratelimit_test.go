package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestLimiter(config *Config) (*Limiter, *time.Time) {
	l := NewLimiter(config)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_Allow(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	// Should allow requests up to limit
	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		if !allowed {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", info.Limit)
		}
		if info.Remaining != 9-i {
			t.Errorf("Expected %d remaining, got %d", 9-i, info.Remaining)
		}
	}

	// 11th request should be denied
	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if info.RetryAfter <= 0 {
		t.Error("Expected positive retry-after when denied")
	}

	// Another client has its own bucket
	if ok, _ := limiter.Allow("10.0.0.2", "/test", "GET"); !ok {
		t.Error("Expected other client to be allowed")
	}
}

func TestLimiter_Refill(t *testing.T) {
	limiter, now := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  60,
		DefaultWindow: time.Minute,
		DefaultBurst:  1,
	})
	defer limiter.Stop()

	if ok, _ := limiter.Allow("c", "/x", "GET"); !ok {
		t.Fatal("Expected first request to be allowed")
	}
	if ok, _ := limiter.Allow("c", "/x", "GET"); ok {
		t.Fatal("Expected second request to be denied")
	}

	*now = now.Add(1100 * time.Millisecond)
	if ok, _ := limiter.Allow("c", "/x", "GET"); !ok {
		t.Error("Expected request to be allowed after refill")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		if ok, _ := limiter.Allow("10.0.0.1", "/test", "GET"); !ok {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"10.0.0.66": true},
	})
	defer limiter.Stop()

	if ok, _ := limiter.Allow("10.0.0.66", "/test", "GET"); ok {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if ok, _ := limiter.Allow("127.0.0.1", "/test", "GET"); !ok {
			t.Fatalf("Expected request %d to be allowed when disabled", i+1)
		}
	}
}

func TestLimiter_Rules(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		Rules:           DefaultRules(),
	})
	defer limiter.Stop()

	// Advice endpoint allows a burst of 3
	for i := 0; i < 3; i++ {
		if ok, _ := limiter.Allow("c", "/profiles/alice/advice", "POST"); !ok {
			t.Fatalf("Expected advice request %d to be allowed", i+1)
		}
	}
	if ok, info := limiter.Allow("c", "/profiles/alice/advice", "POST"); ok {
		t.Error("Expected 4th advice request to be denied")
	} else if info.Limit != 30 {
		t.Errorf("Expected advice limit 30, got %d", info.Limit)
	}

	// Reads fall back to the default limit
	if ok, info := limiter.Allow("c", "/profiles/alice", "GET"); !ok || info.Limit != 1000 {
		t.Errorf("Expected default limit for reads, got allowed=%v limit=%d", ok, info.Limit)
	}

	// Health is unlimited
	for i := 0; i < 50; i++ {
		if ok, _ := limiter.Allow("c", "/health", "GET"); !ok {
			t.Fatal("Expected health check to be unlimited")
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  50,
		DefaultWindow: time.Hour,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("127.0.0.1", "/test", "GET"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 50 {
		t.Errorf("Expected exactly 50 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter, now := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		limiter.Allow(fmt.Sprintf("client-%d", i), "/test", "GET")
	}
	*now = now.Add(2 * time.Hour)
	limiter.Allow("fresh", "/test", "GET")

	limiter.cleanupBuckets(now.Add(-time.Hour))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if len(limiter.buckets) != 1 {
		t.Errorf("Expected 1 bucket after cleanup, got %d", len(limiter.buckets))
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	if ok, _ := limiter.Allow("127.0.0.1", "/test", "GET"); !ok {
		t.Error("Expected request to be allowed with default config")
	}
	limiter.Stop() // idempotent
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig(5, 10)
	if !cfg.Enabled {
		t.Fatal("Expected limiter to be enabled")
	}
	if cfg.DefaultLimit != 300 {
		t.Errorf("Expected 300 requests per minute, got %d", cfg.DefaultLimit)
	}
	if cfg.DefaultBurst != 10 {
		t.Errorf("Expected burst 10, got %d", cfg.DefaultBurst)
	}
	if !cfg.Whitelist["10.0.0.2"] {
		t.Error("Expected whitelist to be parsed")
	}

	if LoadConfig(0, 0).Enabled {
		t.Error("Expected zero rate to disable limiting")
	}
}

func TestMatch(t *testing.T) {
	rules := DefaultRules()

	if r := Match(rules, "POST", "/feedback"); r == nil || r.Limit != 100 {
		t.Error("Expected a rule for POST /feedback")
	}
	if r := Match(rules, "PUT", "/profiles/bob"); r == nil || r.Burst != 10 {
		t.Error("Expected a rule for profile updates")
	}
	if r := Match(rules, "POST", "/profiles/bob/run/stream"); r == nil || r.Pattern != "POST /profiles/{id}/run/stream" {
		t.Error("Expected the streaming run rule")
	}
	if r := Match(rules, "GET", "/profiles/bob"); r != nil {
		t.Error("Expected profile reads to use the default limit")
	}
	if r := Match(rules, "PUT", "/profiles//"); r != nil {
		t.Error("Expected an empty id not to match")
	}
	if r := Match(rules, "GET", "/roles/qa"); r != nil {
		t.Error("Expected no rule for role lookups")
	}
	if r := Match(nil, "GET", "/health"); r == nil || r.Limit != 0 {
		t.Error("Expected health checks to be unlimited")
	}
}

func TestLimiter_SharedBucketPerRule(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Rules:         []Rule{{Pattern: "POST /profiles/{id}/advice", Limit: 2, Window: time.Hour}},
	})
	defer limiter.Stop()

	ok1, _ := limiter.Allow("c", "/profiles/a/advice", "POST")
	ok2, _ := limiter.Allow("c", "/profiles/b/advice", "POST")
	ok3, _ := limiter.Allow("c", "/profiles/c/advice", "POST")
	if !ok1 || !ok2 || ok3 {
		t.Errorf("Expected advice calls to share one bucket, got %v %v %v", ok1, ok2, ok3)
	}
}

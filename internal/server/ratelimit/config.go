package ratelimit

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadConfig derives a per-minute default from a per-client request rate and
// burst. RATE_LIMIT_* variables override the derived values.
func LoadConfig(perSecond float64, burst int) *Config {
	if !envValue("RATE_LIMIT_ENABLED", perSecond > 0, strconv.ParseBool) {
		return &Config{}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    envValue("RATE_LIMIT_DEFAULT_LIMIT", int(math.Ceil(perSecond*60)), strconv.Atoi),
		DefaultWindow:   envValue("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		DefaultBurst:    burst,
		CleanupInterval: envValue("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		Whitelist:       ipSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       ipSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		Rules:           DefaultRules(),
	}
}

// DefaultRules limits the advisor-backed endpoints hardest, then outbound
// search and writes. Everything else uses the default limit.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "POST /profiles/{id}/advice", Limit: 30, Window: time.Hour, Burst: 3},
		{Pattern: "POST /profiles/{id}/run", Limit: 30, Window: time.Hour, Burst: 3},
		{Pattern: "POST /profiles/{id}/run/stream", Limit: 30, Window: time.Hour, Burst: 3},

		{Pattern: "GET /jobs", Limit: 60, Window: time.Minute, Burst: 5},
		{Pattern: "PUT /profiles/{id}", Limit: 100, Window: time.Minute, Burst: 10},
		{Pattern: "POST /feedback", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

// envValue parses the variable key, keeping fallback when it is unset or malformed.
func envValue[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}

func ipSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}

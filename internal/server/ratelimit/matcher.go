package ratelimit

import (
	"strings"
	"time"
)

// Rule limits requests matching Pattern, written in the ServeMux form
// "METHOD /path/{param}". A Burst of zero means Limit.
type Rule struct {
	Pattern string
	Limit   int
	Window  time.Duration
	Burst   int
}

// unlimited is returned for the health check.
var unlimited = &Rule{Pattern: "GET /health"}

// Match returns the first rule whose pattern matches method and path, or nil.
func Match(rules []Rule, method, path string) *Rule {
	if method == "GET" && path == "/health" {
		return unlimited
	}
	for i := range rules {
		if rules[i].matches(method, path) {
			return &rules[i]
		}
	}
	return nil
}

func (r Rule) matches(method, path string) bool {
	m, p, ok := strings.Cut(r.Pattern, " ")
	if !ok || m != method {
		return false
	}
	want := strings.Split(strings.Trim(p, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i, seg := range want {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}

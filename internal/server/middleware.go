package server

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/career-mentor/internal/server/ratelimit"
)

type middleware func(http.Handler) http.Handler

func chain(h http.Handler, mw ...middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder remembers the response status and still flushes for SSE.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Debug("request completed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.String("remote", r.RemoteAddr),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) limitRate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientIP(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		}
		if !allowed {
			tooManyRequests(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the host part of RemoteAddr, or all of it when there is no port.
func clientIP(r *http.Request) string {
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}

func tooManyRequests(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	body := map[string]any{
		"error":     errorCode(http.StatusTooManyRequests),
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds()) + 1
		body["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}
	slog.Warn("rate limit exceeded",
		slog.String("path", r.URL.Path),
		slog.Int("limit", info.Limit),
		slog.Time("reset", info.ResetTime),
	)
	writeJSON(w, http.StatusTooManyRequests, body)
}

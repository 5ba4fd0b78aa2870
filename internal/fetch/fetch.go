// Package fetch provides URL fetching and anchor extraction for scraped search pages.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/career-mentor/internal/retry"
)

// DefaultTimeout bounds a plain HTTP fetch.
const DefaultTimeout = 5 * time.Second

// DefaultUserAgent is sent by both the HTTP and browser fetchers. Search
// pages serve a stripped-down result list to unknown agents.
const DefaultUserAgent = "Mozilla/5.0"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error wraps a failed fetch with the URL and the step that failed.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options tunes a single fetch. Zero fields take the defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	Client    *http.Client // optional; Timeout still applies per request
}

// DefaultOptions returns the timeout and user agent used when none are given.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// URL retrieves HTML content from a URL. Non-200 responses return the partial
// Result together with an *Error whose cause is a *retry.StatusError.
func URL(ctx context.Context, rawURL string, opts *Options) (*Result, error) {
	o := DefaultOptions()
	if opts != nil {
		o.Headers, o.Client = opts.Headers, opts.Client
		if opts.Timeout > 0 {
			o.Timeout = opts.Timeout
		}
		if opts.UserAgent != "" {
			o.UserAgent = opts.UserAgent
		}
	}
	fail := func(msg string, cause error) *Error {
		return &Error{URL: rawURL, Message: msg, Cause: cause}
	}

	if u, err := url.Parse(rawURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fail("invalid URL", err)
	}

	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fail("failed to create request", err)
	}
	req.Header.Set("User-Agent", o.UserAgent)
	for k, v := range o.Headers {
		req.Header.Set(k, v)
	}

	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fail("HTTP request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fail("failed to read response body", err)
	}

	res := &Result{
		URL:         rawURL,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return res, fail(fmt.Sprintf("HTTP status %d", resp.StatusCode), &retry.StatusError{StatusCode: resp.StatusCode})
	}
	return res, nil
}

// Anchor is a hyperlink found in a page.
type Anchor struct {
	Href string
	Text string
}

// Anchors returns every <a href> in html in document order.
func Anchors(html string) ([]Anchor, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var anchors []Anchor
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		anchors = append(anchors, Anchor{
			Href: href,
			Text: cleanWhitespace(s.Text()),
		})
	})
	return anchors, nil
}

// cleanWhitespace collapses runs of whitespace to single spaces.
func cleanWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

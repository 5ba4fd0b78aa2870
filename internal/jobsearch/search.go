// Package jobsearch finds job postings for a role by scraping a web search results page.
package jobsearch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jonathan/career-mentor/internal/fetch"
	"github.com/jonathan/career-mentor/internal/retry"
	"github.com/jonathan/career-mentor/internal/types"
)

// Defaults for a Searcher.
const (
	DefaultBaseURL  = "https://www.google.com"
	DefaultLocation = "India"
	DefaultLimit    = 5
)

// jobBoards are the hosts whose links count as job postings.
var jobBoards = []string{"linkedin.com/jobs", "indeed.com", "naukri.com"}

// redirectMarker precedes the target URL in search-result redirect links.
const redirectMarker = "url?q="

// SearchError reports a failed job search.
type SearchError struct {
	Role  string
	Stage string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("job search for %q failed during %s: %v", e.Role, e.Stage, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// Searcher queries a search engine for job-board links.
type Searcher struct {
	BaseURL  string
	Location string
	Limit    int
	Renderer fetch.Renderer
	Retry    retry.Config
}

// New creates a Searcher with default settings.
func New() *Searcher {
	return &Searcher{
		BaseURL:  DefaultBaseURL,
		Location: DefaultLocation,
		Limit:    DefaultLimit,
		Renderer: fetch.Renderer{Options: fetch.DefaultOptions()},
		Retry:    retry.Default,
	}
}

// SearchURL builds the results-page URL for role.
func (s *Searcher) SearchURL(role string) string {
	base := strings.TrimRight(s.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/search?q=%s+jobs+in+%s", base, url.QueryEscape(strings.TrimSpace(role)), url.QueryEscape(s.location()))
}

func (s *Searcher) location() string {
	if s.Location == "" {
		return DefaultLocation
	}
	return s.Location
}

func (s *Searcher) limit() int {
	if s.Limit <= 0 {
		return DefaultLimit
	}
	return s.Limit
}

// Search fetches the results page for role and returns up to Limit job links.
func (s *Searcher) Search(ctx context.Context, role string) ([]types.JobLink, error) {
	searchURL := s.SearchURL(role)

	html, err := retry.Do(ctx, s.Retry, func() (string, error) {
		return s.Renderer.Fetch(ctx, searchURL)
	})
	if err != nil {
		return nil, &SearchError{Role: role, Stage: "fetch", Err: err}
	}

	anchors, err := fetch.Anchors(html)
	if err != nil {
		return nil, &SearchError{Role: role, Stage: "parse", Err: err}
	}

	links := make([]types.JobLink, 0, s.limit())
	for _, a := range anchors {
		target, ok := jobTarget(a.Href)
		if !ok {
			continue
		}
		links = append(links, types.JobLink{
			Title:    role + " Job",
			Company:  "Listed via Search",
			Location: s.location(),
			URL:      target,
		})
		if len(links) >= s.limit() {
			break
		}
	}
	return links, nil
}

// Find is Search with failures logged and reported as no results.
func (s *Searcher) Find(ctx context.Context, role string) []types.JobLink {
	links, err := s.Search(ctx, role)
	if err != nil {
		slog.Warn("job search degraded", slog.String("role", role), slog.Any("error", err))
		return []types.JobLink{}
	}
	return links
}

// jobTarget extracts the job-board URL from a search redirect link.
func jobTarget(href string) (string, bool) {
	idx := strings.Index(href, redirectMarker)
	if idx < 0 || !isJobBoard(href) {
		return "", false
	}
	target := href[idx+len(redirectMarker):]
	if amp := strings.Index(target, "&"); amp >= 0 {
		target = target[:amp]
	}
	if unescaped, err := url.QueryUnescape(target); err == nil {
		target = unescaped
	}
	return target, target != ""
}

func isJobBoard(href string) bool {
	for _, board := range jobBoards {
		if strings.Contains(href, board) {
			return true
		}
	}
	return false
}

// MockJobs returns sample postings shown when no live links are found.
func MockJobs(role string) []types.JobLink {
	return []types.JobLink{
		{
			Title:    role + " at TechNova",
			Company:  "TechNova",
			Location: "Remote",
			URL:      "https://example.com/job1",
		},
		{
			Title:    "Junior " + role + " at InnovateX",
			Company:  "InnovateX",
			Location: "Bangalore",
			URL:      "https://example.com/job2",
		},
		{
			Title:    role + " Specialist at AIWorks",
			Company:  "AIWorks",
			Location: "Hyderabad",
			URL:      "https://example.com/job3",
		},
	}
}

package jobsearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-mentor/internal/retry"
	"github.com/jonathan/career-mentor/internal/types"
)

const resultsPage = `<html><body>
<a href="/url?q=https://www.linkedin.com/jobs/view/123&amp;sa=U&amp;ved=x">LinkedIn</a>
<a href="/url?q=https://www.example.org/blog&amp;sa=U">Blog</a>
<a href="/url?q=https://in.indeed.com/viewjob%3Fjk%3Dabc&amp;sa=U">Indeed</a>
<a href="https://www.naukri.com/direct">Direct, no redirect</a>
<a href="/url?q=https://www.naukri.com/job-listings-1&amp;sa=U">Naukri</a>
</body></html>`

var fastRetry = retry.Config{MaxRetries: 1, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 1}

func newTestSearcher(t *testing.T, handler http.HandlerFunc) *Searcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	s := New()
	s.BaseURL = server.URL
	s.Retry = fastRetry
	return s
}

func TestSearchURL(t *testing.T) {
	s := New()
	assert.Equal(t, "https://www.google.com/search?q=Data+Scientist+jobs+in+India", s.SearchURL("Data Scientist"))

	s.Location = "New York"
	s.BaseURL = "http://localhost:9999/"
	assert.Equal(t, "http://localhost:9999/search?q=C%2B%2B+Developer+jobs+in+New+York", s.SearchURL("C++ Developer"))
}

func TestSearch_ParsesJobLinks(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Data Scientist jobs in India", r.URL.Query().Get("q"))
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(resultsPage))
	})

	links, err := s.Search(context.Background(), "Data Scientist")
	require.NoError(t, err)
	assert.Equal(t, []types.JobLink{
		{Title: "Data Scientist Job", Company: "Listed via Search", Location: "India", URL: "https://www.linkedin.com/jobs/view/123"},
		{Title: "Data Scientist Job", Company: "Listed via Search", Location: "India", URL: "https://in.indeed.com/viewjob?jk=abc"},
		{Title: "Data Scientist Job", Company: "Listed via Search", Location: "India", URL: "https://www.naukri.com/job-listings-1"},
	}, links)
}

func TestSearch_RespectsLimit(t *testing.T) {
	var page strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&page, `<a href="/url?q=https://www.indeed.com/job/%d&amp;sa=U">job</a>`, i)
	}
	s := newTestSearcher(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page.String()))
	})

	links, err := s.Search(context.Background(), "QA")
	require.NoError(t, err)
	assert.Len(t, links, DefaultLimit)
	assert.Equal(t, "https://www.indeed.com/job/0", links[0].URL)
}

func TestSearch_Non200IsError(t *testing.T) {
	var calls atomic.Int32
	s := newTestSearcher(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := s.Search(context.Background(), "Data Scientist")
	var searchErr *SearchError
	require.ErrorAs(t, err, &searchErr)
	assert.Equal(t, "fetch", searchErr.Stage)
	assert.Equal(t, int32(2), calls.Load()) // initial + 1 retry

	assert.Equal(t, []types.JobLink{}, s.Find(context.Background(), "Data Scientist"))
}

func TestFind_NetworkFailure(t *testing.T) {
	s := New()
	s.BaseURL = "http://127.0.0.1:1"
	s.Retry = fastRetry

	links := s.Find(context.Background(), "Data Scientist")
	assert.NotNil(t, links)
	assert.Empty(t, links)
}

func TestFind_NoMatches(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<a href="https://example.com">nothing</a>`))
	})
	assert.Empty(t, s.Find(context.Background(), "Data Scientist"))
}

func TestMockJobs(t *testing.T) {
	jobs := MockJobs("Data Scientist")
	require.Len(t, jobs, 3)
	assert.Equal(t, types.JobLink{Title: "Data Scientist at TechNova", Company: "TechNova", Location: "Remote", URL: "https://example.com/job1"}, jobs[0])
	assert.Equal(t, "Junior Data Scientist at InnovateX", jobs[1].Title)
	assert.Equal(t, "Bangalore", jobs[1].Location)
	assert.Equal(t, "Data Scientist Specialist at AIWorks", jobs[2].Title)
	assert.Equal(t, "https://example.com/job3", jobs[2].URL)
}

func TestJobTarget(t *testing.T) {
	target, ok := jobTarget("/url?q=https://www.linkedin.com/jobs/view/1&sa=U")
	assert.True(t, ok)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/1", target)

	_, ok = jobTarget("https://www.linkedin.com/jobs/view/1")
	assert.False(t, ok)

	_, ok = jobTarget("/url?q=https://www.monster.com/job&sa=U")
	assert.False(t, ok)
}

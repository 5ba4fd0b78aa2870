package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-mentor/internal/advisor"
	"github.com/jonathan/career-mentor/internal/catalog"
	"github.com/jonathan/career-mentor/internal/mentor"
	"github.com/jonathan/career-mentor/internal/profile"
	"github.com/jonathan/career-mentor/internal/recommend"
	"github.com/jonathan/career-mentor/internal/session"
	"github.com/jonathan/career-mentor/internal/types"
)

type stubAdvisor struct{}

func (stubAdvisor) Advise(_ context.Context, _ string, backend advisor.Backend) string {
	return "advice from " + string(backend)
}

func (stubAdvisor) Model(backend advisor.Backend) string { return "stub-" + string(backend) }

type stubJobs struct{ links []types.JobLink }

func (s stubJobs) Find(context.Context, string) []types.JobLink { return s.links }

func newTestServer(t *testing.T) (*Server, *mentor.Service) {
	t.Helper()
	c, err := catalog.New([]types.CareerRecord{
		{Role: "Data Scientist", Skills: []string{"python", "sql", "machine learning"}},
		{Role: "Backend Engineer", Skills: []string{"go", "sql"}},
	})
	require.NoError(t, err)
	rec, err := recommend.New(c, recommend.DefaultThreshold)
	require.NoError(t, err)

	svc := &mentor.Service{
		Profiles:    profile.NewMemoryStore(),
		Recommender: rec,
		Advisor:     stubAdvisor{},
		Jobs:        stubJobs{},
		Log:         session.NewLog(),
	}
	s, err := New(svc, Config{Addr: ":0"})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, svc
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(&mentor.Service{}, Config{})
	assert.ErrorIs(t, err, mentor.ErrMissingDependency)
}

func TestProfileEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/profiles/alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[types.UserProfile](t, w)
	assert.Equal(t, "alice", p.ID)
	assert.Equal(t, []string{}, p.Skills)

	w = do(t, s, http.MethodPut, "/profiles/Alice", `{"background":"CS","goals":"ML","skills":["Python"," SQL ","python"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	p = decode[types.UserProfile](t, w)
	assert.Equal(t, "alice", p.ID)
	assert.Equal(t, []string{"python", "sql"}, p.Skills)

	w = do(t, s, http.MethodGet, "/profiles/ALICE", "")
	assert.Equal(t, "CS", decode[types.UserProfile](t, w).Background)
}

func TestProfileEndpoints_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPut, "/profiles/alice", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "bad_request", body["error"])

	w = do(t, s, http.MethodPut, "/profiles/alice", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/profiles/..", "")
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestRecommendations(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPut, "/profiles/alice", `{"skills":["python","sql"]}`)

	w := do(t, s, http.MethodGet, "/profiles/alice/recommendations", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[RecommendationsResponse](t, w)
	assert.Equal(t, 0.4, resp.Threshold)
	require.Len(t, resp.Matches, 2)
	assert.Equal(t, types.RoleMatch{Role: "Data Scientist", MatchPercent: 66.67}, resp.Matches[0])

	w = do(t, s, http.MethodGet, "/profiles/alice/recommendations?threshold=0.6", "")
	resp = decode[RecommendationsResponse](t, w)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Data Scientist", resp.Matches[0].Role)

	w = do(t, s, http.MethodGet, "/profiles/alice/recommendations?threshold=2", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, s, http.MethodGet, "/profiles/alice/recommendations?threshold=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/profiles/nobody/recommendations", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"matches":[]`)
}

func TestGapAndRoles(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPut, "/profiles/alice", `{"skills":["python"]}`)

	w := do(t, s, http.MethodGet, "/profiles/alice/gap?role=data%20scientist", "")
	require.Equal(t, http.StatusOK, w.Code)
	gap := decode[types.SkillGap](t, w)
	assert.ElementsMatch(t, []string{"sql", "machine learning"}, gap.Missing)

	w = do(t, s, http.MethodGet, "/profiles/alice/gap?role=Astronaut", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, s, http.MethodGet, "/profiles/alice/gap", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/roles/Backend%20Engineer", "")
	require.Equal(t, http.StatusOK, w.Code)
	req := decode[types.RoleRequirements](t, w)
	assert.Equal(t, []string{"go", "sql"}, req.Skills)
	assert.Equal(t, []string{types.PlaceholderCourses}, req.Resources.Courses)

	w = do(t, s, http.MethodGet, "/roles/Astronaut", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodGet, "/roles", "")
	assert.Equal(t, []string{"Data Scientist", "Backend Engineer"}, decode[map[string][]string](t, w)["roles"])
}

func TestAdviceAndSessionExport(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/profiles/alice/advice", `{"backend":"openai","persona":"career switcher"}`)
	require.Equal(t, http.StatusOK, w.Code)
	entry := decode[types.SessionEntry](t, w)
	assert.Equal(t, "advice from openai", entry.Advice)
	assert.Equal(t, "stub-openai", entry.Model)

	w = do(t, s, http.MethodPost, "/profiles/bob/advice", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "advice from gemini", decode[types.SessionEntry](t, w).Advice)

	w = do(t, s, http.MethodGet, "/session/chats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "career_mentor_chat_log.json")
	chats := decode[[]types.SessionEntry](t, w)
	assert.Len(t, chats, 2)
}

func TestFeedback(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/feedback", `{"user":"alice","role":"Data Scientist","reaction":"like"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, s, http.MethodPost, "/feedback", `{"user":"alice","role":"Data Scientist","reaction":"comment"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/session/feedback", "")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "career_feedback_log.json")
	assert.Len(t, decode[[]types.FeedbackEntry](t, w), 1)
}

func TestJobs(t *testing.T) {
	s, svc := newTestServer(t)

	w := do(t, s, http.MethodGet, "/jobs?role=Data%20Scientist", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[JobsResponse](t, w)
	assert.True(t, resp.Mock)
	assert.Len(t, resp.Jobs, 3)

	svc.Jobs = stubJobs{links: []types.JobLink{{Title: "Data Scientist Job", URL: "https://indeed.com/1"}}}
	w = do(t, s, http.MethodGet, "/jobs?role=Data%20Scientist", "")
	resp = decode[JobsResponse](t, w)
	assert.False(t, resp.Mock)
	assert.Len(t, resp.Jobs, 1)

	w = do(t, s, http.MethodGet, "/jobs", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRun(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/profiles/alice/run", `{"skills":["go","sql"],"save":true,"skip_jobs":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	report := decode[mentor.Report](t, w)
	assert.Equal(t, "Backend Engineer", report.TopRole)
	assert.True(t, report.Saved)
	assert.Equal(t, "advice from gemini", report.Roadmap)

	w = do(t, s, http.MethodPost, "/profiles/alice/run", `{"resume":"iVBORw0KGgo=","resume_name":"cv.png"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunStream(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/profiles/alice/run/stream", `{"skills":["python","sql"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	var events []string
	scanner := bufio.NewScanner(bytes.NewReader(w.Body.Bytes()))
	for scanner.Scan() {
		if name, ok := strings.CutPrefix(scanner.Text(), "event: "); ok {
			events = append(events, name)
		}
	}
	require.NotEmpty(t, events)
	assert.Equal(t, "progress", events[0])
	assert.Equal(t, "complete", events[len(events)-1])
	assert.Contains(t, w.Body.String(), "id: 1\n")
}

func TestRunStream_Error(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/profiles/alice/run/stream", `{"resume":"iVBORw0KGgo=","resume_name":"cv.png"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "event: error\n")
	assert.Contains(t, body, `"error":"bad_request"`)
	assert.NotContains(t, body, "event: complete")
}

func TestRateLimit(t *testing.T) {
	c, err := catalog.New([]types.CareerRecord{{Role: "QA", Skills: []string{"testing"}}})
	require.NoError(t, err)
	rec, err := recommend.New(c, recommend.DefaultThreshold)
	require.NoError(t, err)
	s, err := New(&mentor.Service{Profiles: profile.NewMemoryStore(), Recommender: rec}, Config{RateLimit: 1, RateBurst: 2})
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 2; i++ {
		w := do(t, s, http.MethodGet, "/roles", "")
		require.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("request %d", i+1))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
	}
	w := do(t, s, http.MethodGet, "/roles", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])

	// Health stays available
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, http.MethodOptions, "/profiles/alice", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

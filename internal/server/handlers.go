package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/career-mentor/internal/advisor"
	"github.com/jonathan/career-mentor/internal/mentor"
	"github.com/jonathan/career-mentor/internal/recommend"
	"github.com/jonathan/career-mentor/internal/types"
)

// ProfileRequest represents the request body for PUT /profiles/{id}
type ProfileRequest struct {
	Background string   `json:"background"`
	Goals      string   `json:"goals"`
	Skills     []string `json:"skills"`
}

// RecommendationsResponse represents the response for /profiles/{id}/recommendations
type RecommendationsResponse struct {
	UserID    string            `json:"user_id"`
	Threshold float64           `json:"threshold"`
	Matches   []types.RoleMatch `json:"matches"`
}

// AdviceRequest represents the request body for /profiles/{id}/advice
type AdviceRequest struct {
	Persona string `json:"persona,omitempty"`
	Backend string `json:"backend,omitempty"`
}

// RunRequest represents the request body for /profiles/{id}/run
type RunRequest struct {
	Background *string  `json:"background,omitempty"`
	Goals      *string  `json:"goals,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Resume     []byte   `json:"resume,omitempty"` // base64 file contents
	ResumeName string   `json:"resume_name,omitempty"`
	Persona    string   `json:"persona,omitempty"`
	Backend    string   `json:"backend,omitempty"`
	Save       bool     `json:"save,omitempty"`
	SkipJobs   bool     `json:"skip_jobs,omitempty"`
}

// JobsResponse represents the response for /jobs
type JobsResponse struct {
	Role string          `json:"role"`
	Jobs []types.JobLink `json:"jobs"`
	Mock bool            `json:"mock"`
}

// maxBodyBytes bounds request bodies, resumes included.
const maxBodyBytes = 8 << 20

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "request body is required"}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// handleGetProfile returns the stored profile, or the empty default for unknown users
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profile(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handlePutProfile overwrites the stored profile
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, err)
		return
	}
	saved, err := s.svc.UpdateProfile(r.Context(), r.PathValue("id"), types.UserProfile{
		Background: req.Background,
		Goals:      req.Goals,
		Skills:     req.Skills,
	})
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// handleRecommendations ranks catalog roles for the stored profile.
// An optional ?threshold= overrides the configured threshold.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profile(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, err)
		return
	}

	rec := *s.svc.Recommender
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeFailure(w, &ErrValidation{Field: "threshold", Message: "must be a number"})
			return
		}
		if err := recommend.ValidateThreshold(t); err != nil {
			writeFailure(w, err)
			return
		}
		rec.Threshold = t
	}
	writeJSON(w, http.StatusOK, RecommendationsResponse{
		UserID:    p.ID,
		Threshold: rec.Threshold,
		Matches:   rec.Rank(p.Skills),
	})
}

// handleGap returns the skill gap between the stored profile and ?role=
func (s *Server) handleGap(w http.ResponseWriter, r *http.Request) {
	role := strings.TrimSpace(r.URL.Query().Get("role"))
	if role == "" {
		writeFailure(w, &ErrValidation{Field: "role", Message: "role is required"})
		return
	}
	gap, err := s.svc.Gap(r.Context(), r.PathValue("id"), role)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gap)
}

// handleListRoles lists catalog role names in file order
func (s *Server) handleListRoles(w http.ResponseWriter, _ *http.Request) {
	records := s.svc.Recommender.Catalog.Records()
	roles := make([]string, 0, len(records))
	for _, rec := range records {
		roles = append(roles, rec.Role)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"roles": roles})
}

// handleGetRole returns the required skills and resources of a role
func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	req, err := s.svc.Recommender.RequiredSkills(r.PathValue("role"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// handleAdvice asks the advisor for personalized guidance
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	var req AdviceRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			writeFailure(w, err)
			return
		}
	}
	persona, _ := types.ParsePersona(req.Persona)
	entry, err := s.svc.Advise(r.Context(), mentor.AdviceOptions{
		UserID:  r.PathValue("id"),
		Persona: persona,
		Backend: advisor.ParseBackend(req.Backend),
	})
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (req RunRequest) options(userID string) mentor.RunOptions {
	persona, _ := types.ParsePersona(req.Persona)
	return mentor.RunOptions{
		UserID:     userID,
		Background: req.Background,
		Goals:      req.Goals,
		Skills:     req.Skills,
		Resume:     req.Resume,
		ResumeName: req.ResumeName,
		Persona:    persona,
		Backend:    advisor.ParseBackend(req.Backend),
		Save:       req.Save,
		SkipJobs:   req.SkipJobs,
	}
}

// handleRun executes a full mentor session and returns its report
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, err)
		return
	}
	report, err := s.svc.Run(r.Context(), req.options(r.PathValue("id")))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleRunStream executes a mentor session, streaming progress as SSE events
func (s *Server) handleRunStream(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, err)
		return
	}

	stream, err := newRunStream(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := req.options(r.PathValue("id"))
	opts.OnProgress = stream.Progress

	report, err := s.svc.Run(r.Context(), opts)
	if err != nil {
		stream.Fail(err)
		return
	}
	stream.Complete(report)
}

// handleJobs returns job links for ?role=, falling back to sample postings
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	role := strings.TrimSpace(r.URL.Query().Get("role"))
	if role == "" {
		writeFailure(w, &ErrValidation{Field: "role", Message: "role is required"})
		return
	}
	links, mock := s.svc.FindJobs(r.Context(), role)
	writeJSON(w, http.StatusOK, JobsResponse{Role: role, Jobs: links, Mock: mock})
}

// handleFeedback records a reaction to a recommended role
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var f types.FeedbackEntry
	if err := decodeBody(r, &f); err != nil {
		writeFailure(w, err)
		return
	}
	saved, err := s.svc.RecordFeedback(r.Context(), f)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// handleSessionChats exports the advice history
func (s *Server) handleSessionChats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="career_mentor_chat_log.json"`)
	if err := s.svc.Log.WriteChatsJSON(w); err != nil {
		writeFailure(w, err)
	}
}

// handleSessionFeedback exports the feedback history
func (s *Server) handleSessionFeedback(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="career_feedback_log.json"`)
	if err := s.svc.Log.WriteFeedbackJSON(w); err != nil {
		writeFailure(w, err)
	}
}

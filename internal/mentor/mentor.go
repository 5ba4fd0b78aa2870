// Package mentor provides the high-level orchestration of a career-guidance session.
package mentor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonathan/career-mentor/internal/advisor"
	"github.com/jonathan/career-mentor/internal/jobsearch"
	"github.com/jonathan/career-mentor/internal/profile"
	"github.com/jonathan/career-mentor/internal/prompts"
	"github.com/jonathan/career-mentor/internal/recommend"
	"github.com/jonathan/career-mentor/internal/session"
	"github.com/jonathan/career-mentor/internal/types"
)

// Advisor produces free-text guidance for a prompt, never failing outright.
type Advisor interface {
	Advise(ctx context.Context, prompt string, backend advisor.Backend) string
	Model(backend advisor.Backend) string
}

// JobFinder returns live job links for a role, or none when search fails.
type JobFinder interface {
	Find(ctx context.Context, role string) []types.JobLink
}

// Service wires the core computation to its collaborators.
// Advisor, Jobs, Journal and Feedback are optional.
type Service struct {
	Profiles    profile.Store
	Recommender *recommend.Recommender
	Advisor     Advisor
	Jobs        JobFinder
	Log         *session.Log
	Journal     *session.Journal
	Feedback    session.FeedbackSink
}

// ErrMissingDependency is returned when a required collaborator is nil.
var ErrMissingDependency = errors.New("mentor service is missing a required dependency")

// Validate reports a missing required collaborator and installs an empty session log when none is set.
func (s *Service) Validate() error {
	if s.Profiles == nil {
		return fmt.Errorf("%w: profile store", ErrMissingDependency)
	}
	if s.Recommender == nil || s.Recommender.Catalog == nil {
		return fmt.Errorf("%w: recommender", ErrMissingDependency)
	}
	if s.Log == nil {
		s.Log = session.NewLog()
	}
	return nil
}

// Profile loads the stored profile for userID.
func (s *Service) Profile(ctx context.Context, userID string) (types.UserProfile, error) {
	if err := s.Validate(); err != nil {
		return types.UserProfile{}, err
	}
	return s.Profiles.Load(ctx, userID)
}

// UpdateProfile overwrites the stored profile for userID and returns what was saved.
func (s *Service) UpdateProfile(ctx context.Context, userID string, p types.UserProfile) (types.UserProfile, error) {
	if err := s.Validate(); err != nil {
		return types.UserProfile{}, err
	}
	if err := s.Profiles.Save(ctx, userID, p); err != nil {
		return types.UserProfile{}, err
	}
	return s.Profiles.Load(ctx, userID)
}

// Recommend ranks catalog roles for the stored profile of userID.
func (s *Service) Recommend(ctx context.Context, userID string) (types.UserProfile, []types.RoleMatch, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return types.UserProfile{}, nil, err
	}
	return p, s.Recommender.Rank(p.Skills), nil
}

// Gap compares the stored profile of userID against role.
func (s *Service) Gap(ctx context.Context, userID, role string) (types.SkillGap, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return types.SkillGap{}, err
	}
	return s.Recommender.Gap(p.Skills, role)
}

// AdviceOptions selects the profile and backend for a free-form advice request.
type AdviceOptions struct {
	UserID  string
	Persona types.Persona
	Backend advisor.Backend
}

// Advise asks the advisor for personalized guidance and records the exchange.
func (s *Service) Advise(ctx context.Context, opts AdviceOptions) (types.SessionEntry, error) {
	p, err := s.Profile(ctx, opts.UserID)
	if err != nil {
		return types.SessionEntry{}, err
	}

	advice := s.advise(ctx, prompts.PersonalizedAdvice(promptContext(p, opts.Persona, "", nil)), opts.Backend)
	entry := s.Log.AppendChat(types.SessionEntry{
		UserID:  p.ID,
		Profile: p,
		Advice:  advice,
		Model:   s.modelName(opts.Backend),
	})

	if s.Journal != nil {
		if err := s.Journal.Append(p, s.Recommender.Rank(p.Skills), advice); err != nil {
			slog.Warn("failed to append session journal", slog.String("user", p.ID), slog.Any("error", err))
		}
	}
	return entry, nil
}

// RecordFeedback validates and records a reaction to a recommended role.
func (s *Service) RecordFeedback(ctx context.Context, f types.FeedbackEntry) (types.FeedbackEntry, error) {
	if err := s.Validate(); err != nil {
		return types.FeedbackEntry{}, err
	}
	if f.User != "" {
		id, err := profile.NormalizeID(f.User)
		if err != nil {
			return types.FeedbackEntry{}, err
		}
		f.User = id
	}
	prepared, err := s.Log.PrepareFeedback(f)
	if err != nil {
		return types.FeedbackEntry{}, err
	}
	// the session log only shows entries the sink accepted
	if s.Feedback != nil {
		if err := s.Feedback.SaveFeedback(ctx, prepared); err != nil {
			return types.FeedbackEntry{}, fmt.Errorf("failed to persist feedback: %w", err)
		}
	}
	return s.Log.AppendFeedback(prepared)
}

// FindJobs returns live job links for role, or sample postings (mock = true)
// when the search yields nothing.
func (s *Service) FindJobs(ctx context.Context, role string) (links []types.JobLink, mock bool) {
	if s.Jobs != nil {
		links = s.Jobs.Find(ctx, role)
	}
	if len(links) == 0 {
		return jobsearch.MockJobs(role), true
	}
	return links, false
}

func (s *Service) advise(ctx context.Context, prompt string, backend advisor.Backend) string {
	if s.Advisor == nil {
		return (&advisor.ExternalServiceError{Backend: advisor.BackendGemini, Err: advisor.ErrNotConfigured}).Diagnostic()
	}
	return s.Advisor.Advise(ctx, prompt, backend)
}

func (s *Service) modelName(backend advisor.Backend) string {
	if s.Advisor != nil {
		if m := s.Advisor.Model(backend); m != "" {
			return m
		}
	}
	return string(backend)
}

func promptContext(p types.UserProfile, persona types.Persona, role string, missing []string) prompts.Context {
	if persona == "" {
		persona = types.PersonaStudent
	}
	return prompts.Context{
		Persona:    string(persona),
		Background: p.Background,
		Skills:     p.Skills,
		Goals:      p.Goals,
		Role:       role,
		Missing:    missing,
	}
}

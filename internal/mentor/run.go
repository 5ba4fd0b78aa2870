package mentor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-mentor/internal/advisor"
	"github.com/jonathan/career-mentor/internal/prompts"
	"github.com/jonathan/career-mentor/internal/resume"
	"github.com/jonathan/career-mentor/internal/skills"
	"github.com/jonathan/career-mentor/internal/types"
)

// Progress steps reported through RunOptions.OnProgress.
const (
	StepProfile   = "profile"
	StepResume    = "resume"
	StepSave      = "save"
	StepRank      = "rank"
	StepGuidance  = "guidance"
	StepJobs      = "jobs"
	StepJournal   = "journal"
	StepCompleted = "completed"
)

// ProgressEvent represents a progress update during a run.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called when run progress occurs.
type ProgressCallback func(event ProgressEvent)

// RunOptions holds the inputs of a full mentor session.
// Nil Background, Goals and Skills keep the stored values.
type RunOptions struct {
	UserID     string
	Background *string
	Goals      *string
	Skills     []string
	Resume     []byte
	ResumeName string
	Persona    types.Persona
	Backend    advisor.Backend
	Save       bool
	SkipJobs   bool
	OnProgress ProgressCallback
}

// Report is everything a mentor session produced.
type Report struct {
	Profile      types.UserProfile `json:"profile"`
	Persona      types.Persona     `json:"persona"`
	ResumeSkills []string          `json:"resume_skills,omitempty"`
	Level        string            `json:"level,omitempty"`
	Matches      []types.RoleMatch `json:"matches"`
	TopRole      string            `json:"top_role,omitempty"`
	Gap          *types.SkillGap   `json:"gap,omitempty"`
	Resources    *types.Resources  `json:"resources,omitempty"`
	CareerFit    string            `json:"career_fit,omitempty"`
	Roadmap      string            `json:"roadmap,omitempty"`
	Interview    string            `json:"interview,omitempty"`
	Jobs         []types.JobLink   `json:"jobs"`
	MockJobs     bool              `json:"mock_jobs"`
	Model        string            `json:"model"`
	Saved        bool              `json:"saved"`
}

// Run executes the full load, compute, advise and save cycle for one user.
// Core failures abort the run; collaborator failures degrade inside the report.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	persona := opts.Persona
	if persona == "" {
		persona = types.PersonaStudent
	}

	p, err := s.Profiles.Load(ctx, opts.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	applyOverrides(&p, opts)
	emit(opts, StepProfile, fmt.Sprintf("Loaded profile %s with %d skills", p.ID, len(p.Skills)))

	report := &Report{
		Persona: persona,
		Jobs:    []types.JobLink{},
		Model:   s.modelName(opts.Backend),
	}

	if len(opts.Resume) > 0 {
		text, err := resume.ExtractText(opts.Resume, opts.ResumeName)
		if err != nil {
			return nil, fmt.Errorf("failed to read resume: %w", err)
		}
		report.ResumeSkills = resume.ExtractSkills(text, nil)
		p.Skills = skills.Merge(p.Skills, report.ResumeSkills)
		report.Level = s.advise(ctx, prompts.LevelInference(promptContext(p, persona, "", nil)), opts.Backend)
		emit(opts, StepResume, fmt.Sprintf("Extracted %d skills from resume", len(report.ResumeSkills)))
	}

	if opts.Save {
		if err := s.Profiles.Save(ctx, p.ID, p); err != nil {
			return nil, fmt.Errorf("failed to save profile: %w", err)
		}
		if p, err = s.Profiles.Load(ctx, p.ID); err != nil {
			return nil, fmt.Errorf("failed to reload profile: %w", err)
		}
		report.Saved = true
		emit(opts, StepSave, "Saved profile")
	} else {
		p.Skills = skills.NormalizeList(p.Skills)
	}
	report.Profile = p

	report.Matches = s.Recommender.Rank(p.Skills)
	emit(opts, StepRank, fmt.Sprintf("Found %d matching roles", len(report.Matches)))

	if len(report.Matches) > 0 {
		if err := s.guide(ctx, opts, persona, report); err != nil {
			return nil, err
		}
	}

	if s.Journal != nil {
		if err := s.Journal.Append(p, report.Matches, report.CareerFit); err != nil {
			slog.Warn("failed to append session journal", slog.String("user", p.ID), slog.Any("error", err))
		} else {
			emit(opts, StepJournal, "Appended session journal")
		}
	}

	emit(opts, StepCompleted, "Mentor session completed")
	return report, nil
}

// guide fills the top-role sections of report, calling collaborators concurrently.
func (s *Service) guide(ctx context.Context, opts RunOptions, persona types.Persona, report *Report) error {
	top := report.Matches[0].Role
	gap, err := s.Recommender.Gap(report.Profile.Skills, top)
	if err != nil {
		return fmt.Errorf("failed to compute skill gap for %s: %w", top, err)
	}
	req, err := s.Recommender.RequiredSkills(top)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", top, err)
	}
	report.TopRole = top
	report.Gap = &gap
	report.Resources = &req.Resources

	pc := promptContext(report.Profile, persona, top, gap.Missing)

	g, gCtx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	g.Go(func() error {
		text := s.advise(gCtx, prompts.CareerFit(pc), opts.Backend)
		mu.Lock()
		report.CareerFit = text
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		text := s.advise(gCtx, prompts.Roadmap(pc), opts.Backend)
		mu.Lock()
		report.Roadmap = text
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		text := s.advise(gCtx, prompts.MockInterview(pc), opts.Backend)
		mu.Lock()
		report.Interview = text
		mu.Unlock()
		return nil
	})
	if !opts.SkipJobs {
		g.Go(func() error {
			links, mock := s.FindJobs(gCtx, top)
			mu.Lock()
			report.Jobs = links
			report.MockJobs = mock
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	emit(opts, StepGuidance, fmt.Sprintf("Prepared guidance for %s", top))
	if !opts.SkipJobs {
		emit(opts, StepJobs, fmt.Sprintf("Collected %d job links", len(report.Jobs)))
	}
	return nil
}

func applyOverrides(p *types.UserProfile, opts RunOptions) {
	if opts.Background != nil {
		p.Background = *opts.Background
	}
	if opts.Goals != nil {
		p.Goals = *opts.Goals
	}
	if opts.Skills != nil {
		p.Skills = opts.Skills
	}
}

func emit(opts RunOptions, step, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message})
	}
}

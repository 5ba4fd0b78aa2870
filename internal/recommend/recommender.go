package recommend

import (
	"errors"
	"fmt"
	"math"

	"github.com/jonathan/career-mentor/internal/catalog"
	"github.com/jonathan/career-mentor/internal/skills"
	"github.com/jonathan/career-mentor/internal/types"
)

// ErrRoleNotFound is returned when a role has no catalog entry.
var ErrRoleNotFound = catalog.ErrRoleNotFound

// ErrInvalidThreshold is returned when a threshold lies outside [0, 1].
var ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")

// Recommender answers ranking and gap questions against a catalog snapshot.
// It holds no state between calls.
type Recommender struct {
	Catalog   *catalog.Catalog
	Threshold float64
}

// New creates a Recommender, validating threshold.
func New(c *catalog.Catalog, threshold float64) (*Recommender, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	return &Recommender{Catalog: c, Threshold: threshold}, nil
}

// ValidateThreshold checks that threshold is a ratio in [0, 1].
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}
	return nil
}

// Rank ranks every catalog role against userSkills using the recommender's threshold.
func (r *Recommender) Rank(userSkills []string) []types.RoleMatch {
	return Rank(userSkills, r.Catalog.Records(), r.Threshold)
}

// RequiredSkills returns the skills bundle for role.
func (r *Recommender) RequiredSkills(role string) (types.RoleRequirements, error) {
	return r.Catalog.RequiredSkills(role)
}

// MissingSkills returns the required skills of role that userSkills lacks.
// A role the user fully covers yields an empty, non-nil slice; an unknown
// role yields ErrRoleNotFound.
func (r *Recommender) MissingSkills(userSkills []string, role string) ([]string, error) {
	gap, err := r.Gap(userSkills, role)
	if err != nil {
		return nil, err
	}
	return gap.Missing, nil
}

// Gap partitions the required skills of role into matched and missing.
func (r *Recommender) Gap(userSkills []string, role string) (types.SkillGap, error) {
	rec, ok := r.Catalog.Lookup(role)
	if !ok {
		return types.SkillGap{}, fmt.Errorf("%w: %q", ErrRoleNotFound, role)
	}
	required := skills.NormalizeList(rec.Skills)
	matched, missing := skills.NewSet(userSkills).Partition(required)
	return types.SkillGap{
		Role:     rec.Role,
		Required: required,
		Matched:  matched,
		Missing:  missing,
	}, nil
}

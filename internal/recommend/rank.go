// Package recommend ranks career roles against a user's skills and reports skill gaps.
package recommend

import (
	"math"
	"sort"

	"github.com/jonathan/career-mentor/internal/skills"
	"github.com/jonathan/career-mentor/internal/types"
)

// DefaultThreshold is the minimum match ratio a role needs to be recommended.
const DefaultThreshold = 0.4

// MatchPercent returns the share of required skills present in userSkills as a
// percentage rounded to two decimals. ok is false when required is empty.
func MatchPercent(userSkills, required []string) (percent float64, ok bool) {
	req := skills.NewSet(required)
	if len(req) == 0 {
		return 0, false
	}
	have := skills.NewSet(userSkills)
	ratio := float64(have.CountIn(req)) / float64(len(req))
	return round2(ratio * 100), true
}

// Rank scores every record against userSkills and returns the roles whose match
// ratio meets threshold, sorted by match percent descending. Records with no
// required skills are skipped. Ties keep catalog order. The result is never nil.
func Rank(userSkills []string, records []types.CareerRecord, threshold float64) []types.RoleMatch {
	have := skills.NewSet(userSkills)
	matches := make([]types.RoleMatch, 0)

	for _, rec := range records {
		req := skills.NewSet(rec.Skills)
		if len(req) == 0 {
			continue
		}
		percent := round2(float64(have.CountIn(req)) / float64(len(req)) * 100)
		if percent/100 < threshold {
			continue
		}
		matches = append(matches, types.RoleMatch{Role: rec.Role, MatchPercent: percent})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchPercent > matches[j].MatchPercent
	})
	return matches
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

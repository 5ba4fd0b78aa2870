package types

// RoleMatch is one ranked entry of a recommendation result.
type RoleMatch struct {
	Role         string  `json:"role"`
	MatchPercent float64 `json:"match_percent"`
}

// SkillGap describes how a user's skills cover a role's required skills.
// Matched and Missing partition Required.
type SkillGap struct {
	Role     string   `json:"role"`
	Required []string `json:"required"`
	Matched  []string `json:"matched"`
	Missing  []string `json:"missing"`
}

// Complete reports whether the user meets every required skill.
func (g SkillGap) Complete() bool {
	return len(g.Missing) == 0
}

// JobLink is a job posting returned by the job-search collaborator.
type JobLink struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	URL      string `json:"url"`
}

package types

import "strings"

// Placeholders used when a catalog record omits a resource list.
const (
	PlaceholderCourses         = "No specific courses listed."
	PlaceholderProjects        = "No sample projects available."
	PlaceholderInterviewTopics = "No interview topics listed."
)

// CareerRecord is a single role definition from the career dataset.
type CareerRecord struct {
	Role            string   `json:"role"`
	Skills          []string `json:"skills"`
	Courses         []string `json:"courses,omitempty"`
	Projects        []string `json:"projects,omitempty"`
	InterviewTopics []string `json:"interview_topics,omitempty"`
}

// Resources bundles the learning material attached to a role.
type Resources struct {
	Courses         []string `json:"courses"`
	Projects        []string `json:"projects"`
	InterviewTopics []string `json:"interview_topics"`
}

// Resources returns the record's resource bundle with placeholders for absent lists.
func (r CareerRecord) Resources() Resources {
	return Resources{
		Courses:         orPlaceholder(r.Courses, PlaceholderCourses),
		Projects:        orPlaceholder(r.Projects, PlaceholderProjects),
		InterviewTopics: orPlaceholder(r.InterviewTopics, PlaceholderInterviewTopics),
	}
}

// RoleRequirements is the skills bundle reported for a role lookup.
type RoleRequirements struct {
	Role      string    `json:"role"`
	Skills    []string  `json:"skills"`
	Resources Resources `json:"resources"`
}

func orPlaceholder(values []string, placeholder string) []string {
	if len(values) == 0 {
		return []string{placeholder}
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

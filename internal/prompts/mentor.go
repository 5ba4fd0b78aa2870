package prompts

import "strings"

// File holds every mentor prompt.
const File = "mentor.json"

// Prompt keys in File.
const (
	KeyLevelInference     = "level_inference"
	KeyCareerFit          = "career_fit"
	KeyRoadmap            = "roadmap"
	KeyMockInterview      = "mock_interview"
	KeyPersonalizedAdvice = "personalized_advice"
)

// Context carries the profile and target-role facts substituted into prompts.
type Context struct {
	Persona    string
	Background string
	Skills     []string
	Goals      string
	Role       string
	Missing    []string
}

func (c Context) data() map[string]string {
	return map[string]string{
		"Persona":    c.Persona,
		"Background": c.Background,
		"Skills":     strings.Join(c.Skills, ", "),
		"Goals":      c.Goals,
		"Role":       c.Role,
		"Missing":    strings.Join(c.Missing, ", "),
	}
}

// Render formats the mentor prompt named key with c.
func Render(key string, c Context) (string, error) {
	template, err := Get(File, key)
	if err != nil {
		return "", err
	}
	return Format(template, c.data()), nil
}

// LevelInference asks for the candidate's likely job level.
func LevelInference(c Context) string {
	return Format(MustGet(File, KeyLevelInference), c.data())
}

// CareerFit asks for a fit score and learning resources for c.Role.
func CareerFit(c Context) string {
	return Format(MustGet(File, KeyCareerFit), c.data())
}

// Roadmap asks for a multi-month learning plan toward c.Role.
func Roadmap(c Context) string {
	return Format(MustGet(File, KeyRoadmap), c.data())
}

// MockInterview asks for practice interview questions for c.Role.
func MockInterview(c Context) string {
	return Format(MustGet(File, KeyMockInterview), c.data())
}

// PersonalizedAdvice asks for open-ended role and learning suggestions.
func PersonalizedAdvice(c Context) string {
	return Format(MustGet(File, KeyPersonalizedAdvice), c.data())
}

package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(File, KeyCareerFit)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Fit confidence score")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(File, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", Format(template, data))
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	assert.Equal(t, template, Format(template, map[string]string{})) // Placeholder remains
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(File)
	require.NoError(t, err)
	assert.Equal(t, []string{
		KeyCareerFit, KeyLevelInference, KeyMockInterview, KeyPersonalizedAdvice, KeyRoadmap,
	}, keys)
}

func TestMentorPrompts_NoUnresolvedPlaceholders(t *testing.T) {
	ClearCache()
	c := Context{
		Persona:    "Student",
		Background: "CS graduate",
		Skills:     []string{"python", "sql"},
		Goals:      "Work in AI",
		Role:       "Data Scientist",
		Missing:    []string{"machine learning"},
	}

	for _, key := range []string{KeyLevelInference, KeyCareerFit, KeyRoadmap, KeyMockInterview, KeyPersonalizedAdvice} {
		t.Run(key, func(t *testing.T) {
			prompt, err := Render(key, c)
			require.NoError(t, err)
			assert.False(t, strings.Contains(prompt, "{{."), "unresolved placeholder in %s", key)
		})
	}
}

func TestCareerFit(t *testing.T) {
	prompt := CareerFit(Context{
		Persona: "Career Switcher",
		Skills:  []string{"python", "sql"},
		Role:    "Data Scientist",
		Missing: []string{"machine learning", "statistics"},
	})
	assert.Contains(t, prompt, "Persona: Career Switcher")
	assert.Contains(t, prompt, "Skills: python, sql")
	assert.Contains(t, prompt, "Target Role: Data Scientist")
	assert.Contains(t, prompt, "Missing Skills: machine learning, statistics")
}

func TestBuilders(t *testing.T) {
	c := Context{Persona: "Student", Role: "Web Developer", Skills: []string{"html"}}
	assert.Contains(t, LevelInference(c), "Infer the most likely job level")
	assert.Contains(t, Roadmap(c), "aiming for the role of Web Developer")
	assert.Contains(t, MockInterview(c), "mock interview questions for a Web Developer")
	assert.Contains(t, PersonalizedAdvice(c), "Suggest career roles and learning paths.")
}

func TestLoad_CachesParsedFile(t *testing.T) {
	ClearCache()

	first, err := Load(File)
	require.NoError(t, err)
	second, err := Load(File)
	require.NoError(t, err)
	assert.Equal(t, first.Keys(), second.Keys())
	assert.Len(t, first, 5)
}

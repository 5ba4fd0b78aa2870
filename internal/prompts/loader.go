// Package prompts holds the mentor's LLM prompt templates.
// Each embedded JSON file maps prompt names to templates with {{.Key}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Set is one parsed prompt file, keyed by prompt name.
type Set map[string]string

var (
	setsMu sync.RWMutex
	sets   = make(map[string]Set)
)

// Load parses an embedded prompt file once and returns its prompts.
// A file with an empty template is rejected.
func Load(filename string) (Set, error) {
	setsMu.RLock()
	s, ok := sets[filename]
	setsMu.RUnlock()
	if ok {
		return s, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	for name, tmpl := range s {
		if strings.TrimSpace(tmpl) == "" {
			return nil, fmt.Errorf("prompt %q in %s is empty", name, filename)
		}
	}

	setsMu.Lock()
	sets[filename] = s
	setsMu.Unlock()
	return s, nil
}

// Keys returns the prompt names of s, sorted.
func (s Set) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Get returns the template named key from filename.
func Get(filename, key string) (string, error) {
	s, err := Load(filename)
	if err != nil {
		return "", err
	}
	tmpl, ok := s[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return tmpl, nil
}

// MustGet is Get for prompts that ship with the binary; a miss is a programming error.
func MustGet(filename, key string) string {
	tmpl, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return tmpl
}

// Format substitutes every {{.Key}} in template with data[Key].
// Placeholders without a value are left in place.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, 2*len(data))
	for _, key := range slices.Sorted(maps.Keys(data)) {
		pairs = append(pairs, "{{."+key+"}}", data[key])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// List returns the prompt names in filename, sorted.
func List(filename string) ([]string, error) {
	s, err := Load(filename)
	if err != nil {
		return nil, err
	}
	return s.Keys(), nil
}

// ClearCache drops every parsed file so the next Load rereads it.
func ClearCache() {
	setsMu.Lock()
	clear(sets)
	setsMu.Unlock()
}

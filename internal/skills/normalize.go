// Package skills provides skill-name normalization, set operations and keyword extraction.
package skills

import (
	"strings"
)

// Normalize returns the comparison form of a skill: trimmed and lowercased.
func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// NormalizeList normalizes skills, drops empty entries and removes duplicates,
// keeping the first occurrence order.
func NormalizeList(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		n := Normalize(s)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// ParseList splits comma-separated user input into a normalized skill list.
func ParseList(input string) []string {
	return NormalizeList(strings.Split(input, ","))
}

// Merge returns the union of base and extra, keeping base order first.
func Merge(base, extra []string) []string {
	combined := make([]string, 0, len(base)+len(extra))
	combined = append(combined, base...)
	combined = append(combined, extra...)
	return NormalizeList(combined)
}

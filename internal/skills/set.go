package skills

// Set is a normalized skill set.
type Set map[string]struct{}

// NewSet builds a Set from raw skill names.
func NewSet(skills []string) Set {
	set := make(Set, len(skills))
	for _, s := range skills {
		if n := Normalize(s); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Has reports whether skill (in any case) is in the set.
func (s Set) Has(skill string) bool {
	_, ok := s[Normalize(skill)]
	return ok
}

// Partition splits required into the skills present in s and those missing,
// preserving the order of required. Both results are non-nil.
func (s Set) Partition(required []string) (matched, missing []string) {
	matched = []string{}
	missing = []string{}
	for _, r := range NormalizeList(required) {
		if _, ok := s[r]; ok {
			matched = append(matched, r)
		} else {
			missing = append(missing, r)
		}
	}
	return matched, missing
}

// CountIn returns how many of the normalized required skills are present in s.
func (s Set) CountIn(required Set) int {
	n := 0
	for r := range required {
		if _, ok := s[r]; ok {
			n++
		}
	}
	return n
}

package skills

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultKeywords is the vocabulary scanned for in resume text.
var DefaultKeywords = []string{
	"python", "java", "c++", "javascript", "sql", "machine learning", "deep learning",
	"aws", "azure", "docker", "kubernetes", "html", "css", "pandas", "numpy", "react",
	"node.js", "data analysis", "data visualization", "linux", "tensorflow", "pytorch",
}

// ExtractFromText returns the keywords that occur in text as whole words,
// case-insensitively, sorted alphabetically.
func ExtractFromText(text string, keywords []string) []string {
	if keywords == nil {
		keywords = DefaultKeywords
	}
	lower := strings.ToLower(text)
	found := make([]string, 0)
	seen := make(map[string]struct{})
	for _, kw := range keywords {
		n := Normalize(kw)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		if keywordPattern(n).MatchString(lower) {
			seen[n] = struct{}{}
			found = append(found, n)
		}
	}
	sort.Strings(found)
	return found
}

// keywordPattern mirrors a \b...\b search. A boundary is only asserted on a side
// whose edge character is a word character, so "c++" and "node.js" still match.
func keywordPattern(keyword string) *regexp.Regexp {
	prefix, suffix := "", ""
	if isWordByte(keyword[0]) {
		prefix = `\b`
	}
	if isWordByte(keyword[len(keyword)-1]) {
		suffix = `\b`
	}
	return regexp.MustCompile(prefix + regexp.QuoteMeta(keyword) + suffix)
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

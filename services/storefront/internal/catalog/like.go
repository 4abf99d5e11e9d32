package catalog

import (
	"regexp"
	"strings"
)

// LikePattern is a compiled SQL LIKE pattern: '%' matches any run of
// characters, '_' matches exactly one, everything else is literal. Matching
// ignores case.
type LikePattern struct {
	re *regexp.Regexp
}

// CompileLike compiles pattern with LIKE semantics.
func CompileLike(pattern string) *LikePattern {
	var b strings.Builder
	b.WriteString(`(?is)\A`)
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(`.*`)
		case '_':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`\z`)
	return &LikePattern{re: regexp.MustCompile(b.String())}
}

// Contains compiles the pattern '%term%'.
func Contains(term string) *LikePattern {
	return CompileLike("%" + term + "%")
}

// Match reports whether s matches the whole pattern.
func (p *LikePattern) Match(s string) bool {
	return p.re.MatchString(s)
}

// MatchLike reports whether name matches LIKE '%term%' case-insensitively.
func MatchLike(name, term string) bool {
	return Contains(term).Match(name)
}

package filter

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultPatternCacheSize bounds the number of compiled patterns kept per Filter.
const DefaultPatternCacheSize = 256

// matcher compiles wildcard path patterns and caches the results.
type matcher struct {
	caseSensitive bool
	cache         *lru.Cache[string, *regexp.Regexp]
}

func newMatcher(caseSensitive bool, cacheSize int) *matcher {
	if cacheSize <= 0 {
		cacheSize = DefaultPatternCacheSize
	}
	// lru.New only fails on a non-positive size.
	cache, _ := lru.New[string, *regexp.Regexp](cacheSize)
	return &matcher{caseSensitive: caseSensitive, cache: cache}
}

// Match reports whether path matches pattern. "*" matches any run of
// characters (including "/"), "?" exactly one character; the rest is literal.
func (m *matcher) Match(path, pattern string) bool {
	if !m.caseSensitive {
		path = strings.ToLower(path)
		pattern = strings.ToLower(pattern)
	}

	re, ok := m.cache.Get(pattern)
	if !ok {
		re = CompileWildcard(pattern)
		m.cache.Add(pattern, re)
	}
	return re.MatchString(path)
}

// CompileWildcard turns a wildcard pattern into an anchored regular expression.
func CompileWildcard(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")

	literal := 0
	flush := func(end int) {
		if end > literal {
			b.WriteString(regexp.QuoteMeta(pattern[literal:end]))
		}
	}

	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*':
			flush(i)
			b.WriteString(".*")
			literal = i + 1
		case '?':
			flush(i)
			b.WriteString(".")
			literal = i + 1
		}
	}
	flush(len(pattern))

	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

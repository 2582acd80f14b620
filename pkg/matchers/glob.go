package matchers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/reactor/pkg/errors"
	"github.com/arthur-debert/reactor/pkg/registry"
	"github.com/arthur-debert/reactor/pkg/types"
)

// GlobMatcher matches event tags against an fnmatch-style pattern:
// `*` matches any run of characters including `/`, `?` matches one
// character, `[seq]` and `[!seq]` match character classes. Tags are
// plain strings here, not paths, so wildcards cross segment
// boundaries.
type GlobMatcher struct {
	pattern string
	re      *regexp.Regexp
}

// NewGlobMatcher validates the pattern and returns a GlobMatcher
func NewGlobMatcher(pattern string) (*GlobMatcher, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Newf(errors.ErrPatternInvalid, "invalid glob pattern %q", pattern)
	}
	re, err := regexp.Compile(translateGlob(pattern))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid glob pattern %q", pattern)
	}
	return &GlobMatcher{pattern: pattern, re: re}, nil
}

// translateGlob converts an fnmatch pattern into an anchored regular
// expression. No character is separator-special: `*` becomes `.*`.
func translateGlob(pattern string) string {
	var out strings.Builder
	out.WriteString(`^(?s)`)

	for i := 0; i < len(pattern); {
		c := pattern[i]
		i++
		switch c {
		case '*':
			out.WriteString(`.*`)
		case '?':
			out.WriteString(`.`)
		case '[':
			j := i
			if j < len(pattern) && pattern[j] == '!' {
				j++
			}
			if j < len(pattern) && pattern[j] == ']' {
				j++
			}
			for j < len(pattern) && pattern[j] != ']' {
				j++
			}
			if j >= len(pattern) {
				// Unclosed bracket matches a literal [
				out.WriteString(`\[`)
				continue
			}
			set := strings.ReplaceAll(pattern[i:j], `\`, `\\`)
			out.WriteByte('[')
			if strings.HasPrefix(set, "!") {
				out.WriteByte('^')
				set = set[1:]
			}
			out.WriteString(set)
			out.WriteByte(']')
			i = j + 1
		default:
			out.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	out.WriteString(`$`)
	return out.String()
}

// Kind returns the matcher kind
func (m *GlobMatcher) Kind() string {
	return types.KindFnmatch
}

// Description returns a human-readable description of what this matcher matches
func (m *GlobMatcher) Description() string {
	return "Matches tags by glob pattern: " + m.pattern
}

// Pattern returns the configured pattern string
func (m *GlobMatcher) Pattern() string {
	return m.pattern
}

// Match reports whether text satisfies the glob pattern
func (m *GlobMatcher) Match(text string) (bool, types.MatchResult) {
	if !m.re.MatchString(text) {
		return false, nil
	}
	return true, types.MatchResult{}
}

func init() {
	err := registry.RegisterMatcherFactory(types.KindFnmatch, func(pattern string) (types.Matcher, error) {
		return NewGlobMatcher(pattern)
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register fnmatch matcher factory: %v", err))
	}
}

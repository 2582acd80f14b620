package matchers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/reactor/pkg/errors"
	"github.com/arthur-debert/reactor/pkg/logging"
	"github.com/arthur-debert/reactor/pkg/registry"
	"github.com/arthur-debert/reactor/pkg/types"
)

// RegexMatcher matches event tags against a compiled regular expression.
// Named capture groups become entries in the MatchResult.
type RegexMatcher struct {
	pattern string
	re      *regexp.Regexp
}

// NewRegexMatcher compiles the given pattern and returns a RegexMatcher.
// Matching is anchored at the start of the tag; a pattern matches when
// some prefix of the tag satisfies it, unless the pattern itself demands
// more.
func NewRegexMatcher(pattern string) (*RegexMatcher, error) {
	compiled := pattern
	if !strings.HasPrefix(compiled, "^") {
		compiled = "^(?:" + compiled + ")"
	}
	re, err := regexp.Compile(compiled)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid regex pattern %q", pattern)
	}
	return &RegexMatcher{pattern: pattern, re: re}, nil
}

// Kind returns the matcher kind
func (m *RegexMatcher) Kind() string {
	return types.KindRegex
}

// Description returns a human-readable description of what this matcher matches
func (m *RegexMatcher) Description() string {
	return "Matches tags by regular expression: " + m.pattern
}

// Pattern returns the configured pattern string
func (m *RegexMatcher) Pattern() string {
	return m.pattern
}

// Match tests the tag against the compiled expression
func (m *RegexMatcher) Match(text string) (bool, types.MatchResult) {
	subs := m.re.FindStringSubmatch(text)
	if subs == nil {
		return false, nil
	}

	result := types.MatchResult{}
	for i, name := range m.re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		result[name] = subs[i]
	}

	logger := logging.GetLogger("matchers.regex")
	logger.Debug().
		Str("pattern", m.pattern).
		Str("tag", text).
		Int("captures", len(result)).
		Msg("tag matched regex")

	return true, result
}

func init() {
	err := registry.RegisterMatcherFactory(types.KindRegex, func(pattern string) (types.Matcher, error) {
		return NewRegexMatcher(pattern)
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register regex matcher factory: %v", err))
	}
}

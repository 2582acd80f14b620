package matchers

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/reactor/pkg/registry"
	"github.com/arthur-debert/reactor/pkg/types"
)

// SuffixMatcher matches event tags that end with a fixed suffix.
type SuffixMatcher struct {
	pattern string
}

// NewSuffixMatcher creates a new SuffixMatcher with the given suffix
func NewSuffixMatcher(pattern string) *SuffixMatcher {
	return &SuffixMatcher{pattern: pattern}
}

// Kind returns the matcher kind
func (m *SuffixMatcher) Kind() string {
	return types.KindEndsWith
}

// Description returns a human-readable description of what this matcher matches
func (m *SuffixMatcher) Description() string {
	return "Matches tags ending with: " + m.pattern
}

// Pattern returns the configured pattern string
func (m *SuffixMatcher) Pattern() string {
	return m.pattern
}

// Match reports whether text ends with the configured suffix
func (m *SuffixMatcher) Match(text string) (bool, types.MatchResult) {
	if !strings.HasSuffix(text, m.pattern) {
		return false, nil
	}
	return true, types.MatchResult{}
}

func init() {
	err := registry.RegisterMatcherFactory(types.KindEndsWith, func(pattern string) (types.Matcher, error) {
		return NewSuffixMatcher(pattern), nil
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register endswith matcher factory: %v", err))
	}
}

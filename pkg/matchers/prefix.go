package matchers

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/reactor/pkg/registry"
	"github.com/arthur-debert/reactor/pkg/types"
)

// PrefixMatcher matches event tags that start with a fixed prefix.
type PrefixMatcher struct {
	pattern string
}

// NewPrefixMatcher creates a new PrefixMatcher with the given prefix
func NewPrefixMatcher(pattern string) *PrefixMatcher {
	return &PrefixMatcher{pattern: pattern}
}

// Kind returns the matcher kind
func (m *PrefixMatcher) Kind() string {
	return types.KindStartsWith
}

// Description returns a human-readable description of what this matcher matches
func (m *PrefixMatcher) Description() string {
	return "Matches tags starting with: " + m.pattern
}

// Pattern returns the configured pattern string
func (m *PrefixMatcher) Pattern() string {
	return m.pattern
}

// Match reports whether text starts with the configured prefix
func (m *PrefixMatcher) Match(text string) (bool, types.MatchResult) {
	if !strings.HasPrefix(text, m.pattern) {
		return false, nil
	}
	return true, types.MatchResult{}
}

func init() {
	err := registry.RegisterMatcherFactory(types.KindStartsWith, func(pattern string) (types.Matcher, error) {
		return NewPrefixMatcher(pattern), nil
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register startswith matcher factory: %v", err))
	}
}

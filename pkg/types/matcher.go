package types

// Matcher is an interface for pattern-test strategies bound to rules.
// Given an event's matchable text, a matcher reports whether the text
// matches its pattern and returns any extracted substructure.
type Matcher interface {
	// Kind returns the matcher kind this instance was built from,
	// e.g. "regex" or "startswith"
	Kind() string

	// Description returns a human-readable description of what this matcher matches
	Description() string

	// Pattern returns the configured pattern string
	Pattern() string

	// Match tests the given text against this matcher's pattern.
	// It returns true on a match, along with any extracted captures
	// (empty for the purely boolean kinds).
	Match(text string) (bool, MatchResult)
}

// MatcherFactory creates a new Matcher instance for the given pattern
type MatcherFactory func(pattern string) (Matcher, error)

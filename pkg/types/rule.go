package types

// Pattern kind names accepted in rule configuration.
const (
	KindRegex      = "regex"
	KindStartsWith = "startswith"
	KindEndsWith   = "endswith"
	KindFnmatch    = "fnmatch"
)

// RuleConfig is one rule record as it appears in configuration, before
// pattern compilation. Exactly one pattern kind must be selected, either
// through the pattern-kind/pattern pair or by using a kind name itself
// as the key (regex = "...", startswith = "...", and so on).
type RuleConfig struct {
	// Name is an optional label used in diagnostics; defaults to the
	// pattern when empty
	Name string `json:"name,omitempty" koanf:"name" toml:"name,omitempty" yaml:"name,omitempty"`

	// PatternKind selects the match strategy: regex, startswith,
	// endswith or fnmatch
	PatternKind string `json:"pattern-kind,omitempty" koanf:"pattern-kind" toml:"pattern-kind,omitempty" yaml:"pattern-kind,omitempty"`

	// Pattern is the pattern string tested by PatternKind
	Pattern string `json:"pattern,omitempty" koanf:"pattern" toml:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Kind-keyed shorthand. Setting one of these is equivalent to
	// setting PatternKind plus Pattern.
	Regex      string `json:"regex,omitempty" koanf:"regex" toml:"regex,omitempty" yaml:"regex,omitempty"`
	StartsWith string `json:"startswith,omitempty" koanf:"startswith" toml:"startswith,omitempty" yaml:"startswith,omitempty"`
	EndsWith   string `json:"endswith,omitempty" koanf:"endswith" toml:"endswith,omitempty" yaml:"endswith,omitempty"`
	Fnmatch    string `json:"fnmatch,omitempty" koanf:"fnmatch" toml:"fnmatch,omitempty" yaml:"fnmatch,omitempty"`

	// Condition optionally guards the rule's actions. Empty means the
	// actions always fire on a match.
	Condition string `json:"condition,omitempty" koanf:"condition" toml:"condition,omitempty" yaml:"condition,omitempty"`

	// KeywordResolve enables per-firing template resolution of the
	// rule's actions
	KeywordResolve bool `json:"keyword_resolve,omitempty" koanf:"keyword_resolve" toml:"keyword_resolve,omitempty" yaml:"keyword_resolve,omitempty"`

	// Actions are dispatched in declared order when the rule fires
	Actions []Message `json:"actions,omitempty" koanf:"actions" toml:"actions,omitempty" yaml:"actions,omitempty"`
}

// Rule is the immutable runtime form of a RuleConfig: a compiled matcher
// plus the dispatch instructions. Rules are built once at registration
// and never mutated afterwards.
type Rule struct {
	// Name labels the rule in diagnostics
	Name string

	// Kind is the normalized pattern kind
	Kind string

	// Pattern is the pattern the matcher was compiled from
	Pattern string

	// Condition guards the actions; empty means always fire
	Condition string

	// KeywordResolve enables per-firing template resolution
	KeywordResolve bool

	// Actions are the rule's message templates in declared order
	Actions []Message

	// Matcher is the compiled pattern-test strategy
	Matcher Matcher
}

// Package rules turns rule configuration records into immutable runtime
// rules: it selects the pattern kind, compiles the pattern through the
// registered matcher factory, and validates the record. One bad rule
// never aborts the others; callers skip it and continue.
package rules

import (
	"github.com/arthur-debert/reactor/pkg/errors"
	"github.com/arthur-debert/reactor/pkg/logging"
	"github.com/arthur-debert/reactor/pkg/registry"
	"github.com/arthur-debert/reactor/pkg/types"
)

// Compile builds the immutable runtime Rule from one configuration
// record. It returns a coded error when no pattern kind is selected,
// more than one is, the kind is unrecognized, or the pattern does not
// compile.
func Compile(cfg types.RuleConfig) (types.Rule, error) {
	kind, pattern, err := selectKind(cfg)
	if err != nil {
		return types.Rule{}, err
	}

	if pattern == "" {
		return types.Rule{}, errors.Newf(errors.ErrRuleInvalid,
			"rule %q has an empty pattern", displayName(cfg, kind, pattern))
	}

	factory, err := registry.GetMatcherFactory(kind)
	if err != nil {
		return types.Rule{}, errors.Wrapf(err, errors.ErrKindUnknown,
			"rule %q uses unrecognized pattern kind %q", displayName(cfg, kind, pattern), kind)
	}

	matcher, err := factory(pattern)
	if err != nil {
		return types.Rule{}, errors.Wrapf(err, errors.ErrPatternInvalid,
			"rule %q has an invalid %s pattern", displayName(cfg, kind, pattern), kind)
	}

	rule := types.Rule{
		Name:           displayName(cfg, kind, pattern),
		Kind:           kind,
		Pattern:        pattern,
		Condition:      cfg.Condition,
		KeywordResolve: cfg.KeywordResolve,
		Actions:        cfg.Actions,
		Matcher:        matcher,
	}

	logger := logging.GetLogger("rules")
	logger.Debug().
		Str("rule", rule.Name).
		Str("kind", rule.Kind).
		Str("pattern", rule.Pattern).
		Int("actions", len(rule.Actions)).
		Msg("compiled rule")

	return rule, nil
}

// CompileAll compiles every record, skipping invalid ones with a
// diagnostic. The returned slice preserves the declared order of the
// valid rules.
func CompileAll(cfgs []types.RuleConfig) []types.Rule {
	logger := logging.GetLogger("rules")

	compiled := make([]types.Rule, 0, len(cfgs))
	for i, cfg := range cfgs {
		rule, err := Compile(cfg)
		if err != nil {
			logger.Error().
				Err(err).
				Int("index", i).
				Str("name", cfg.Name).
				Msg("skipping invalid rule")
			continue
		}
		compiled = append(compiled, rule)
	}
	return compiled
}

// CompileMatcher builds a standalone matcher for the given kind and
// pattern, outside any rule record.
func CompileMatcher(kind, pattern string) (types.Matcher, error) {
	factory, err := registry.GetMatcherFactory(kind)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrKindUnknown, "unrecognized pattern kind %q", kind)
	}
	matcher, err := factory(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid %s pattern %q", kind, pattern)
	}
	return matcher, nil
}

// selectKind picks the pattern kind for a record. The kind-keyed
// shorthand fields win over the explicit pattern-kind/pattern pair, and
// setting more than one shorthand is an error. With no shorthand, the
// explicit pair is used as-is.
func selectKind(cfg types.RuleConfig) (kind, pattern string, err error) {
	shorthands := []struct {
		kind    string
		pattern string
	}{
		{types.KindRegex, cfg.Regex},
		{types.KindStartsWith, cfg.StartsWith},
		{types.KindEndsWith, cfg.EndsWith},
		{types.KindFnmatch, cfg.Fnmatch},
	}

	for _, s := range shorthands {
		if s.pattern == "" {
			continue
		}
		if kind != "" {
			return "", "", errors.Newf(errors.ErrRuleInvalid,
				"rule %q selects both %s and %s patterns", cfg.Name, kind, s.kind)
		}
		kind, pattern = s.kind, s.pattern
	}

	if kind != "" {
		if cfg.PatternKind != "" && cfg.PatternKind != kind {
			return "", "", errors.Newf(errors.ErrRuleInvalid,
				"rule %q sets pattern-kind %q but uses a %s shorthand", cfg.Name, cfg.PatternKind, kind)
		}
		return kind, pattern, nil
	}

	if cfg.PatternKind == "" {
		return "", "", errors.Newf(errors.ErrRuleInvalid,
			"rule %q selects no pattern kind", cfg.Name)
	}
	return cfg.PatternKind, cfg.Pattern, nil
}

func displayName(cfg types.RuleConfig, kind, pattern string) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	if kind != "" && pattern != "" {
		return kind + ":" + pattern
	}
	return "(unnamed)"
}

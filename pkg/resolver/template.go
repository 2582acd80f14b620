package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/arthur-debert/reactor/pkg/errors"
)

// placeholderPattern matches ${ <expression> } placeholders embedded in
// template strings.
var placeholderPattern = regexp.MustCompile(`\$\{([^{}]+)\}`)

// resolveValue resolves one template value. Strings go through
// placeholder substitution; maps and slices are walked recursively;
// everything else passes through unchanged.
func (r *ExprResolver) resolveValue(v interface{}, kw Keywords) (interface{}, error) {
	switch value := v.(type) {
	case string:
		return r.resolveString(value, kw)
	case map[string]interface{}:
		return r.resolveMap(value, kw)
	case []interface{}:
		return r.resolveSlice(value, kw)
	default:
		return v, nil
	}
}

// resolveString substitutes placeholders in one string. A string that
// is exactly one placeholder resolves to the expression's typed value;
// a string with embedded placeholders splices string forms of the
// resolved values into the surrounding text.
func (r *ExprResolver) resolveString(s string, kw Keywords) (interface{}, error) {
	matches := placeholderPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	// Whole string is a single placeholder: keep the resolved type.
	if len(matches) == 1 && matches[0][0] == 0 && matches[0][1] == len(s) {
		return r.evaluate(strings.TrimSpace(s[matches[0][2]:matches[0][3]]), kw)
	}

	var out strings.Builder
	last := 0
	for _, m := range matches {
		out.WriteString(s[last:m[0]])
		value, err := r.evaluate(strings.TrimSpace(s[m[2]:m[3]]), kw)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&out, "%v", value)
		last = m[1]
	}
	out.WriteString(s[last:])
	return out.String(), nil
}

func (r *ExprResolver) resolveMap(m map[string]interface{}, kw Keywords) (map[string]interface{}, error) {
	resolved := make(map[string]interface{}, len(m))
	for k, v := range m {
		rv, err := r.resolveValue(v, kw)
		if err != nil {
			return nil, err
		}
		resolved[k] = rv
	}
	return resolved, nil
}

func (r *ExprResolver) resolveSlice(s []interface{}, kw Keywords) ([]interface{}, error) {
	resolved := make([]interface{}, len(s))
	for i, v := range s {
		rv, err := r.resolveValue(v, kw)
		if err != nil {
			return nil, err
		}
		resolved[i] = rv
	}
	return resolved, nil
}

// evaluate runs one placeholder expression against the namespace.
func (r *ExprResolver) evaluate(source string, kw Keywords) (interface{}, error) {
	program, err := r.compile(source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateResolve, "failed to compile placeholder %q", source)
	}
	output, err := expr.Run(program, map[string]interface{}(kw))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateResolve, "failed to resolve placeholder %q", source)
	}
	return output, nil
}

// Package resolver defines the expression-evaluation contract the
// engine consumes, plus the default implementation backed by
// expr-lang/expr. The engine needs exactly two capabilities: evaluate a
// condition to a truth value, and substitute placeholders in an action
// template. Both receive the same keyword namespace and must leave
// their inputs untouched.
package resolver

import (
	"github.com/arthur-debert/reactor/pkg/types"
)

// Keywords is the namespace handed to condition evaluation and template
// resolution. It always carries exactly three top-level names: event,
// match and context.
type Keywords map[string]interface{}

// NewKeywords builds the keyword namespace for one rule firing. Event
// data fields appear at the top level of the event namespace with the
// reserved tag, id and time keys injected alongside, so conditions read
// naturally ("event.severity == 'high'"). The context snapshot comes
// from the shared store.
func NewKeywords(evt types.Event, match types.MatchResult, ctx map[string]map[string]interface{}) Keywords {
	eventNS := make(map[string]interface{}, len(evt.Data)+3)
	for k, v := range evt.Data {
		eventNS[k] = v
	}
	eventNS["tag"] = evt.Tag
	eventNS["id"] = evt.ID
	eventNS["time"] = evt.Time

	matchNS := make(map[string]interface{}, len(match))
	for k, v := range match {
		matchNS[k] = v
	}

	if ctx == nil {
		ctx = map[string]map[string]interface{}{}
	}

	return Keywords{
		"event":   eventNS,
		"match":   matchNS,
		"context": ctx,
	}
}

// Resolver is the expression-evaluation capability the engine consumes.
// Implementations must be deterministic for identical inputs and must
// not mutate the keywords or the template.
type Resolver interface {
	// EvaluateCondition evaluates a condition expression against the
	// keyword namespace and returns its truth value.
	EvaluateCondition(expr string, kw Keywords) (bool, error)

	// ResolveTemplate returns a structurally identical copy of msg with
	// embedded placeholders substituted by their resolved values.
	ResolveTemplate(msg types.Message, kw Keywords) (types.Message, error)
}

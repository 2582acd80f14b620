package engine

import (
	"context"

	"github.com/arthur-debert/reactor/pkg/resolver"
	"github.com/arthur-debert/reactor/pkg/types"
)

// ruleBinding ties one compiled rule to the engine. The binding is
// built per rule at registration, so its fire method always evaluates
// the rule it was created for, no matter how many rules the
// registration loop processed afterwards.
type ruleBinding struct {
	engine *Engine
	rule   types.Rule
}

// fire is the callback registered for the binding's matcher.
func (b *ruleBinding) fire(ctx context.Context, evt types.Event, match types.MatchResult) {
	b.engine.evaluate(ctx, b.rule, evt, match)
}

// evaluate runs one rule firing: condition check, then per-action
// resolution and dispatch in declared order. Failures are local: a
// failed condition skips the rule, a failed resolution or dispatch
// skips that action only. Nothing escapes to the caller.
func (e *Engine) evaluate(ctx context.Context, rule types.Rule, evt types.Event, match types.MatchResult) {
	logger := e.logger.With().Str("rule", rule.Name).Str("tag", evt.Tag).Logger()

	kw := resolver.NewKeywords(evt, match, e.store.ReadAll())

	if rule.Condition != "" {
		met, err := e.resolver.EvaluateCondition(rule.Condition, kw)
		if err != nil {
			// An evaluation error behaves exactly like a false
			// condition: skip, log locally, absorb.
			logger.Debug().Err(err).Str("condition", rule.Condition).Msg("condition evaluation failed, skipping rule")
			return
		}
		if !met {
			logger.Debug().Str("condition", rule.Condition).Msg("condition not met, skipping rule")
			return
		}
		logger.Info().Str("condition", rule.Condition).Msg("event meets condition")
	}

	for i, action := range rule.Actions {
		msg := action

		if rule.KeywordResolve {
			clone, err := action.Clone()
			if err != nil {
				logger.Error().Err(err).Int("action", i).Msg("failed to copy action template")
				continue
			}
			resolved, err := e.resolver.ResolveTemplate(clone, kw)
			if err != nil {
				logger.Error().Err(err).Int("action", i).Str("hook", action.Hook).Msg("failed to resolve action template")
				continue
			}
			msg = resolved
			logger.Debug().Int("action", i).Str("message", msg.String()).Msg("resolved action template")
		}

		if err := e.sink.Dispatch(ctx, msg); err != nil {
			logger.Error().Err(err).Int("action", i).Str("hook", msg.Hook).Msg("dispatch failed")
			continue
		}

		logger.Debug().Int("action", i).Str("hook", msg.Hook).Msg("dispatched action")
	}
}

// Package engine is the decision layer between "something happened" and
// "do these things": it matches incoming events against registered rule
// patterns, evaluates each matched rule's guarding condition, resolves
// action templates and forwards the finished messages to the dispatch
// sink.
package engine

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/reactor/pkg/dispatch"
	"github.com/arthur-debert/reactor/pkg/logging"
	"github.com/arthur-debert/reactor/pkg/resolver"
	"github.com/arthur-debert/reactor/pkg/rules"
	"github.com/arthur-debert/reactor/pkg/state"
	"github.com/arthur-debert/reactor/pkg/types"
)

// Callback is invoked when a registered matcher matches an event.
type Callback func(ctx context.Context, evt types.Event, match types.MatchResult)

// binding pairs one matcher with the callback it permanently resolves
// to.
type binding struct {
	name     string
	matcher  types.Matcher
	callback Callback
}

// Engine holds the registered matcher/callback bindings and evaluates
// matched rules. It is safe to deliver events concurrently; the binding
// lock is never held across resolver or sink calls.
type Engine struct {
	mu       sync.RWMutex
	bindings []binding

	resolver resolver.Resolver
	sink     dispatch.Sink
	store    *state.Store
	logger   zerolog.Logger

	inflight sync.WaitGroup
}

// New creates an Engine over the given resolver, sink and context
// store.
func New(res resolver.Resolver, sink dispatch.Sink, store *state.Store) *Engine {
	return &Engine{
		resolver: res,
		sink:     sink,
		store:    store,
		logger:   logging.GetLogger("engine"),
	}
}

// Register stores a matcher/callback pair. The callback is invoked for
// every event whose tag the matcher matches.
func (e *Engine) Register(name string, m types.Matcher, cb Callback) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.bindings = append(e.bindings, binding{name: name, matcher: m, callback: cb})

	e.logger.Debug().
		Str("rule", name).
		Str("kind", m.Kind()).
		Str("pattern", m.Pattern()).
		Msg("registered matcher")
}

// RegisterRules compiles and registers each rule record and returns the
// number registered. An invalid rule is logged and skipped; the rest
// still register. Each registration builds a per-rule binding struct so
// the callback permanently owns the one rule it was compiled from.
func (e *Engine) RegisterRules(cfgs []types.RuleConfig) int {
	registered := 0
	for i, cfg := range cfgs {
		rule, err := rules.Compile(cfg)
		if err != nil {
			e.logger.Error().
				Err(err).
				Int("index", i).
				Str("name", cfg.Name).
				Msg("skipping invalid rule")
			continue
		}

		rb := &ruleBinding{engine: e, rule: rule}
		e.Register(rule.Name, rule.Matcher, rb.fire)
		registered++
	}

	e.logger.Info().
		Int("registered", registered).
		Int("configured", len(cfgs)).
		Msg("rules registered")

	return registered
}

// OnEvent tests the event's tag against every registered matcher and
// runs the matching rules' callbacks synchronously shielded from each
// other, so one rule's failure never prevents siblings from firing.
// Safe to call concurrently for distinct events.
func (e *Engine) OnEvent(ctx context.Context, evt types.Event) {
	e.mu.RLock()
	bindings := make([]binding, len(e.bindings))
	copy(bindings, e.bindings)
	e.mu.RUnlock()

	for _, b := range bindings {
		matched, result := b.matcher.Match(evt.Tag)
		if !matched {
			continue
		}
		if result == nil {
			result = types.MatchResult{}
		}

		e.inflight.Add(1)
		e.invoke(ctx, b, evt, result)
	}
}

// invoke runs one callback with panic isolation.
func (e *Engine) invoke(ctx context.Context, b binding, evt types.Event, result types.MatchResult) {
	defer e.inflight.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().
				Str("rule", b.name).
				Str("tag", evt.Tag).
				Interface("panic", r).
				Msg("rule callback panicked")
		}
	}()

	b.callback(ctx, evt, result)
}

// Run consumes events from the channel with a pool of workers and
// feeds them to OnEvent. It returns when the channel closes or the
// context is cancelled, after in-flight evaluations finish.
func (e *Engine) Run(ctx context.Context, events <-chan types.Event, workers int) error {
	if workers < 1 {
		workers = 1
	}

	e.logger.Info().Int("workers", workers).Msg("engine running")

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case evt, ok := <-events:
					if !ok {
						return
					}
					e.OnEvent(ctx, evt)
				}
			}
		}()
	}
	wg.Wait()

	e.Stop()

	if err := ctx.Err(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// Stop waits for in-flight rule evaluations to finish. New events may
// still be delivered afterwards; stopping delivery is the event
// source's job.
func (e *Engine) Stop() {
	e.inflight.Wait()
	e.logger.Debug().Msg("engine drained")
}

// Rules returns the names of the registered bindings in registration
// order.
func (e *Engine) Rules() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, len(e.bindings))
	for i, b := range e.bindings {
		names[i] = b.name
	}
	return names
}

// Package dispatch defines the sink contract the engine forwards
// resolved action messages to, plus the default sink that routes
// messages to named hooks. The engine never interprets message
// semantics; it hands a finished message to the sink and records the
// outcome.
package dispatch

import (
	"context"
	"time"

	"github.com/arthur-debert/reactor/pkg/errors"
	"github.com/arthur-debert/reactor/pkg/logging"
	"github.com/arthur-debert/reactor/pkg/registry"
	"github.com/arthur-debert/reactor/pkg/types"
)

// Sink accepts fully resolved action messages for execution.
type Sink interface {
	// Dispatch executes one message and returns its outcome. A
	// dispatch failure is local to that message.
	Dispatch(ctx context.Context, msg types.Message) error
}

// HookSink routes messages to hooks registered by name. Each dispatch
// runs under a per-dispatch timeout so a stuck hook cannot hang rule
// evaluation indefinitely.
type HookSink struct {
	hooks   registry.Registry[types.Hook]
	timeout time.Duration
}

// NewHookSink creates a HookSink over the given hook registry. A
// non-positive timeout disables the per-dispatch bound.
func NewHookSink(hooks registry.Registry[types.Hook], timeout time.Duration) *HookSink {
	return &HookSink{hooks: hooks, timeout: timeout}
}

// Dispatch looks up the message's hook and executes it with the
// message's arguments.
func (s *HookSink) Dispatch(ctx context.Context, msg types.Message) error {
	logger := logging.GetLogger("dispatch")

	hook, err := s.hooks.Get(msg.Hook)
	if err != nil {
		return errors.Wrapf(err, errors.ErrHookNotFound, "no hook registered for %q", msg.Hook)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := hook.Execute(ctx, types.Call{Args: msg.Args, Kwargs: msg.Kwargs})
	if err != nil {
		return errors.Wrapf(err, errors.ErrHookExecute, "hook %q failed", msg.Hook)
	}

	logger.Debug().
		Str("hook", msg.Hook).
		Dur("elapsed", time.Since(start)).
		Interface("result", result).
		Msg("dispatched message")

	return nil
}

// Package source defines the event-source contract the engine consumes
// events through, plus a concrete source that watches a spool directory
// for event files. The real event transport (a queue, a bus) lives
// outside the engine; anything that can push types.Event values into a
// channel can drive it.
package source

import (
	"context"

	"github.com/arthur-debert/reactor/pkg/types"
)

// Source produces events for the engine. Start blocks, emitting events
// into the channel until the context is cancelled or Stop is called; it
// must not close the channel (the caller owns it, and may feed it from
// several sources).
type Source interface {
	// Name identifies the source in diagnostics
	Name() string

	// Start begins producing events. It returns when the context is
	// cancelled, Stop is called, or the source fails.
	Start(ctx context.Context, events chan<- types.Event) error

	// Stop asks a running Start to return. It is safe to call more
	// than once.
	Stop() error
}

package hooks

import (
	"context"

	"github.com/arthur-debert/reactor/pkg/logging"
	"github.com/arthur-debert/reactor/pkg/registry"
)

// Returner delivers a result to some destination (a log, a file, an
// external collector).
type Returner interface {
	// Return delivers one result payload.
	Return(ctx context.Context, result interface{}) error
}

// ReturnerFunc adapts a function to the Returner interface.
type ReturnerFunc func(ctx context.Context, result interface{}) error

// Return implements Returner.
func (f ReturnerFunc) Return(ctx context.Context, result interface{}) error {
	return f(ctx, result)
}

// NewReturners builds the returner registry with the built-in log
// returner registered.
func NewReturners() registry.Registry[Returner] {
	returners := registry.New[Returner]()
	registry.MustRegister[Returner](returners, "log", ReturnerFunc(logReturn))
	return returners
}

// logReturn is the built-in returner: it writes the result to the
// reactor log.
func logReturn(_ context.Context, result interface{}) error {
	logger := logging.GetLogger("hooks.returner.log")
	logger.Info().
		Interface("result", result).
		Msg("returned result")
	return nil
}

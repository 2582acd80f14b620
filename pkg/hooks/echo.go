package hooks

import (
	"context"

	"github.com/arthur-debert/reactor/pkg/logging"
	"github.com/arthur-debert/reactor/pkg/types"
)

// EchoHookName is the name the echo hook registers under
const EchoHookName = "echo"

// EchoHook is the diagnostic no-op target: it logs whatever it
// receives and returns the positional arguments unchanged.
type EchoHook struct{}

// NewEchoHook creates an EchoHook.
func NewEchoHook() *EchoHook {
	return &EchoHook{}
}

// Name returns the hook name
func (h *EchoHook) Name() string {
	return EchoHookName
}

// Description returns a human-readable description of what this hook does
func (h *EchoHook) Description() string {
	return "Logs its arguments and returns them unchanged"
}

// Execute logs the call.
func (h *EchoHook) Execute(_ context.Context, call types.Call) (interface{}, error) {
	logger := logging.GetLogger("hooks.echo")
	logger.Info().
		Interface("args", call.Args).
		Interface("kwargs", call.Kwargs).
		Msg("echo")
	return call.Args, nil
}

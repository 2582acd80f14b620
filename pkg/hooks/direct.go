package hooks

import (
	"context"

	"github.com/arthur-debert/reactor/pkg/types"
)

// DirectHookName is the name the direct hook registers under
const DirectHookName = "module_direct"

// DirectHook calls a named module synchronously through the Runner and
// returns its result. Unlike the module hook, dispatch waits for the
// module to finish.
type DirectHook struct {
	runner Runner
}

// NewDirectHook creates a DirectHook backed by the given runner.
func NewDirectHook(runner Runner) *DirectHook {
	return &DirectHook{runner: runner}
}

// Name returns the hook name
func (h *DirectHook) Name() string {
	return DirectHookName
}

// Description returns a human-readable description of what this hook does
func (h *DirectHook) Description() string {
	return "Calls a named module synchronously and returns its result"
}

// Execute runs the module and returns its result.
func (h *DirectHook) Execute(ctx context.Context, call types.Call) (interface{}, error) {
	name, rest, err := splitName(call)
	if err != nil {
		return nil, err
	}
	return h.runner.Call(ctx, name, rest)
}

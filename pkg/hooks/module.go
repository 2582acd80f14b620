package hooks

import (
	"context"

	"github.com/arthur-debert/reactor/pkg/types"
)

// ModuleHookName is the name the module hook registers under
const ModuleHookName = "module"

// ModuleHook queues a named module as a background job through the
// Runner. The first argument (or the "name" keyword) selects the
// module; the remaining arguments are handed to it unchanged.
type ModuleHook struct {
	runner Runner
}

// NewModuleHook creates a ModuleHook backed by the given runner.
func NewModuleHook(runner Runner) *ModuleHook {
	return &ModuleHook{runner: runner}
}

// Name returns the hook name
func (h *ModuleHook) Name() string {
	return ModuleHookName
}

// Description returns a human-readable description of what this hook does
func (h *ModuleHook) Description() string {
	return "Queues a named module as a background job"
}

// Execute queues the job. The result is nil; the job's outcome is
// logged by the runner when it finishes.
func (h *ModuleHook) Execute(ctx context.Context, call types.Call) (interface{}, error) {
	name, rest, err := splitName(call)
	if err != nil {
		return nil, err
	}
	return nil, h.runner.RunJob(ctx, name, rest)
}

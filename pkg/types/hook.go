package types

import "context"

// Call carries the arguments of one dispatched message into a hook.
type Call struct {
	// Args are the message's positional arguments
	Args []interface{}

	// Kwargs are the message's keyword arguments
	Kwargs map[string]interface{}
}

// Hook is a named dispatch target. Hooks receive fully resolved message
// arguments and interpret them themselves; the engine passes arguments
// through without validating their shape.
type Hook interface {
	// Name returns the unique name of this hook
	Name() string

	// Description returns a human-readable description of what this hook does
	Description() string

	// Execute runs the hook with the given call. The returned value is
	// hook-specific and may be nil.
	Execute(ctx context.Context, call Call) (interface{}, error)
}

package hooks

import (
	"context"

	"github.com/arthur-debert/reactor/pkg/errors"
	"github.com/arthur-debert/reactor/pkg/state"
	"github.com/arthur-debert/reactor/pkg/types"
)

// ContextHookName is the name the context hook registers under
const ContextHookName = "context"

// ContextHook reads or merge-updates the shared context store. The
// "key" keyword (or first positional argument) selects the sub-mapping;
// the remaining keyword arguments are merged into it. With no key the
// hook is a pure read. Either way the full store is returned, so one
// dispatch can set and report.
type ContextHook struct {
	store *state.Store
}

// NewContextHook creates a ContextHook over the given store.
func NewContextHook(store *state.Store) *ContextHook {
	return &ContextHook{store: store}
}

// Name returns the hook name
func (h *ContextHook) Name() string {
	return ContextHookName
}

// Description returns a human-readable description of what this hook does
func (h *ContextHook) Description() string {
	return "Reads or merge-updates the shared context store"
}

// Execute performs the read or merge and returns the full store.
func (h *ContextHook) Execute(_ context.Context, call types.Call) (interface{}, error) {
	key := ""
	if len(call.Args) > 0 {
		k, ok := call.Args[0].(string)
		if !ok {
			return nil, errors.Newf(errors.ErrInvalidInput, "context key must be a string, got %T", call.Args[0])
		}
		key = k
	}

	updates := make(map[string]interface{}, len(call.Kwargs))
	for k, v := range call.Kwargs {
		if k == "key" {
			if key == "" {
				s, ok := v.(string)
				if !ok {
					return nil, errors.Newf(errors.ErrInvalidInput, "context key must be a string, got %T", v)
				}
				key = s
			}
			continue
		}
		updates[k] = v
	}

	return h.store.Merge(key, updates), nil
}

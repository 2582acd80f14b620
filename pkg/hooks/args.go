package hooks

import (
	"github.com/arthur-debert/reactor/pkg/errors"
	"github.com/arthur-debert/reactor/pkg/types"
)

// splitName extracts the target name a hook operates on, taking the
// first positional argument when it is a string and falling back to
// the "name" keyword argument. The returned call carries the remaining
// arguments.
func splitName(call types.Call) (string, types.Call, error) {
	if len(call.Args) > 0 {
		if name, ok := call.Args[0].(string); ok {
			return name, types.Call{Args: call.Args[1:], Kwargs: call.Kwargs}, nil
		}
	}

	if raw, exists := call.Kwargs["name"]; exists {
		name, ok := raw.(string)
		if !ok {
			return "", types.Call{}, errors.Newf(errors.ErrInvalidInput,
				"name argument must be a string, got %T", raw)
		}
		kwargs := make(map[string]interface{}, len(call.Kwargs)-1)
		for k, v := range call.Kwargs {
			if k != "name" {
				kwargs[k] = v
			}
		}
		return name, types.Call{Args: call.Args, Kwargs: kwargs}, nil
	}

	return "", types.Call{}, errors.New(errors.ErrInvalidInput,
		"missing name argument")
}

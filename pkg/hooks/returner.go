package hooks

import (
	"context"

	"github.com/arthur-debert/reactor/pkg/errors"
	"github.com/arthur-debert/reactor/pkg/registry"
	"github.com/arthur-debert/reactor/pkg/types"
)

// ReturnerHookName is the name the returner hook registers under
const ReturnerHookName = "returner"

// ReturnerHook forwards a result payload to a named returner. The
// first argument (or the "name" keyword) selects the returner; the
// payload is the second positional argument when present, otherwise
// the remaining keyword arguments.
type ReturnerHook struct {
	returners registry.Registry[Returner]
}

// NewReturnerHook creates a ReturnerHook over the given returner
// registry.
func NewReturnerHook(returners registry.Registry[Returner]) *ReturnerHook {
	return &ReturnerHook{returners: returners}
}

// Name returns the hook name
func (h *ReturnerHook) Name() string {
	return ReturnerHookName
}

// Description returns a human-readable description of what this hook does
func (h *ReturnerHook) Description() string {
	return "Forwards a result payload to a named returner"
}

// Execute delivers the payload through the selected returner.
func (h *ReturnerHook) Execute(ctx context.Context, call types.Call) (interface{}, error) {
	name, rest, err := splitName(call)
	if err != nil {
		return nil, err
	}

	returner, err := h.returners.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrReturnerFailed, "no returner registered for %q", name)
	}

	var payload interface{}
	if len(rest.Args) > 0 {
		payload = rest.Args[0]
	} else {
		payload = rest.Kwargs
	}

	if err := returner.Return(ctx, payload); err != nil {
		return nil, errors.Wrapf(err, errors.ErrReturnerFailed, "returner %q failed", name)
	}
	return nil, nil
}

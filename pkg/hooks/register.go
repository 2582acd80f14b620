package hooks

import (
	"github.com/arthur-debert/reactor/pkg/registry"
	"github.com/arthur-debert/reactor/pkg/state"
	"github.com/arthur-debert/reactor/pkg/types"
)

// Deps are the collaborators the hook capability set is built over.
type Deps struct {
	// Runner executes named modules for the module hooks
	Runner Runner

	// Returners holds the named returner destinations
	Returners registry.Registry[Returner]

	// Store is the shared context store
	Store *state.Store
}

// NewRegistry builds the hook registry with the full capability set:
// module, module_direct, returner, context and echo. The set is fixed
// at startup; messages select a hook by name at dispatch time.
func NewRegistry(deps Deps) registry.Registry[types.Hook] {
	hooks := registry.New[types.Hook]()

	registry.MustRegister[types.Hook](hooks, ModuleHookName, NewModuleHook(deps.Runner))
	registry.MustRegister[types.Hook](hooks, DirectHookName, NewDirectHook(deps.Runner))
	registry.MustRegister[types.Hook](hooks, ReturnerHookName, NewReturnerHook(deps.Returners))
	registry.MustRegister[types.Hook](hooks, ContextHookName, NewContextHook(deps.Store))
	registry.MustRegister[types.Hook](hooks, EchoHookName, NewEchoHook())

	return hooks
}

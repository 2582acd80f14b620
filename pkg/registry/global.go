package registry

import (
	"fmt"

	"github.com/arthur-debert/reactor/pkg/types"
)

// Global registries for different component types
var (
	matcherFactoryRegistry Registry[types.MatcherFactory]
)

func init() {
	matcherFactoryRegistry = New[types.MatcherFactory]()
}

// GetRegistry returns the global registry for the specified type.
// It uses a type switch to return the correct singleton instance.
func GetRegistry[T any]() Registry[T] {
	var zero T
	switch any(zero).(type) {
	case types.MatcherFactory:
		return any(matcherFactoryRegistry).(Registry[T])
	default:
		// This should ideally not be reached in production code,
		// but can be useful for tests with novel types.
		return New[T]()
	}
}

// RegisterMatcherFactory registers a factory function for creating matchers.
func RegisterMatcherFactory(kind string, factory types.MatcherFactory) error {
	return matcherFactoryRegistry.Register(kind, factory)
}

// GetMatcherFactory retrieves a matcher factory by pattern kind.
func GetMatcherFactory(kind string) (types.MatcherFactory, error) {
	factory, err := matcherFactoryRegistry.Get(kind)
	if err != nil {
		return nil, fmt.Errorf("matcher factory not found: %s", kind)
	}
	return factory, nil
}

// MatcherKinds returns the registered pattern kinds in sorted order.
func MatcherKinds() []string {
	return matcherFactoryRegistry.List()
}

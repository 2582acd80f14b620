package types

import (
	"fmt"

	"github.com/mitchellh/copystructure"
)

// Message is one action template: a named hook plus positional and
// keyword arguments. Each message belongs to exactly one rule. When the
// rule enables keyword resolution, the engine resolves a deep copy per
// firing so the stored template is never mutated.
type Message struct {
	// Hook names the dispatch target, e.g. "module" or "echo"
	Hook string `json:"hook" koanf:"hook" toml:"hook" yaml:"hook"`

	// Args are positional arguments passed through to the hook
	Args []interface{} `json:"args,omitempty" koanf:"args" toml:"args,omitempty" yaml:"args,omitempty"`

	// Kwargs are keyword arguments passed through to the hook
	Kwargs map[string]interface{} `json:"kwargs,omitempty" koanf:"kwargs" toml:"kwargs,omitempty" yaml:"kwargs,omitempty"`
}

// Clone returns a deep copy of the message, including nested maps and
// slices inside Args and Kwargs. Resolution always operates on a clone.
func (m Message) Clone() (Message, error) {
	copied, err := copystructure.Copy(m)
	if err != nil {
		return Message{}, fmt.Errorf("failed to deep-copy message: %w", err)
	}
	clone, ok := copied.(Message)
	if !ok {
		return Message{}, fmt.Errorf("unexpected copy type %T", copied)
	}
	return clone, nil
}

// String returns a compact form for logs.
func (m Message) String() string {
	return fmt.Sprintf("%s(args=%d, kwargs=%d)", m.Hook, len(m.Args), len(m.Kwargs))
}

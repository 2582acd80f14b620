package config

import _ "embed"

//go:embed embedded/starter.toml
var starterConfig []byte

// StarterConfig returns the commented starter configuration written by
// the genconfig command.
func StarterConfig() []byte {
	out := make([]byte, len(starterConfig))
	copy(out, starterConfig)
	return out
}

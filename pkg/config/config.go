// Package config loads reactor's configuration: embedded defaults,
// then an optional config file, then REACTOR_ environment variables,
// then programmatic overrides, each layer winning over the previous
// one.
package config

import (
	"time"

	"github.com/arthur-debert/reactor/pkg/types"
)

// Config is the fully merged reactor configuration.
type Config struct {
	// Workers is the number of engine workers consuming events
	Workers int `koanf:"workers"`

	// DispatchTimeout bounds one hook dispatch; zero disables the bound
	DispatchTimeout time.Duration `koanf:"dispatch_timeout"`

	// RulesFile optionally names a standalone rules file loaded in
	// addition to the inline rules
	RulesFile string `koanf:"rules_file"`

	// Spool configures the spool-directory event source
	Spool SpoolConfig `koanf:"spool"`

	// Runner configures module execution for the module hooks
	Runner RunnerConfig `koanf:"runner"`

	// Rules are the inline rule records, in declared order
	Rules []types.RuleConfig `koanf:"rules"`
}

// SpoolConfig configures the spool-directory event source.
type SpoolConfig struct {
	// Enabled turns the spool source on
	Enabled bool `koanf:"enabled"`

	// Dir is the watched directory; empty means the default under the
	// XDG data dir
	Dir string `koanf:"dir"`
}

// RunnerConfig configures module execution.
type RunnerConfig struct {
	// Dir holds the module executables; empty means the default under
	// the XDG data dir
	Dir string `koanf:"dir"`
}

package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/reactor/pkg/errors"
	"github.com/arthur-debert/reactor/pkg/logging"
	"github.com/arthur-debert/reactor/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load builds the effective configuration. Layers, later wins:
// embedded defaults, the config file at path (or the default location
// when path is empty; a missing default file is fine), REACTOR_*
// environment variables, then the overrides map (dotted keys, typically
// from command flags).
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load built-in defaults")
	}

	// 2. Config file
	explicit := path != ""
	if !explicit {
		p, err := paths.New()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to resolve config path")
		}
		path = p.ConfigFilePath()
	}
	if _, err := os.Stat(path); err == nil {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
		}
		logger.Debug().Str("path", path).Msg("loaded config file")
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", path)
	}

	// 3. Environment variables. Double underscore nests, single stays:
	// REACTOR_SPOOL__DIR -> spool.dir, REACTOR_RULES_FILE -> rules_file.
	err := k.Load(env.Provider("REACTOR_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "REACTOR_")), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 4. Programmatic overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("workers", cfg.Workers).
		Int("inline_rules", len(cfg.Rules)).
		Str("rules_file", cfg.RulesFile).
		Msg("configuration loaded")

	return &cfg, nil
}

// applyDefaults fills path fields the layers left empty.
func applyDefaults(cfg *Config) error {
	p, err := paths.New()
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to resolve default paths")
	}
	if cfg.Spool.Dir == "" {
		cfg.Spool.Dir = p.SpoolDir()
	}
	if cfg.Runner.Dir == "" {
		cfg.Runner.Dir = p.ModulesDir()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return kyaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported config file extension %q", ext)
	}
}

package rules

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/reactor/pkg/errors"
	"github.com/arthur-debert/reactor/pkg/logging"
	"github.com/arthur-debert/reactor/pkg/types"
)

// ruleFile is the shape of a standalone rules file: a list of rule
// records under a top-level "rules" key.
type ruleFile struct {
	Rules []types.RuleConfig `toml:"rules" yaml:"rules"`
}

// LoadFile reads rule records from a standalone rules file. The format
// follows the extension: .toml, or .yaml/.yml. Records are returned in
// file order, uncompiled; pattern validation happens in Compile so a
// bad rule in the file cannot hide the good ones.
func LoadFile(path string) ([]types.RuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read rules file %s", path)
	}

	var parsed ruleFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse TOML rules file %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse YAML rules file %s", path)
		}
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported rules file extension %q", ext)
	}

	logger := logging.GetLogger("rules")
	logger.Debug().
		Str("path", path).
		Int("rules", len(parsed.Rules)).
		Msg("loaded rules file")

	return parsed.Rules, nil
}

package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/devstrap/devstrap/internal/domain/policy"
)

// Config is the run configuration recognized by the pipeline. Values come
// from a devstrap.yaml or devstrap.toml file, overridden by CLI flags.
type Config struct {
	SkipTools   []string `yaml:"skip_tools" toml:"skip_tools" validate:"dive,required"`
	SkipEditors []string `yaml:"skip_editors" toml:"skip_editors" validate:"dive,required"`
	Allow       []string `yaml:"allow" toml:"allow" validate:"dive,required"`
	Block       []string `yaml:"block" toml:"block" validate:"dive,required"`
	DryRun      bool     `yaml:"dry_run" toml:"dry_run"`
	MaxRetries  int      `yaml:"max_retries" toml:"max_retries" validate:"gte=0,lte=10"`
	Verbose     bool     `yaml:"verbose" toml:"verbose"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{MaxRetries: 2}
}

// Policy returns the allow/block policy from the config.
func (c Config) Policy() policy.Policy {
	return policy.Policy{Allow: c.Allow, Block: c.Block}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and that every listed identifier
// exists in the catalog. Failures are configuration errors: not retryable,
// and fatal before the pipeline starts.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return NewConfigurationError(err.Error()).WithUnderlying(err)
	}

	known := make(map[string]bool)
	for _, id := range AllIdentifiers() {
		known[id] = true
	}
	for _, list := range []struct {
		name string
		ids  []string
	}{
		{"skip_tools", c.SkipTools},
		{"skip_editors", c.SkipEditors},
		{"allow", c.Allow},
		{"block", c.Block},
	} {
		for _, id := range list.ids {
			if !known[id] {
				return NewConfigurationError(
					fmt.Sprintf("%s references unknown identifier %q", list.name, id)).
					WithHelp("Known identifiers: " + strings.Join(AllIdentifiers(), ", "))
			}
		}
	}
	return nil
}

// LoadConfig reads a configuration file, picking the decoder by extension
// (.yaml/.yml or .toml), and validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, NewConfigurationError("failed to parse "+path).WithUnderlying(err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, NewConfigurationError("failed to parse "+path).WithUnderlying(err)
		}
	default:
		return cfg, NewConfigurationError(fmt.Sprintf("unsupported config format %q", ext)).
			WithHelp("Use a .yaml, .yml, or .toml file.")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

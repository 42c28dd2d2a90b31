package options

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values of the cloning configuration.
const (
	DefaultSkipAttribute      = "Mixins.SkipAttribute"
	DefaultConstructorHelper  = "MixinConstruct"
	DefaultStaticHelperPrefix = "MixinTypeInit"
)

// Config controls one cloning operation.
type Config struct {
	// SkipAttribute is the full name of the attribute type that excludes
	// a member from cloning.
	SkipAttribute string `yaml:"skip_attribute"`
	// ConstructorStrategy selects how construction logic is distributed.
	ConstructorStrategy ConstructorStrategy `yaml:"constructor_strategy"`
	// MergeStaticConstructors delegates the source type initializer into an
	// existing target type initializer instead of failing.
	MergeStaticConstructors bool `yaml:"merge_static_constructors"`
	// ConstructorHelper is the name stem of the construction helper method.
	ConstructorHelper string `yaml:"constructor_helper"`
	// StaticHelperPrefix is the name stem of the merged type initializer helper.
	StaticHelperPrefix string `yaml:"static_helper_prefix"`
	// RecordDependencies attaches the source dependency graph to the result.
	RecordDependencies bool `yaml:"record_dependencies"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		SkipAttribute:           DefaultSkipAttribute,
		ConstructorStrategy:     ConstructorStrategyHelperMethod,
		MergeStaticConstructors: true,
		ConstructorHelper:       DefaultConstructorHelper,
		StaticHelperPrefix:      DefaultStaticHelperPrefix,
	}
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data over the default configuration.
// Keys absent from data keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Marshal serializes a configuration to YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// applyDefaults fills in blank names.
func applyDefaults(cfg *Config) {
	cfg.SkipAttribute = strings.TrimSpace(cfg.SkipAttribute)
	if cfg.SkipAttribute == "" {
		cfg.SkipAttribute = DefaultSkipAttribute
	}

	if cfg.ConstructorHelper == "" {
		cfg.ConstructorHelper = DefaultConstructorHelper
	}

	if cfg.StaticHelperPrefix == "" {
		cfg.StaticHelperPrefix = DefaultStaticHelperPrefix
	}

	if cfg.ConstructorStrategy == 0 {
		cfg.ConstructorStrategy = ConstructorStrategyHelperMethod
	}
}

// Validate checks the configuration for values the engine cannot use.
func (c Config) Validate() error {
	var errs []error

	if !c.ConstructorStrategy.IsValid() {
		errs = append(errs, fmt.Errorf("unknown constructor strategy %d", int(c.ConstructorStrategy)))
	}

	for field, stem := range map[string]string{
		"constructor_helper":   c.ConstructorHelper,
		"static_helper_prefix": c.StaticHelperPrefix,
	} {
		if stem == "" || strings.ContainsAny(stem, " \t./:<>,") {
			errs = append(errs, fmt.Errorf("%s %q is not a valid method name", field, stem))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

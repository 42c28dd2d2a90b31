package options

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConstructorStrategy selects how the construction region of a multiplexed
// source constructor reaches the target constructors.
type ConstructorStrategy int

const (
	// ConstructorStrategyHelperMethod clones the construction region into one
	// private helper method and calls it from every initializing target constructor.
	ConstructorStrategyHelperMethod ConstructorStrategy = iota + 1
	// ConstructorStrategyConstrained only accepts source constructors whose
	// construction region is empty (ret and nop).
	//
	// Deprecated: early returns cannot be spliced into several constructors;
	// use ConstructorStrategyHelperMethod.
	ConstructorStrategyConstrained
)

var strategyNames = map[ConstructorStrategy]string{
	ConstructorStrategyHelperMethod: "helper-method",
	ConstructorStrategyConstrained:  "constrained",
}

// String returns the configuration name of the strategy.
func (s ConstructorStrategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}

	return fmt.Sprintf("ConstructorStrategy(%d)", int(s))
}

// IsValid reports whether s is a known strategy.
func (s ConstructorStrategy) IsValid() bool {
	_, ok := strategyNames[s]
	return ok
}

// IsDeprecated reports whether s is kept for compatibility only.
func (s ConstructorStrategy) IsDeprecated() bool {
	return s == ConstructorStrategyConstrained
}

// ParseConstructorStrategy parses a strategy name, case-insensitively.
func ParseConstructorStrategy(name string) (ConstructorStrategy, error) {
	for s, n := range strategyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return s, nil
		}
	}

	return 0, fmt.Errorf("unknown constructor strategy %q", name)
}

// MarshalYAML implements yaml.Marshaler.
func (s ConstructorStrategy) MarshalYAML() (any, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("unknown constructor strategy %d", int(s))
	}

	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *ConstructorStrategy) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}

	parsed, err := ParseConstructorStrategy(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}

	*s = parsed

	return nil
}

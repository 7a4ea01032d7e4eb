package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters for CLI use.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("shift_inflation", createShiftInflation)
	registry.Register("set_inflation", createSetInflationAdjustment)
	registry.Register("set_age_increment", createSetAgeIncrement)
	registry.Register("rename", createRename)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s (available: %s)", name, strings.Join(r.List(), ", "))
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name:param1=value1,param2=value2".
// Example: "shift_inflation:by=0.005"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseChain parses a ';'-separated list of transform specs.
func (r *TransformRegistry) ParseChain(chain string) ([]ScenarioTransform, error) {
	var transforms []ScenarioTransform
	for _, spec := range strings.Split(chain, ";") {
		if strings.TrimSpace(spec) == "" {
			continue
		}
		t, err := r.ParseTransformSpec(strings.TrimSpace(spec))
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	if len(transforms) == 0 {
		return nil, fmt.Errorf("no transforms in %q", chain)
	}
	return transforms, nil
}

// Factory functions for each transform

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func parseRate(s string) (decimal.Decimal, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		d, err := decimal.NewFromString(pct)
		return d.Shift(-2), err
	}
	return decimal.NewFromString(s)
}

func createShiftInflation(params map[string]string) (ScenarioTransform, error) {
	byStr, err := requireParam("shift_inflation", params, "by")
	if err != nil {
		return nil, err
	}

	by, err := parseRate(byStr)
	if err != nil {
		return nil, fmt.Errorf("invalid by value: %w", err)
	}

	return &ShiftInflation{By: by}, nil
}

func createSetInflationAdjustment(params map[string]string) (ScenarioTransform, error) {
	valueStr, err := requireParam("set_inflation", params, "value")
	if err != nil {
		return nil, err
	}

	value, err := parseRate(valueStr)
	if err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}

	return &SetInflationAdjustment{Value: value}, nil
}

func createSetAgeIncrement(params map[string]string) (ScenarioTransform, error) {
	strategyStr, err := requireParam("set_age_increment", params, "strategy")
	if err != nil {
		return nil, err
	}

	strategy, err := domain.ParseAgeIncrementStrategy(strategyStr)
	if err != nil {
		return nil, err
	}

	return &SetAgeIncrement{Strategy: strategy}, nil
}

func createRename(params map[string]string) (ScenarioTransform, error) {
	name, err := requireParam("rename", params, "name")
	if err != nil {
		return nil, err
	}
	return &Rename{NewName: name}, nil
}

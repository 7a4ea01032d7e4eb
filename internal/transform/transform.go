package transform

import (
	"fmt"

	"github.com/rgehrsitz/claimtrend/internal/domain"
)

// ScenarioTransform derives a new scenario from an existing one.
// Transforms never modify their input.
type ScenarioTransform interface {
	// Apply returns a modified copy of base.
	Apply(base domain.ScenarioConfig) (domain.ScenarioConfig, error)

	// Name returns the registry identifier, e.g. "shift_inflation".
	Name() string

	// Description returns a human-readable summary with parameters filled in.
	Description() string

	// Validate checks the transform parameters against base without applying them.
	Validate(base domain.ScenarioConfig) error
}

// ApplyTransforms applies transforms in order, each receiving the output of the previous one.
func ApplyTransforms(base domain.ScenarioConfig, transforms []ScenarioTransform) (domain.ScenarioConfig, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return domain.ScenarioConfig{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.ScenarioConfig{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.ScenarioConfig{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// Derive applies transforms to base and names the result. An explicit rename wins;
// otherwise the name is the base name followed by each transform description.
func Derive(base domain.ScenarioConfig, transforms []ScenarioTransform) (domain.ScenarioConfig, error) {
	derived, err := ApplyTransforms(base, transforms)
	if err != nil {
		return domain.ScenarioConfig{}, err
	}

	if derived.Name == base.Name {
		name := base.Name
		for _, t := range transforms {
			name += " + " + t.Description()
		}
		derived.Name = name
	}
	if derived.Description == base.Description {
		derived.Description = fmt.Sprintf("Derived from %s", base.Name)
	}
	return derived, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

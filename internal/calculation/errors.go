package calculation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrAgeOutOfDomain is returned for ages outside the aging table or not on a half-year step.
	ErrAgeOutOfDomain = errors.New("age outside aging factor domain")
	// ErrZeroBaseFactor is returned when the current-age factor of a risk trend is zero.
	ErrZeroBaseFactor = errors.New("aging factor for current age is zero")
	// ErrZeroWeightSum is returned when record weights do not sum to a positive value.
	ErrZeroWeightSum = errors.New("record weights sum to zero")
	// ErrZeroMembers is returned when a record has no members to spread claims over.
	ErrZeroMembers = errors.New("record has zero members")
	// ErrMalformedRecordSequence is returned for empty or structurally invalid input.
	ErrMalformedRecordSequence = errors.New("malformed claims record sequence")
)

// AgeError identifies the age that failed a lookup
type AgeError struct {
	Age decimal.Decimal
	Err error
}

func (e *AgeError) Error() string {
	return fmt.Sprintf("age %s: %v", e.Age.String(), e.Err)
}

func (e *AgeError) Unwrap() error { return e.Err }

// RecordError identifies the record whose projection failed
type RecordError struct {
	Index int
	Year  int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (year %d): %v", e.Index, e.Year, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// ScenarioError identifies the scenario whose run failed
type ScenarioError struct {
	Scenario string
	Err      error
}

func (e *ScenarioError) Error() string {
	return fmt.Sprintf("scenario %q: %v", e.Scenario, e.Err)
}

func (e *ScenarioError) Unwrap() error { return e.Err }

package wizard

import (
	"errors"
	"fmt"
)

// FieldError names a single invalid field within a step.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// StepValidator validates the input for one step. A nil or empty result means
// the step passed. Validators must be pure: the same input always yields the
// same errors.
type StepValidator func(input any) []FieldError

// ErrNotAtFinalStep is returned by Submit when earlier steps remain.
var ErrNotAtFinalStep = errors.New("wizard has not reached the final step")

// Wizard holds the state of an N-step form: the current step and the field
// errors recorded per step. Forward navigation is gated by each step's
// validator; going back never re-validates.
type Wizard struct {
	validators []StepValidator
	current    int
	errors     map[int][]FieldError
}

// New creates a wizard over the given ordered step validators.
func New(validators ...StepValidator) (*Wizard, error) {
	if len(validators) == 0 {
		return nil, fmt.Errorf("wizard requires at least one step")
	}
	return &Wizard{
		validators: validators,
		current:    1,
		errors:     make(map[int][]FieldError),
	}, nil
}

// CurrentStep returns the 1-indexed current step.
func (w *Wizard) CurrentStep() int {
	return w.current
}

// StepCount returns the number of steps.
func (w *Wizard) StepCount() int {
	return len(w.validators)
}

// Errors returns the recorded field errors for a step, nil if it passed.
func (w *Wizard) Errors(step int) []FieldError {
	return w.errors[step]
}

// ValidateAndAdvance runs the current step's validator against input. On
// success it clears the step's errors and moves forward (capped at the last
// step), returning nil. On failure it records and returns the errors without
// moving.
func (w *Wizard) ValidateAndAdvance(input any) []FieldError {
	errs := w.validators[w.current-1](input)
	if len(errs) > 0 {
		w.errors[w.current] = errs
		return errs
	}

	delete(w.errors, w.current)
	if w.current < len(w.validators) {
		w.current++
	}
	return nil
}

// Retreat moves back one step unconditionally, floored at the first step.
// The step being left keeps whatever errors it had.
func (w *Wizard) Retreat() {
	if w.current > 1 {
		w.current--
	}
}

// Submit finishes the wizard. It is only reachable from the final step, which
// is re-validated against input before the callback runs. A failing callback
// leaves the wizard at the final step with the error surfaced to the caller.
func (w *Wizard) Submit(input any, fn func() error) ([]FieldError, error) {
	if w.current != len(w.validators) {
		return nil, ErrNotAtFinalStep
	}

	errs := w.validators[w.current-1](input)
	if len(errs) > 0 {
		w.errors[w.current] = errs
		return errs, nil
	}
	delete(w.errors, w.current)

	if err := fn(); err != nil {
		return nil, err
	}
	return nil, nil
}

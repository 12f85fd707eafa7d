/*
errors.go - error taxonomy for the simulation engine and its collaborators

PURPOSE:
  All error classes in one place. The four categories are independent:
  input errors reject a run before any computation, while transport and
  persistence errors never invalidate a result that was already computed.

ERROR CATEGORIES:
  1. ErrInvalidChoice   - categorical input that matches no enumeration member
  2. ErrInvalidQuantity - negative purchase quantity
  3. ErrTransport       - notification collaborator failed (result stands)
  4. ErrPersistence     - submission store failed (result stands)

USAGE:
  if errors.Is(err, engine.ErrInvalidChoice) { ... }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - use with errors.Is()
// =============================================================================

var (
	// ErrInvalidChoice is returned when a categorical field does not
	// normalize to any known enumeration member.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrInvalidQuantity is returned for a negative purchase quantity.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidParameters is returned when a scenario configuration
	// violates its invariants (rate outside [0,1], negative money).
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrTransport is the class for notification delivery failures.
	// Reported to the caller; the computed result is unaffected.
	ErrTransport = errors.New("transport failure")

	// ErrPersistence is the class for submission store failures.
	// Reported to the caller; the computed result is unaffected.
	ErrPersistence = errors.New("persistence failure")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// InvalidChoiceError reports which field failed to normalize and what the
// raw input was.
type InvalidChoiceError struct {
	Field string
	Input string
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("invalid choice for %s: %q", e.Field, e.Input)
}

func (e *InvalidChoiceError) Unwrap() error { return ErrInvalidChoice }

// InvalidQuantityError reports a rejected purchase quantity.
type InvalidQuantityError struct {
	Month    Month
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid purchase quantity for month %d: %d", e.Month, e.Quantity)
}

func (e *InvalidQuantityError) Unwrap() error { return ErrInvalidQuantity }

// ParameterError reports which configuration field violated its invariant.
type ParameterError struct {
	Field  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("parameter %s: %s", e.Field, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameters }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInputError returns true if the error is due to invalid submitted input
// and should map to a client-side rejection.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidChoice) || errors.Is(err, ErrInvalidQuantity)
}

// IsSideEffectError returns true for failures of the post-computation
// collaborators. The simulation result remains valid and displayable.
func IsSideEffectError(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrPersistence)
}

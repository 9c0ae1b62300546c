/*
errors.go - Centralized error types for the compensation engine

PURPOSE:
  One stable error taxonomy for every operation: a machine-readable kind
  plus a human message. Callers branch on the kind (errors.Is against the
  sentinels, or KindOf), transports map kinds to status codes.

ERROR CATEGORIES:
  1. Validation - malformed month/year/ids, rejected before computation
  2. NotFound   - unknown staff/record/snapshot, carries the failing id
  3. Conflict   - deleting a locked snapshot, snapshotting an empty period
  4. Computation - broken relational data discovered mid-calculation

SEE ALSO:
  - generate.go: aborts the whole transaction on Computation errors
  - api/handlers.go: maps kinds to HTTP status codes
*/
package bisyaroh

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is returned for malformed input (month outside 1-12,
	// year before 2020, empty ids). Nothing is written.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced record or snapshot does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an operation is not allowed in the
	// current state (locked snapshot, empty period).
	ErrConflict = errors.New("conflict")

	// ErrComputation is returned when stored data is inconsistent in a way
	// a recalculation cannot paper over. generate() rolls back fully.
	ErrComputation = errors.New("computation failed")
)

// =============================================================================
// STRUCTURED ERRORS - carry additional context
// =============================================================================

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError names the entity and id that could not be resolved.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError describes a state that forbids the operation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// ComputationError points at the inconsistent entity. Distinct from the
// benign gaps (e.g. an activity without a responsible staff member) which
// degrade to zero-valued audit lines instead of failing the run.
type ComputationError struct {
	Entity  string
	ID      string
	Message string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Entity, e.ID, e.Message)
}

func (e *ComputationError) Unwrap() error { return ErrComputation }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// Kind is the stable error classification exposed to transports.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindComputation Kind = "computation"
	KindInternal    Kind = "internal"
)

// KindOf classifies any error into a Kind.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrComputation):
		return KindComputation
	default:
		return KindInternal
	}
}

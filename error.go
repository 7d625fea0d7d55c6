package casso

import (
	"errors"
	"fmt"
)

// The three error kinds the solver can report, always at the boundary of a
// top-level call. Wrap these with fmt.Errorf for context and unwrap with
// errors.Is.
var (
	// ErrRequiredFailure means the current set of required constraints is
	// inconsistent. The offending constraint was not added and the tableau
	// was left exactly as it was before the call.
	ErrRequiredFailure = errors.New("casso: required constraints are inconsistent")

	// ErrConstraintNotFound means RemoveConstraint was called with a
	// constraint that has no marker variable on record.
	ErrConstraintNotFound = errors.New("casso: constraint not found")

	// ErrInternalError means an invariant the solver depends on did not
	// hold. It signals a bug in the solver, not a usage error.
	ErrInternalError = errors.New("casso: internal error")
)

// ErrBadPriority is returned when an edit variable is requested with
// Required strength, which is not meaningful for an edit constraint.
var ErrBadPriority = errors.New("casso: edit variables cannot have required strength")

// ErrBadEditVariable is returned when SuggestValue is called on a variable
// that is not currently the subject of an active edit constraint. It unwraps
// to ErrInternalError.
var ErrBadEditVariable = fmt.Errorf("casso: %w: variable is not registered as editable", ErrInternalError)

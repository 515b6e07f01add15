package hierarchy

import "errors"

// Sentinel errors for traversal and mutation validation. Callers match with
// errors.Is; the HTTP layer maps them to response codes.
var (
	// ErrUnitNotFound is returned when a traversal references a unit id that
	// does not exist or has been tombstoned.
	ErrUnitNotFound = errors.New("unit not found")

	// ErrUserNotFound is returned when a lookup references an unknown user.
	ErrUserNotFound = errors.New("user not found")

	// ErrAssignmentNotFound is returned when a mutation references an
	// assignment that does not exist or is already ended.
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrCycleDetected indicates a cycle already present in persisted data.
	// This is a data-integrity fault, not a validation rejection: the mutation
	// guard exists to make it impossible, so its presence means the guard was
	// bypassed. It must be logged distinctly by the caller.
	ErrCycleDetected = errors.New("cycle detected in unit hierarchy")

	// ErrCycleWouldForm rejects a reparent whose new parent is currently a
	// descendant of the unit being moved.
	ErrCycleWouldForm = errors.New("reparent would form a cycle")

	// ErrInvalidLevelOrdering rejects a parent/child pairing where the parent
	// is not strictly higher in the unit-level ordering.
	ErrInvalidLevelOrdering = errors.New("parent unit level must be higher than child unit level")

	// ErrSelfParent rejects a unit proposed as its own parent.
	ErrSelfParent = errors.New("unit cannot be its own parent")

	// ErrInvalidUnitLevel rejects an unknown unit level on creation.
	ErrInvalidUnitLevel = errors.New("invalid unit level")

	// Assignment-set invariant violations.
	ErrNoPrimaryAssignment        = errors.New("user must have exactly one primary assignment")
	ErrMultiplePrimaryAssignments = errors.New("user cannot have more than one primary assignment")
	ErrDuplicateActiveAssignment  = errors.New("user already has an active assignment to this unit")
	ErrCannotRemovePrimary        = errors.New("primary assignment cannot be removed without promoting a replacement")
	ErrInvalidLeadershipRole      = errors.New("leadership role is not valid for the unit level")

	// ErrAccessDenied is returned when an authorization predicate evaluates
	// false for an attempted action.
	ErrAccessDenied = errors.New("access denied")
)

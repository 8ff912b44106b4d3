// Package kernel holds the building blocks shared by every bounded context:
// identifiers, domain events, the aggregate root event buffer, query criteria,
// tri-state patch fields and the error categories the transport maps to status codes.
package kernel

import "errors"

// Error categories. Every domain error in a bounded context matches exactly one
// of these through errors.Is so callers can branch on the category alone.
var (
	// ErrNotFound indicates the referenced aggregate does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a value failed construction-time validation.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates the request clashes with existing state
	// (uniqueness, dependent entities, concurrent writes).
	ErrConflict = errors.New("conflict")

	// ErrRuleViolation indicates a domain invariant rejected the operation.
	ErrRuleViolation = errors.New("business rule violated")

	// ErrConcurrentModification indicates a compare-and-swap save lost against
	// another writer. It is also a conflict.
	ErrConcurrentModification = NewSentinel("aggregate was modified concurrently", ErrConflict)
)

// NewSentinel returns a sentinel error that also matches category under errors.Is.
func NewSentinel(msg string, category error) error {
	return &categorized{msg: msg, category: category}
}

// categorized is a sentinel that also matches a broader category.
type categorized struct {
	msg      string
	category error
}

func (e *categorized) Error() string        { return e.msg }
func (e *categorized) Is(target error) bool { return target == e.category }

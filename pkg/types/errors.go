package types

import "errors"

// Validation errors. Mutating operations return these before touching any
// collection; an operation that fails validation leaves the store unchanged.
var (
	ErrNotFound           = errors.New("entity not found")
	ErrEmptyTitle         = errors.New("title must not be empty")
	ErrEmptyName          = errors.New("name must not be empty")
	ErrDuplicateSeries    = errors.New("series name already exists")
	ErrEmptyReview        = errors.New("review text must not be empty")
	ErrInvalidGoal        = errors.New("goal target must be positive")
	ErrInvalidEvent       = errors.New("invalid reading event kind")
	ErrInvalidSeriesState = errors.New("invalid series status")
)

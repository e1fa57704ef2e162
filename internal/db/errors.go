package db

import "errors"

// Sentinel errors for type-safe error checking
// Use errors.Is() instead of string comparison
var (
	// Goal errors
	ErrGoalNotFound = errors.New("goal not found")

	// Task errors
	ErrTaskNotFound = errors.New("task not found")

	// Export share errors
	ErrShareNotFound = errors.New("export share not found")
	ErrShareExpired  = errors.New("export share expired")
)

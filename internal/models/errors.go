// ABOUTME: Sentinel errors shared by the catalog consumers.
// ABOUTME: Callers match them with errors.Is.
package models

import "errors"

var (
	// ErrExerciseNotFound means no catalog entry has the given id.
	ErrExerciseNotFound = errors.New("exercise not found")
	// ErrExerciseArchived means the exercise exists but is hidden from pickers.
	ErrExerciseArchived = errors.New("exercise is archived")
)

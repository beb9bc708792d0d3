// ABOUTME: Sentinel errors returned by the session engine.
// ABOUTME: Callers match them with errors.Is.
package session

import "errors"

var (
	ErrSessionActive     = errors.New("a workout is already in progress")
	ErrSessionClosed     = errors.New("workout has already ended")
	ErrSelectingExercise = errors.New("choose an exercise first")
	ErrNotSelecting      = errors.New("no exercise choice is pending")
	ErrNoCurrentExercise = errors.New("no current exercise")
	ErrNotTemplated      = errors.New("only available in a templated workout")
	ErrNotFreestyle      = errors.New("only available in a freestyle workout")
	ErrLastExercise      = errors.New("already at the last exercise")
	ErrSetIndex          = errors.New("set index out of range")
	ErrUnknownField      = errors.New("field must be reps or weight")
)

// ABOUTME: WorkoutTemplate and PlannedExercise models.
// ABOUTME: Templates are ordered plans; slot order defines session sequence.
package models

import "fmt"

// Defaults for slots added without explicit targets.
const (
	DefaultTargetSets = 3
	DefaultTargetReps = "8-12"
)

// PlannedExercise is one slot of a template or a live session.
// IsSuperset groups the slot with the next one for display only.
type PlannedExercise struct {
	ExerciseID string `json:"exerciseId" yaml:"exercise_id"`
	Sets       int    `json:"sets" yaml:"sets"`
	Reps       string `json:"reps" yaml:"reps"`
	IsSuperset bool   `json:"isSuperset" yaml:"is_superset"`
}

// NewPlannedExercise creates a slot with the default targets.
func NewPlannedExercise(exerciseID string) PlannedExercise {
	return PlannedExercise{
		ExerciseID: exerciseID,
		Sets:       DefaultTargetSets,
		Reps:       DefaultTargetReps,
	}
}

// IsPlaceholder reports whether the slot still awaits an exercise choice.
func (p PlannedExercise) IsPlaceholder() bool {
	return p.ExerciseID == PlaceholderExerciseID
}

// WorkoutTemplate is a named, reusable, ordered plan.
type WorkoutTemplate struct {
	ID        string            `json:"id" yaml:"id"`
	Name      string            `json:"name" yaml:"name"`
	Exercises []PlannedExercise `json:"exercises" yaml:"exercises"`
}

// NewWorkoutTemplate creates an empty template without an identifier.
// The planner assigns one on first save.
func NewWorkoutTemplate(name string) *WorkoutTemplate {
	return &WorkoutTemplate{Name: name, Exercises: []PlannedExercise{}}
}

// AddExercise appends a slot with default targets.
func (t *WorkoutTemplate) AddExercise(exerciseID string) *WorkoutTemplate {
	t.Exercises = append(t.Exercises, NewPlannedExercise(exerciseID))
	return t
}

// RemoveExercise deletes the slot at index i.
func (t *WorkoutTemplate) RemoveExercise(i int) error {
	if i < 0 || i >= len(t.Exercises) {
		return fmt.Errorf("slot %d out of range (template has %d)", i+1, len(t.Exercises))
	}
	t.Exercises = append(t.Exercises[:i:i], t.Exercises[i+1:]...)
	return nil
}

// UpdateExercise replaces the slot at index i.
func (t *WorkoutTemplate) UpdateExercise(i int, p PlannedExercise) error {
	if i < 0 || i >= len(t.Exercises) {
		return fmt.Errorf("slot %d out of range (template has %d)", i+1, len(t.Exercises))
	}
	t.Exercises[i] = p
	return nil
}

// Clone returns a deep copy.
func (t WorkoutTemplate) Clone() WorkoutTemplate {
	c := t
	c.Exercises = append([]PlannedExercise(nil), t.Exercises...)
	return c
}

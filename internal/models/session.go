// ABOUTME: SetLog, ExerciseLog, and WorkoutSession models.
// ABOUTME: A WorkoutSession is immutable once archived and carries its own volume.
package models

import "time"

// SetLog is one completed set.
type SetLog struct {
	Reps      int     `json:"reps" yaml:"reps"`
	Weight    float64 `json:"weight" yaml:"weight"`
	IsDropset bool    `json:"isDropset,omitempty" yaml:"is_dropset,omitempty"`
}

// Volume returns reps × weight.
func (s SetLog) Volume() float64 {
	return float64(s.Reps) * s.Weight
}

// ExerciseLog holds the sets performed for one exercise within a session.
type ExerciseLog struct {
	ExerciseID string   `json:"exerciseId" yaml:"exercise_id"`
	Sets       []SetLog `json:"sets" yaml:"sets"`
	Notes      string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Volume returns Σ(reps × weight) over the log's sets.
func (l ExerciseLog) Volume() float64 {
	var v float64
	for _, s := range l.Sets {
		v += s.Volume()
	}
	return v
}

// MaxWeight returns the heaviest set weight, or 0 for an empty log.
func (l ExerciseLog) MaxWeight() float64 {
	var maxWeight float64
	for i, s := range l.Sets {
		if i == 0 || s.Weight > maxWeight {
			maxWeight = s.Weight
		}
	}
	return maxWeight
}

// Clone returns a copy that shares no backing arrays.
func (l ExerciseLog) Clone() ExerciseLog {
	c := l
	c.Sets = append([]SetLog{}, l.Sets...)
	return c
}

// WorkoutSession is a completed workout.
type WorkoutSession struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Date        int64         `json:"date" yaml:"date"`         // epoch milliseconds
	Duration    int           `json:"duration" yaml:"duration"` // seconds
	Exercises   []ExerciseLog `json:"exercises" yaml:"exercises"`
	TotalVolume float64       `json:"totalVolume" yaml:"total_volume"`
}

// NewWorkoutSession builds a session record from finalized logs.
// TotalVolume is computed from the logs.
func NewWorkoutSession(name string, date time.Time, durationSeconds int, logs []ExerciseLog) *WorkoutSession {
	return &WorkoutSession{
		ID:          NewID(SessionPrefix),
		Name:        name,
		Date:        date.UnixMilli(),
		Duration:    durationSeconds,
		Exercises:   logs,
		TotalVolume: TotalVolume(logs),
	}
}

// Time returns the session date as a time.Time in the local zone.
func (w WorkoutSession) Time() time.Time {
	return time.UnixMilli(w.Date)
}

// HasExercise reports whether the session logged the given exercise.
func (w WorkoutSession) HasExercise(exerciseID string) bool {
	for _, l := range w.Exercises {
		if l.ExerciseID == exerciseID {
			return true
		}
	}
	return false
}

// SetCount returns the number of sets across all logs.
func (w WorkoutSession) SetCount() int {
	n := 0
	for _, l := range w.Exercises {
		n += len(l.Sets)
	}
	return n
}

// TotalVolume returns Σ(reps × weight) over every set of every log.
func TotalVolume(logs []ExerciseLog) float64 {
	var v float64
	for _, l := range logs {
		v += l.Volume()
	}
	return v
}

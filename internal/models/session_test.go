// ABOUTME: Tests for SetLog, ExerciseLog, and WorkoutSession models.
// ABOUTME: Validates volume arithmetic and the session constructor.
package models

import (
	"strings"
	"testing"
	"time"
)

func TestTotalVolume(t *testing.T) {
	logs := []ExerciseLog{
		{ExerciseID: "ex1", Sets: []SetLog{{Reps: 8, Weight: 60}, {Reps: 6, Weight: 65}}},
		{ExerciseID: "ex2", Sets: []SetLog{{Reps: 10, Weight: 55.5}}},
		{ExerciseID: "ex3"},
	}

	want := 8*60.0 + 6*65.0 + 10*55.5
	if got := TotalVolume(logs); got != want {
		t.Errorf("TotalVolume = %v, want %v", got, want)
	}
}

func TestExerciseLogMaxWeight(t *testing.T) {
	tests := []struct {
		name string
		sets []SetLog
		want float64
	}{
		{name: "empty", sets: nil, want: 0},
		{name: "single", sets: []SetLog{{Reps: 5, Weight: 40}}, want: 40},
		{name: "heaviest in middle", sets: []SetLog{{Weight: 40}, {Weight: 70}, {Weight: 50}}, want: 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ExerciseLog{ExerciseID: "ex1", Sets: tt.sets}
			if got := l.MaxWeight(); got != tt.want {
				t.Errorf("MaxWeight = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewWorkoutSession(t *testing.T) {
	date := time.Date(2025, 3, 14, 18, 30, 0, 0, time.Local)
	logs := []ExerciseLog{{ExerciseID: "ex1", Sets: []SetLog{{Reps: 5, Weight: 100}}}}

	w := NewWorkoutSession("Push", date, 3600, logs)

	if !strings.HasPrefix(w.ID, SessionPrefix) {
		t.Errorf("ID = %q, want prefix %q", w.ID, SessionPrefix)
	}
	if w.Date != date.UnixMilli() {
		t.Errorf("Date = %d, want %d", w.Date, date.UnixMilli())
	}
	if !w.Time().Equal(date) {
		t.Errorf("Time() = %v, want %v", w.Time(), date)
	}
	if w.TotalVolume != 500 {
		t.Errorf("TotalVolume = %v, want 500", w.TotalVolume)
	}
	if !w.HasExercise("ex1") || w.HasExercise("ex2") {
		t.Error("HasExercise mismatch")
	}
	if w.SetCount() != 1 {
		t.Errorf("SetCount = %d, want 1", w.SetCount())
	}
}

func TestExerciseLogClone(t *testing.T) {
	l := ExerciseLog{ExerciseID: "ex1", Sets: []SetLog{{Reps: 5, Weight: 100}}}
	c := l.Clone()
	c.Sets[0].Reps = 1

	if l.Sets[0].Reps != 5 {
		t.Error("Clone shares the sets backing array")
	}
}

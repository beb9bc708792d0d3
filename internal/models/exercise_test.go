// ABOUTME: Tests for Exercise, templates, and settings models.
// ABOUTME: Covers enum parsing, identifiers, and template slot editing.
package models

import (
	"strings"
	"testing"
)

func TestParseMuscleGroup(t *testing.T) {
	tests := []struct {
		input  string
		want   MuscleGroup
		wantOK bool
	}{
		{"chest", MuscleChest, true},
		{"LEGS", MuscleLegs, true},
		{"Epaules", MuscleShoulders, true},
		{"neck", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseMuscleGroup(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseMuscleGroup(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseEquipment(t *testing.T) {
	if eq, ok := ParseEquipment("dumbbell"); !ok || eq != EquipmentDumbbell {
		t.Errorf("ParseEquipment(dumbbell) = %q, %v", eq, ok)
	}
	if eq, ok := ParseEquipment("Barre"); !ok || eq != EquipmentBarbell {
		t.Errorf("ParseEquipment(Barre) = %q, %v", eq, ok)
	}
	if _, ok := ParseEquipment("kettlebell"); ok {
		t.Error("expected kettlebell to be rejected")
	}
}

func TestNewCustomExerciseIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ex := NewCustomExercise("Hip thrust", MuscleLegs, EquipmentBarbell)
		if !strings.HasPrefix(ex.ID, CustomExercisePrefix) {
			t.Fatalf("ID = %q, want prefix %q", ex.ID, CustomExercisePrefix)
		}
		if seen[ex.ID] {
			t.Fatalf("duplicate ID %q after %d calls", ex.ID, i)
		}
		seen[ex.ID] = true
		if !ex.IsCustom {
			t.Fatal("expected IsCustom to be set")
		}
	}
}

func TestDefaultExercisesUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, ex := range DefaultExercises() {
		if seen[ex.ID] {
			t.Errorf("duplicate seed ID %q", ex.ID)
		}
		seen[ex.ID] = true
	}
	if len(seen) != 10 {
		t.Errorf("expected 10 seed exercises, got %d", len(seen))
	}
}

func TestTemplateSlotEditing(t *testing.T) {
	tmpl := NewWorkoutTemplate("Legs")
	tmpl.AddExercise("ex2").AddExercise("ex8").AddExercise("ex6")

	if len(tmpl.Exercises) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(tmpl.Exercises))
	}
	if tmpl.Exercises[0].Sets != DefaultTargetSets || tmpl.Exercises[0].Reps != DefaultTargetReps {
		t.Errorf("unexpected default targets: %+v", tmpl.Exercises[0])
	}

	if err := tmpl.RemoveExercise(1); err != nil {
		t.Fatalf("RemoveExercise failed: %v", err)
	}
	if tmpl.Exercises[1].ExerciseID != "ex6" {
		t.Errorf("expected ex6 to shift into slot 2, got %s", tmpl.Exercises[1].ExerciseID)
	}
	if err := tmpl.RemoveExercise(5); err == nil {
		t.Error("expected out of range error")
	}

	superset := PlannedExercise{ExerciseID: "ex2", Sets: 5, Reps: "5", IsSuperset: true}
	if err := tmpl.UpdateExercise(0, superset); err != nil {
		t.Fatalf("UpdateExercise failed: %v", err)
	}
	if tmpl.Exercises[0] != superset {
		t.Errorf("slot = %+v, want %+v", tmpl.Exercises[0], superset)
	}
}

func TestTemplateClone(t *testing.T) {
	tmpl := WorkoutTemplate{ID: "t1", Name: "A", Exercises: []PlannedExercise{NewPlannedExercise("ex1")}}
	c := tmpl.Clone()
	c.Exercises[0].Sets = 9

	if tmpl.Exercises[0].Sets != DefaultTargetSets {
		t.Error("Clone shares the exercises backing array")
	}
}

func TestSettingsIsFavorite(t *testing.T) {
	s := DefaultSettings()
	if !s.IsFavorite("ex1") {
		t.Error("expected ex1 to be a default favorite")
	}
	if s.IsFavorite("ex9") {
		t.Error("did not expect ex9 to be a favorite")
	}
	if len(s.FavoriteExerciseIDs) > MaxFavorites {
		t.Errorf("default favorites exceed cap: %d", len(s.FavoriteExerciseIDs))
	}
}

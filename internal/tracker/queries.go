// ABOUTME: Read-side queries over the tracker's collections.
// ABOUTME: Every result is a copy; callers cannot mutate tracker state.
package tracker

import (
	"time"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/progress"
	"github.com/harperreed/lift/internal/storage"
)

// Exercise resolves an id, archived exercises included.
func (t *Tracker) Exercise(id string) (models.Exercise, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lib.Lookup(id)
}

// ExerciseName resolves an id to a display name or the unknown label.
func (t *Tracker) ExerciseName(id string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lib.Name(id)
}

// Exercises returns the whole catalog.
func (t *Tracker) Exercises() []models.Exercise {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lib.Exercises()
}

// ActiveExercises returns the selectable exercises.
func (t *Tracker) ActiveExercises() []models.Exercise {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lib.Active()
}

// ArchivedExercises returns the archived exercises.
func (t *Tracker) ArchivedExercises() []models.Exercise {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lib.ArchivedExercises()
}

// ExercisesByMuscleGroup returns active exercises for one group.
func (t *Tracker) ExercisesByMuscleGroup(mg models.MuscleGroup) []models.Exercise {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lib.ByMuscleGroup(mg)
}

// Favorites returns the active favorite exercises in order.
func (t *Tracker) Favorites() []models.Exercise {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lib.Favorites()
}

// FavoriteCandidates returns active exercises not yet favorited.
func (t *Tracker) FavoriteCandidates() []models.Exercise {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lib.FavoriteCandidates()
}

// Settings returns the user settings.
func (t *Tracker) Settings() models.UserSettings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lib.Settings()
}

// Templates returns every template.
func (t *Tracker) Templates() []models.WorkoutTemplate {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.planner.List()
}

// Template resolves a template by id, name, or id prefix.
func (t *Tracker) Template(ref string) (models.WorkoutTemplate, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.planner.Find(ref)
}

// History returns archived sessions in insertion order.
func (t *Tracker) History() []models.WorkoutSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.WorkoutSession{}, t.history...)
}

// Session resolves an archived session by id or unique id prefix.
func (t *Tracker) Session(ref string) (models.WorkoutSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i, err := t.findSession(ref)
	if err != nil {
		return models.WorkoutSession{}, err
	}
	return t.history[i], nil
}

// PR returns the personal record for an exercise.
func (t *Tracker) PR(exerciseID string) (models.PR, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return progress.PersonalRecord(t.history, exerciseID)
}

// Progress returns the per-session series for an exercise.
func (t *Tracker) Progress(exerciseID string) []progress.Point {
	t.mu.Lock()
	defer t.mu.Unlock()
	return progress.Series(t.history, exerciseID)
}

// FilterHistory returns matching sessions, most recent first.
func (t *Tracker) FilterHistory(f progress.Filter) []models.WorkoutSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return progress.FilterHistory(t.history, f)
}

// Summary totals the archive.
func (t *Tracker) Summary() progress.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return progress.Summarize(t.history)
}

// Snapshot returns every collection in export form.
func (t *Tracker) Snapshot() *storage.ExportData {
	t.mu.Lock()
	defer t.mu.Unlock()
	return &storage.ExportData{
		Version:    storage.ExportVersion,
		ExportedAt: time.Now(),
		Tool:       storage.ExportTool,
		Settings:   t.lib.Settings(),
		Exercises:  t.lib.Exercises(),
		Templates:  t.planner.List(),
		History:    append([]models.WorkoutSession{}, t.history...),
	}
}

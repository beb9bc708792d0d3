// ABOUTME: Library manager owning the exercise catalog and user settings.
// ABOUTME: Enforces archive semantics and the favorites cap.
package library

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/lift/internal/models"
)

// ErrEmptyName is returned when an exercise or profile name is blank.
var ErrEmptyName = errors.New("name is required")

// Library holds the exercise catalog and the user's settings.
// It is not safe for concurrent use; the tracker serializes access.
type Library struct {
	exercises []models.Exercise
	settings  models.UserSettings
}

// New builds a library over the given catalog and settings.
// Both are copied.
func New(exercises []models.Exercise, settings models.UserSettings) *Library {
	return &Library{
		exercises: append([]models.Exercise{}, exercises...),
		settings:  settings.Clone(),
	}
}

// ExercisePatch carries the fields EditExercise merges. Nil fields are kept.
type ExercisePatch struct {
	Name        *string
	MuscleGroup *models.MuscleGroup
	Equipment   *models.Equipment
}

// AddExercise appends a custom exercise and returns it.
func (l *Library) AddExercise(name string, mg models.MuscleGroup, eq models.Equipment) (models.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Exercise{}, ErrEmptyName
	}
	if _, ok := models.ParseMuscleGroup(string(mg)); !ok {
		return models.Exercise{}, fmt.Errorf("unknown muscle group %q", mg)
	}
	if _, ok := models.ParseEquipment(string(eq)); !ok {
		return models.Exercise{}, fmt.Errorf("unknown equipment %q", eq)
	}

	ex := *models.NewCustomExercise(name, mg, eq)
	l.exercises = append(l.exercises, ex)
	return ex, nil
}

// EditExercise merges patch into the exercise with the given id.
// Whether built-in exercises may be edited is left to the caller.
func (l *Library) EditExercise(id string, patch ExercisePatch) (models.Exercise, error) {
	i := l.index(id)
	if i < 0 {
		return models.Exercise{}, fmt.Errorf("%s: %w", id, models.ErrExerciseNotFound)
	}

	ex := l.exercises[i]
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.Exercise{}, ErrEmptyName
		}
		ex.Name = name
	}
	if patch.MuscleGroup != nil {
		if _, ok := models.ParseMuscleGroup(string(*patch.MuscleGroup)); !ok {
			return models.Exercise{}, fmt.Errorf("unknown muscle group %q", *patch.MuscleGroup)
		}
		ex.MuscleGroup = *patch.MuscleGroup
	}
	if patch.Equipment != nil {
		if _, ok := models.ParseEquipment(string(*patch.Equipment)); !ok {
			return models.Exercise{}, fmt.Errorf("unknown equipment %q", *patch.Equipment)
		}
		ex.Equipment = *patch.Equipment
	}

	l.exercises[i] = ex
	return ex, nil
}

// Archive hides an exercise from pickers. Favorites are left as they are.
// It reports whether the flag changed.
func (l *Library) Archive(id string) (bool, error) {
	return l.setArchived(id, true)
}

// Restore reverses Archive.
func (l *Library) Restore(id string) (bool, error) {
	return l.setArchived(id, false)
}

func (l *Library) setArchived(id string, archived bool) (bool, error) {
	i := l.index(id)
	if i < 0 {
		return false, fmt.Errorf("%s: %w", id, models.ErrExerciseNotFound)
	}
	if l.exercises[i].IsArchived == archived {
		return false, nil
	}
	l.exercises[i].IsArchived = archived
	return true, nil
}

// ToggleFavorite removes id from favorites if present. Otherwise it adds id
// when there is room and the exercise is active. Calls that change nothing
// return Rejected.
func (l *Library) ToggleFavorite(id string) models.Outcome {
	favs := l.settings.FavoriteExerciseIDs
	for i, fav := range favs {
		if fav == id {
			l.settings.FavoriteExerciseIDs = append(favs[:i:i], favs[i+1:]...)
			return models.Accepted
		}
	}

	if len(favs) >= models.MaxFavorites {
		return models.Rejected
	}
	ex, ok := l.Lookup(id)
	if !ok || ex.IsArchived {
		return models.Rejected
	}
	l.settings.FavoriteExerciseIDs = append(favs, id)
	return models.Accepted
}

// SetName updates the profile name.
func (l *Library) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	l.settings.Name = name
	return nil
}

// Lookup resolves an id, archived exercises included.
func (l *Library) Lookup(id string) (models.Exercise, bool) {
	if i := l.index(id); i >= 0 {
		return l.exercises[i], true
	}
	return models.Exercise{}, false
}

// Name resolves an id to a display name, falling back to a placeholder label.
func (l *Library) Name(id string) string {
	if ex, ok := l.Lookup(id); ok {
		return ex.Name
	}
	return models.UnknownExerciseLabel
}

// Exercises returns the whole catalog in insertion order.
func (l *Library) Exercises() []models.Exercise {
	return append([]models.Exercise{}, l.exercises...)
}

// Active returns the exercises available for selection.
func (l *Library) Active() []models.Exercise {
	return l.filter(func(ex models.Exercise) bool { return !ex.IsArchived })
}

// ArchivedExercises returns the archived exercises.
func (l *Library) ArchivedExercises() []models.Exercise {
	return l.filter(func(ex models.Exercise) bool { return ex.IsArchived })
}

// ByMuscleGroup returns active exercises for one muscle group.
func (l *Library) ByMuscleGroup(mg models.MuscleGroup) []models.Exercise {
	return l.filter(func(ex models.Exercise) bool {
		return !ex.IsArchived && ex.MuscleGroup == mg
	})
}

// Favorites resolves the favorite ids in order, skipping archived or
// missing exercises.
func (l *Library) Favorites() []models.Exercise {
	out := []models.Exercise{}
	for _, id := range l.settings.FavoriteExerciseIDs {
		if ex, ok := l.Lookup(id); ok && !ex.IsArchived {
			out = append(out, ex)
		}
	}
	return out
}

// FavoriteCandidates returns active exercises that are not favorites yet.
func (l *Library) FavoriteCandidates() []models.Exercise {
	return l.filter(func(ex models.Exercise) bool {
		return !ex.IsArchived && !l.settings.IsFavorite(ex.ID)
	})
}

// Settings returns a copy of the current settings.
func (l *Library) Settings() models.UserSettings {
	return l.settings.Clone()
}

func (l *Library) index(id string) int {
	for i := range l.exercises {
		if l.exercises[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Library) filter(keep func(models.Exercise) bool) []models.Exercise {
	out := []models.Exercise{}
	for _, ex := range l.exercises {
		if keep(ex) {
			out = append(out, ex)
		}
	}
	return out
}

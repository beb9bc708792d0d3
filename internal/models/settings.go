// ABOUTME: UserSettings, the derived PR type, and the Outcome status.
// ABOUTME: Favorites are an ordered set capped at MaxFavorites.
package models

// MaxFavorites caps the number of favorite exercises.
const MaxFavorites = 4

// UserSettings holds the profile and preferences.
type UserSettings struct {
	Name                string   `json:"name" yaml:"name"`
	FavoriteExerciseIDs []string `json:"favoriteExerciseIds" yaml:"favorite_exercise_ids"`
}

// DefaultSettings returns the settings used before anything is stored.
func DefaultSettings() UserSettings {
	return UserSettings{
		Name:                "Athlete",
		FavoriteExerciseIDs: []string{"ex1", "ex2", "ex3", "ex4"},
	}
}

// IsFavorite reports whether id is in the favorites list.
func (s UserSettings) IsFavorite(id string) bool {
	for _, fav := range s.FavoriteExerciseIDs {
		if fav == id {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no backing arrays.
func (s UserSettings) Clone() UserSettings {
	c := s
	c.FavoriteExerciseIDs = append([]string{}, s.FavoriteExerciseIDs...)
	return c
}

// PR is a personal record: the heaviest set logged for an exercise.
// It is computed on demand and never stored.
type PR struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// Outcome reports whether a limit-checked operation was applied.
type Outcome int

const (
	Accepted Outcome = iota
	Rejected
)

func (o Outcome) String() string {
	if o == Accepted {
		return "accepted"
	}
	return "rejected"
}

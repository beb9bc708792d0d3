// ABOUTME: History filtering for the session archive.
// ABOUTME: Returns most recent first with optional exercise and day filters.
package progress

import (
	"sort"
	"time"

	"github.com/harperreed/lift/internal/models"
)

// Filter narrows a history listing. Zero fields are ignored; set fields
// combine with AND.
type Filter struct {
	ExerciseID string
	// Day keeps sessions dated within that calendar day in Day's location.
	Day *time.Time
}

// FilterHistory returns matching sessions, most recent first. Sessions with
// the same date keep reverse insertion order.
func FilterHistory(history []models.WorkoutSession, f Filter) []models.WorkoutSession {
	out := make([]models.WorkoutSession, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})

	var start, end int64
	if f.Day != nil {
		start, end = DayBounds(*f.Day)
	}

	kept := out[:0]
	for _, ws := range out {
		if f.ExerciseID != "" && !ws.HasExercise(f.ExerciseID) {
			continue
		}
		if f.Day != nil && (ws.Date < start || ws.Date > end) {
			continue
		}
		kept = append(kept, ws)
	}
	return kept
}

// DayBounds returns the first and last epoch millisecond of day's calendar
// day in day's location.
func DayBounds(day time.Time) (start, end int64) {
	y, m, d := day.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	next := time.Date(y, m, d+1, 0, 0, 0, 0, day.Location())
	return first.UnixMilli(), next.UnixMilli() - 1
}

// ABOUTME: Tests for history filtering.
// ABOUTME: Covers ordering, exercise and day filters, and their combination.
package progress

import (
	"testing"
	"time"

	"github.com/harperreed/lift/internal/models"
)

func ids(sessions []models.WorkoutSession) []string {
	out := make([]string, 0, len(sessions))
	for _, ws := range sessions {
		out = append(out, ws.ID)
	}
	return out
}

func sameIDs(got []models.WorkoutSession, want ...string) bool {
	g := ids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestFilterHistoryOrder(t *testing.T) {
	history := []models.WorkoutSession{
		session("a", jan3, exLog("ex1", set(1, 1))),
		session("b", jan1, exLog("ex1", set(1, 1))),
		session("c", jan5, exLog("ex1", set(1, 1))),
		session("d", jan5, exLog("ex1", set(1, 1))),
	}

	got := FilterHistory(history, Filter{})
	if !sameIDs(got, "d", "c", "a", "b") {
		t.Errorf("order = %v, want [d c a b]", ids(got))
	}
	if history[0].ID != "a" {
		t.Error("FilterHistory must not reorder its input")
	}
}

func TestFilterHistoryByExercise(t *testing.T) {
	history := []models.WorkoutSession{
		session("a", jan1, exLog("ex1", set(1, 1))),
		session("b", jan3, exLog("ex2", set(1, 1))),
		session("c", jan5, exLog("ex1", set(1, 1)), exLog("ex2", set(1, 1))),
	}

	got := FilterHistory(history, Filter{ExerciseID: "ex2"})
	if !sameIDs(got, "c", "b") {
		t.Errorf("ex2 sessions = %v, want [c b]", ids(got))
	}
}

func TestFilterHistoryByDayInclusive(t *testing.T) {
	day := time.Date(2025, 2, 10, 15, 30, 0, 0, time.Local)
	start := time.Date(2025, 2, 10, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 2, 10, 23, 59, 59, int(999*time.Millisecond), time.Local)

	history := []models.WorkoutSession{
		session("before", start.Add(-time.Millisecond), exLog("ex1", set(1, 1))),
		session("start", start, exLog("ex1", set(1, 1))),
		session("end", end, exLog("ex1", set(1, 1))),
		session("after", end.Add(time.Millisecond), exLog("ex1", set(1, 1))),
	}

	got := FilterHistory(history, Filter{Day: &day})
	if !sameIDs(got, "end", "start") {
		t.Errorf("day filter = %v, want [end start]", ids(got))
	}
}

func TestFilterHistoryCombined(t *testing.T) {
	day := jan3
	s := session("S", jan3.Add(2*time.Hour), exLog("ex2", set(5, 100)))
	other := session("T", jan5, exLog("ex2", set(5, 100)))

	got := FilterHistory([]models.WorkoutSession{s, other}, Filter{ExerciseID: "ex2", Day: &day})
	if !sameIDs(got, "S") {
		t.Errorf("combined filter = %v, want [S]", ids(got))
	}

	withoutEx2 := session("S", jan3.Add(2*time.Hour), exLog("ex1", set(5, 100)))
	got = FilterHistory([]models.WorkoutSession{withoutEx2, other}, Filter{ExerciseID: "ex2", Day: &day})
	if len(got) != 0 {
		t.Errorf("combined filter = %v, want []", ids(got))
	}
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	day := time.Date(2025, 6, 1, 1, 0, 0, 0, loc)

	start, end := DayBounds(day)
	if start != time.Date(2025, 6, 1, 0, 0, 0, 0, loc).UnixMilli() {
		t.Errorf("start = %d", start)
	}
	if end-start != 24*60*60*1000-1 {
		t.Errorf("day length = %d ms", end-start)
	}
}

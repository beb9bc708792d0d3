// ABOUTME: Tests for the tracker store and its write-through persistence.
// ABOUTME: Exercises full workouts end to end against a SQLite backend.
package tracker

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/lift/internal/logging"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/planner"
	"github.com/harperreed/lift/internal/progress"
	"github.com/harperreed/lift/internal/session"
	"github.com/harperreed/lift/internal/storage"
)

type stillTimer struct{ seconds int }

func (s *stillTimer) Start()       {}
func (s *stillTimer) Elapsed() int { return s.seconds }
func (s *stillTimer) Stop()        {}

func testOptions(now *time.Time) Options {
	return Options{
		Logger:   logging.Discard(),
		Now:      func() time.Time { return *now },
		NewTimer: func() session.Timer { return &stillTimer{seconds: 1200} },
	}
}

func openTestStore(t *testing.T) (*storage.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lift.db")
	db, err := storage.Open(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func TestOpenUsesDefaults(t *testing.T) {
	db, _ := openTestStore(t)
	now := time.Now()
	tr := Open(db, testOptions(&now))

	if len(tr.Exercises()) != 10 {
		t.Errorf("expected seed catalog, got %d exercises", len(tr.Exercises()))
	}
	if tr.Settings().Name != "Athlete" {
		t.Errorf("Name = %q", tr.Settings().Name)
	}
	if len(tr.Templates()) != 0 || len(tr.History()) != 0 {
		t.Error("expected empty templates and history")
	}
}

func TestOpenFallsBackOnCorruptBlob(t *testing.T) {
	db, _ := openTestStore(t)
	if err := db.SetBlob(storage.KeyExercises, []byte("garbage")); err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	tr := Open(db, testOptions(&now))
	if len(tr.Exercises()) != 10 {
		t.Errorf("corrupt catalog should fall back to seeds, got %d", len(tr.Exercises()))
	}
}

func TestMutationsWriteThrough(t *testing.T) {
	db, _ := openTestStore(t)
	now := time.Now()
	tr := Open(db, testOptions(&now))

	ex, err := tr.AddExercise("Hack Squat", models.MuscleLegs, models.EquipmentMachine)
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	if err := tr.SetName("Sam"); err != nil {
		t.Fatalf("SetName failed: %v", err)
	}
	if _, err := tr.ToggleFavorite("ex1"); err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if _, _, err := tr.SaveTemplate(*models.NewWorkoutTemplate("Legs").AddExercise(ex.ID)); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	reopened := Open(db, testOptions(&now))
	if _, ok := reopened.Exercise(ex.ID); !ok {
		t.Error("custom exercise not persisted")
	}
	settings := reopened.Settings()
	if settings.Name != "Sam" || settings.IsFavorite("ex1") {
		t.Errorf("settings not persisted: %+v", settings)
	}
	if tmpls := reopened.Templates(); len(tmpls) != 1 || tmpls[0].Exercises[0].ExerciseID != ex.ID {
		t.Errorf("templates not persisted: %+v", tmpls)
	}
}

func TestObserverSeesEveryCommit(t *testing.T) {
	now := time.Now()
	tr := New(models.DefaultExercises(), models.DefaultSettings(), nil, nil, testOptions(&now))

	var keys []string
	tr.Subscribe(func(key string, _ any) error {
		keys = append(keys, key)
		return nil
	})

	tr.ArchiveExercise("ex9")
	tr.ArchiveExercise("ex9")
	tr.ToggleFavorite("ex5")
	tr.ToggleFavorite("ex1")

	want := []string{storage.KeyExercises, storage.KeySettings}
	if fmt.Sprint(keys) != fmt.Sprint(want) {
		t.Errorf("commits = %v, want %v", keys, want)
	}
}

func TestObserverErrorIsReturned(t *testing.T) {
	now := time.Now()
	tr := New(models.DefaultExercises(), models.DefaultSettings(), nil, nil, testOptions(&now))
	boom := errors.New("read-only")
	tr.Subscribe(func(string, any) error { return boom })

	if err := tr.SetName("X"); !errors.Is(err, boom) {
		t.Errorf("expected observer error, got %v", err)
	}
}

func TestArchivedFavoriteScenario(t *testing.T) {
	db, _ := openTestStore(t)
	now := time.Now()
	tr := Open(db, testOptions(&now))

	custom, _ := tr.AddExercise("Landmine Press", models.MuscleShoulders, models.EquipmentBarbell)
	tr.ToggleFavorite("ex4")
	if outcome, _ := tr.ToggleFavorite(custom.ID); outcome != models.Accepted {
		t.Fatalf("favoriting custom exercise = %v", outcome)
	}

	if err := tr.ArchiveExercise(custom.ID); err != nil {
		t.Fatalf("ArchiveExercise failed: %v", err)
	}

	if !tr.Settings().IsFavorite(custom.ID) {
		t.Error("favorites should still list the archived id")
	}
	if got := len(tr.Favorites()); got != 3 {
		t.Errorf("favorites view = %d, want 3", got)
	}
}

func TestWorkoutEndToEnd(t *testing.T) {
	db, _ := openTestStore(t)
	now := time.Date(2025, 4, 2, 18, 0, 0, 0, time.Local)
	tr := Open(db, testOptions(&now))

	tmpl, _, err := tr.SaveTemplate(*models.NewWorkoutTemplate("Full Body").AddExercise("ex1").AddExercise("ex2").AddExercise("ex3"))
	if err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	s, err := tr.StartTemplate("full body")
	if err != nil {
		t.Fatalf("StartTemplate failed: %v", err)
	}
	if tr.ActiveSession() != s {
		t.Error("ActiveSession should return the started session")
	}
	if _, err := tr.StartFreestyle(); !errors.Is(err, session.ErrSessionActive) {
		t.Errorf("expected ErrSessionActive, got %v", err)
	}

	s.AddSet(false)
	s.SetWeight(0, 60)
	s.Advance()
	s.Advance()
	ws, err := s.Finish()
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if ws == nil || len(ws.Exercises) != 1 {
		t.Fatalf("archived session = %+v, want exactly one exercise log", ws)
	}
	if ws.Name != tmpl.Name || ws.Duration != 1200 {
		t.Errorf("session = %+v", ws)
	}

	reopened := Open(db, testOptions(&now))
	history := reopened.History()
	if len(history) != 1 || history[0].ID != ws.ID {
		t.Fatalf("history not persisted: %+v", history)
	}
	if pr, ok := reopened.PR("ex1"); !ok || pr.Weight != 60 || pr.Reps != 8 {
		t.Errorf("PR = %+v, %v", pr, ok)
	}

	if err := tr.DeleteTemplate(tmpl.ID); err != nil {
		t.Fatalf("DeleteTemplate failed: %v", err)
	}
	if len(tr.History()) != 1 {
		t.Error("deleting a template must not touch history")
	}
}

func TestEmptyWorkoutLeavesHistoryAlone(t *testing.T) {
	now := time.Now()
	tr := New(models.DefaultExercises(), models.DefaultSettings(), nil, nil, testOptions(&now))

	commits := 0
	tr.Subscribe(func(string, any) error { commits++; return nil })

	s, err := tr.StartFreestyle()
	if err != nil {
		t.Fatalf("StartFreestyle failed: %v", err)
	}
	s.ChooseExercise("ex1")
	if ws, err := s.Finish(); err != nil || ws != nil {
		t.Errorf("Finish = %+v, %v; want discard", ws, err)
	}
	if len(tr.History()) != 0 || commits != 0 {
		t.Errorf("history = %d sessions, commits = %d", len(tr.History()), commits)
	}
}

func TestHistoryFilterScenario(t *testing.T) {
	day := time.Date(2025, 5, 20, 12, 0, 0, 0, time.Local)
	s := *models.NewWorkoutSession("S", day, 60, []models.ExerciseLog{
		{ExerciseID: "ex2", Sets: []models.SetLog{{Reps: 5, Weight: 100}}},
	})
	other := *models.NewWorkoutSession("T", day.AddDate(0, 0, 1), 60, []models.ExerciseLog{
		{ExerciseID: "ex2", Sets: []models.SetLog{{Reps: 5, Weight: 105}}},
	})

	now := time.Now()
	tr := New(models.DefaultExercises(), models.DefaultSettings(), nil, []models.WorkoutSession{s, other}, testOptions(&now))

	got := tr.FilterHistory(progress.Filter{ExerciseID: "ex2", Day: &day})
	if len(got) != 1 || got[0].ID != s.ID {
		t.Errorf("filter = %+v, want [S]", got)
	}
	if got := tr.FilterHistory(progress.Filter{ExerciseID: "ex1", Day: &day}); len(got) != 0 {
		t.Errorf("filter = %+v, want []", got)
	}
}

func TestDeleteSession(t *testing.T) {
	db, _ := openTestStore(t)
	now := time.Now()
	tr := Open(db, testOptions(&now))

	for i := 0; i < 2; i++ {
		s, _ := tr.StartFreestyle()
		s.ChooseExercise("ex5")
		s.AddSet(false)
		if _, err := s.Finish(); err != nil {
			t.Fatal(err)
		}
	}
	history := tr.History()
	target := history[0]

	deleted, err := tr.DeleteSession(target.ID[:len(models.SessionPrefix)+8])
	if err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if deleted.ID != target.ID {
		t.Errorf("deleted %s, want %s", deleted.ID, target.ID)
	}
	if _, err := tr.DeleteSession(target.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}

	reopened := Open(db, testOptions(&now))
	if len(reopened.History()) != 1 {
		t.Errorf("history after delete = %d sessions", len(reopened.History()))
	}
}

func TestTemplateCapThroughTracker(t *testing.T) {
	now := time.Now()
	tr := New(models.DefaultExercises(), models.DefaultSettings(), nil, nil, testOptions(&now))

	for i := 0; i < planner.MaxTemplates; i++ {
		if _, outcome, err := tr.SaveTemplate(*models.NewWorkoutTemplate(fmt.Sprintf("T%d", i))); err != nil || outcome != models.Accepted {
			t.Fatalf("SaveTemplate %d = %v, %v", i, outcome, err)
		}
	}

	commits := 0
	tr.Subscribe(func(string, any) error { commits++; return nil })
	if _, outcome, err := tr.SaveTemplate(*models.NewWorkoutTemplate("Eleven")); err != nil || outcome != models.Rejected {
		t.Errorf("SaveTemplate past cap = %v, %v", outcome, err)
	}
	if commits != 0 {
		t.Error("rejected save must not commit")
	}
}

func TestSnapshotAndSummary(t *testing.T) {
	now := time.Now()
	history := []models.WorkoutSession{
		*models.NewWorkoutSession("A", now, 100, []models.ExerciseLog{{ExerciseID: "ex1", Sets: []models.SetLog{{Reps: 10, Weight: 50}}}}),
	}
	tr := New(models.DefaultExercises(), models.DefaultSettings(), nil, history, testOptions(&now))

	snap := tr.Snapshot()
	if snap.Tool != storage.ExportTool || len(snap.History) != 1 || len(snap.Exercises) != 10 {
		t.Errorf("snapshot = %+v", snap)
	}
	if sum := tr.Summary(); sum.Sessions != 1 || sum.TotalVolume != 500 {
		t.Errorf("summary = %+v", sum)
	}
	if got := tr.ExerciseName("gone"); got != models.UnknownExerciseLabel {
		t.Errorf("ExerciseName(gone) = %q", got)
	}
}

func TestLogSession(t *testing.T) {
	now := time.Now()
	tr := New(models.DefaultExercises(), models.DefaultSettings(), nil, nil, testOptions(&now))

	date := time.Date(2025, 1, 2, 7, 0, 0, 0, time.Local)
	ws, err := tr.LogSession("", date, 900, []models.ExerciseLog{
		{ExerciseID: "ex2", Sets: []models.SetLog{{Reps: 5, Weight: 100}, {Reps: 5, Weight: 105}}},
		{ExerciseID: "ex8"},
	})
	if err != nil {
		t.Fatalf("LogSession failed: %v", err)
	}
	if ws.Name != FreestyleName || len(ws.Exercises) != 1 || ws.TotalVolume != 1025 {
		t.Errorf("logged session = %+v", ws)
	}
	if ws.Date != date.UnixMilli() {
		t.Errorf("Date = %d, want %d", ws.Date, date.UnixMilli())
	}

	if ws, err := tr.LogSession("Empty", date, 0, []models.ExerciseLog{{ExerciseID: "ex1"}}); err != nil || ws != nil {
		t.Errorf("empty LogSession = %+v, %v", ws, err)
	}
	if _, err := tr.LogSession("Bad", date, 0, []models.ExerciseLog{{ExerciseID: "nope", Sets: []models.SetLog{{Reps: 1}}}}); !errors.Is(err, models.ErrExerciseNotFound) {
		t.Errorf("expected ErrExerciseNotFound, got %v", err)
	}
	if len(tr.History()) != 1 {
		t.Errorf("history = %d sessions, want 1", len(tr.History()))
	}
}

// ABOUTME: Tests for the interactive workout driver.
// ABOUTME: Feeds scripted input and checks output and the saved session.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/harperreed/lift/internal/logging"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/session"
	"github.com/harperreed/lift/internal/tracker"
)

type stubTimer struct{ elapsed int }

func (s *stubTimer) Start()       {}
func (s *stubTimer) Elapsed() int { return s.elapsed }
func (s *stubTimer) Stop()        {}

type stubClock struct{ laps int }

func (c *stubClock) Lap() int        { c.laps++; return 75 }
func (c *stubClock) LapElapsed() int { return 0 }

func newTestTracker(t *testing.T) *tracker.Tracker {
	t.Helper()
	return tracker.New(models.DefaultExercises(), models.DefaultSettings(), nil, nil, tracker.Options{
		Logger:   logging.Discard(),
		NewTimer: func() session.Timer { return &stubTimer{elapsed: 1800} },
	})
}

func run(t *testing.T, tr *tracker.Tracker, ws *session.Session, clock lapClock, script string) (*models.WorkoutSession, string) {
	t.Helper()
	var out bytes.Buffer
	saved, err := runWorkout(ws, tr, clock, strings.NewReader(script), &out)
	if err != nil {
		t.Fatalf("runWorkout failed: %v\n%s", err, out.String())
	}
	return saved, out.String()
}

func TestRunWorkoutTemplated(t *testing.T) {
	tr := newTestTracker(t)
	tmpl, _, err := tr.SaveTemplate(*models.NewWorkoutTemplate("Push").AddExercise("ex1").AddExercise("ex4").AddExercise("ex10"))
	if err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	ws, err := tr.StartTemplate(tmpl.Name)
	if err != nil {
		t.Fatalf("StartTemplate failed: %v", err)
	}

	saved, out := run(t, tr, ws, nil, strings.Join([]string{
		"set 6 70",
		"s",
		"next",
		"next",
		"drop 12 25",
		"finish",
	}, "\n"))

	if saved == nil {
		t.Fatalf("expected a saved session, output:\n%s", out)
	}
	if len(saved.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2 (empty slot dropped)", len(saved.Exercises))
	}
	if saved.Exercises[0].ExerciseID != "ex1" || saved.Exercises[1].ExerciseID != "ex10" {
		t.Errorf("exercise order = %s, %s", saved.Exercises[0].ExerciseID, saved.Exercises[1].ExerciseID)
	}
	if saved.TotalVolume != 6*70*2+12*25 {
		t.Errorf("TotalVolume = %v, want %v", saved.TotalVolume, 6*70*2+12*25)
	}
	if saved.Duration != 1800 {
		t.Errorf("Duration = %d, want 1800", saved.Duration)
	}
	if !saved.Exercises[1].Sets[0].IsDropset {
		t.Error("expected a drop set")
	}

	for _, want := range []string{"Push  [1/3]  00:30:00", "✓ 1. 6 x 70 kg", "✓ 2. 6 x 70 kg", "[3/3]", "(drop)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if len(tr.History()) != 1 {
		t.Errorf("history = %d sessions, want 1", len(tr.History()))
	}
	if tr.ActiveSession() != nil {
		t.Error("session should be released after finish")
	}
}

func TestRunWorkoutNextPastLast(t *testing.T) {
	tr := newTestTracker(t)
	tmpl, _, _ := tr.SaveTemplate(*models.NewWorkoutTemplate("One").AddExercise("ex2"))
	ws, _ := tr.StartTemplate(tmpl.ID)

	_, out := run(t, tr, ws, nil, "next\npick squat\nquit\n")
	if !strings.Contains(out, session.ErrLastExercise.Error()) {
		t.Errorf("expected last-exercise error:\n%s", out)
	}
	if !strings.Contains(out, session.ErrNotFreestyle.Error()) {
		t.Errorf("expected freestyle-only error:\n%s", out)
	}
}

func TestRunWorkoutFreestyle(t *testing.T) {
	tr := newTestTracker(t)
	ws, err := tr.StartFreestyle()
	if err != nil {
		t.Fatalf("StartFreestyle failed: %v", err)
	}

	saved, out := run(t, tr, ws, nil, strings.Join([]string{
		"set",
		"next",
		"pick squat",
		"set 5 100",
		"set 5 105",
		"pick 1",
		"set",
		"pick curl",
		"finish",
	}, "\n"))

	if !strings.Contains(out, session.ErrSelectingExercise.Error()) {
		t.Errorf("set before pick should be refused:\n%s", out)
	}
	if !strings.Contains(out, session.ErrNotTemplated.Error()) {
		t.Errorf("next should be refused in freestyle:\n%s", out)
	}
	if saved == nil {
		t.Fatalf("expected a saved session:\n%s", out)
	}
	if saved.Name != tracker.FreestyleName {
		t.Errorf("Name = %q, want %q", saved.Name, tracker.FreestyleName)
	}
	if len(saved.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2 (pending pick dropped)", len(saved.Exercises))
	}
	if saved.Exercises[0].ExerciseID != "ex2" || saved.Exercises[1].ExerciseID != "ex1" {
		t.Errorf("exercises = %+v", saved.Exercises)
	}
	if got := saved.Exercises[1].Sets[0]; got.Reps != session.DefaultReps || got.Weight != session.DefaultWeight {
		t.Errorf("default set = %+v", got)
	}
}

func TestRunWorkoutEditCoercion(t *testing.T) {
	tr := newTestTracker(t)
	ws, _ := tr.StartFreestyle()

	saved, out := run(t, tr, ws, nil, strings.Join([]string{
		"pick ex5",
		"set 10 12.5",
		"edit 1 weight heavy",
		"edit 1 reps 8.9",
		"edit 2 reps 5",
		"edit 1 sets 5",
		"finish",
	}, "\n"))

	if saved == nil {
		t.Fatalf("expected a saved session:\n%s", out)
	}
	set := saved.Exercises[0].Sets[0]
	if set.Reps != 8 || set.Weight != 12.5 {
		t.Errorf("set = %+v, want 8 x 12.5", set)
	}
	if !strings.Contains(out, session.ErrSetIndex.Error()) {
		t.Errorf("expected set index error:\n%s", out)
	}
	if !strings.Contains(out, session.ErrUnknownField.Error()) {
		t.Errorf("expected unknown field error:\n%s", out)
	}
}

func TestRunWorkoutEmptyFinishDiscards(t *testing.T) {
	tr := newTestTracker(t)
	ws, _ := tr.StartFreestyle()

	saved, _ := run(t, tr, ws, nil, "pick squat\nfinish\n")
	if saved != nil {
		t.Errorf("expected nothing saved, got %+v", saved)
	}
	if len(tr.History()) != 0 {
		t.Error("empty workout must not reach history")
	}
}

func TestRunWorkoutEOFAbandons(t *testing.T) {
	tr := newTestTracker(t)
	ws, _ := tr.StartFreestyle()

	saved, out := run(t, tr, ws, nil, "pick squat\nset\n")
	if saved != nil {
		t.Error("EOF should not save")
	}
	if !strings.Contains(out, "abandoned") {
		t.Errorf("expected abandon notice:\n%s", out)
	}
	if len(tr.History()) != 0 || tr.ActiveSession() != nil {
		t.Error("abandoned workout should leave no trace")
	}
	if _, err := tr.StartFreestyle(); err != nil {
		t.Errorf("a new workout should start after abandon: %v", err)
	}
}

func TestRunWorkoutQuit(t *testing.T) {
	tr := newTestTracker(t)
	ws, _ := tr.StartFreestyle()

	saved, out := run(t, tr, ws, nil, "pick squat\nset\nquit\nset\n")
	if saved != nil || len(tr.History()) != 0 {
		t.Error("quit should not save")
	}
	if strings.Count(out, "✓") != 1 {
		t.Errorf("input after quit should be ignored:\n%s", out)
	}
}

func TestRunWorkoutUnknownCommandAndHelp(t *testing.T) {
	tr := newTestTracker(t)
	ws, _ := tr.StartFreestyle()

	_, out := run(t, tr, ws, nil, "jump\nhelp\nquit\n")
	if !strings.Contains(out, `unknown command "jump"`) {
		t.Errorf("expected unknown command error:\n%s", out)
	}
	if !strings.Contains(out, "Commands:") {
		t.Errorf("expected help text:\n%s", out)
	}
}

func TestRunWorkoutRestClock(t *testing.T) {
	tr := newTestTracker(t)
	ws, _ := tr.StartFreestyle()
	clock := &stubClock{}

	_, out := run(t, tr, ws, clock, "pick squat\nset\nset\nfinish\n")
	if clock.laps != 3 {
		t.Errorf("laps = %d, want 3 (pick plus two sets)", clock.laps)
	}
	if !strings.Contains(out, "rest 00:01:15") {
		t.Errorf("expected rest time:\n%s", out)
	}
}

func TestRunWorkoutShowsPR(t *testing.T) {
	tr := newTestTracker(t)
	if _, err := tr.LogSession("Old", timeAt(t, "2025-01-01 09:00"), 0, []models.ExerciseLog{
		{ExerciseID: "ex2", Sets: []models.SetLog{{Reps: 3, Weight: 140}}},
	}); err != nil {
		t.Fatal(err)
	}
	ws, _ := tr.StartFreestyle()

	_, out := run(t, tr, ws, nil, "pick squat\nquit\n")
	if !strings.Contains(out, "PR 140 kg x 3") {
		t.Errorf("expected PR line:\n%s", out)
	}
}

func TestNewRecords(t *testing.T) {
	old := models.NewWorkoutSession("Old", timeAt(t, "2025-01-01 09:00"), 0, []models.ExerciseLog{
		{ExerciseID: "ex1", Sets: []models.SetLog{{Reps: 5, Weight: 80}}},
		{ExerciseID: "ex2", Sets: []models.SetLog{{Reps: 5, Weight: 120}}},
	})
	latest := models.NewWorkoutSession("New", timeAt(t, "2025-01-03 09:00"), 0, []models.ExerciseLog{
		{ExerciseID: "ex1", Sets: []models.SetLog{{Reps: 3, Weight: 85}}},
		{ExerciseID: "ex2", Sets: []models.SetLog{{Reps: 8, Weight: 120}}},
		{ExerciseID: "ex5", Sets: []models.SetLog{{Reps: 12, Weight: 14}}},
		{ExerciseID: "ex1", Sets: []models.SetLog{{Reps: 1, Weight: 90}}},
	})

	got := newRecords([]models.WorkoutSession{*old, *latest}, *latest)
	want := []string{"ex1", "ex5"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("newRecords = %v, want %v (a tie is not a record)", got, want)
	}
}

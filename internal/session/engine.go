// ABOUTME: Session engine driving the single in-progress workout.
// ABOUTME: Handles set logging, navigation, freestyle selection, and finalization.
package session

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/lift/internal/models"
)

// Mode distinguishes a planned workout from one built as it goes.
type Mode int

const (
	Templated Mode = iota
	Freestyle
)

func (m Mode) String() string {
	if m == Freestyle {
		return "freestyle"
	}
	return "templated"
}

// Seed values for the first set of an exercise.
const (
	DefaultReps   = 8
	DefaultWeight = 20.0
)

// Catalog resolves exercise ids, archived exercises included.
type Catalog interface {
	Lookup(id string) (models.Exercise, bool)
}

// Archiver receives finished sessions.
type Archiver interface {
	Archive(ws models.WorkoutSession) error
}

// ArchiverFunc adapts a function to Archiver.
type ArchiverFunc func(ws models.WorkoutSession) error

func (f ArchiverFunc) Archive(ws models.WorkoutSession) error { return f(ws) }

// Options configures an Engine. Catalog and Archiver are required.
type Options struct {
	Catalog  Catalog
	Archiver Archiver
	Logger   *log.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// NewTimer defaults to a 1 Hz Stopwatch.
	NewTimer func() Timer
}

// Engine hands out at most one live Session at a time.
type Engine struct {
	opts Options

	mu     sync.Mutex
	active *Session
}

// NewEngine builds an engine.
func NewEngine(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewTimer == nil {
		opts.NewTimer = func() Timer { return NewStopwatch(nil) }
	}
	return &Engine{opts: opts}
}

// Start begins a workout over a copy of plan and starts its timer.
// It fails with ErrSessionActive while another session is outstanding.
func (e *Engine) Start(name string, plan []models.PlannedExercise, mode Mode) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, ErrSessionActive
	}

	s := &Session{
		engine:  e,
		name:    name,
		mode:    mode,
		started: e.opts.Now(),
		planned: append([]models.PlannedExercise{}, plan...),
		timer:   e.opts.NewTimer(),
	}
	s.logs = make([]models.ExerciseLog, len(s.planned))
	for i, p := range s.planned {
		s.logs[i] = models.ExerciseLog{ExerciseID: p.ExerciseID, Sets: []models.SetLog{}}
	}
	s.timer.Start()

	e.active = s
	e.opts.Logger.Debug("session started", "name", name, "mode", mode, "slots", len(plan))
	return s, nil
}

// Active returns the outstanding session, or nil.
func (e *Engine) Active() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

func (e *Engine) release(s *Session) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == s {
		e.active = nil
	}
}

// Session is the mutable state of one workout. Obtain one from Engine.Start.
// Logs and the planned list stay index-aligned.
type Session struct {
	engine *Engine

	mu      sync.Mutex
	name    string
	mode    Mode
	started time.Time
	planned []models.PlannedExercise
	logs    []models.ExerciseLog
	cursor  int
	timer   Timer
	closed  bool
}

// Snapshot describes the current position of a session.
type Snapshot struct {
	Name      string
	Mode      Mode
	Started   time.Time
	Elapsed   int
	Position  int // zero-based cursor
	Total     int
	Selecting bool
	Slot      *models.PlannedExercise
	Log       *models.ExerciseLog
	IsLast    bool
}

// Current returns a copy of the session's visible state.
func (s *Session) Current() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, ErrSessionClosed
	}

	snap := Snapshot{
		Name:      s.name,
		Mode:      s.mode,
		Started:   s.started,
		Elapsed:   s.timer.Elapsed(),
		Position:  s.cursor,
		Total:     len(s.planned),
		Selecting: s.selecting(),
		IsLast:    s.cursor >= len(s.planned)-1,
	}
	if s.hasSlot() {
		slot := s.planned[s.cursor]
		l := s.logs[s.cursor].Clone()
		snap.Slot = &slot
		snap.Log = &l
	}
	return snap, nil
}

// Plan returns a copy of the planned slots.
func (s *Session) Plan() []models.PlannedExercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PlannedExercise{}, s.planned...)
}

// Logs returns a copy of the exercise logs, one per planned slot.
func (s *Session) Logs() []models.ExerciseLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ExerciseLog, len(s.logs))
	for i, l := range s.logs {
		out[i] = l.Clone()
	}
	return out
}

// Mode reports whether the session is templated or freestyle.
func (s *Session) Mode() Mode {
	return s.mode
}

// Name returns the session name.
func (s *Session) Name() string {
	return s.name
}

// LapTimer returns the session's timer when it supports laps.
func (s *Session) LapTimer() (LapTimer, bool) {
	lt, ok := s.timer.(LapTimer)
	return lt, ok
}

// AddSet appends a set to the current exercise, copying reps and weight
// from its last set.
func (s *Session) AddSet(isDropset bool) (models.SetLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return models.SetLog{}, err
	}

	l := &s.logs[s.cursor]
	set := models.SetLog{Reps: DefaultReps, Weight: DefaultWeight}
	if n := len(l.Sets); n > 0 {
		set = l.Sets[n-1]
	}
	set.IsDropset = isDropset
	l.Sets = append(l.Sets, set)
	return set, nil
}

// EditSet updates one field of a set from raw user input. Reps that do not
// parse become 0. Weight that does not parse keeps its previous value.
func (s *Session) EditSet(setIndex int, field, raw string) (models.SetLog, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(field) {
	case "reps", "r":
		return s.SetReps(setIndex, coerceReps(raw))
	case "weight", "w", "kg":
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
			return s.set(setIndex, func(*models.SetLog) {})
		}
		return s.SetWeight(setIndex, w)
	default:
		return models.SetLog{}, fmt.Errorf("%q: %w", field, ErrUnknownField)
	}
}

// SetReps sets the reps of a set on the current exercise.
func (s *Session) SetReps(setIndex, reps int) (models.SetLog, error) {
	return s.set(setIndex, func(set *models.SetLog) { set.Reps = reps })
}

// SetWeight sets the weight of a set on the current exercise.
func (s *Session) SetWeight(setIndex int, weight float64) (models.SetLog, error) {
	return s.set(setIndex, func(set *models.SetLog) { set.Weight = weight })
}

func (s *Session) set(setIndex int, apply func(*models.SetLog)) (models.SetLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return models.SetLog{}, err
	}

	sets := s.logs[s.cursor].Sets
	if setIndex < 0 || setIndex >= len(sets) {
		return models.SetLog{}, fmt.Errorf("set %d of %d: %w", setIndex+1, len(sets), ErrSetIndex)
	}
	apply(&sets[setIndex])
	return sets[setIndex], nil
}

// Advance moves to the next planned exercise. Templated sessions only.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.mode != Templated {
		return ErrNotTemplated
	}
	if s.cursor >= len(s.planned)-1 {
		return ErrLastExercise
	}
	s.cursor++
	return nil
}

// AppendExercise adds a slot with default targets. Freestyle sessions only.
func (s *Session) AppendExercise(exerciseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.mode != Freestyle {
		return ErrNotFreestyle
	}
	if err := s.selectable(exerciseID); err != nil {
		return err
	}

	first := len(s.planned) == 0
	s.replan(append(s.planned, models.NewPlannedExercise(exerciseID)))
	if first {
		s.cursor = 0
	}
	return nil
}

// RequestExerciseChange appends a placeholder slot and moves onto it.
// Set logging is blocked until ChooseExercise. Freestyle sessions only.
func (s *Session) RequestExerciseChange() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.mode != Freestyle {
		return ErrNotFreestyle
	}
	if s.selecting() {
		return nil
	}

	placeholder := models.PlannedExercise{ExerciseID: models.PlaceholderExerciseID}
	s.replan(append(s.planned, placeholder))
	s.cursor = len(s.planned) - 1
	return nil
}

// ChooseExercise fills the pending slot with a concrete exercise.
func (s *Session) ChooseExercise(exerciseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if !s.selecting() {
		return ErrNotSelecting
	}
	if err := s.selectable(exerciseID); err != nil {
		return err
	}

	planned := append([]models.PlannedExercise{}, s.planned...)
	slot := models.NewPlannedExercise(exerciseID)
	if s.cursor < len(planned) {
		planned[s.cursor] = slot
	} else {
		planned = append(planned, slot)
		s.cursor = len(planned) - 1
	}
	s.replan(planned)
	return nil
}

// Finish stops the timer, drops exercises without sets, and hands the
// result to the archiver. A session with no sets at all is discarded and
// Finish returns nil. Either way the session is closed.
func (s *Session) Finish() (*models.WorkoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}

	elapsed := s.timer.Elapsed()
	s.close()

	var performed []models.ExerciseLog
	for _, l := range s.logs {
		if len(l.Sets) > 0 {
			performed = append(performed, l.Clone())
		}
	}
	logger := s.engine.opts.Logger
	if len(performed) == 0 {
		logger.Debug("session discarded", "name", s.name, "reason", "no sets")
		return nil, nil
	}

	ws := models.NewWorkoutSession(s.name, s.engine.opts.Now(), elapsed, performed)
	if err := s.engine.opts.Archiver.Archive(*ws); err != nil {
		return nil, fmt.Errorf("archive session: %w", err)
	}
	logger.Debug("session finished", "id", ws.ID, "exercises", len(performed), "volume", ws.TotalVolume)
	return ws, nil
}

// Exit abandons the session without saving anything.
func (s *Session) Exit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.close()
	s.engine.opts.Logger.Debug("session abandoned", "name", s.name)
	return nil
}

func (s *Session) close() {
	s.closed = true
	s.timer.Stop()
	s.engine.release(s)
}

func (s *Session) hasSlot() bool {
	return s.cursor >= 0 && s.cursor < len(s.planned)
}

// selecting reports whether a freestyle session waits for an exercise.
func (s *Session) selecting() bool {
	if s.mode != Freestyle {
		return false
	}
	return !s.hasSlot() || s.planned[s.cursor].IsPlaceholder()
}

func (s *Session) writable() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.selecting() {
		return ErrSelectingExercise
	}
	if !s.hasSlot() {
		return ErrNoCurrentExercise
	}
	return nil
}

func (s *Session) selectable(exerciseID string) error {
	ex, ok := s.engine.opts.Catalog.Lookup(exerciseID)
	if !ok {
		return fmt.Errorf("%s: %w", exerciseID, models.ErrExerciseNotFound)
	}
	if ex.IsArchived {
		return fmt.Errorf("%s: %w", ex.Name, models.ErrExerciseArchived)
	}
	return nil
}

// replan swaps in a new planned list and rebuilds the logs from the old
// ones. The n-th slot for an exercise keeps the sets of the n-th old log
// for that exercise.
func (s *Session) replan(planned []models.PlannedExercise) {
	byExercise := make(map[string][]models.ExerciseLog)
	for _, l := range s.logs {
		byExercise[l.ExerciseID] = append(byExercise[l.ExerciseID], l)
	}

	logs := make([]models.ExerciseLog, len(planned))
	for i, p := range planned {
		if prev := byExercise[p.ExerciseID]; len(prev) > 0 {
			logs[i] = prev[0]
			byExercise[p.ExerciseID] = prev[1:]
			continue
		}
		logs[i] = models.ExerciseLog{ExerciseID: p.ExerciseID, Sets: []models.SetLog{}}
	}

	s.planned = planned
	s.logs = logs
}

func coerceReps(raw string) int {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	// Out-of-range floats coerce to 0 like any other non-numeric input.
	if f, err := strconv.ParseFloat(raw, 64); err == nil && math.Abs(f) <= math.MaxInt32 {
		return int(f)
	}
	return 0
}

// ABOUTME: Application store owning the catalog, templates, history, and settings.
// ABOUTME: Every committed mutation is pushed to observers for write-through.
package tracker

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/lift/internal/library"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/planner"
	"github.com/harperreed/lift/internal/session"
	"github.com/harperreed/lift/internal/storage"
)

// FreestyleName names sessions started without a template.
const FreestyleName = "Freestyle"

// ErrSessionNotFound means no archived session matches the reference.
var ErrSessionNotFound = errors.New("session not found")

// Observer receives the new value of a collection after each commit.
type Observer func(key string, value any) error

// Persister returns an observer that writes each snapshot to store.
func Persister(store storage.BlobStore) Observer {
	return func(key string, value any) error {
		return storage.Save(store, key, value)
	}
}

// Options configures a Tracker.
type Options struct {
	Logger *log.Logger
	// Now and NewTimer are handed to the session engine.
	Now      func() time.Time
	NewTimer func() session.Timer
}

// Tracker is the single owner of all domain state.
type Tracker struct {
	mu        sync.Mutex
	lib       *library.Library
	planner   *planner.Planner
	history   []models.WorkoutSession
	engine    *session.Engine
	observers []Observer
	logger    *log.Logger
}

// Open loads every collection from store, falling back to defaults, and
// subscribes a persister so mutations are written through.
func Open(store storage.BlobStore, opts Options) *Tracker {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	logger := opts.Logger

	settings := storage.Load(store, storage.KeySettings, models.DefaultSettings(), logger)
	exercises := storage.Load(store, storage.KeyExercises, models.DefaultExercises(), logger)
	templates := storage.Load(store, storage.KeyTemplates, []models.WorkoutTemplate{}, logger)
	history := storage.Load(store, storage.KeyHistory, []models.WorkoutSession{}, logger)

	t := New(exercises, settings, templates, history, opts)
	t.Subscribe(Persister(store))
	return t
}

// New builds a tracker from in-memory collections with no observers.
func New(exercises []models.Exercise, settings models.UserSettings, templates []models.WorkoutTemplate, history []models.WorkoutSession, opts Options) *Tracker {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	t := &Tracker{
		lib:     library.New(exercises, settings),
		history: append([]models.WorkoutSession{}, history...),
		logger:  opts.Logger,
	}
	t.planner = planner.New(templates, t.lib)
	t.engine = session.NewEngine(session.Options{
		Catalog:  catalog{t},
		Archiver: t,
		Logger:   opts.Logger.WithPrefix("session"),
		Now:      opts.Now,
		NewTimer: opts.NewTimer,
	})
	return t
}

// Subscribe adds an observer. Observers run synchronously, in order.
func (t *Tracker) Subscribe(o Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, o)
}

// commit publishes the current value of key. Callers hold t.mu.
func (t *Tracker) commit(key string) error {
	var value any
	switch key {
	case storage.KeySettings:
		value = t.lib.Settings()
	case storage.KeyExercises:
		value = t.lib.Exercises()
	case storage.KeyTemplates:
		value = t.planner.List()
	case storage.KeyHistory:
		value = append([]models.WorkoutSession{}, t.history...)
	default:
		return fmt.Errorf("unknown collection %q", key)
	}

	for _, o := range t.observers {
		if err := o(key, value); err != nil {
			t.logger.Error("write-through failed", "key", key, "err", err)
			return fmt.Errorf("persist %s: %w", key, err)
		}
	}
	t.logger.Debug("committed", "key", key)
	return nil
}

// catalog gives the session engine locked lookups.
type catalog struct{ t *Tracker }

func (c catalog) Lookup(id string) (models.Exercise, bool) {
	c.t.mu.Lock()
	defer c.t.mu.Unlock()
	return c.t.lib.Lookup(id)
}

// --- library mutations ---

// AddExercise creates a custom exercise.
func (t *Tracker) AddExercise(name string, mg models.MuscleGroup, eq models.Equipment) (models.Exercise, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ex, err := t.lib.AddExercise(name, mg, eq)
	if err != nil {
		return models.Exercise{}, err
	}
	return ex, t.commit(storage.KeyExercises)
}

// EditExercise merges patch into an exercise.
func (t *Tracker) EditExercise(id string, patch library.ExercisePatch) (models.Exercise, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ex, err := t.lib.EditExercise(id, patch)
	if err != nil {
		return models.Exercise{}, err
	}
	return ex, t.commit(storage.KeyExercises)
}

// ArchiveExercise hides an exercise from pickers.
func (t *Tracker) ArchiveExercise(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	changed, err := t.lib.Archive(id)
	if err != nil || !changed {
		return err
	}
	return t.commit(storage.KeyExercises)
}

// RestoreExercise makes an archived exercise selectable again.
func (t *Tracker) RestoreExercise(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	changed, err := t.lib.Restore(id)
	if err != nil || !changed {
		return err
	}
	return t.commit(storage.KeyExercises)
}

// ToggleFavorite flips an exercise's favorite status, subject to the cap.
func (t *Tracker) ToggleFavorite(id string) (models.Outcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	outcome := t.lib.ToggleFavorite(id)
	if outcome == models.Rejected {
		return outcome, nil
	}
	return outcome, t.commit(storage.KeySettings)
}

// SetName updates the profile name.
func (t *Tracker) SetName(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.lib.SetName(name); err != nil {
		return err
	}
	return t.commit(storage.KeySettings)
}

// --- template mutations ---

// SaveTemplate upserts a template. A Rejected outcome means the cap was hit.
func (t *Tracker) SaveTemplate(tmpl models.WorkoutTemplate) (models.WorkoutTemplate, models.Outcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	saved, outcome, err := t.planner.Save(tmpl)
	if err != nil || outcome == models.Rejected {
		return saved, outcome, err
	}
	return saved, outcome, t.commit(storage.KeyTemplates)
}

// DeleteTemplate removes a template. History is untouched.
func (t *Tracker) DeleteTemplate(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.planner.Delete(id); err != nil {
		return err
	}
	return t.commit(storage.KeyTemplates)
}

// --- sessions ---

// StartTemplate begins a templated workout from a template id or name.
func (t *Tracker) StartTemplate(ref string) (*session.Session, error) {
	t.mu.Lock()
	tmpl, err := t.planner.Find(ref)
	t.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return t.engine.Start(tmpl.Name, tmpl.Exercises, session.Templated)
}

// StartFreestyle begins a workout with no plan.
func (t *Tracker) StartFreestyle() (*session.Session, error) {
	return t.engine.Start(FreestyleName, nil, session.Freestyle)
}

// ActiveSession returns the workout in progress, or nil.
func (t *Tracker) ActiveSession() *session.Session {
	return t.engine.Active()
}

// Archive appends a finished session to history. The session engine calls it.
func (t *Tracker) Archive(ws models.WorkoutSession) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.history = append(t.history, ws)
	return t.commit(storage.KeyHistory)
}

// DeleteSession removes an archived session by id or unique id prefix.
// The prefix may omit the "session_" part.
func (t *Tracker) DeleteSession(ref string) (models.WorkoutSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, err := t.findSession(ref)
	if err != nil {
		return models.WorkoutSession{}, err
	}
	ws := t.history[i]
	t.history = append(t.history[:i:i], t.history[i+1:]...)
	return ws, t.commit(storage.KeyHistory)
}

func (t *Tracker) findSession(ref string) (int, error) {
	match := -1
	for i, ws := range t.history {
		if ws.ID == ref {
			return i, nil
		}
		if ref != "" && (strings.HasPrefix(ws.ID, ref) || strings.HasPrefix(strings.TrimPrefix(ws.ID, models.SessionPrefix), ref)) {
			if match >= 0 {
				return -1, fmt.Errorf("ambiguous session reference %q", ref)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%s: %w", ref, ErrSessionNotFound)
	}
	return match, nil
}

// LogSession archives a session recorded after the fact. Logs without sets
// are dropped; if none remain nothing is stored and nil is returned.
func (t *Tracker) LogSession(name string, date time.Time, durationSeconds int, logs []models.ExerciseLog) (*models.WorkoutSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var performed []models.ExerciseLog
	for _, l := range logs {
		if _, ok := t.lib.Lookup(l.ExerciseID); !ok {
			return nil, fmt.Errorf("%s: %w", l.ExerciseID, models.ErrExerciseNotFound)
		}
		if len(l.Sets) > 0 {
			performed = append(performed, l.Clone())
		}
	}
	if len(performed) == 0 {
		return nil, nil
	}
	if strings.TrimSpace(name) == "" {
		name = FreestyleName
	}

	ws := models.NewWorkoutSession(name, date, durationSeconds, performed)
	t.history = append(t.history, *ws)
	return ws, t.commit(storage.KeyHistory)
}

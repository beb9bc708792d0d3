// ABOUTME: Template manager for reusable workout plans.
// ABOUTME: Upserts by id, assigns ids on create, and caps the collection at ten.
package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/lift/internal/models"
)

// MaxTemplates caps the number of stored templates.
const MaxTemplates = 10

var (
	// ErrTemplateNotFound means no template has the given id.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrEmptyName is returned for templates without a name.
	ErrEmptyName = errors.New("template name is required")
)

// Catalog resolves exercise ids, archived exercises included.
type Catalog interface {
	Lookup(id string) (models.Exercise, bool)
}

// Planner owns the template collection.
type Planner struct {
	templates []models.WorkoutTemplate
	catalog   Catalog
}

// New builds a planner over a copy of templates.
func New(templates []models.WorkoutTemplate, catalog Catalog) *Planner {
	p := &Planner{catalog: catalog}
	for _, t := range templates {
		p.templates = append(p.templates, t.Clone())
	}
	return p
}

// Save upserts a template by id. A template with an empty id is created
// with a fresh one. Creating past MaxTemplates returns Rejected and leaves
// the collection untouched. The stored copy is returned.
func (p *Planner) Save(t models.WorkoutTemplate) (models.WorkoutTemplate, models.Outcome, error) {
	t = t.Clone()
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return models.WorkoutTemplate{}, models.Rejected, ErrEmptyName
	}
	if t.Exercises == nil {
		t.Exercises = []models.PlannedExercise{}
	}

	i := -1
	if t.ID != "" {
		i = p.index(t.ID)
	}

	var existing *models.WorkoutTemplate
	if i >= 0 {
		existing = &p.templates[i]
	}
	if err := p.validate(t, existing); err != nil {
		return models.WorkoutTemplate{}, models.Rejected, err
	}

	if i >= 0 {
		p.templates[i] = t
		return t.Clone(), models.Accepted, nil
	}

	if len(p.templates) >= MaxTemplates {
		return models.WorkoutTemplate{}, models.Rejected, nil
	}
	if t.ID == "" {
		t.ID = models.NewID(models.TemplatePrefix)
	}
	p.templates = append(p.templates, t)
	return t.Clone(), models.Accepted, nil
}

// validate checks slot references. Archived exercises are allowed only in
// slots the stored template already referenced them from.
func (p *Planner) validate(t models.WorkoutTemplate, existing *models.WorkoutTemplate) error {
	for n, slot := range t.Exercises {
		ex, ok := p.catalog.Lookup(slot.ExerciseID)
		if !ok {
			return fmt.Errorf("slot %d (%s): %w", n+1, slot.ExerciseID, models.ErrExerciseNotFound)
		}
		if ex.IsArchived && !references(existing, slot.ExerciseID) {
			return fmt.Errorf("slot %d (%s): %w", n+1, ex.Name, models.ErrExerciseArchived)
		}
		if slot.Sets < 0 {
			return fmt.Errorf("slot %d: negative set target", n+1)
		}
	}
	return nil
}

func references(t *models.WorkoutTemplate, exerciseID string) bool {
	if t == nil {
		return false
	}
	for _, slot := range t.Exercises {
		if slot.ExerciseID == exerciseID {
			return true
		}
	}
	return false
}

// Delete removes a template. Sessions started from it are unaffected.
func (p *Planner) Delete(id string) error {
	i := p.index(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", id, ErrTemplateNotFound)
	}
	p.templates = append(p.templates[:i:i], p.templates[i+1:]...)
	return nil
}

// Get returns a copy of the template with the given id.
func (p *Planner) Get(id string) (models.WorkoutTemplate, error) {
	i := p.index(id)
	if i < 0 {
		return models.WorkoutTemplate{}, fmt.Errorf("%s: %w", id, ErrTemplateNotFound)
	}
	return p.templates[i].Clone(), nil
}

// Find resolves a template by id, then by case-insensitive name, then by
// unique id prefix.
func (p *Planner) Find(ref string) (models.WorkoutTemplate, error) {
	if t, err := p.Get(ref); err == nil {
		return t, nil
	}
	for _, t := range p.templates {
		if strings.EqualFold(t.Name, ref) {
			return t.Clone(), nil
		}
	}

	var match *models.WorkoutTemplate
	for i := range p.templates {
		id := p.templates[i].ID
		if ref != "" && (strings.HasPrefix(id, ref) || strings.HasPrefix(strings.TrimPrefix(id, models.TemplatePrefix), ref)) {
			if match != nil {
				return models.WorkoutTemplate{}, fmt.Errorf("ambiguous template reference %q", ref)
			}
			match = &p.templates[i]
		}
	}
	if match == nil {
		return models.WorkoutTemplate{}, fmt.Errorf("%s: %w", ref, ErrTemplateNotFound)
	}
	return match.Clone(), nil
}

// List returns copies of all templates in insertion order.
func (p *Planner) List() []models.WorkoutTemplate {
	out := make([]models.WorkoutTemplate, 0, len(p.templates))
	for _, t := range p.templates {
		out = append(out, t.Clone())
	}
	return out
}

// Full reports whether another template can be created.
func (p *Planner) Full() bool {
	return len(p.templates) >= MaxTemplates
}

func (p *Planner) index(id string) int {
	for i := range p.templates {
		if p.templates[i].ID == id {
			return i
		}
	}
	return -1
}

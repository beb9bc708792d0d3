// ABOUTME: Export and import functionality for lift data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/planner"
	"gopkg.in/yaml.v3"
)

// Export metadata written into every snapshot.
const (
	ExportVersion = "1.0"
	ExportTool    = "lift"
)

// ExportData represents the full export format for lift data.
type ExportData struct {
	Version    string                   `json:"version" yaml:"version"`
	ExportedAt time.Time                `json:"exported_at" yaml:"exported_at"`
	Tool       string                   `json:"tool" yaml:"tool"`
	Settings   models.UserSettings      `json:"settings" yaml:"settings"`
	Exercises  []models.Exercise        `json:"exercises" yaml:"exercises"`
	Templates  []models.WorkoutTemplate `json:"templates" yaml:"templates"`
	History    []models.WorkoutSession  `json:"history" yaml:"history"`
}

// GetAllData reads every collection, substituting defaults for missing keys.
func GetAllData(s BlobStore, logger *log.Logger) *ExportData {
	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       ExportTool,
		Settings:   Load(s, KeySettings, models.DefaultSettings(), logger),
		Exercises:  Load(s, KeyExercises, models.DefaultExercises(), logger),
		Templates:  Load(s, KeyTemplates, []models.WorkoutTemplate{}, logger),
		History:    Load(s, KeyHistory, []models.WorkoutSession{}, logger),
	}
}

// ErrTooManyTemplates is returned when an import holds more templates than
// the planner accepts.
var ErrTooManyTemplates = fmt.Errorf("import holds more than %d templates", planner.MaxTemplates)

// ImportData overwrites every collection with the contents of data.
// Missing settings fall back to the defaults and favorites are reduced to
// unique, known, unarchived exercises up to MaxFavorites. Nothing is
// written when the templates exceed the planner's cap.
func ImportData(s BlobStore, data *ExportData) error {
	exercises := data.Exercises
	if exercises == nil {
		exercises = models.DefaultExercises()
	}
	templates := data.Templates
	if templates == nil {
		templates = []models.WorkoutTemplate{}
	}
	if len(templates) > planner.MaxTemplates {
		return fmt.Errorf("import: %d templates: %w", len(templates), ErrTooManyTemplates)
	}
	settings := importSettings(data.Settings, exercises)
	history := data.History
	if history == nil {
		history = []models.WorkoutSession{}
	}

	writes := []struct {
		key   string
		value any
	}{
		{KeySettings, settings},
		{KeyExercises, exercises},
		{KeyTemplates, templates},
		{KeyHistory, history},
	}
	for _, w := range writes {
		if err := Save(s, w.key, w.value); err != nil {
			return fmt.Errorf("import: %w", err)
		}
	}
	return nil
}

func importSettings(in models.UserSettings, exercises []models.Exercise) models.UserSettings {
	if in.Name == "" && in.FavoriteExerciseIDs == nil {
		return models.DefaultSettings()
	}
	out := models.UserSettings{Name: in.Name, FavoriteExerciseIDs: []string{}}
	if out.Name == "" {
		out.Name = models.DefaultSettings().Name
	}

	usable := make(map[string]bool, len(exercises))
	for _, ex := range exercises {
		usable[ex.ID] = !ex.IsArchived
	}
	for _, id := range in.FavoriteExerciseIDs {
		if len(out.FavoriteExerciseIDs) == models.MaxFavorites {
			break
		}
		if usable[id] && !out.IsFavorite(id) {
			out.FavoriteExerciseIDs = append(out.FavoriteExerciseIDs, id)
		}
	}
	return out
}

// ExportJSON exports all data as JSON.
func ExportJSON(s BlobStore, logger *log.Logger) ([]byte, error) {
	return json.MarshalIndent(GetAllData(s, logger), "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(s BlobStore, logger *log.Logger) ([]byte, error) {
	data := GetAllData(s, logger)

	yamlData := struct {
		Version    string                   `yaml:"version"`
		ExportedAt string                   `yaml:"exported_at"`
		Tool       string                   `yaml:"tool"`
		Settings   models.UserSettings      `yaml:"settings"`
		Exercises  []models.Exercise        `yaml:"exercises"`
		Templates  []models.WorkoutTemplate `yaml:"templates"`
		Sessions   []yamlSession            `yaml:"sessions"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Settings:   data.Settings,
		Exercises:  data.Exercises,
		Templates:  data.Templates,
		Sessions:   make([]yamlSession, 0, len(data.History)),
	}

	for _, ws := range data.History {
		yamlData.Sessions = append(yamlData.Sessions, yamlSession{
			ID:          ws.ID,
			Name:        ws.Name,
			Date:        ws.Time().Format(time.RFC3339),
			Duration:    ws.Duration,
			TotalVolume: ws.TotalVolume,
			Exercises:   ws.Exercises,
		})
	}

	return yaml.Marshal(yamlData)
}

// yamlSession renders the epoch-millisecond date as RFC3339.
type yamlSession struct {
	ID          string               `yaml:"id"`
	Name        string               `yaml:"name"`
	Date        string               `yaml:"date"`
	Duration    int                  `yaml:"duration_seconds"`
	TotalVolume float64              `yaml:"total_volume"`
	Exercises   []models.ExerciseLog `yaml:"exercises"`
}

// ExportMarkdown renders the session history as Markdown, oldest first.
// Sessions before since are skipped when since is non-nil.
func ExportMarkdown(s BlobStore, logger *log.Logger, since *time.Time) (string, error) {
	data := GetAllData(s, logger)

	names := make(map[string]string, len(data.Exercises))
	for _, ex := range data.Exercises {
		names[ex.ID] = ex.Name
	}

	var sessions []models.WorkoutSession
	for _, ws := range data.History {
		if since != nil && ws.Time().Before(*since) {
			continue
		}
		sessions = append(sessions, ws)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date < sessions[j].Date
	})

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Lift Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(sessions) == 0 {
		sb.WriteString("No sessions recorded.\n")
		return sb.String(), nil
	}

	sb.WriteString("## Sessions\n\n")
	sb.WriteString("| Date | Name | Duration | Sets | Volume |\n")
	sb.WriteString("|------|------|----------|------|--------|\n")
	for _, ws := range sessions {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d min | %d | %.1f kg |\n",
			ws.Time().Format("2006-01-02 15:04"),
			ws.Name, ws.Duration/60, ws.SetCount(), ws.TotalVolume))
	}
	sb.WriteString("\n")

	for _, ws := range sessions {
		sb.WriteString(fmt.Sprintf("### %s - %s\n\n", ws.Time().Format("2006-01-02"), ws.Name))
		sb.WriteString("| Exercise | Set | Reps | Weight | Drop |\n")
		sb.WriteString("|----------|-----|------|--------|------|\n")
		for _, l := range ws.Exercises {
			name, ok := names[l.ExerciseID]
			if !ok {
				name = models.UnknownExerciseLabel
			}
			for i, set := range l.Sets {
				drop := ""
				if set.IsDropset {
					drop = "yes"
				}
				sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.1f kg | %s |\n",
					name, i+1, set.Reps, set.Weight, drop))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(s BlobStore, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return ImportData(s, &exportData)
}

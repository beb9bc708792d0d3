// ABOUTME: MCP tool implementations for the exercise library, templates, and history.
// ABOUTME: Each tool delegates to the tracker so state is written through.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/progress"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List exercises in the catalog, optionally filtered by muscle group",
	}, s.handleListExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add a custom exercise to the catalog",
	}, s.handleAddExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "archive_exercise",
		Description: "Archive an exercise, or restore it with restore=true",
	}, s.handleArchiveExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_favorite",
		Description: "Add or remove an exercise from favorites (max 4)",
	}, s.handleToggleFavorite)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_templates",
		Description: "List workout templates with their planned exercises",
	}, s.handleListTemplates)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_template",
		Description: "Create or update a workout template (max 10)",
	}, s.handleSaveTemplate)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_template",
		Description: "Delete a workout template by ID or name",
	}, s.handleDeleteTemplate)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_session",
		Description: "Record a completed workout session after the fact",
	}, s.handleLogSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_history",
		Description: "List completed sessions, most recent first, optionally filtered by exercise and day",
	}, s.handleListHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_session",
		Description: "Get a completed session by ID or ID prefix",
	}, s.handleGetSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a completed session by ID or ID prefix",
	}, s.handleDeleteSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_pr",
		Description: "Get the personal record (heaviest set) for an exercise",
	}, s.handleGetPR)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_progress",
		Description: "Get the per-session progress series for an exercise",
	}, s.handleGetProgress)
}

// Tool input/output types

type listExercisesInput struct {
	MuscleGroup     string `json:"muscle_group,omitempty" jsonschema:"Filter by muscle group (chest, back, legs, shoulders, arms, core)"`
	IncludeArchived bool   `json:"include_archived,omitempty" jsonschema:"Include archived exercises"`
}

type addExerciseInput struct {
	Name        string `json:"name" jsonschema:"Exercise name"`
	MuscleGroup string `json:"muscle_group" jsonschema:"Muscle group (chest, back, legs, shoulders, arms, core)"`
	Equipment   string `json:"equipment" jsonschema:"Equipment (barbell, dumbbell, machine)"`
}

type exerciseOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type archiveExerciseInput struct {
	ID      string `json:"id" jsonschema:"Exercise ID"`
	Restore bool   `json:"restore,omitempty" jsonschema:"Restore instead of archive"`
}

type exerciseIDInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise ID"`
}

type favoriteOutput struct {
	Outcome   string   `json:"outcome"`
	Favorites []string `json:"favorites"`
	Message   string   `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type slotInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise ID"`
	Sets       int    `json:"sets,omitempty" jsonschema:"Target sets (default 3)"`
	Reps       string `json:"reps,omitempty" jsonschema:"Target rep range such as 8-12"`
	Superset   bool   `json:"superset,omitempty" jsonschema:"Group with the next slot"`
}

type saveTemplateInput struct {
	ID        string      `json:"id,omitempty" jsonschema:"Template ID to update; omit to create"`
	Name      string      `json:"name" jsonschema:"Template name"`
	Exercises []slotInput `json:"exercises,omitempty" jsonschema:"Ordered planned exercises"`
}

type templateOutput struct {
	ID       string `json:"id,omitempty"`
	Outcome  string `json:"outcome"`
	Message  string `json:"message"`
	Template any    `json:"template,omitempty"`
}

type refInput struct {
	ID string `json:"id" jsonschema:"ID or ID prefix"`
}

type setInput struct {
	Reps    int     `json:"reps" jsonschema:"Repetitions"`
	Weight  float64 `json:"weight" jsonschema:"Weight in kg"`
	Dropset bool    `json:"dropset,omitempty" jsonschema:"Drop set"`
}

type exerciseLogInput struct {
	ExerciseID string     `json:"exercise_id" jsonschema:"Exercise ID"`
	Sets       []setInput `json:"sets" jsonschema:"Sets performed"`
	Notes      string     `json:"notes,omitempty" jsonschema:"Notes"`
}

type logSessionInput struct {
	Name            string             `json:"name,omitempty" jsonschema:"Session name"`
	Date            string             `json:"date,omitempty" jsonschema:"When it happened (RFC 3339 or YYYY-MM-DD HH:MM), defaults to now"`
	DurationMinutes int                `json:"duration_minutes,omitempty" jsonschema:"Duration in minutes"`
	Exercises       []exerciseLogInput `json:"exercises" jsonschema:"Exercises performed"`
}

type sessionOutput struct {
	ID          string  `json:"id,omitempty"`
	TotalVolume float64 `json:"total_volume"`
	Message     string  `json:"message"`
}

type listHistoryInput struct {
	ExerciseID string `json:"exercise_id,omitempty" jsonschema:"Only sessions that include this exercise"`
	Date       string `json:"date,omitempty" jsonschema:"Only sessions on this day (YYYY-MM-DD)"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type prOutput struct {
	ExerciseID string  `json:"exercise_id"`
	Exercise   string  `json:"exercise"`
	Found      bool    `json:"found"`
	Weight     float64 `json:"weight,omitempty"`
	Reps       int     `json:"reps,omitempty"`
	Message    string  `json:"message"`
}

type progressInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise ID"`
	Metric     string `json:"metric,omitempty" jsonschema:"weight (default) or volume"`
}

type progressOutput struct {
	ExerciseID string           `json:"exercise_id"`
	Exercise   string           `json:"exercise"`
	Metric     string           `json:"metric"`
	Points     []progress.Point `json:"points"`
	Values     []progress.Value `json:"values"`
}

// Tool handlers

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, any, error) {
	var exercises []models.Exercise
	switch {
	case input.MuscleGroup != "":
		mg, ok := models.ParseMuscleGroup(input.MuscleGroup)
		if !ok {
			return nil, nil, fmt.Errorf("unknown muscle group: %s", input.MuscleGroup)
		}
		exercises = s.tracker.ExercisesByMuscleGroup(mg)
	case input.IncludeArchived:
		exercises = s.tracker.Exercises()
	default:
		exercises = s.tracker.ActiveExercises()
	}

	if len(exercises) == 0 {
		return nil, map[string]interface{}{"message": "No exercises found."}, nil
	}
	return nil, map[string]interface{}{"exercises": exercises}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	mg, ok := models.ParseMuscleGroup(input.MuscleGroup)
	if !ok {
		return nil, exerciseOutput{}, fmt.Errorf("unknown muscle group: %s", input.MuscleGroup)
	}
	eq, ok := models.ParseEquipment(input.Equipment)
	if !ok {
		return nil, exerciseOutput{}, fmt.Errorf("unknown equipment: %s", input.Equipment)
	}

	ex, err := s.tracker.AddExercise(input.Name, mg, eq)
	if err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to add exercise: %w", err)
	}

	return nil, exerciseOutput{
		ID:      ex.ID,
		Name:    ex.Name,
		Message: fmt.Sprintf("Added %s (%s, %s)", ex.Name, mg.Name(), eq.Name()),
	}, nil
}

func (s *Server) handleArchiveExercise(ctx context.Context, req *mcp.CallToolRequest, input archiveExerciseInput) (*mcp.CallToolResult, simpleOutput, error) {
	if input.Restore {
		if err := s.tracker.RestoreExercise(input.ID); err != nil {
			return nil, simpleOutput{}, fmt.Errorf("failed to restore exercise: %w", err)
		}
		return nil, simpleOutput{Message: fmt.Sprintf("Restored %s", s.tracker.ExerciseName(input.ID))}, nil
	}

	if err := s.tracker.ArchiveExercise(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to archive exercise: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Archived %s", s.tracker.ExerciseName(input.ID))}, nil
}

func (s *Server) handleToggleFavorite(ctx context.Context, req *mcp.CallToolRequest, input exerciseIDInput) (*mcp.CallToolResult, favoriteOutput, error) {
	outcome, err := s.tracker.ToggleFavorite(input.ExerciseID)
	if err != nil {
		return nil, favoriteOutput{}, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	settings := s.tracker.Settings()
	msg := fmt.Sprintf("Favorites updated (%d/%d)", len(settings.FavoriteExerciseIDs), models.MaxFavorites)
	if outcome == models.Rejected {
		msg = fmt.Sprintf("Not added: favorites are limited to %d active exercises", models.MaxFavorites)
	}
	return nil, favoriteOutput{
		Outcome:   outcome.String(),
		Favorites: settings.FavoriteExerciseIDs,
		Message:   msg,
	}, nil
}

func (s *Server) handleListTemplates(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	templates := s.tracker.Templates()
	if len(templates) == 0 {
		return nil, map[string]interface{}{"message": "No templates found."}, nil
	}
	return nil, map[string]interface{}{"templates": templates}, nil
}

func (s *Server) handleSaveTemplate(ctx context.Context, req *mcp.CallToolRequest, input saveTemplateInput) (*mcp.CallToolResult, templateOutput, error) {
	tmpl := models.WorkoutTemplate{ID: input.ID, Name: input.Name, Exercises: []models.PlannedExercise{}}
	for _, slot := range input.Exercises {
		p := models.NewPlannedExercise(slot.ExerciseID)
		if slot.Sets > 0 {
			p.Sets = slot.Sets
		}
		if slot.Reps != "" {
			p.Reps = slot.Reps
		}
		p.IsSuperset = slot.Superset
		tmpl.Exercises = append(tmpl.Exercises, p)
	}

	saved, outcome, err := s.tracker.SaveTemplate(tmpl)
	if err != nil {
		return nil, templateOutput{}, fmt.Errorf("failed to save template: %w", err)
	}
	if outcome == models.Rejected {
		return nil, templateOutput{
			Outcome: outcome.String(),
			Message: "Template limit reached: delete one before creating another",
		}, nil
	}

	return nil, templateOutput{
		ID:       saved.ID,
		Outcome:  outcome.String(),
		Message:  fmt.Sprintf("Saved template %s with %d exercises", saved.Name, len(saved.Exercises)),
		Template: saved,
	}, nil
}

func (s *Server) handleDeleteTemplate(ctx context.Context, req *mcp.CallToolRequest, input refInput) (*mcp.CallToolResult, simpleOutput, error) {
	tmpl, err := s.tracker.Template(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("template not found: %s", input.ID)
	}
	if err := s.tracker.DeleteTemplate(tmpl.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete template: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted template: %s", tmpl.Name)}, nil
}

func (s *Server) handleLogSession(ctx context.Context, req *mcp.CallToolRequest, input logSessionInput) (*mcp.CallToolResult, sessionOutput, error) {
	date := time.Now()
	if input.Date != "" {
		parsed, err := parseTime(input.Date)
		if err != nil {
			return nil, sessionOutput{}, err
		}
		date = parsed
	}

	logs := make([]models.ExerciseLog, 0, len(input.Exercises))
	for _, ex := range input.Exercises {
		l := models.ExerciseLog{ExerciseID: ex.ExerciseID, Notes: ex.Notes, Sets: []models.SetLog{}}
		for _, set := range ex.Sets {
			l.Sets = append(l.Sets, models.SetLog{Reps: set.Reps, Weight: set.Weight, IsDropset: set.Dropset})
		}
		logs = append(logs, l)
	}

	ws, err := s.tracker.LogSession(input.Name, date, input.DurationMinutes*60, logs)
	if err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to log session: %w", err)
	}
	if ws == nil {
		return nil, sessionOutput{Message: "Nothing logged: no sets were given"}, nil
	}

	return nil, sessionOutput{
		ID:          ws.ID,
		TotalVolume: ws.TotalVolume,
		Message:     fmt.Sprintf("Logged %s: %d sets, %.1f kg volume (ID: %s)", ws.Name, ws.SetCount(), ws.TotalVolume, shortID(ws.ID)),
	}, nil
}

func (s *Server) handleListHistory(ctx context.Context, req *mcp.CallToolRequest, input listHistoryInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	filter := progress.Filter{ExerciseID: input.ExerciseID}
	if input.Date != "" {
		day, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", input.Date)
		}
		filter.Day = &day
	}

	sessions := s.tracker.FilterHistory(filter)
	if len(sessions) == 0 {
		return nil, map[string]interface{}{"message": "No sessions found."}, nil
	}
	if len(sessions) > input.Limit {
		sessions = sessions[:input.Limit]
	}
	return nil, map[string]interface{}{"sessions": sessions}, nil
}

func (s *Server) handleGetSession(ctx context.Context, req *mcp.CallToolRequest, input refInput) (*mcp.CallToolResult, any, error) {
	ws, err := s.tracker.Session(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("session not found: %s", input.ID)
	}

	exercises := make([]map[string]interface{}, 0, len(ws.Exercises))
	for _, l := range ws.Exercises {
		exercises = append(exercises, map[string]interface{}{
			"exercise_id": l.ExerciseID,
			"exercise":    s.tracker.ExerciseName(l.ExerciseID),
			"sets":        l.Sets,
			"volume":      l.Volume(),
		})
	}

	return nil, map[string]interface{}{
		"id":           ws.ID,
		"name":         ws.Name,
		"date":         ws.Time().Format(time.RFC3339),
		"duration":     ws.Duration,
		"total_volume": ws.TotalVolume,
		"exercises":    exercises,
	}, nil
}

func (s *Server) handleDeleteSession(ctx context.Context, req *mcp.CallToolRequest, input refInput) (*mcp.CallToolResult, simpleOutput, error) {
	ws, err := s.tracker.DeleteSession(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete session: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted session: %s (%s)", ws.Name, ws.Time().Format("2006-01-02"))}, nil
}

func (s *Server) handleGetPR(ctx context.Context, req *mcp.CallToolRequest, input exerciseIDInput) (*mcp.CallToolResult, prOutput, error) {
	ex, ok := s.tracker.Exercise(input.ExerciseID)
	if !ok {
		return nil, prOutput{}, fmt.Errorf("exercise not found: %s", input.ExerciseID)
	}

	pr, found := s.tracker.PR(ex.ID)
	out := prOutput{ExerciseID: ex.ID, Exercise: ex.Name, Found: found}
	if !found {
		out.Message = fmt.Sprintf("No sets logged for %s yet", ex.Name)
		return nil, out, nil
	}
	out.Weight = pr.Weight
	out.Reps = pr.Reps
	out.Message = fmt.Sprintf("%s PR: %.1f kg x %d", ex.Name, pr.Weight, pr.Reps)
	return nil, out, nil
}

func (s *Server) handleGetProgress(ctx context.Context, req *mcp.CallToolRequest, input progressInput) (*mcp.CallToolResult, progressOutput, error) {
	ex, ok := s.tracker.Exercise(input.ExerciseID)
	if !ok {
		return nil, progressOutput{}, fmt.Errorf("exercise not found: %s", input.ExerciseID)
	}

	metric := progress.MaxWeight
	if input.Metric != "" {
		m, ok := progress.ParseMetric(strings.ToLower(input.Metric))
		if !ok {
			return nil, progressOutput{}, fmt.Errorf("unknown metric: %s", input.Metric)
		}
		metric = m
	}

	points := s.tracker.Progress(ex.ID)
	return nil, progressOutput{
		ExerciseID: ex.ID,
		Exercise:   ex.Name,
		Metric:     metric.String(),
		Points:     points,
		Values:     progress.ChartValues(points, metric),
	}, nil
}

// parseTime accepts RFC 3339 or a local "YYYY-MM-DD HH:MM".
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func shortID(id string) string {
	if i := strings.LastIndex(id, "_"); i >= 0 && len(id) > i+9 {
		return id[i+1 : i+9]
	}
	return id
}

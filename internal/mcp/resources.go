// ABOUTME: MCP resource implementations for lift.
// ABOUTME: Provides lift://recent, lift://today, lift://summary, and lift://exercises.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/lift/internal/progress"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// lift://recent - Last 10 sessions
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "lift://recent",
		Name:        "Recent Workouts",
		Description: "Last 10 completed sessions, most recent first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// lift://today - Sessions completed today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "lift://today",
		Name:        "Today's Workouts",
		Description: "Sessions completed today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// lift://summary - Totals, favorite PRs, templates, and the live workout
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "lift://summary",
		Name:        "Training Summary",
		Description: "Overall totals, personal records for favorites, templates, and any workout in progress",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	// lift://exercises - Active catalog grouped by muscle group
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "lift://exercises",
		Name:        "Exercise Catalog",
		Description: "Active exercises grouped by muscle group",
		MIMEType:    "application/json",
	}, s.handleExercisesResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	sessions := s.tracker.FilterHistory(progress.Filter{})
	if len(sessions) > 10 {
		sessions = sessions[:10]
	}
	return jsonResource("lift://recent", map[string]interface{}{
		"sessions": sessions,
	})
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := time.Now()
	sessions := s.tracker.FilterHistory(progress.Filter{Day: &today})

	var volume float64
	for _, ws := range sessions {
		volume += ws.TotalVolume
	}

	return jsonResource("lift://today", map[string]interface{}{
		"date":     today.Format("2006-01-02"),
		"sessions": sessions,
		"counts": map[string]interface{}{
			"sessions": len(sessions),
			"volume":   volume,
		},
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	summary := s.tracker.Summary()

	records := make(map[string]interface{})
	for _, ex := range s.tracker.Favorites() {
		if pr, ok := s.tracker.PR(ex.ID); ok {
			records[ex.Name] = map[string]interface{}{
				"weight": pr.Weight,
				"reps":   pr.Reps,
			}
		}
	}

	templates := make([]map[string]interface{}, 0)
	for _, t := range s.tracker.Templates() {
		templates = append(templates, map[string]interface{}{
			"id":        t.ID,
			"name":      t.Name,
			"exercises": len(t.Exercises),
		})
	}

	result := map[string]interface{}{
		"generated_at":   time.Now().Format(time.RFC3339),
		"profile":        s.tracker.Settings().Name,
		"totals":         summary,
		"favorite_prs":   records,
		"templates":      templates,
		"active_workout": nil,
	}
	if summary.LastSession > 0 {
		result["last_session"] = time.UnixMilli(summary.LastSession).Format(time.RFC3339)
	}
	if ws := s.tracker.ActiveSession(); ws != nil {
		if status, err := s.status(ws, ""); err == nil {
			result["active_workout"] = status
		}
	}

	return jsonResource("lift://summary", result)
}

func (s *Server) handleExercisesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	groups := make(map[string]interface{})
	for _, ex := range s.tracker.ActiveExercises() {
		name := ex.MuscleGroup.Name()
		list, _ := groups[name].([]map[string]interface{})
		groups[name] = append(list, map[string]interface{}{
			"id":        ex.ID,
			"name":      ex.Name,
			"equipment": ex.Equipment.Name(),
			"custom":    ex.IsCustom,
		})
	}
	return jsonResource("lift://exercises", groups)
}

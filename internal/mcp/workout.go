// ABOUTME: MCP tools that drive the live workout session.
// ABOUTME: Start, log sets, move between exercises, and finish or abandon.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var errNoWorkout = errors.New("no workout in progress: call start_workout first")

func (s *Server) registerWorkoutTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_workout",
		Description: "Start a live workout from a template, or a freestyle workout when no template is given",
	}, s.handleStartWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "workout_status",
		Description: "Show the current exercise and logged sets of the live workout",
	}, s.handleWorkoutStatus)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_set",
		Description: "Log a set on the current exercise; reps and weight default to the previous set",
	}, s.handleAddSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "next_exercise",
		Description: "Move to the next exercise of a templated workout",
	}, s.handleNextExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "choose_exercise",
		Description: "Pick the next exercise in a freestyle workout",
	}, s.handleChooseExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_workout",
		Description: "Finish the live workout and save it to history; workouts without sets are discarded",
	}, s.handleFinishWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "exit_workout",
		Description: "Abandon the live workout without saving",
	}, s.handleExitWorkout)
}

type startWorkoutInput struct {
	Template string `json:"template,omitempty" jsonschema:"Template ID or name; omit for freestyle"`
}

type addSetInput struct {
	Reps    *int     `json:"reps,omitempty" jsonschema:"Repetitions"`
	Weight  *float64 `json:"weight,omitempty" jsonschema:"Weight in kg"`
	Dropset bool     `json:"dropset,omitempty" jsonschema:"Mark as a drop set"`
}

type workoutStatus struct {
	Name      string          `json:"name"`
	Mode      string          `json:"mode"`
	Elapsed   string          `json:"elapsed"`
	Position  int             `json:"position"`
	Total     int             `json:"total"`
	Selecting bool            `json:"selecting"`
	Exercise  string          `json:"exercise,omitempty"`
	Target    string          `json:"target,omitempty"`
	Sets      []models.SetLog `json:"sets"`
	Message   string          `json:"message,omitempty"`
}

func (s *Server) active() (*session.Session, error) {
	if ws := s.tracker.ActiveSession(); ws != nil {
		return ws, nil
	}
	return nil, errNoWorkout
}

func (s *Server) status(ws *session.Session, msg string) (workoutStatus, error) {
	snap, err := ws.Current()
	if err != nil {
		return workoutStatus{}, err
	}

	out := workoutStatus{
		Name:      snap.Name,
		Mode:      snap.Mode.String(),
		Elapsed:   session.FormatElapsed(snap.Elapsed),
		Position:  snap.Position + 1,
		Total:     snap.Total,
		Selecting: snap.Selecting,
		Sets:      []models.SetLog{},
		Message:   msg,
	}
	if snap.Slot != nil && !snap.Selecting {
		out.Exercise = s.tracker.ExerciseName(snap.Slot.ExerciseID)
		out.Target = fmt.Sprintf("%d x %s", snap.Slot.Sets, snap.Slot.Reps)
	}
	if snap.Log != nil {
		out.Sets = snap.Log.Sets
	}
	return out, nil
}

func (s *Server) handleStartWorkout(ctx context.Context, req *mcp.CallToolRequest, input startWorkoutInput) (*mcp.CallToolResult, workoutStatus, error) {
	var (
		ws  *session.Session
		err error
	)
	if input.Template == "" {
		ws, err = s.tracker.StartFreestyle()
	} else {
		ws, err = s.tracker.StartTemplate(input.Template)
	}
	if err != nil {
		return nil, workoutStatus{}, fmt.Errorf("failed to start workout: %w", err)
	}

	out, err := s.status(ws, fmt.Sprintf("Started %s", ws.Name()))
	return nil, out, err
}

func (s *Server) handleWorkoutStatus(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, workoutStatus, error) {
	ws, err := s.active()
	if err != nil {
		return nil, workoutStatus{}, err
	}
	out, err := s.status(ws, "")
	return nil, out, err
}

func (s *Server) handleAddSet(ctx context.Context, req *mcp.CallToolRequest, input addSetInput) (*mcp.CallToolResult, workoutStatus, error) {
	ws, err := s.active()
	if err != nil {
		return nil, workoutStatus{}, err
	}

	if _, err := ws.AddSet(input.Dropset); err != nil {
		return nil, workoutStatus{}, fmt.Errorf("failed to add set: %w", err)
	}
	snap, err := ws.Current()
	if err != nil {
		return nil, workoutStatus{}, err
	}
	idx := len(snap.Log.Sets) - 1

	if input.Reps != nil {
		if _, err := ws.SetReps(idx, *input.Reps); err != nil {
			return nil, workoutStatus{}, err
		}
	}
	if input.Weight != nil {
		if _, err := ws.SetWeight(idx, *input.Weight); err != nil {
			return nil, workoutStatus{}, err
		}
	}

	out, err := s.status(ws, fmt.Sprintf("Logged set %d", idx+1))
	return nil, out, err
}

func (s *Server) handleNextExercise(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, workoutStatus, error) {
	ws, err := s.active()
	if err != nil {
		return nil, workoutStatus{}, err
	}
	if err := ws.Advance(); err != nil {
		return nil, workoutStatus{}, fmt.Errorf("failed to advance: %w", err)
	}
	out, err := s.status(ws, "")
	return nil, out, err
}

func (s *Server) handleChooseExercise(ctx context.Context, req *mcp.CallToolRequest, input exerciseIDInput) (*mcp.CallToolResult, workoutStatus, error) {
	ws, err := s.active()
	if err != nil {
		return nil, workoutStatus{}, err
	}

	// Validate before RequestExerciseChange moves the cursor onto a placeholder.
	ex, ok := s.tracker.Exercise(input.ExerciseID)
	if !ok {
		return nil, workoutStatus{}, fmt.Errorf("failed to choose exercise: %s: %w", input.ExerciseID, models.ErrExerciseNotFound)
	}
	if ex.IsArchived {
		return nil, workoutStatus{}, fmt.Errorf("failed to choose exercise: %s: %w", ex.Name, models.ErrExerciseArchived)
	}

	if err := ws.RequestExerciseChange(); err != nil {
		return nil, workoutStatus{}, fmt.Errorf("failed to change exercise: %w", err)
	}
	if err := ws.ChooseExercise(input.ExerciseID); err != nil {
		return nil, workoutStatus{}, fmt.Errorf("failed to choose exercise: %w", err)
	}
	out, err := s.status(ws, "")
	return nil, out, err
}

func (s *Server) handleFinishWorkout(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, sessionOutput, error) {
	ws, err := s.active()
	if err != nil {
		return nil, sessionOutput{}, err
	}

	saved, err := ws.Finish()
	if err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to finish workout: %w", err)
	}
	if saved == nil {
		return nil, sessionOutput{Message: "Workout discarded: no sets were logged"}, nil
	}

	return nil, sessionOutput{
		ID:          saved.ID,
		TotalVolume: saved.TotalVolume,
		Message: fmt.Sprintf("Saved %s: %d exercises, %d sets, %.1f kg volume in %s",
			saved.Name, len(saved.Exercises), saved.SetCount(), saved.TotalVolume, session.FormatElapsed(saved.Duration)),
	}, nil
}

func (s *Server) handleExitWorkout(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, simpleOutput, error) {
	ws, err := s.active()
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := ws.Exit(); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: "Workout abandoned"}, nil
}

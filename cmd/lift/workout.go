// ABOUTME: CLI commands for training sessions.
// ABOUTME: Supports live templated or freestyle workouts and logging past sessions.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/progress"
	"github.com/harperreed/lift/internal/session"
	"github.com/spf13/cobra"
)

var (
	logAt       string
	logName     string
	logDuration int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Train and log workouts",
	Long: `Run a live workout or record one after the fact.

LIVE WORKOUTS:

  lift workout start push      # Follow the "push" template
  lift workout start           # Freestyle: pick exercises as you go

  While training, type commands at the prompt:
    set 8 60     log 8 reps at 60 kg (plain 'set' repeats the last set)
    drop 10 40   log a drop set
    edit 2 reps 6
    next         move to the next template exercise
    pick squat   choose the next freestyle exercise
    finish       save the workout
    quit         abandon it

  Exercises without any sets are left out of the saved session. A workout
  with no sets at all is discarded.

PAST WORKOUTS:

  lift workout log "squat:5x100,5x110" "ex8:10x120" --at "2025-01-31 08:00"`,
}

var workoutStartCmd = &cobra.Command{
	Use:   "start [template]",
	Short: "Start a live workout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			ws  *session.Session
			err error
		)
		if len(args) == 0 {
			ws, err = trk.StartFreestyle()
		} else {
			ws, err = trk.StartTemplate(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to start workout: %w", err)
		}

		var clock lapClock
		if lt, ok := ws.LapTimer(); ok {
			clock = lt
		}
		saved, err := runWorkout(ws, trk, clock, cmd.InOrStdin(), os.Stdout)
		if err != nil {
			return fmt.Errorf("workout failed: %w", err)
		}
		if saved == nil {
			return nil
		}
		printSaved(*saved)
		return nil
	},
}

var workoutLogCmd = &cobra.Command{
	Use:   "log <exercise:sets>...",
	Short: "Record a completed workout",
	Long: `Record a workout you already did.

Each argument is an exercise followed by its sets, REPSxWEIGHT separated by
commas. Add a trailing "d" to mark a drop set.

Examples:
  lift workout log "squat:5x100,5x110,8x80d"
  lift workout log ex1:8x60,8x60 ex7:10,8,6 --name Pull --duration 45
  lift workout log "Curl Biceps:12x14" --at "2025-01-31 18:30"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now()
		if logAt != "" {
			t, err := parseTime(logAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", logAt)
			}
			date = t
		}

		logs := make([]models.ExerciseLog, 0, len(args))
		for _, arg := range args {
			l, err := parseExerciseLog(arg)
			if err != nil {
				return err
			}
			logs = append(logs, l)
		}

		saved, err := trk.LogSession(logName, date, logDuration*60, logs)
		if err != nil {
			return fmt.Errorf("failed to log workout: %w", err)
		}
		if saved == nil {
			color.Yellow("⚠ Nothing logged: no sets given")
			return nil
		}
		printSaved(*saved)
		return nil
	},
}

// parseExerciseLog parses "exercise:set,set,...".
func parseExerciseLog(arg string) (models.ExerciseLog, error) {
	i := strings.LastIndex(arg, ":")
	if i < 0 {
		return models.ExerciseLog{}, fmt.Errorf("invalid entry %q (use exercise:REPSxWEIGHT,...)", arg)
	}
	ex, err := resolveExercise(trk, arg[:i], trk.ActiveExercises())
	if err != nil {
		return models.ExerciseLog{}, err
	}

	l := models.ExerciseLog{ExerciseID: ex.ID, Sets: []models.SetLog{}}
	for _, spec := range strings.Split(arg[i+1:], ",") {
		if strings.TrimSpace(spec) == "" {
			continue
		}
		set, err := parseSetSpec(spec)
		if err != nil {
			return models.ExerciseLog{}, err
		}
		l.Sets = append(l.Sets, set)
	}
	return l, nil
}

func printSaved(ws models.WorkoutSession) {
	color.Green("✓ Saved %s", ws.Name)
	fmt.Printf("  %s %d exercises, %d sets, %s kg, %s\n",
		color.New(color.Faint).Sprint(shortID(ws.ID)),
		len(ws.Exercises), ws.SetCount(), formatWeight(ws.TotalVolume), formatDuration(ws.Duration))

	for _, id := range newRecords(trk.History(), ws) {
		pr, _ := trk.PR(id)
		color.Yellow("  ★ New PR: %s %s kg x %d", trk.ExerciseName(id), formatWeight(pr.Weight), pr.Reps)
	}
}

// newRecords lists exercises of ws whose record is set by ws itself:
// the record over all of history differs from the record without ws.
func newRecords(history []models.WorkoutSession, ws models.WorkoutSession) []string {
	var before []models.WorkoutSession
	for _, h := range history {
		if h.ID != ws.ID {
			before = append(before, h)
		}
	}

	var ids []string
	seen := make(map[string]bool)
	for _, l := range ws.Exercises {
		if seen[l.ExerciseID] {
			continue
		}
		seen[l.ExerciseID] = true
		now, _ := progress.PersonalRecord(history, l.ExerciseID)
		prev, had := progress.PersonalRecord(before, l.ExerciseID)
		if !had || now.Weight > prev.Weight {
			ids = append(ids, l.ExerciseID)
		}
	}
	return ids
}

func init() {
	workoutLogCmd.Flags().StringVar(&logAt, "at", "", "when it happened (YYYY-MM-DD HH:MM)")
	workoutLogCmd.Flags().StringVarP(&logName, "name", "n", "", "session name (default Freestyle)")
	workoutLogCmd.Flags().IntVarP(&logDuration, "duration", "d", 0, "duration in minutes")

	workoutCmd.AddCommand(workoutStartCmd)
	workoutCmd.AddCommand(workoutLogCmd)
	rootCmd.AddCommand(workoutCmd)
}

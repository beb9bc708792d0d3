// ABOUTME: CLI commands for completed sessions.
// ABOUTME: Lists history most recent first, shows one session, and deletes sessions.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/progress"
	"github.com/spf13/cobra"
)

var (
	historyExercise string
	historyDate     string
	historyLimit    int
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h", "ls", "list"},
	Short:   "List completed workouts",
	Long: `List completed workouts, most recent first.

OUTPUT FORMAT:

  Each line shows: ID  DATE  NAME  DURATION  SETS  VOLUME

  The ID is an 8-character prefix you can use with show and delete.

FILTERING:

  --exercise   Only sessions that include this exercise
  --date       Only sessions on this day (YYYY-MM-DD)

  Both filters can be combined.

EXAMPLES:

  lift history                          # Last 20 sessions
  lift history --exercise squat         # Sessions with squats
  lift history --date 2025-01-31        # Sessions on one day
  lift history show 1a2b3c4d            # Details of one session`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter progress.Filter
		if historyExercise != "" {
			ex, err := resolveExercise(trk, historyExercise, trk.Exercises())
			if err != nil {
				return err
			}
			filter.ExerciseID = ex.ID
		}
		if historyDate != "" {
			day, err := parseDay(historyDate)
			if err != nil {
				return err
			}
			filter.Day = &day
		}

		sessions := trk.FilterHistory(filter)
		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}
		if historyLimit > 0 && len(sessions) > historyLimit {
			sessions = sessions[:historyLimit]
		}

		faint := color.New(color.Faint)
		for _, ws := range sessions {
			fmt.Printf("%s %s %s %s %3d sets %s kg\n",
				faint.Sprint(shortID(ws.ID)),
				faint.Sprint(ws.Time().Format("2006-01-02 15:04")),
				padRight(truncate(ws.Name, 16), 16),
				padRight(formatDuration(ws.Duration), 7),
				ws.SetCount(),
				formatWeight(ws.TotalVolume))
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show session details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := trk.Session(args[0])
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}

		fmt.Printf("Session: %s\n", shortID(ws.ID))
		fmt.Printf("Name: %s\n", ws.Name)
		fmt.Printf("Date: %s\n", ws.Time().Format("2006-01-02 15:04"))
		fmt.Printf("Duration: %s\n", formatDuration(ws.Duration))
		fmt.Printf("Volume: %s kg\n", formatWeight(ws.TotalVolume))

		for _, l := range ws.Exercises {
			fmt.Printf("\n%s  %s\n", trk.ExerciseName(l.ExerciseID),
				color.New(color.Faint).Sprintf("%s kg", formatWeight(l.Volume())))
			for i, set := range l.Sets {
				fmt.Printf("  %s\n", formatSet(i, set))
			}
			if l.Notes != "" {
				fmt.Printf("  Notes: %s\n", l.Notes)
			}
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a completed session",
	Long: `Delete a completed session by its ID or ID prefix.

The ID prefix is shown in the first column of 'lift history' output.

CAUTION:

  This permanently deletes the session and its sets. Records and progress
  are recomputed without it. If the prefix matches multiple sessions, an
  error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := trk.DeleteSession(args[0])
		if err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		color.Green("✓ Deleted session")
		fmt.Printf("  %s %s %s\n",
			color.New(color.Faint).Sprint(shortID(ws.ID)),
			ws.Time().Format("2006-01-02"),
			ws.Name)
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyExercise, "exercise", "e", "", "filter by exercise")
	historyCmd.Flags().StringVarP(&historyDate, "date", "d", "", "filter by day (YYYY-MM-DD)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max number of results")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

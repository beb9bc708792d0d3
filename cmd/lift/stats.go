// ABOUTME: CLI commands for records and progress.
// ABOUTME: Shows personal records, per-session progress charts, and overall totals.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/progress"
	"github.com/spf13/cobra"
)

// chartWidth is the width of the longest progress bar.
const chartWidth = 40

var progressMetric string

var prCmd = &cobra.Command{
	Use:   "pr [exercise]",
	Short: "Show personal records",
	Long: `Show the heaviest set logged for an exercise.

Without an argument, records for every exercise you have trained are listed.
Ties on weight keep the earliest set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			ex, err := resolveExercise(trk, args[0], trk.Exercises())
			if err != nil {
				return err
			}
			pr, ok := trk.PR(ex.ID)
			if !ok {
				fmt.Printf("No sets logged for %s yet.\n", ex.Name)
				return nil
			}
			fmt.Printf("%s  %s kg x %d\n", ex.Name, formatWeight(pr.Weight), pr.Reps)
			return nil
		}

		found := false
		for _, ex := range trk.Exercises() {
			pr, ok := trk.PR(ex.ID)
			if !ok {
				continue
			}
			found = true
			fmt.Printf("%s %s kg x %d\n", padRight(ex.Name, 24), formatWeight(pr.Weight), pr.Reps)
		}
		if !found {
			fmt.Println("No records yet.")
		}
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress <exercise>",
	Short: "Chart an exercise's progress",
	Long: `Chart an exercise per session, oldest first.

METRICS:

  weight   Heaviest set of the session (default)
  volume   Total reps x weight of the session

A chart needs at least two sessions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, ok := progress.ParseMetric(strings.ToLower(progressMetric))
		if !ok {
			return fmt.Errorf("unknown metric: %s (use weight or volume)", progressMetric)
		}
		ex, err := resolveExercise(trk, args[0], trk.Exercises())
		if err != nil {
			return err
		}

		values := progress.ChartValues(trk.Progress(ex.ID), metric)
		if len(values) < 2 {
			fmt.Printf("Not enough data for %s yet (%d session).\n", ex.Name, len(values))
			return nil
		}

		fmt.Printf("%s (%s)\n\n", ex.Name, metric)
		fmt.Print(renderChart(values))
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show training totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := trk.Summary()
		fmt.Printf("Sessions: %d\n", s.Sessions)
		fmt.Printf("Sets: %d\n", s.Sets)
		fmt.Printf("Volume: %s kg\n", formatWeight(s.TotalVolume))
		fmt.Printf("Time: %s\n", formatDuration(s.TotalDuration))
		if s.LastSession > 0 {
			fmt.Printf("Last: %s\n", time.UnixMilli(s.LastSession).Format("2006-01-02"))
		}
		fmt.Println()
		printFavorites()
		return nil
	},
}

// renderChart draws one horizontal bar per value, scaled to the maximum.
func renderChart(values []progress.Value) string {
	var maxV float64
	for _, v := range values {
		if v.Value > maxV {
			maxV = v.Value
		}
	}

	var sb strings.Builder
	for _, v := range values {
		n := 0
		if maxV > 0 {
			n = int(v.Value / maxV * chartWidth)
		}
		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			time.UnixMilli(v.Date).Format("01-02"),
			color.CyanString(strings.Repeat("█", n))+strings.Repeat(" ", chartWidth-n),
			formatWeight(v.Value)))
	}
	return sb.String()
}

func init() {
	progressCmd.Flags().StringVarP(&progressMetric, "metric", "m", "weight", "weight or volume")

	rootCmd.AddCommand(prCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(summaryCmd)
}

// ABOUTME: CLI commands for workout templates.
// ABOUTME: Supports list, show, create, add-exercise, remove-exercise, rename, and delete.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/planner"
	"github.com/spf13/cobra"
)

var (
	slotSets     int
	slotReps     string
	slotSuperset bool
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"t", "tpl"},
	Short:   "Manage workout templates",
	Long: fmt.Sprintf(`Plan reusable workouts. You can keep up to %d templates.

Templates are referenced by name (case-insensitive) or ID prefix.
Each slot has target sets and a rep range; mark a slot with --superset to
group it with the next one.

EXAMPLES:

  lift template create Push ex1 ex4 ex10
  lift template add-exercise push "Curl Biceps" --sets 4 --reps 10-12
  lift template remove-exercise push 2
  lift template show push
  lift workout start push`, planner.MaxTemplates),
}

var templateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		templates := trk.Templates()
		if len(templates) == 0 {
			fmt.Println("No templates found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, t := range templates {
			names := make([]string, 0, len(t.Exercises))
			for _, p := range t.Exercises {
				names = append(names, trk.ExerciseName(p.ExerciseID))
			}
			fmt.Printf("%s %s %s\n",
				faint.Sprint(shortID(t.ID)),
				padRight(t.Name, 16),
				faint.Sprint(truncate(strings.Join(names, ", "), 60)))
		}
		fmt.Printf("\n%d/%d templates\n", len(templates), planner.MaxTemplates)
		return nil
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <template>",
	Short: "Show a template's exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := trk.Template(args[0])
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}

		fmt.Printf("Template: %s\n", t.Name)
		fmt.Printf("ID: %s\n", t.ID)
		if len(t.Exercises) == 0 {
			fmt.Println("\nNo exercises yet.")
			return nil
		}
		fmt.Println()
		for i, p := range t.Exercises {
			name := trk.ExerciseName(p.ExerciseID)
			if ex, ok := trk.Exercise(p.ExerciseID); ok && ex.IsArchived {
				name += color.New(color.Faint).Sprint(" (archived)")
			}
			link := ""
			if p.IsSuperset && i < len(t.Exercises)-1 {
				link = color.CyanString(" ┐ superset")
			}
			fmt.Printf("  %d. %s  %d x %s%s\n", i+1, padRight(name, 24), p.Sets, p.Reps, link)
		}
		return nil
	},
}

var templateCreateCmd = &cobra.Command{
	Use:   "create <name> [exercise...]",
	Short: "Create a template",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := models.NewWorkoutTemplate(args[0])
		for _, ref := range args[1:] {
			ex, err := resolveExercise(trk, ref, trk.ActiveExercises())
			if err != nil {
				return err
			}
			t.AddExercise(ex.ID)
		}
		return saveTemplate(*t, "Created")
	},
}

var templateAddExerciseCmd = &cobra.Command{
	Use:   "add-exercise <template> <exercise>",
	Short: "Append an exercise slot to a template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := trk.Template(args[0])
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}
		ex, err := resolveExercise(trk, args[1], trk.ActiveExercises())
		if err != nil {
			return err
		}

		slot := models.NewPlannedExercise(ex.ID)
		if slotSets > 0 {
			slot.Sets = slotSets
		}
		if slotReps != "" {
			slot.Reps = slotReps
		}
		slot.IsSuperset = slotSuperset
		t.Exercises = append(t.Exercises, slot)
		return saveTemplate(t, "Updated")
	},
}

var templateRemoveExerciseCmd = &cobra.Command{
	Use:   "remove-exercise <template> <slot-number>",
	Short: "Remove an exercise slot from a template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := trk.Template(args[0])
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid slot number: %s", args[1])
		}
		if err := t.RemoveExercise(n - 1); err != nil {
			return err
		}
		return saveTemplate(t, "Updated")
	},
}

var templateRenameCmd = &cobra.Command{
	Use:   "rename <template> <new-name>",
	Short: "Rename a template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := trk.Template(args[0])
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}
		t.Name = args[1]
		return saveTemplate(t, "Renamed")
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:     "delete <template>",
	Aliases: []string{"rm"},
	Short:   "Delete a template",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := trk.Template(args[0])
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}
		if err := trk.DeleteTemplate(t.ID); err != nil {
			return fmt.Errorf("failed to delete template: %w", err)
		}
		color.Green("✓ Deleted template %s", t.Name)
		return nil
	},
}

func saveTemplate(t models.WorkoutTemplate, verb string) error {
	saved, outcome, err := trk.SaveTemplate(t)
	if err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	if outcome == models.Rejected {
		color.Red("✗ Template limit reached (%d)", planner.MaxTemplates)
		fmt.Println("  Delete one first with 'lift template delete <template>'.")
		return nil
	}

	color.Green("✓ %s template %s", verb, saved.Name)
	fmt.Printf("  %s %d exercises\n", color.New(color.Faint).Sprint(shortID(saved.ID)), len(saved.Exercises))
	return nil
}

func init() {
	templateAddExerciseCmd.Flags().IntVarP(&slotSets, "sets", "s", 0, "target sets (default 3)")
	templateAddExerciseCmd.Flags().StringVarP(&slotReps, "reps", "r", "", "target rep range (default 8-12)")
	templateAddExerciseCmd.Flags().BoolVar(&slotSuperset, "superset", false, "group with the next exercise")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateCreateCmd)
	templateCmd.AddCommand(templateAddExerciseCmd)
	templateCmd.AddCommand(templateRemoveExerciseCmd)
	templateCmd.AddCommand(templateRenameCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	rootCmd.AddCommand(templateCmd)
}

// ABOUTME: CLI commands for the exercise catalog and favorites.
// ABOUTME: Supports list, add, edit, archive, restore, and favorite subcommands.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/library"
	"github.com/harperreed/lift/internal/models"
	"github.com/spf13/cobra"
)

var (
	exerciseMuscle    string
	exerciseEquipment string
	exerciseName      string
	exerciseArchived  bool
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage the exercise catalog",
	Long: `Browse and edit the exercise catalog.

Exercises can be referenced by ID (ex1, ex_custom_...), by the number shown
in 'lift exercise list', by name, or by a unique name prefix.

Archived exercises disappear from pickers and favorites but stay in your
history and templates. Restore them at any time.

MUSCLE GROUPS:  chest, back, legs, shoulders, arms, core
EQUIPMENT:      barbell, dumbbell, machine

EXAMPLES:

  lift exercise list --muscle legs
  lift exercise add "Hip Thrust" --muscle legs --equipment barbell
  lift exercise archive ex9
  lift exercise favorite squat`,
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		var exercises []models.Exercise
		switch {
		case exerciseArchived:
			exercises = trk.ArchivedExercises()
		case exerciseMuscle != "":
			mg, ok := models.ParseMuscleGroup(exerciseMuscle)
			if !ok {
				return fmt.Errorf("unknown muscle group: %s", exerciseMuscle)
			}
			exercises = trk.ExercisesByMuscleGroup(mg)
		default:
			exercises = trk.ActiveExercises()
		}

		if len(exercises) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		settings := trk.Settings()
		faint := color.New(color.Faint)
		for i, ex := range exercises {
			star := " "
			if settings.IsFavorite(ex.ID) {
				star = color.YellowString("★")
			}
			fmt.Printf("%3d %s %s %s %s %s\n",
				i+1, star,
				faint.Sprint(padRight(truncate(ex.ID, 18), 18)),
				padRight(ex.Name, 24),
				padRight(ex.MuscleGroup.Name(), 10),
				faint.Sprint(ex.Equipment.Name()))
		}
		return nil
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom exercise",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mg, ok := models.ParseMuscleGroup(exerciseMuscle)
		if !ok {
			return fmt.Errorf("unknown muscle group: %q (use chest, back, legs, shoulders, arms, core)", exerciseMuscle)
		}
		eq, ok := models.ParseEquipment(exerciseEquipment)
		if !ok {
			return fmt.Errorf("unknown equipment: %q (use barbell, dumbbell, machine)", exerciseEquipment)
		}

		ex, err := trk.AddExercise(strings.Join(args, " "), mg, eq)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added %s", ex.Name)
		fmt.Printf("  %s %s, %s\n", color.New(color.Faint).Sprint(ex.ID), mg.Name(), eq.Name())
		return nil
	},
}

var exerciseEditCmd = &cobra.Command{
	Use:   "edit <exercise>",
	Short: "Rename an exercise or change its muscle group or equipment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := resolveExercise(trk, args[0], trk.ActiveExercises())
		if err != nil {
			return err
		}

		var patch library.ExercisePatch
		if cmd.Flags().Changed("name") {
			patch.Name = &exerciseName
		}
		if cmd.Flags().Changed("muscle") {
			mg, ok := models.ParseMuscleGroup(exerciseMuscle)
			if !ok {
				return fmt.Errorf("unknown muscle group: %s", exerciseMuscle)
			}
			patch.MuscleGroup = &mg
		}
		if cmd.Flags().Changed("equipment") {
			eq, ok := models.ParseEquipment(exerciseEquipment)
			if !ok {
				return fmt.Errorf("unknown equipment: %s", exerciseEquipment)
			}
			patch.Equipment = &eq
		}
		if patch.Name == nil && patch.MuscleGroup == nil && patch.Equipment == nil {
			return fmt.Errorf("nothing to change: use --name, --muscle, or --equipment")
		}

		updated, err := trk.EditExercise(ex.ID, patch)
		if err != nil {
			return fmt.Errorf("failed to edit exercise: %w", err)
		}
		color.Green("✓ Updated %s", updated.Name)
		return nil
	},
}

var exerciseArchiveCmd = &cobra.Command{
	Use:   "archive <exercise>",
	Short: "Archive an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := resolveExercise(trk, args[0], trk.ActiveExercises())
		if err != nil {
			return err
		}
		if ex.IsArchived {
			color.Yellow("⚠ %s is already archived", ex.Name)
			return nil
		}
		if err := trk.ArchiveExercise(ex.ID); err != nil {
			return fmt.Errorf("failed to archive exercise: %w", err)
		}
		color.Green("✓ Archived %s", ex.Name)
		return nil
	},
}

var exerciseRestoreCmd = &cobra.Command{
	Use:   "restore <exercise>",
	Short: "Restore an archived exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := resolveExercise(trk, args[0], trk.ArchivedExercises())
		if err != nil {
			return err
		}
		if err := trk.RestoreExercise(ex.ID); err != nil {
			return fmt.Errorf("failed to restore exercise: %w", err)
		}
		color.Green("✓ Restored %s", ex.Name)
		return nil
	},
}

var exerciseFavoriteCmd = &cobra.Command{
	Use:     "favorite [exercise]",
	Aliases: []string{"fav"},
	Short:   "Toggle a favorite, or list favorites when no exercise is given",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			printFavorites()
			return nil
		}

		ex, err := resolveExercise(trk, args[0], trk.ActiveExercises())
		if err != nil {
			return err
		}
		wasFavorite := trk.Settings().IsFavorite(ex.ID)

		outcome, err := trk.ToggleFavorite(ex.ID)
		if err != nil {
			return fmt.Errorf("failed to toggle favorite: %w", err)
		}
		switch {
		case outcome == models.Rejected && ex.IsArchived:
			color.Red("✗ %s is archived and cannot be a favorite", ex.Name)
		case outcome == models.Rejected:
			color.Red("✗ Favorites are limited to %d exercises", models.MaxFavorites)
			fmt.Println("  Remove one first with 'lift exercise favorite <exercise>'.")
		case wasFavorite:
			color.Green("✓ Removed %s from favorites", ex.Name)
		default:
			color.Green("✓ Added %s to favorites", ex.Name)
		}
		return nil
	},
}

func printFavorites() {
	favorites := trk.Favorites()
	fmt.Printf("Favorites (%d/%d):\n", len(favorites), models.MaxFavorites)
	if len(favorites) == 0 {
		fmt.Println("  none")
	}
	for _, ex := range favorites {
		line := fmt.Sprintf("  %s %s", color.YellowString("★"), padRight(ex.Name, 24))
		if pr, ok := trk.PR(ex.ID); ok {
			line += color.New(color.Faint).Sprintf(" PR %s kg x %d", formatWeight(pr.Weight), pr.Reps)
		}
		fmt.Println(line)
	}
}

func init() {
	exerciseListCmd.Flags().StringVarP(&exerciseMuscle, "muscle", "m", "", "filter by muscle group")
	exerciseListCmd.Flags().BoolVar(&exerciseArchived, "archived", false, "list archived exercises")

	exerciseAddCmd.Flags().StringVarP(&exerciseMuscle, "muscle", "m", "", "muscle group (required)")
	exerciseAddCmd.Flags().StringVarP(&exerciseEquipment, "equipment", "q", "", "equipment (required)")
	_ = exerciseAddCmd.MarkFlagRequired("muscle")
	_ = exerciseAddCmd.MarkFlagRequired("equipment")

	exerciseEditCmd.Flags().StringVar(&exerciseName, "name", "", "new name")
	exerciseEditCmd.Flags().StringVarP(&exerciseMuscle, "muscle", "m", "", "new muscle group")
	exerciseEditCmd.Flags().StringVarP(&exerciseEquipment, "equipment", "q", "", "new equipment")

	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseEditCmd)
	exerciseCmd.AddCommand(exerciseArchiveCmd)
	exerciseCmd.AddCommand(exerciseRestoreCmd)
	exerciseCmd.AddCommand(exerciseFavoriteCmd)
	rootCmd.AddCommand(exerciseCmd)
}

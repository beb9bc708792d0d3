// ABOUTME: Line-oriented driver for a live workout session.
// ABOUTME: Reads commands, applies them to the session, and prints its state.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/session"
	"github.com/harperreed/lift/internal/tracker"
)

const runnerHelp = `Commands:
  set [reps] [weight]       log a set (s); copies the previous set by default
  drop [reps] [weight]      log a drop set (d)
  edit <set> <field> <val>  change reps or weight of a set (e)
  next                      move to the next exercise (n, templates only)
  pick <exercise>           choose the next exercise (p, freestyle only)
  list                      show exercises you can pick (l)
  status                    show the current exercise (st)
  finish                    save the workout (f)
  quit                      abandon without saving (q)`

// lapClock restarts a lap on every logged set so rest time can be shown.
type lapClock interface {
	Lap() int
	LapElapsed() int
}

type runner struct {
	ws    *session.Session
	trk   *tracker.Tracker
	clock lapClock
	out   io.Writer

	red   *color.Color
	green *color.Color
	faint *color.Color
}

// runWorkout drives ws from the lines in in until the workout is finished,
// abandoned, or in reaches EOF (which abandons it). It returns the saved
// session, or nil when nothing was saved. clock may be nil.
func runWorkout(ws *session.Session, t *tracker.Tracker, clock lapClock, in io.Reader, out io.Writer) (*models.WorkoutSession, error) {
	r := &runner{
		ws:    ws,
		trk:   t,
		clock: clock,
		out:   out,
		red:   color.New(color.FgRed),
		green: color.New(color.FgGreen),
		faint: color.New(color.Faint),
	}

	r.printStatus()
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		saved, done, err := r.dispatch(strings.ToLower(fields[0]), fields[1:])
		if done {
			return saved, err
		}
		if err != nil {
			r.red.Fprintf(out, "✗ %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		_ = ws.Exit()
		return nil, fmt.Errorf("read input: %w", err)
	}

	fmt.Fprintln(out)
	color.New(color.FgYellow).Fprintln(out, "⚠ Input closed, workout abandoned")
	return nil, ws.Exit()
}

func (r *runner) dispatch(verb string, args []string) (*models.WorkoutSession, bool, error) {
	switch verb {
	case "s", "set":
		return nil, false, r.addSet(false, args)
	case "d", "drop":
		return nil, false, r.addSet(true, args)
	case "e", "edit":
		return nil, false, r.edit(args)
	case "n", "next":
		if err := r.ws.Advance(); err != nil {
			return nil, false, err
		}
		r.printStatus()
	case "p", "pick":
		return nil, false, r.pick(args)
	case "l", "list":
		r.printChoices()
	case "st", "status":
		r.printStatus()
	case "f", "finish":
		saved, err := r.ws.Finish()
		return saved, true, err
	case "q", "quit", "exit":
		if err := r.ws.Exit(); err != nil {
			return nil, true, err
		}
		color.New(color.FgYellow).Fprintln(r.out, "⚠ Workout abandoned")
		return nil, true, nil
	case "h", "help", "?":
		fmt.Fprintln(r.out, runnerHelp)
	default:
		return nil, false, fmt.Errorf("unknown command %q (type help)", verb)
	}
	return nil, false, nil
}

func (r *runner) addSet(drop bool, args []string) error {
	set, err := r.ws.AddSet(drop)
	if err != nil {
		return err
	}
	snap, err := r.ws.Current()
	if err != nil {
		return err
	}
	idx := len(snap.Log.Sets) - 1

	if len(args) > 0 {
		if set, err = r.ws.EditSet(idx, "reps", args[0]); err != nil {
			return err
		}
	}
	if len(args) > 1 {
		if set, err = r.ws.EditSet(idx, "weight", args[1]); err != nil {
			return err
		}
	}

	rest := ""
	if r.clock != nil {
		rest = r.faint.Sprintf("  rest %s", session.FormatElapsed(r.clock.Lap()))
	}
	r.green.Fprintf(r.out, "✓ %s%s\n", formatSet(idx, set), rest)
	return nil
}

func (r *runner) edit(args []string) error {
	if len(args) != 3 {
		return errors.New("usage: edit <set> <reps|weight> <value>")
	}
	var n int
	if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil {
		return fmt.Errorf("invalid set number: %s", args[0])
	}
	set, err := r.ws.EditSet(n-1, args[1], args[2])
	if err != nil {
		return err
	}
	r.green.Fprintf(r.out, "✓ %s\n", formatSet(n-1, set))
	return nil
}

func (r *runner) pick(args []string) error {
	if len(args) == 0 {
		r.printChoices()
		return errors.New("usage: pick <exercise>")
	}
	ex, err := resolveExercise(r.trk, strings.Join(args, " "), r.trk.ActiveExercises())
	if err != nil {
		return err
	}
	if err := r.ws.RequestExerciseChange(); err != nil {
		return err
	}
	if err := r.ws.ChooseExercise(ex.ID); err != nil {
		return err
	}
	if r.clock != nil {
		r.clock.Lap()
	}
	r.printStatus()
	return nil
}

func (r *runner) printChoices() {
	settings := r.trk.Settings()
	for i, ex := range r.trk.ActiveExercises() {
		star := " "
		if settings.IsFavorite(ex.ID) {
			star = color.YellowString("★")
		}
		fmt.Fprintf(r.out, "%3d %s %s %s\n", i+1, star, padRight(ex.Name, 24), r.faint.Sprint(ex.MuscleGroup.Name()))
	}
}

func (r *runner) printStatus() {
	snap, err := r.ws.Current()
	if err != nil {
		r.red.Fprintf(r.out, "✗ %v\n", err)
		return
	}

	header := fmt.Sprintf("%s  %s", snap.Name, session.FormatElapsed(snap.Elapsed))
	if snap.Total > 0 {
		header = fmt.Sprintf("%s  [%d/%d]  %s", snap.Name, snap.Position+1, snap.Total, session.FormatElapsed(snap.Elapsed))
	}
	color.New(color.Bold).Fprintln(r.out, header)

	if snap.Selecting {
		fmt.Fprintln(r.out, "Choose an exercise with 'pick <exercise>' ('list' shows choices).")
		return
	}
	if snap.Slot == nil {
		fmt.Fprintln(r.out, "This workout has no exercises. Type 'finish' or 'quit'.")
		return
	}

	target := fmt.Sprintf("target %d x %s", snap.Slot.Sets, snap.Slot.Reps)
	if snap.Slot.IsSuperset && !snap.IsLast {
		target += ", superset with next"
	}
	fmt.Fprintf(r.out, "%s  %s\n", r.trk.ExerciseName(snap.Slot.ExerciseID), r.faint.Sprint(target))
	if pr, ok := r.trk.PR(snap.Slot.ExerciseID); ok {
		fmt.Fprintln(r.out, r.faint.Sprintf("PR %s kg x %d", formatWeight(pr.Weight), pr.Reps))
	}
	for i, set := range snap.Log.Sets {
		fmt.Fprintf(r.out, "  %s\n", formatSet(i, set))
	}
}

// ABOUTME: Shared parsing and formatting helpers for lift commands.
// ABOUTME: Time parsing, exercise lookup, set specs, and column padding.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/tracker"
)

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

// parseDay parses a YYYY-MM-DD date in local time.
func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// resolveExercise finds an exercise by id, list number, exact name, or
// unique name prefix, in that order. Numbers index the given list.
func resolveExercise(t *tracker.Tracker, ref string, list []models.Exercise) (models.Exercise, error) {
	ref = strings.TrimSpace(ref)
	if ex, ok := t.Exercise(ref); ok {
		return ex, nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(list) {
		return list[n-1], nil
	}

	var matches []models.Exercise
	for _, ex := range t.Exercises() {
		if strings.EqualFold(ex.Name, ref) {
			return ex, nil
		}
		if strings.HasPrefix(strings.ToLower(ex.Name), strings.ToLower(ref)) {
			matches = append(matches, ex)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Exercise{}, fmt.Errorf("exercise not found: %s", ref)
	default:
		return models.Exercise{}, fmt.Errorf("ambiguous exercise %q matches %d exercises", ref, len(matches))
	}
}

// parseSetSpec parses "REPSxWEIGHT" with an optional trailing "d" for a drop set,
// e.g. "8x60" or "12x40d". A bare number is reps at bodyweight.
func parseSetSpec(spec string) (models.SetLog, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	var set models.SetLog
	if strings.HasSuffix(s, "d") {
		set.IsDropset = true
		s = strings.TrimSuffix(s, "d")
	}

	repsStr, weightStr, found := strings.Cut(s, "x")
	reps, err := strconv.Atoi(repsStr)
	if err != nil || reps < 0 {
		return models.SetLog{}, fmt.Errorf("invalid set %q (use REPSxWEIGHT, e.g. 8x60)", spec)
	}
	set.Reps = reps
	if found {
		w, err := strconv.ParseFloat(weightStr, 64)
		if err != nil || w < 0 {
			return models.SetLog{}, fmt.Errorf("invalid weight in set %q", spec)
		}
		set.Weight = w
	}
	return set, nil
}

func formatSet(i int, s models.SetLog) string {
	drop := ""
	if s.IsDropset {
		drop = " (drop)"
	}
	return fmt.Sprintf("%d. %d x %s kg%s", i+1, s.Reps, formatWeight(s.Weight), drop)
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func formatDuration(seconds int) string {
	if seconds < 3600 {
		return fmt.Sprintf("%d min", seconds/60)
	}
	return fmt.Sprintf("%dh%02d", seconds/3600, seconds%3600/60)
}

// shortID returns the 8-character prefix shown in listings.
func shortID(id string) string {
	if i := strings.LastIndex(id, "_"); i >= 0 && len(id) > i+9 {
		return id[i+1 : i+9]
	}
	return id
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

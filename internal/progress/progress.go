// ABOUTME: Aggregation over the session archive: personal records and progress series.
// ABOUTME: Also produces chart values and overall training summaries.
package progress

import (
	"sort"
	"time"

	"github.com/harperreed/lift/internal/models"
)

// PersonalRecord returns the heaviest set logged for exerciseID. The first
// set seen at the top weight wins; a later set only replaces it with a
// strictly greater weight. ok is false when no set matches.
func PersonalRecord(history []models.WorkoutSession, exerciseID string) (pr models.PR, ok bool) {
	for _, ws := range history {
		for _, l := range ws.Exercises {
			if l.ExerciseID != exerciseID {
				continue
			}
			for _, set := range l.Sets {
				if !ok || set.Weight > pr.Weight {
					pr = models.PR{Weight: set.Weight, Reps: set.Reps}
					ok = true
				}
			}
		}
	}
	return pr, ok
}

// Point is one session's aggregate for an exercise.
type Point struct {
	Date        int64   `json:"date"` // epoch milliseconds
	MaxWeight   float64 `json:"maxWeight"`
	TotalVolume float64 `json:"totalVolume"`
}

// Time returns the point date in the local zone.
func (p Point) Time() time.Time {
	return time.UnixMilli(p.Date)
}

// Series returns one point per session that logged exerciseID, oldest first.
// Several logs of the same exercise in one session fold into one point.
func Series(history []models.WorkoutSession, exerciseID string) []Point {
	points := []Point{}
	for _, ws := range history {
		var (
			found  bool
			point  = Point{Date: ws.Date}
			weight float64
		)
		for _, l := range ws.Exercises {
			if l.ExerciseID != exerciseID {
				continue
			}
			if len(l.Sets) > 0 {
				if w := l.MaxWeight(); !found || w > weight {
					weight = w
				}
			}
			point.TotalVolume += l.Volume()
			found = true
		}
		if !found {
			continue
		}
		point.MaxWeight = weight
		points = append(points, point)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

// Metric selects which aggregate a chart plots.
type Metric int

const (
	MaxWeight Metric = iota
	Volume
)

// ParseMetric accepts "weight" or "volume".
func ParseMetric(s string) (Metric, bool) {
	switch s {
	case "weight", "max", "max_weight":
		return MaxWeight, true
	case "volume":
		return Volume, true
	}
	return 0, false
}

func (m Metric) String() string {
	if m == Volume {
		return "volume"
	}
	return "weight"
}

// Value is a chart sample.
type Value struct {
	Date  int64   `json:"date"`
	Value float64 `json:"value"`
}

// ChartValues maps points to the selected metric, keeping their order.
// Any minimum-point rule belongs to the renderer.
func ChartValues(points []Point, metric Metric) []Value {
	out := make([]Value, 0, len(points))
	for _, p := range points {
		v := p.MaxWeight
		if metric == Volume {
			v = p.TotalVolume
		}
		out = append(out, Value{Date: p.Date, Value: v})
	}
	return out
}

// Summary totals the whole archive.
type Summary struct {
	Sessions      int     `json:"sessions"`
	Sets          int     `json:"sets"`
	TotalVolume   float64 `json:"totalVolume"`
	TotalDuration int     `json:"totalDuration"` // seconds
	LastSession   int64   `json:"lastSession,omitempty"`
}

// Summarize totals sessions, sets, volume, and duration.
func Summarize(history []models.WorkoutSession) Summary {
	var s Summary
	for _, ws := range history {
		s.Sessions++
		s.Sets += ws.SetCount()
		s.TotalVolume += ws.TotalVolume
		s.TotalDuration += ws.Duration
		if ws.Date > s.LastSession {
			s.LastSession = ws.Date
		}
	}
	return s
}

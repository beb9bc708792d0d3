// ABOUTME: Elapsed-time collaborator for the active workout.
// ABOUTME: Stopwatch counts whole seconds on its own goroutine until stopped.
package session

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Timer measures the elapsed time of a session in seconds.
type Timer interface {
	Start()
	Elapsed() int
	Stop()
}

// LapTimer is a Timer that also splits the elapsed time into laps.
type LapTimer interface {
	Timer
	Lap() int
	LapElapsed() int
}

var _ LapTimer = (*Stopwatch)(nil)

// Stopwatch is a Timer that ticks once per interval. The count only grows;
// Stop ends the goroutine and waits for it.
type Stopwatch struct {
	interval time.Duration
	onTick   func(elapsed int)

	elapsed atomic.Int64
	lap     atomic.Int64

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	started bool
}

// NewStopwatch returns a 1 Hz stopwatch. onTick may be nil.
func NewStopwatch(onTick func(elapsed int)) *Stopwatch {
	return newStopwatch(time.Second, onTick)
}

func newStopwatch(interval time.Duration, onTick func(elapsed int)) *Stopwatch {
	return &Stopwatch{interval: interval, onTick: onTick}
}

// Start begins ticking. Starting twice is a no-op.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(s.stop, s.done)
}

func (s *Stopwatch) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			n := s.elapsed.Add(1)
			s.lap.Add(1)
			if s.onTick != nil {
				s.onTick(int(n))
			}
		}
	}
}

// Elapsed returns the number of ticks since Start.
func (s *Stopwatch) Elapsed() int {
	return int(s.elapsed.Load())
}

// Lap restarts the lap counter and returns the lap that just ended.
func (s *Stopwatch) Lap() int {
	return int(s.lap.Swap(0))
}

// LapElapsed returns the ticks since the last Lap, or since Start.
func (s *Stopwatch) LapElapsed() int {
	return int(s.lap.Load())
}

// Stop halts the stopwatch and waits for its goroutine to exit.
// Elapsed keeps returning the final count.
func (s *Stopwatch) Stop() {
	s.mu.Lock()
	if !s.started || s.stop == nil {
		s.mu.Unlock()
		return
	}
	stop, done := s.stop, s.done
	s.stop = nil
	s.mu.Unlock()

	close(stop)
	<-done
}

// FormatElapsed renders seconds as HH:MM:SS.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

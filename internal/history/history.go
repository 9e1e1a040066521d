// Package history records finalized run outcomes, newest first, and
// formats them for presentation.
package history

import (
	"fmt"
	"sync"

	"github.com/brakelab/brakelab/internal/engine"
)

// Entry is one presentable history row.
type Entry struct {
	Speed    string
	Surface  string
	Distance string
	Outcome  string
	Crashed  bool
}

// Log is an append-only outcome log, newest first. The only mutation
// ever applied after a record is the crash upgrade, which replaces the
// most recent entry.
type Log struct {
	mu      sync.Mutex
	entries []engine.Outcome
}

func NewLog() *Log { return &Log{} }

// Record implements engine.Sink.
func (l *Log) Record(o engine.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, o)
}

// Upgrade replaces the most recent outcome after a late crash
// correction. A no-op on an empty log.
func (l *Log) Upgrade(o engine.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return
	}
	l.entries[len(l.entries)-1] = o
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Outcomes returns the recorded outcomes, newest first.
func (l *Log) Outcomes() []engine.Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]engine.Outcome, len(l.entries))
	for i, o := range l.entries {
		out[len(l.entries)-1-i] = o
	}
	return out
}

// Entries returns presentable rows, newest first.
func (l *Log) Entries() []Entry {
	outcomes := l.Outcomes()
	rows := make([]Entry, len(outcomes))
	for i, o := range outcomes {
		rows[i] = Row(o)
	}
	return rows
}

// Row formats a single outcome as a history row.
func Row(o engine.Outcome) Entry {
	outcome := "stopped safely"
	if o.Crashed {
		outcome = "crashed"
	}
	return Entry{
		Speed:    o.Config.SpeedClass.Label(),
		Surface:  o.Config.Surface.Label(),
		Distance: fmt.Sprintf("%.1f m", o.Distance),
		Outcome:  outcome,
		Crashed:  o.Crashed,
	}
}

// Banner formats the result surface: title, message, and distance.
func Banner(o engine.Outcome) (title, message string) {
	if o.Crashed {
		return "crashed", fmt.Sprintf("the vehicle hit the obstacle after %.1f m of braking", o.Distance)
	}
	return "stopped safely", fmt.Sprintf("the vehicle came to rest after %.1f m of braking", o.Distance)
}

package lenscomplex

import (
	"fmt"
	"io"
	"slices"
	"sync"
)

// EventLog keeps every observed event in memory, grouped by complex name.
// It is safe for use by several calibrations at once.
type EventLog struct {
	mu     sync.Mutex
	events map[string][]Event
}

func NewEventLog() *EventLog {
	return &EventLog{events: make(map[string][]Event)}
}

func (l *EventLog) Observe(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.events == nil {
		l.events = make(map[string][]Event)
	}
	l.events[e.Complex] = append(l.events[e.Complex], e)
}

// Events returns a copy of the events logged for one complex, in arrival order.
func (l *EventLog) Events(name string) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.events[name])
}

// Count returns how many events of category c were logged for a complex.
func (l *EventLog) Count(name string, c Category) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.events[name] {
		if e.Category == c {
			n++
		}
	}
	return n
}

// Stats prints per-complex, per-category counts, complexes sorted by name.
func (l *EventLog) Stats(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, 0, len(l.events))
	for k := range l.events {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, k := range names {
		var counts [ComplexCalibrated + 1]int
		for _, e := range l.events[k] {
			if e.Category <= ComplexCalibrated {
				counts[e.Category]++
			}
		}
		fmt.Fprintf(w, "Complex %s: %d events", k, len(l.events[k]))
		for c, n := range counts {
			if n > 0 {
				fmt.Fprintf(w, ", %s=%d", Category(c), n)
			}
		}
		fmt.Fprintln(w)
	}
}

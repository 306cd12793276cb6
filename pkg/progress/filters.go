package progress

import "sync"

// Monotonic clamps percents into [0, 100] and never lets them fall below
// the highest value seen for the current batch. A new batch id resets the
// floor.
type Monotonic struct {
	next Emitter

	mu      sync.Mutex
	batch   string
	floor   int
	clamped int
}

// NewMonotonic wraps next.
func NewMonotonic(next Emitter) *Monotonic {
	return &Monotonic{next: next}
}

// Emit implements Emitter.
func (m *Monotonic) Emit(e Event) {
	m.mu.Lock()
	if e.Batch != m.batch {
		m.batch = e.Batch
		m.floor = 0
	}
	raw := e.Percent
	if e.Percent > 100 {
		e.Percent = 100
	}
	if e.Percent < m.floor {
		e.Percent = m.floor
	}
	if e.Type == TypeProgress && e.Percent != raw {
		m.clamped++
	}
	m.floor = e.Percent
	m.mu.Unlock()
	m.next.Emit(e)
}

// Clamped returns how many progress events were out of range or went
// backwards.
func (m *Monotonic) Clamped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clamped
}

// Scaled maps the percent of progress events from [0, 100] into [lo, hi].
// Error events pass through unchanged.
func Scaled(next Emitter, lo, hi int) Emitter {
	return Func(func(e Event) {
		if e.Type == TypeProgress {
			e.Percent = lo + e.Percent*(hi-lo)/100
		}
		next.Emit(e)
	})
}

// Recorder keeps every event in memory. It is the test double for hosts.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Emit implements Emitter.
func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Percents returns the percent of every progress event in order.
func (r *Recorder) Percents() []int {
	var out []int
	for _, e := range r.Events() {
		if e.Type == TypeProgress {
			out = append(out, e.Percent)
		}
	}
	return out
}

// Errors returns the error events.
func (r *Recorder) Errors() []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type == TypeError {
			out = append(out, e)
		}
	}
	return out
}

// Last returns the most recent event.
func (r *Recorder) Last() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}, false
	}
	return r.events[len(r.events)-1], true
}

// Reset clears the recording.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// Package progress carries batch progress from the engine to a host
// observer.
//
// The channel is one-directional and never blocks the producer: emitters
// must return promptly, and fan-out to slow consumers drops events instead
// of waiting (see [Hub]). Within one batch the percent of successive
// events never decreases; [Monotonic] enforces this for any stream. There
// is no separate completion message: a progress event at 100 percent ends
// a successful batch and an error event ends a failed one.
package progress

import "fmt"

// Type distinguishes event kinds on the wire.
type Type string

const (
	TypeProgress Type = "progress"
	TypeError    Type = "error"
)

// Phase names a step of a batch.
type Phase string

const (
	PhaseStart        Phase = "start"
	PhaseCleanup      Phase = "cleanup"
	PhaseFonts        Phase = "fonts"
	PhaseColorStyles  Phase = "color-styles"
	PhaseTextStyles   Phase = "text-styles"
	PhaseScreens      Phase = "screens"
	PhaseDarkVariants Phase = "dark-variants"
	PhaseFlow         Phase = "flow"
	PhaseDone         Phase = "done"
)

// Event is one message to the host. Its JSON form matches the host
// protocol: {"type":"progress","message":"...","progress":40}.
type Event struct {
	Type    Type   `json:"type"`
	Batch   string `json:"batch,omitempty"`
	Phase   Phase  `json:"phase,omitempty"`
	Message string `json:"message"`
	Percent int    `json:"progress"`
	Code    string `json:"code,omitempty"`
}

// Done reports whether e is the terminal event of a successful batch.
func (e Event) Done() bool { return e.Type == TypeProgress && e.Percent >= 100 }

// Terminal reports whether e ends a batch.
func (e Event) Terminal() bool { return e.Done() || e.Type == TypeError }

func (e Event) String() string {
	if e.Type == TypeError {
		return fmt.Sprintf("error [%s] %s", e.Phase, e.Message)
	}
	return fmt.Sprintf("%3d%% [%s] %s", e.Percent, e.Phase, e.Message)
}

// Progress returns a progress event.
func Progress(phase Phase, percent int, message string) Event {
	return Event{Type: TypeProgress, Phase: phase, Percent: percent, Message: message}
}

// Failed returns an error event.
func Failed(phase Phase, code, message string) Event {
	return Event{Type: TypeError, Phase: phase, Code: code, Message: message}
}

// Emitter receives events. Implementations must not block.
type Emitter interface {
	Emit(e Event)
}

// Func adapts a function to Emitter.
type Func func(e Event)

// Emit implements Emitter.
func (f Func) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Emitter = Func(func(Event) {})

// Multi fans an event out to several emitters in order.
func Multi(emitters ...Emitter) Emitter {
	return Func(func(e Event) {
		for _, em := range emitters {
			if em != nil {
				em.Emit(e)
			}
		}
	})
}

// WithBatch stamps every event with the batch id.
func WithBatch(next Emitter, batch string) Emitter {
	return Func(func(e Event) {
		e.Batch = batch
		next.Emit(e)
	})
}

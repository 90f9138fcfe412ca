package engine

import "github.com/icco/synthd/internal/events"

// queueCapacity bounds each per-instance event queue; a MIDI burst
// larger than this within one callback is dropped, not blocked on.
const queueCapacity = 256

// NewEventQueue creates a buffered channel used as a non-blocking SPSC
// event queue — Go's idiomatic substitute for a lock-free ring buffer.
func NewEventQueue() chan events.SynthEvent {
	return make(chan events.SynthEvent, queueCapacity)
}

// trySend is a non-blocking send; a full queue drops the event rather
// than blocking the audio callback.
func trySend(q chan events.SynthEvent, ev events.SynthEvent) bool {
	select {
	case q <- ev:
		return true
	default:
		return false
	}
}

package engine

import (
	"github.com/icco/synthd/internal/drums"
	"github.com/icco/synthd/internal/events"
)

// DrumEngine wraps a one-shot drum voice behind the Instrument
// interface: its own event queue, channel filter and trigger note.
// Drums ignore NoteOff and AllNotesOff entirely — they decay to
// silence on their own envelope, matching the spec's "let drums finish
// naturally" policy.
type DrumEngine struct {
	drum         *drums.Engine
	eventQueue   <-chan events.SynthEvent
	channel      uint8
	audioChannel int
}

// NewDrumEngine builds a drum instrument instance.
func NewDrumEngine(drum *drums.Engine, eventQueue <-chan events.SynthEvent, channel uint8, audioChannel int) *DrumEngine {
	return &DrumEngine{
		drum:         drum,
		eventQueue:   eventQueue,
		channel:      channel,
		audioChannel: audioChannel,
	}
}

func (e *DrumEngine) AudioChannel() int { return e.audioChannel }

func (e *DrumEngine) ChannelCount() int { return 1 }

func (e *DrumEngine) drainEvents() {
	for {
		select {
		case ev, ok := <-e.eventQueue:
			if !ok {
				return
			}
			if !ev.MatchesChannel(e.channel) {
				continue
			}
			if ev.Kind == events.KindNoteOn {
				e.drum.NoteOn(ev.Note)
			}
		default:
			return
		}
	}
}

// Process drains events and renders one mono block into scratch[0].
func (e *DrumEngine) Process(scratch [][]float64) {
	e.drainEvents()
	e.drum.Process(scratch[0])
}

// VoiceStates reports slot 0 as active (note 0, a sentinel — drums have
// no note identity worth displaying beyond on/off) when the voice is
// still sounding, idle otherwise.
func (e *DrumEngine) VoiceStates() [16]int16 {
	var states [16]int16
	for i := range states {
		states[i] = -1
	}
	if e.drum.IsActive() {
		states[0] = 0
	}
	return states
}

package cv

import (
	"github.com/icco/synthd/internal/events"
	"github.com/icco/synthd/internal/params"
)

// Engine wraps a CV Voice with its parameter block, its event queue and
// its MIDI channel filter.
type Engine struct {
	voice     *Voice
	params    *params.CV
	events    <-chan events.SynthEvent
	channel   uint8
}

// NewEngine builds a CV engine bound to a live parameter block and
// event queue.
func NewEngine(sampleRate float64, p *params.CV, eventQueue <-chan events.SynthEvent, channel uint8) *Engine {
	e := &Engine{
		voice:   NewVoice(sampleRate),
		params:  p,
		events:  eventQueue,
		channel: channel,
	}
	e.voice.SetGlideTime(p.Glide.Load())
	return e
}

func (e *Engine) drainEvents() {
	for {
		select {
		case ev, ok := <-e.events:
			if !ok {
				return
			}
			if !ev.MatchesChannel(e.channel) {
				continue
			}
			switch ev.Kind {
			case events.KindNoteOn:
				e.voice.NoteOn(ev.Note)
			case events.KindNoteOff:
				e.voice.NoteOff(ev.Note)
			case events.KindAllNotesOff:
				e.voice.AllNotesOff()
			}
		default:
			return
		}
	}
}

func (e *Engine) loadParameters() {
	e.voice.SetGlideTime(e.params.Glide.Load())
	e.voice.SetTranspose(e.params.Transpose.Load())
}

// ProcessDual fills pitch and gate with one render block each. The two
// slices must have equal length.
func (e *Engine) ProcessDual(pitch, gate []float64) {
	e.drainEvents()
	e.loadParameters()

	for i := range pitch {
		pitch[i] = e.voice.NextPitchSample()
		gate[i] = e.voice.NextGateSample()
	}
}

// VoiceStates reports the held note in slot 0 (or -1 if none), matching
// the poly pool's [16]int16 shape for a uniform status display.
func (e *Engine) VoiceStates() [16]int16 {
	var states [16]int16
	for i := range states {
		states[i] = -1
	}
	if note, ok := e.voice.CurrentNote(); ok {
		states[0] = int16(note)
	}
	return states
}

package engine

import (
	"github.com/icco/synthd/internal/dsp"
	"github.com/icco/synthd/internal/events"
	"github.com/icco/synthd/internal/params"
	"github.com/icco/synthd/internal/poly"
)

// PolyEngine wraps a 16-voice pool with its parameter block, event
// queue and MIDI channel filter.
type PolyEngine struct {
	pool         *poly.Pool
	params       *params.Poly16
	eventQueue   <-chan events.SynthEvent
	channel      uint8
	audioChannel int
}

// NewPolyEngine builds a polyphonic instrument instance.
func NewPolyEngine(sampleRate float64, p *params.Poly16, eventQueue <-chan events.SynthEvent, channel uint8, audioChannel int) *PolyEngine {
	return &PolyEngine{
		pool:         poly.NewPool(sampleRate),
		params:       p,
		eventQueue:   eventQueue,
		channel:      channel,
		audioChannel: audioChannel,
	}
}

func (e *PolyEngine) AudioChannel() int { return e.audioChannel }

func (e *PolyEngine) ChannelCount() int { return 1 }

func (e *PolyEngine) drainEvents() {
	for {
		select {
		case ev, ok := <-e.eventQueue:
			if !ok {
				return
			}
			if !ev.MatchesChannel(e.channel) {
				continue
			}
			switch ev.Kind {
			case events.KindNoteOn:
				e.pool.NoteOn(ev.Note, ev.Frequency)
			case events.KindNoteOff:
				e.pool.NoteOff(ev.Note)
			case events.KindAllNotesOff:
				e.pool.AllNotesOff()
			}
		default:
			return
		}
	}
}

func (e *PolyEngine) loadParameters() {
	e.pool.SetADSR(e.params.Attack.Load(), e.params.Decay.Load(), e.params.Sustain.Load(), e.params.Release.Load())
	e.pool.SetWaveform(dsp.WaveformFromU8(e.params.Waveform.Load()))
}

// Process drains events, latches parameters and renders one mono block
// into scratch[0].
func (e *PolyEngine) Process(scratch [][]float64) {
	e.drainEvents()
	e.loadParameters()
	e.pool.Process(scratch[0])
}

// VoiceStates forwards to the underlying pool.
func (e *PolyEngine) VoiceStates() [16]int16 {
	return e.pool.VoiceStates()
}

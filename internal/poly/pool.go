package poly

import (
	"math"

	"github.com/icco/synthd/internal/dsp"
)

// MaxVoices is the fixed polyphony of a Pool; no dynamic allocation ever
// happens beyond construction.
const MaxVoices = 16

type slotState uint8

const (
	slotIdle slotState = iota
	slotActive
)

type slot struct {
	voice *Voice
	state slotState
	note  uint8
	age   uint64
}

func (s *slot) isIdle() bool { return s.state == slotIdle }

func (s *slot) isActive() bool { return s.state == slotActive }

// isReleasing is true once a slot's envelope has quietly finished but its
// state has not yet been swept back to idle by updateStates.
func (s *slot) isReleasing() bool {
	return s.state == slotActive && !s.voice.IsActive()
}

// Pool is a fixed-capacity array of MaxVoices voices with allocation and
// stealing logic, matching priority: idle > releasing > oldest active.
type Pool struct {
	slots     [MaxVoices]slot
	globalAge uint64
}

// NewPool pre-allocates all MaxVoices voices; nothing in this pool ever
// allocates again after construction.
func NewPool(sampleRate float64) *Pool {
	p := &Pool{}
	for i := range p.slots {
		p.slots[i].voice = NewVoice(sampleRate)
	}
	return p
}

// NoteOn allocates or steals a slot for a new note and triggers it.
func (p *Pool) NoteOn(note uint8, frequency float64) {
	idx := p.chooseSlot()
	s := &p.slots[idx]
	s.voice.NoteOn(frequency)
	s.state = slotActive
	s.note = note
	s.age = p.globalAge
	p.globalAge++
}

// chooseSlot implements the priority: first idle slot, else first
// releasing slot, else the oldest active slot (ties broken by lowest
// index, since min-by-age scans in index order and keeps the first
// minimum found).
func (p *Pool) chooseSlot() int {
	for i := range p.slots {
		if p.slots[i].isIdle() {
			return i
		}
	}
	for i := range p.slots {
		if p.slots[i].isReleasing() {
			return i
		}
	}

	oldest := 0
	oldestAge := p.slots[0].age
	for i := 1; i < len(p.slots); i++ {
		if p.slots[i].age < oldestAge {
			oldest = i
			oldestAge = p.slots[i].age
		}
	}
	return oldest
}

// NoteOff releases every active slot currently playing note; the slot
// stays Active until its envelope finishes so the release tail is audible.
func (p *Pool) NoteOff(note uint8) {
	for i := range p.slots {
		if p.slots[i].isActive() && p.slots[i].note == note {
			p.slots[i].voice.NoteOff()
		}
	}
}

// AllNotesOff releases every active slot (MIDI panic).
func (p *Pool) AllNotesOff() {
	for i := range p.slots {
		if p.slots[i].isActive() {
			p.slots[i].voice.NoteOff()
		}
	}
}

// SetADSR broadcasts new ADSR parameters to every voice.
func (p *Pool) SetADSR(attack, decay, sustain, release float64) {
	for i := range p.slots {
		p.slots[i].voice.SetADSR(attack, decay, sustain, release)
	}
}

// SetWaveform broadcasts a new waveform to every voice.
func (p *Pool) SetWaveform(w dsp.Waveform) {
	for i := range p.slots {
		p.slots[i].voice.SetWaveform(w)
	}
}

// updateStates flips slots whose envelope has reached idle back to Idle.
func (p *Pool) updateStates() {
	for i := range p.slots {
		if p.slots[i].isActive() && !p.slots[i].voice.IsActive() {
			p.slots[i].state = slotIdle
		}
	}
}

// poolNormalization scales the summed output by 1/sqrt(MaxVoices) (0.25):
// the RMS level of MaxVoices uncorrelated voices then matches that of one
// unscaled voice, and a single note plays at a quarter of its own level.
var poolNormalization = 1.0 / math.Sqrt(float64(MaxVoices))

// Process sweeps stale slots to idle, sums every non-idle voice into
// output and applies the pool-wide normalization.
func (p *Pool) Process(output []float64) {
	p.updateStates()

	for i := range output {
		output[i] = 0
	}

	for i := range p.slots {
		if p.slots[i].isIdle() {
			continue
		}
		for j := range output {
			output[j] += p.slots[i].voice.NextSample()
		}
	}

	for i := range output {
		output[i] *= poolNormalization
	}
}

// VoiceStates reports, for each slot, the note it is playing or -1 if
// idle — used by the status TUI.
func (p *Pool) VoiceStates() [MaxVoices]int16 {
	var states [MaxVoices]int16
	for i := range p.slots {
		if p.slots[i].isActive() {
			states[i] = int16(p.slots[i].note)
		} else {
			states[i] = -1
		}
	}
	return states
}

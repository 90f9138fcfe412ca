package dsp

// envelopeState is the ADSR state machine's current phase.
type envelopeState uint8

const (
	envIdle envelopeState = iota
	envAttack
	envDecay
	envSustain
	envRelease
)

// minStageSeconds clamps attack/decay/release away from zero so a ramp
// never collapses to a single, click-producing sample.
const minStageSeconds = 0.001

// Envelope is a sample-accurate ADSR state machine. Ramps are linear:
// predictable CPU cost, no transcendental math in the inner loop, and any
// zipper noise is inaudible given how short the ramps are in practice.
type Envelope struct {
	state        envelopeState
	attack       float64
	decay        float64
	sustain      float64
	release      float64
	level        float64
	sampleRate   float64
	sampleCount  uint64
	stageStart   uint64
	releaseLevel float64
}

// NewEnvelope creates an envelope with the original source's default ADSR
// (10ms/100ms/70%/300ms).
func NewEnvelope(sampleRate float64) *Envelope {
	return &Envelope{
		attack:     0.01,
		decay:      0.1,
		sustain:    0.7,
		release:    0.3,
		sampleRate: sampleRate,
	}
}

// SetADSR clamps attack/decay/release to at least 1ms and sustain to [0,1].
func (e *Envelope) SetADSR(attack, decay, sustain, release float64) {
	e.attack = maxF(attack, minStageSeconds)
	e.decay = maxF(decay, minStageSeconds)
	e.sustain = clamp(sustain, 0, 1)
	e.release = maxF(release, minStageSeconds)
}

// NoteOn starts (or restarts) the attack phase.
func (e *Envelope) NoteOn() {
	e.state = envAttack
	e.stageStart = e.sampleCount
}

// NoteOff captures the current level and starts the release ramp from it,
// from any non-idle state. An idle envelope stays idle.
func (e *Envelope) NoteOff() {
	if e.state == envIdle {
		return
	}
	e.releaseLevel = e.level
	e.state = envRelease
	e.stageStart = e.sampleCount
}

// IsActive reports whether the envelope is anywhere but idle.
func (e *Envelope) IsActive() bool {
	return e.state != envIdle
}

// Reset forces the envelope back to idle with zero output.
func (e *Envelope) Reset() {
	e.state = envIdle
	e.level = 0
}

// NextSample advances the state machine by one sample and returns the
// current level, always in [0,1].
func (e *Envelope) NextSample() float64 {
	switch e.state {
	case envIdle:
		e.level = 0

	case envAttack:
		elapsed := e.sampleCount - e.stageStart
		stageSamples := uint64(e.attack * e.sampleRate)
		if elapsed >= stageSamples {
			e.level = 1
			e.state = envDecay
			e.stageStart = e.sampleCount
		} else {
			e.level = float64(elapsed) / float64(stageSamples)
		}

	case envDecay:
		elapsed := e.sampleCount - e.stageStart
		stageSamples := uint64(e.decay * e.sampleRate)
		if elapsed >= stageSamples {
			e.level = e.sustain
			if e.sustain > 0 {
				e.state = envSustain
			} else {
				// a zero-sustain envelope (every drum envelope) has
				// nothing left to hold or release and goes idle here
				e.state = envIdle
			}
		} else {
			progress := float64(elapsed) / float64(stageSamples)
			e.level = 1 - progress*(1-e.sustain)
		}

	case envSustain:
		e.level = e.sustain

	case envRelease:
		elapsed := e.sampleCount - e.stageStart
		stageSamples := uint64(e.release * e.sampleRate)
		if elapsed >= stageSamples {
			e.level = 0
			e.state = envIdle
		} else {
			progress := float64(elapsed) / float64(stageSamples)
			e.level = e.releaseLevel * (1 - progress)
		}
	}

	e.sampleCount++
	return e.level
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

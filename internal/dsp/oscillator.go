package dsp

import "math"

// Oscillator is a phase-accumulating generator over the four supported
// waveforms. Changing frequency never resets phase; only Reset does.
type Oscillator struct {
	phase      float64
	phaseDelta float64
	frequency  float64
	sampleRate float64
	waveform   Waveform
}

// NewOscillator creates an oscillator at the given sample rate, defaulting
// to a 440Hz sine.
func NewOscillator(sampleRate float64) *Oscillator {
	o := &Oscillator{
		frequency:  440.0,
		sampleRate: sampleRate,
		waveform:   WaveformSine,
	}
	o.updateDelta()
	return o
}

// SetWaveform swaps the waveform selector without touching phase.
func (o *Oscillator) SetWaveform(w Waveform) {
	o.waveform = w
}

// SetFrequency updates the phase increment; phase itself is untouched.
func (o *Oscillator) SetFrequency(freq float64) {
	o.frequency = freq
	o.updateDelta()
}

func (o *Oscillator) updateDelta() {
	o.phaseDelta = o.frequency / o.sampleRate
}

// Reset forces phase back to zero, used on note-on for a consistent attack
// transient.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// NextSample computes the waveform value at the current phase, advances
// phase and wraps it modulo 1.
func (o *Oscillator) NextSample() float64 {
	out := generate(o.waveform, o.phase)

	o.phase += o.phaseDelta
	if o.phase >= 1.0 {
		o.phase -= 1.0
	}
	return out
}

func generate(w Waveform, phase float64) float64 {
	switch w {
	case WaveformSine:
		return math.Sin(2 * math.Pi * phase)
	case WaveformTriangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	case WaveformSawtooth:
		return 2*phase - 1
	case WaveformSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

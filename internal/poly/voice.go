// Package poly implements the 16-voice polyphonic subtractive voice and its
// allocation pool.
package poly

import "github.com/icco/synthd/internal/dsp"

// Voice is one oscillator+envelope+VCA signal chain: the unit of
// polyphony in a Pool.
type Voice struct {
	osc *dsp.Oscillator
	env *dsp.Envelope
	vca *dsp.VCA
}

// NewVoice creates a voice at the given sample rate.
func NewVoice(sampleRate float64) *Voice {
	return &Voice{
		osc: dsp.NewOscillator(sampleRate),
		env: dsp.NewEnvelope(sampleRate),
		vca: dsp.NewVCA(),
	}
}

// NoteOn resets phase for a consistent attack transient and starts the
// envelope.
func (v *Voice) NoteOn(frequency float64) {
	v.osc.SetFrequency(frequency)
	v.osc.Reset()
	v.env.NoteOn()
}

// NoteOff starts the release phase; the voice stays audible until the
// envelope reaches idle.
func (v *Voice) NoteOff() {
	v.env.NoteOff()
}

// IsActive reports whether the envelope has not yet decayed to idle.
func (v *Voice) IsActive() bool {
	return v.env.IsActive()
}

// SetADSR forwards to the envelope.
func (v *Voice) SetADSR(attack, decay, sustain, release float64) {
	v.env.SetADSR(attack, decay, sustain, release)
}

// SetWaveform forwards to the oscillator.
func (v *Voice) SetWaveform(w dsp.Waveform) {
	v.osc.SetWaveform(w)
}

// NextSample renders one envelope-shaped oscillator sample.
func (v *Voice) NextSample() float64 {
	return v.vca.Process(v.osc.NextSample(), v.env.NextSample())
}

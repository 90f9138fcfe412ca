// Package drums implements the three one-shot percussion voices: kick,
// snare and hi-hat.
package drums

import (
	"github.com/icco/synthd/internal/dsp"
	"github.com/icco/synthd/internal/params"
)

// Kick is a pitch-swept sine with an optional noise click.
type Kick struct {
	osc         *dsp.Oscillator
	pitchEnv    *dsp.Envelope
	ampEnv      *dsp.Envelope
	clickEnv    *dsp.Envelope
	clickNoise  *dsp.Noise
	vca         *dsp.VCA
	params      *params.Kick
	startFreq   float64
	endFreq     float64
	clickAmount float64
}

// NewKick builds a kick voice bound to a live parameter block.
func NewKick(sampleRate float64, p *params.Kick) *Kick {
	k := &Kick{
		osc:        dsp.NewOscillator(sampleRate),
		pitchEnv:   dsp.NewEnvelope(sampleRate),
		ampEnv:     dsp.NewEnvelope(sampleRate),
		clickEnv:   dsp.NewEnvelope(sampleRate),
		clickNoise: dsp.NewNoise(),
		vca:        dsp.NewVCA(),
		params:     p,
		startFreq:  150.0,
		endFreq:    40.0,
	}
	k.osc.SetWaveform(dsp.WaveformSine)
	k.clickEnv.SetADSR(0.0, 0.005, 0.0, 0.0)
	return k
}

// loadParameters pulls the live block once per trigger, not once per
// render block: a change made while a hit is sounding applies from the
// next hit on.
func (k *Kick) loadParameters() {
	k.startFreq = k.params.PitchStart.Load()
	k.endFreq = k.params.PitchEnd.Load()
	pitchDecay := k.params.PitchDecay.Load()
	decay := k.params.Decay.Load()
	k.clickAmount = k.params.Click.Load()

	k.pitchEnv.SetADSR(0.0, pitchDecay, 0.0, 0.0)

	attack := 0.001 * (1.0 - k.clickAmount*0.9)
	k.ampEnv.SetADSR(attack, decay, 0.0, 0.0)
}

// Trigger starts a new one-shot hit.
func (k *Kick) Trigger() {
	k.loadParameters()

	k.osc.Reset()
	k.pitchEnv.NoteOn()
	k.ampEnv.NoteOn()
	k.clickEnv.NoteOn()
}

// IsActive reports whether the amplitude envelope has not yet reached idle.
func (k *Kick) IsActive() bool {
	return k.ampEnv.IsActive()
}

// NextSample renders one sample of the pitch-swept tone plus click.
func (k *Kick) NextSample() float64 {
	pitchEnv := k.pitchEnv.NextSample()
	frequency := k.endFreq + (k.startFreq-k.endFreq)*pitchEnv
	k.osc.SetFrequency(frequency)

	tone := k.osc.NextSample()
	ampEnv := k.ampEnv.NextSample()

	click := k.clickNoise.NextSample() * k.clickEnv.NextSample() * k.clickAmount

	return k.vca.Process(tone+click, ampEnv)
}

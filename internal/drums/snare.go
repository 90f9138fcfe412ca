package drums

import (
	"github.com/icco/synthd/internal/dsp"
	"github.com/icco/synthd/internal/params"
)

// Snare combines a two-sine body, filtered noise wires and a short snap
// transient.
type Snare struct {
	osc1         *dsp.Oscillator
	osc2         *dsp.Oscillator
	toneEnv      *dsp.Envelope
	noise        *dsp.Noise
	noiseFilter  *dsp.OnePoleFilter
	noiseEnv     *dsp.Envelope
	snapEnv      *dsp.Envelope
	snapNoise    *dsp.Noise
	vca          *dsp.VCA
	params       *params.Snare
	toneMix      float64
	snapAmount   float64
}

// NewSnare builds a snare voice bound to a live parameter block.
func NewSnare(sampleRate float64, p *params.Snare) *Snare {
	s := &Snare{
		osc1:        dsp.NewOscillator(sampleRate),
		osc2:        dsp.NewOscillator(sampleRate),
		toneEnv:     dsp.NewEnvelope(sampleRate),
		noise:       dsp.NewNoise(),
		noiseFilter: dsp.NewOnePoleFilter(sampleRate, 5000.0),
		noiseEnv:    dsp.NewEnvelope(sampleRate),
		snapEnv:     dsp.NewEnvelope(sampleRate),
		snapNoise:   dsp.NewNoiseWithSeed(0x9e3779b9),
		vca:         dsp.NewVCA(),
		params:      p,
		toneMix:     0.65,
		snapAmount:  0.7,
	}
	s.osc1.SetWaveform(dsp.WaveformSine)
	s.osc2.SetWaveform(dsp.WaveformSine)
	s.osc1.SetFrequency(180.0)
	s.osc2.SetFrequency(330.0)
	return s
}

func (s *Snare) loadParameters() {
	toneFreq := s.params.ToneFreq.Load()
	s.toneMix = s.params.ToneMix.Load()
	decay := s.params.Decay.Load()
	s.snapAmount = s.params.Snap.Load()

	s.osc1.SetFrequency(toneFreq)
	s.osc2.SetFrequency(toneFreq * 1.83)

	s.toneEnv.SetADSR(0.001, decay*0.5, 0.0, 0.0)
	s.noiseEnv.SetADSR(0.001, decay, 0.0, 0.0)
	s.snapEnv.SetADSR(0.0, 0.003, 0.0, 0.0)

	cutoff := 3000.0 + s.snapAmount*7000.0
	s.noiseFilter.SetCutoff(cutoff)
}

// Trigger starts a new one-shot hit.
func (s *Snare) Trigger() {
	s.loadParameters()

	s.osc1.Reset()
	s.osc2.Reset()
	s.noiseFilter.Reset()

	s.toneEnv.NoteOn()
	s.noiseEnv.NoteOn()
	s.snapEnv.NoteOn()
}

// IsActive reports whether either the tone or the noise envelope is
// still running.
func (s *Snare) IsActive() bool {
	return s.toneEnv.IsActive() || s.noiseEnv.IsActive()
}

// NextSample renders one sample of the mixed body, wires and snap.
func (s *Snare) NextSample() float64 {
	tone1 := s.osc1.NextSample()
	tone2 := s.osc2.NextSample()
	tone := (tone1 + tone2) * 0.5
	toneEnv := s.toneEnv.NextSample()
	toneOut := tone * toneEnv

	noiseSample := s.noise.NextSample()
	filteredNoise := s.noiseFilter.Process(noiseSample)
	noiseEnv := s.noiseEnv.NextSample()
	noiseOut := filteredNoise * noiseEnv

	snapEnv := s.snapEnv.NextSample()
	snapTransient := s.snapNoise.NextSample() * snapEnv * s.snapAmount

	body := toneOut*s.toneMix + noiseOut*(1.0-s.toneMix)
	mixed := body + snapTransient

	return s.vca.Process(mixed, 1.0)
}

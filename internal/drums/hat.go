package drums

import (
	"github.com/icco/synthd/internal/dsp"
	"github.com/icco/synthd/internal/params"
)

// Hat is filtered white noise through a resonant band-pass, gated by a
// very short envelope. The spec mandates a resonant state-variable
// band-pass here in place of the plain high-pass the older engine
// variants used, so brightness behaves as a true centre frequency with
// a controllable Q rather than a fixed-slope cutoff.
type Hat struct {
	noise    *dsp.Noise
	filter   *dsp.BandPassFilter
	envelope *dsp.Envelope
	vca      *dsp.VCA
	params   *params.Hat
	metallic float64
}

// NewHat builds a hi-hat voice bound to a live parameter block.
func NewHat(sampleRate float64, p *params.Hat) *Hat {
	return &Hat{
		noise:    dsp.NewNoiseWithSeed(0xcafef00d),
		filter:   dsp.NewBandPassFilter(sampleRate, 7000.0, 1.5),
		envelope: dsp.NewEnvelope(sampleRate),
		vca:      dsp.NewVCA(),
		params:   p,
	}
}

func (h *Hat) loadParameters() {
	brightness := h.params.Brightness.Load()
	decay := h.params.Decay.Load()
	h.metallic = h.params.Metallic.Load()

	h.filter.SetCenterFreq(brightness)
	h.filter.SetQ(1.5 + h.metallic*3.5)

	attack := 0.001 * (1.0 - h.metallic*0.8)
	h.envelope.SetADSR(attack, decay, 0.0, 0.0)
}

// Trigger starts a new one-shot hit.
func (h *Hat) Trigger() {
	h.loadParameters()

	h.filter.Reset()
	h.envelope.NoteOn()
}

// IsActive reports whether the envelope has not yet reached idle.
func (h *Hat) IsActive() bool {
	return h.envelope.IsActive()
}

// NextSample renders one sample of filtered, enveloped noise.
func (h *Hat) NextSample() float64 {
	noiseSample := h.noise.NextSample()
	filtered := h.filter.Process(noiseSample)
	env := h.envelope.NextSample()

	return h.vca.Process(filtered, env)
}

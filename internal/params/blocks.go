package params

import "github.com/icco/synthd/internal/dsp"

// Poly16 holds the real-time-tunable parameters of a 16-voice poly synth
// instance: ADSR plus waveform. Values are clamped by the writer before
// storing, so readers never see an out-of-range scalar.
type Poly16 struct {
	Attack   *Float
	Decay    *Float
	Sustain  *Float
	Release  *Float
	Waveform *Byte
}

// NewPoly16 creates a parameter block at the spec's documented defaults.
func NewPoly16() *Poly16 {
	return &Poly16{
		Attack:   NewFloat(0.01),
		Decay:    NewFloat(0.1),
		Sustain:  NewFloat(0.7),
		Release:  NewFloat(0.1),
		Waveform: NewByte(uint8(dsp.WaveformSine)),
	}
}

// Kick holds the real-time-tunable parameters of a kick-drum voice.
type Kick struct {
	PitchStart *Float
	PitchEnd   *Float
	PitchDecay *Float
	Decay      *Float
	Click      *Float
}

// NewKick creates a kick parameter block at the original engine's defaults.
func NewKick() *Kick {
	return &Kick{
		PitchStart: NewFloat(150.0),
		PitchEnd:   NewFloat(40.0),
		PitchDecay: NewFloat(0.05),
		Decay:      NewFloat(0.3),
		Click:      NewFloat(0.3),
	}
}

// Snare holds the real-time-tunable parameters of a snare-drum voice.
type Snare struct {
	ToneFreq *Float
	ToneMix  *Float
	Decay    *Float
	Snap     *Float
}

// NewSnare creates a snare parameter block at the original engine's defaults.
func NewSnare() *Snare {
	return &Snare{
		ToneFreq: NewFloat(200.0),
		ToneMix:  NewFloat(0.3),
		Decay:    NewFloat(0.15),
		Snap:     NewFloat(0.5),
	}
}

// Hat holds the real-time-tunable parameters of a hi-hat voice.
type Hat struct {
	Brightness *Float
	Decay      *Float
	Metallic   *Float
}

// NewHat creates a hi-hat parameter block at the original engine's defaults.
func NewHat() *Hat {
	return &Hat{
		Brightness: NewFloat(7000.0),
		Decay:      NewFloat(0.05),
		Metallic:   NewFloat(0.4),
	}
}

// CV holds the real-time-tunable parameters of a CV generator instance.
type CV struct {
	Transpose *Int8
	Glide     *Float
}

// NewCV creates a CV parameter block with no transpose and no glide.
func NewCV() *CV {
	return &CV{
		Transpose: NewInt8(0),
		Glide:     NewFloat(0),
	}
}

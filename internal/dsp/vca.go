package dsp

// VCA models a voltage-controlled amplifier: it scales a signal by both a
// modulation input (typically an envelope level) and a fixed master gain.
type VCA struct {
	gain float64
}

// NewVCA creates a VCA at the original source's default gain of 0.8.
func NewVCA() *VCA {
	return &VCA{gain: 0.8}
}

// SetGain clamps and stores the master gain.
func (v *VCA) SetGain(gain float64) {
	v.gain = clamp(gain, 0, 1)
}

// Process scales signal by modulation and the master gain.
func (v *VCA) Process(signal, modulation float64) float64 {
	return signal * modulation * v.gain
}

package dsp

// combFilter is one feedback delay line with a one-pole low-pass in the
// feedback path for high-frequency damping.
type combFilter struct {
	buffer       []float64
	index        int
	feedback     float64
	damping      float64
	filterState  float64
}

func newCombFilter(size int, feedback, damping float64) *combFilter {
	if size < 1 {
		size = 1
	}
	return &combFilter{buffer: make([]float64, size), feedback: feedback, damping: damping}
}

func (c *combFilter) process(input float64) float64 {
	output := c.buffer[c.index]
	c.filterState = output*(1-c.damping) + c.filterState*c.damping
	c.buffer[c.index] = input + c.filterState*c.feedback
	c.index = (c.index + 1) % len(c.buffer)
	return output
}

func (c *combFilter) setFeedback(feedback float64) {
	c.feedback = clamp(feedback, 0, 0.99)
}

func (c *combFilter) setDamping(damping float64) {
	c.damping = clamp(damping, 0, 1)
}

func (c *combFilter) clear() {
	for i := range c.buffer {
		c.buffer[i] = 0
	}
	c.filterState = 0
}

// allPassFilter provides diffusion in the reverb's series chain.
type allPassFilter struct {
	buffer   []float64
	index    int
	feedback float64
}

func newAllPassFilter(size int) *allPassFilter {
	if size < 1 {
		size = 1
	}
	return &allPassFilter{buffer: make([]float64, size), feedback: 0.5}
}

func (a *allPassFilter) process(input float64) float64 {
	buffered := a.buffer[a.index]
	output := -input + buffered
	a.buffer[a.index] = input + buffered*a.feedback
	a.index = (a.index + 1) % len(a.buffer)
	return output
}

func (a *allPassFilter) clear() {
	for i := range a.buffer {
		a.buffer[i] = 0
	}
}

// baseCombDelays and baseAllPassDelays are the canonical FreeVerb delay
// lengths in samples, tuned at 44.1kHz; Reverb scales them to the actual
// sample rate at construction.
var baseCombDelays = [8]float64{1557, 1617, 1491, 1422, 1277, 1356, 1188, 1116}
var baseAllPassDelays = [4]float64{225, 556, 441, 341}

// Reverb is a FreeVerb-style unit: 8 parallel damped combs feeding 4 series
// all-pass filters for diffusion, mixed dry/wet.
type Reverb struct {
	combs    [8]*combFilter
	allPasses [4]*allPassFilter
	wet, dry  float64
	roomSize  float64
	damping   float64
}

// NewReverb creates a reverb scaled for sampleRate, initially fully dry.
func NewReverb(sampleRate float64) *Reverb {
	scale := sampleRate / 44100.0
	const initialFeedback = 0.84
	const initialDamping = 0.2

	r := &Reverb{dry: 1.0, roomSize: (initialFeedback - 0.7) / 0.25, damping: initialDamping}
	for i, base := range baseCombDelays {
		size := int(base * scale)
		r.combs[i] = newCombFilter(size, initialFeedback, initialDamping)
	}
	for i, base := range baseAllPassDelays {
		size := int(base * scale)
		r.allPasses[i] = newAllPassFilter(size)
	}
	return r
}

// Process runs one sample through the parallel combs then the series
// all-passes and mixes dry/wet.
func (r *Reverb) Process(input float64) float64 {
	var combSum float64
	for _, c := range r.combs {
		combSum += c.process(input)
	}
	output := combSum / float64(len(r.combs))

	for _, a := range r.allPasses {
		output = a.process(output)
	}

	return r.dry*input + r.wet*output
}

// SetMix sets wet/dry balance; mix=0 is fully dry, mix=1 fully wet.
func (r *Reverb) SetMix(mix float64) {
	mix = clamp(mix, 0, 1)
	r.wet = mix
	r.dry = 1 - mix
}

// SetRoomSize maps [0,1] to comb feedback in [0.7, 0.95].
func (r *Reverb) SetRoomSize(size float64) {
	r.roomSize = clamp(size, 0, 1)
	feedback := 0.7 + r.roomSize*0.25
	for _, c := range r.combs {
		c.setFeedback(feedback)
	}
}

// SetDamping sets the high-frequency damping in each comb's feedback path.
func (r *Reverb) SetDamping(damping float64) {
	r.damping = clamp(damping, 0, 1)
	for _, c := range r.combs {
		c.setDamping(r.damping)
	}
}

// Mix returns the current wet/dry mix value.
func (r *Reverb) Mix() float64 { return r.wet }

// RoomSize returns the current room size value.
func (r *Reverb) RoomSize() float64 { return r.roomSize }

// Damping returns the current damping value.
func (r *Reverb) Damping() float64 { return r.damping }

// Clear zeroes every delay line, resetting the reverb tail.
func (r *Reverb) Clear() {
	for _, c := range r.combs {
		c.clear()
	}
	for _, a := range r.allPasses {
		a.clear()
	}
}

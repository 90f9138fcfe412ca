package engine

import "github.com/icco/synthd/internal/cv"

// CVEngine adapts a cv.Engine (which already owns its event draining
// and channel filter) to the Instrument interface, occupying two
// consecutive output channels: pitch, then gate.
type CVEngine struct {
	cv           *cv.Engine
	audioChannel int
}

// NewCVEngine builds a CV instrument instance.
func NewCVEngine(e *cv.Engine, audioChannel int) *CVEngine {
	return &CVEngine{cv: e, audioChannel: audioChannel}
}

func (e *CVEngine) AudioChannel() int { return e.audioChannel }

func (e *CVEngine) ChannelCount() int { return 2 }

// Process renders pitch into scratch[0] and gate into scratch[1].
func (e *CVEngine) Process(scratch [][]float64) {
	e.cv.ProcessDual(scratch[0], scratch[1])
}

// VoiceStates forwards to the underlying cv.Engine.
func (e *CVEngine) VoiceStates() [16]int16 {
	return e.cv.VoiceStates()
}

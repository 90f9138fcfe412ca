// Package engine hosts the multi-instrument mixer: per-instance event
// routing, per-instance rendering, and channel-indexed summation into the
// interleaved audio output.
package engine

// Instrument is anything the mixer can drive: drain its event queue,
// load its live parameters, render one block, and report its voice
// states for the status display. Poly, drum and CV instances all
// implement it uniformly even though CV renders two channels (pitch,
// gate) instead of one.
type Instrument interface {
	// AudioChannel is the base output channel this instance writes
	// into. CV instruments occupy AudioChannel and AudioChannel+1.
	AudioChannel() int

	// ChannelCount is 1 for poly/drum instances, 2 for CV (pitch+gate).
	ChannelCount() int

	// Process drains pending events, latches current parameters and
	// renders one block into scratch (length == frame count, one
	// slice per ChannelCount()).
	Process(scratch [][]float64)

	// VoiceStates reports, for the status display, the note held in
	// each of up to 16 slots (-1 = idle).
	VoiceStates() [16]int16
}

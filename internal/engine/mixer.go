package engine

import (
	"github.com/icco/synthd/internal/dsp"
	"github.com/icco/synthd/internal/events"
)

// snapshotInterval is how often (in rendered samples) the mixer
// publishes a voice-state snapshot for the status display, matching
// the spec's ~100ms cadence at 44.1kHz.
const snapshotInterval = 4410

// instance pairs an Instrument with the sender side of its own event
// queue, which the mixer retains exclusively for broadcasting.
type instance struct {
	inst    Instrument
	queue   chan events.SynthEvent
	scratch [][]float64
	view    [][]float64 // reused sub-slices of scratch, re-sliced to the current frame count
}

// ReverbGroup applies a single shared reverb to a fixed set of output
// channels after the per-instance mix, processed independently per
// channel with the same reverb parameters.
type ReverbGroup struct {
	Channels []int
	Reverb   *dsp.Reverb
}

// MixerSnapshot is a point-in-time, allocation-light view of every
// instance's voice states, published periodically for the status TUI.
type MixerSnapshot struct {
	VoiceStates [][16]int16
}

// Mixer owns every instrument instance, the main event queue and the
// interleaved output buffer layout. It is the sole audio-thread
// driver; once scratch buffers are sized, its only allocation is the
// periodic voice-state snapshot.
type Mixer struct {
	instances    []*instance
	channels     int
	mainQueue    <-chan events.SynthEvent
	reverbGroups []*ReverbGroup
	snapshotOut  chan MixerSnapshot
	sampleCount  uint64
}

// NewMixer builds a mixer over the given channel count and main event
// queue. Instances and reverb groups are added with AddInstance and
// AddReverbGroup before the first Process call.
func NewMixer(channels int, mainQueue <-chan events.SynthEvent, snapshotOut chan MixerSnapshot) *Mixer {
	return &Mixer{
		channels:    channels,
		mainQueue:   mainQueue,
		snapshotOut: snapshotOut,
	}
}

// AddInstance registers an instrument and the queue the mixer should
// broadcast events into on its behalf. frames is the maximum block
// size the mixer will ever be asked to render, used to pre-size the
// instance's scratch buffers once.
func (m *Mixer) AddInstance(inst Instrument, queue chan events.SynthEvent, frames int) {
	scratch := make([][]float64, inst.ChannelCount())
	for i := range scratch {
		scratch[i] = make([]float64, frames)
	}
	view := make([][]float64, len(scratch))
	copy(view, scratch)
	m.instances = append(m.instances, &instance{inst: inst, queue: queue, scratch: scratch, view: view})
}

// AddReverbGroup registers a post-mix reverb applied to the given
// output channels.
func (m *Mixer) AddReverbGroup(g *ReverbGroup) {
	m.reverbGroups = append(m.reverbGroups, g)
}

func (m *Mixer) growScratch(frames int) {
	for _, in := range m.instances {
		for i := range in.scratch {
			if len(in.scratch[i]) < frames {
				in.scratch[i] = make([]float64, frames)
			}
			in.view[i] = in.scratch[i][:frames]
		}
	}
}

// Process renders one block into output, an interleaved f64 buffer of
// length frames*m.channels. It is the sole entry point called from the
// audio callback.
func (m *Mixer) Process(output []float64, frames int) {
	for i := range output {
		output[i] = 0
	}

	m.growScratch(frames)
	m.broadcastEvents()

	for _, in := range m.instances {
		in.inst.Process(in.view)

		for c, buf := range in.view {
			channelIdx := in.inst.AudioChannel() + c
			if channelIdx < 0 || channelIdx >= m.channels {
				continue
			}
			for f := 0; f < frames; f++ {
				output[f*m.channels+channelIdx] += buf[f]
			}
		}
	}

	m.applyReverbGroups(output, frames)
	m.maybePublishSnapshot(frames)
}

// broadcastEvents drains the main queue once per callback and
// try-sends a copy of each event to every instance queue, in a fixed
// instance order, preserving per-event delivery order across
// instances.
func (m *Mixer) broadcastEvents() {
	for {
		select {
		case ev, ok := <-m.mainQueue:
			if !ok {
				return
			}
			for _, in := range m.instances {
				trySend(in.queue, ev)
			}
		default:
			return
		}
	}
}

func (m *Mixer) applyReverbGroups(output []float64, frames int) {
	for _, g := range m.reverbGroups {
		for _, ch := range g.Channels {
			if ch < 0 || ch >= m.channels {
				continue
			}
			for f := 0; f < frames; f++ {
				idx := f*m.channels + ch
				output[idx] = g.Reverb.Process(output[idx])
			}
		}
	}
}

func (m *Mixer) maybePublishSnapshot(frames int) {
	prev := m.sampleCount
	m.sampleCount += uint64(frames)
	if m.sampleCount/snapshotInterval == prev/snapshotInterval {
		return
	}
	if m.snapshotOut == nil {
		return
	}

	// Allocates a fresh copy: this fires roughly once every 100ms, not
	// once per callback, and the snapshot crosses into the TUI
	// goroutine so it must not alias the mixer's own reused buffers.
	states := make([][16]int16, len(m.instances))
	for i, in := range m.instances {
		states[i] = in.inst.VoiceStates()
	}

	select {
	case m.snapshotOut <- MixerSnapshot{VoiceStates: states}:
	default:
	}
}

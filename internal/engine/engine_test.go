package engine

import (
	"testing"

	"github.com/icco/synthd/internal/dsp"
	"github.com/icco/synthd/internal/drums"
	"github.com/icco/synthd/internal/events"
	"github.com/icco/synthd/internal/params"
)

const sr = 44100.0

func anyNonZero(v []float64) bool {
	for _, s := range v {
		if s != 0 {
			return true
		}
	}
	return false
}

func TestPolyEngineChannelFilter(t *testing.T) {
	q := NewEventQueue()
	e := NewPolyEngine(sr, params.NewPoly16(), q, 0, 0)

	q <- events.NoteOn(1, 60, 261.63, 0.8) // wrong channel
	buf := [][]float64{make([]float64, 32)}
	e.Process(buf)
	if anyNonZero(buf[0]) {
		t.Fatal("poly engine should ignore events on a non-matching channel")
	}
}

func TestPolyEngineRendersOnMatchingChannel(t *testing.T) {
	q := NewEventQueue()
	e := NewPolyEngine(sr, params.NewPoly16(), q, 0, 0)

	q <- events.NoteOn(0, 60, 261.63, 0.8)
	buf := [][]float64{make([]float64, 32)}
	e.Process(buf)
	if !anyNonZero(buf[0]) {
		t.Fatal("poly engine should render audio for a matching-channel NoteOn")
	}
}

func TestDrumEngineTriggersOnlyOnConfiguredNote(t *testing.T) {
	q := NewEventQueue()
	voice := drums.NewKick(sr, params.NewKick())
	drum := drums.NewEngine(voice, 36)
	e := NewDrumEngine(drum, q, events.NoChannel, 2)

	q <- events.NoteOn(0, 40, 0, 0.8) // not the trigger note
	buf := [][]float64{make([]float64, 32)}
	e.Process(buf)
	if anyNonZero(buf[0]) {
		t.Fatal("drum engine should not fire on a non-matching note")
	}

	q <- events.NoteOn(0, 36, 0, 0.8)
	e.Process(buf)
	if !anyNonZero(buf[0]) {
		t.Fatal("drum engine should fire on its configured trigger note")
	}
}

func TestMixerChannelRouting(t *testing.T) {
	const channels = 2
	mainQueue := make(chan events.SynthEvent, 4)
	m := NewMixer(channels, mainQueue, nil)

	q0 := NewEventQueue()
	q1 := NewEventQueue()
	e0 := NewPolyEngine(sr, params.NewPoly16(), q0, 0, 0)
	e1 := NewPolyEngine(sr, params.NewPoly16(), q1, 1, 1)
	m.AddInstance(e0, q0, 256)
	m.AddInstance(e1, q1, 256)

	mainQueue <- events.NoteOn(0, 60, 261.63, 0.8)

	const frames = 256
	output := make([]float64, frames*channels)
	m.Process(output, frames)

	ch0HasAudio := false
	ch1HasAudio := false
	for f := 0; f < frames; f++ {
		if output[f*channels+0] != 0 {
			ch0HasAudio = true
		}
		if output[f*channels+1] != 0 {
			ch1HasAudio = true
		}
	}

	if !ch0HasAudio {
		t.Fatal("channel 0 should have audio")
	}
	if ch1HasAudio {
		t.Fatal("channel 1 should be silent")
	}
}

func TestMixerBroadcastsToEveryInstance(t *testing.T) {
	const channels = 2
	mainQueue := make(chan events.SynthEvent, 4)
	m := NewMixer(channels, mainQueue, nil)

	q0 := NewEventQueue()
	q1 := NewEventQueue()
	e0 := NewPolyEngine(sr, params.NewPoly16(), q0, events.NoChannel, 0)
	e1 := NewPolyEngine(sr, params.NewPoly16(), q1, events.NoChannel, 1)
	m.AddInstance(e0, q0, 256)
	m.AddInstance(e1, q1, 256)

	mainQueue <- events.NoteOn(3, 60, 261.63, 0.8)

	const frames = 64
	output := make([]float64, frames*channels)
	m.Process(output, frames)

	ch0HasAudio, ch1HasAudio := false, false
	for f := 0; f < frames; f++ {
		if output[f*channels+0] != 0 {
			ch0HasAudio = true
		}
		if output[f*channels+1] != 0 {
			ch1HasAudio = true
		}
	}
	if !ch0HasAudio || !ch1HasAudio {
		t.Fatal("an omni-channel event should reach every instance")
	}
}

func TestMixerReverbGroupDryPassthroughAtZeroMix(t *testing.T) {
	const channels = 1
	mainQueue := make(chan events.SynthEvent, 1)
	m := NewMixer(channels, mainQueue, nil)

	q0 := NewEventQueue()
	e0 := NewPolyEngine(sr, params.NewPoly16(), q0, events.NoChannel, 0)
	m.AddInstance(e0, q0, 256)

	reverb := dsp.NewReverb(sr)
	reverb.SetMix(0.0)
	m.AddReverbGroup(&ReverbGroup{Channels: []int{0}, Reverb: reverb})

	mainQueue <- events.NoteOn(0, 60, 261.63, 0.8)

	const frames = 64
	dry := make([]float64, frames*channels)
	m.Process(dry, frames)

	// a second mixer with no reverb group renders the identical input
	// for comparison
	mainQueue2 := make(chan events.SynthEvent, 1)
	m2 := NewMixer(channels, mainQueue2, nil)
	q1 := NewEventQueue()
	e1 := NewPolyEngine(sr, params.NewPoly16(), q1, events.NoChannel, 0)
	m2.AddInstance(e1, q1, 256)
	mainQueue2 <- events.NoteOn(0, 60, 261.63, 0.8)
	reference := make([]float64, frames*channels)
	m2.Process(reference, frames)

	for i := range dry {
		if dry[i] != reference[i] {
			t.Fatalf("mix=0 should pass input through unchanged at sample %d: got %v want %v", i, dry[i], reference[i])
		}
	}
}

func TestMixerSnapshotPublishedPeriodically(t *testing.T) {
	const channels = 1
	mainQueue := make(chan events.SynthEvent, 1)
	snapshots := make(chan MixerSnapshot, 4)
	m := NewMixer(channels, mainQueue, snapshots)

	q0 := NewEventQueue()
	e0 := NewPolyEngine(sr, params.NewPoly16(), q0, events.NoChannel, 0)
	m.AddInstance(e0, q0, 512)

	output := make([]float64, 512*channels)
	for i := 0; i < 10; i++ {
		m.Process(output, 512)
	}

	select {
	case snap := <-snapshots:
		if len(snap.VoiceStates) != 1 {
			t.Fatalf("expected 1 instance in snapshot, got %d", len(snap.VoiceStates))
		}
	default:
		t.Fatal("expected at least one snapshot after 10*512 samples")
	}
}

package cv

import (
	"testing"

	"github.com/icco/synthd/internal/events"
	"github.com/icco/synthd/internal/params"
)

func TestNoteToVoltage(t *testing.T) {
	cases := []struct {
		note      uint8
		transpose int8
		want      float64
	}{
		{60, 0, 0.0},
		{72, 0, 0.1},
		{48, 0, -0.1},
		{60, 12, 0.1},
		{60, -12, -0.1},
	}
	for _, c := range cases {
		got := noteToVoltage(c.note, c.transpose)
		if abs(got-c.want) > 0.001 {
			t.Errorf("noteToVoltage(%d,%d) = %v, want %v", c.note, c.transpose, got, c.want)
		}
	}
}

func TestNotePriorityStackAndUnwind(t *testing.T) {
	v := NewVoice(44100)

	v.NoteOn(60)
	if n, ok := v.CurrentNote(); !ok || n != 60 {
		t.Fatalf("current note = %v,%v want 60,true", n, ok)
	}

	v.NoteOn(64)
	if n, ok := v.CurrentNote(); !ok || n != 64 {
		t.Fatalf("current note = %v,%v want 64,true", n, ok)
	}

	v.NoteOff(64)
	if n, ok := v.CurrentNote(); !ok || n != 60 {
		t.Fatalf("current note after releasing 64 = %v,%v want 60,true", n, ok)
	}

	v.NoteOff(60)
	if _, ok := v.CurrentNote(); ok {
		t.Fatal("expected no current note after releasing last held note")
	}
}

func TestGlideReachesTargetAfterGlideTime(t *testing.T) {
	v := NewVoice(44100)
	v.SetGlideTime(0.1)

	v.NoteOn(60)
	if v.currentPitch != 0.0 {
		t.Fatalf("first note should snap, currentPitch = %v", v.currentPitch)
	}

	v.NoteOn(72)
	if abs(v.targetPitch-0.1) > 0.001 {
		t.Fatalf("targetPitch = %v, want ~0.1", v.targetPitch)
	}

	for i := 0; i < 4410; i++ {
		v.NextPitchSample()
	}

	if abs(v.currentPitch-0.1) > 0.0001 {
		t.Fatalf("currentPitch after glide = %v, want 0.1", v.currentPitch)
	}
}

func TestGateFollowsNoteHoldState(t *testing.T) {
	v := NewVoice(44100)

	if v.NextGateSample() != 0.0 {
		t.Fatal("gate should start low")
	}

	v.NoteOn(60)
	if v.NextGateSample() != 0.8 {
		t.Fatal("gate should be high after NoteOn")
	}

	v.NoteOff(60)
	if v.NextGateSample() != 0.0 {
		t.Fatal("gate should fall after releasing the last note")
	}
}

func TestEngineChannelFilterAndDualRender(t *testing.T) {
	ch := make(chan events.SynthEvent, 4)
	p := params.NewCV()
	e := NewEngine(44100, p, ch, 0)

	ch <- events.NoteOn(1, 60, 261.63, 0.8) // wrong channel, ignored
	ch <- events.NoteOn(0, 60, 261.63, 0.8)

	pitch := make([]float64, 8)
	gate := make([]float64, 8)
	e.ProcessDual(pitch, gate)

	if gate[0] != 0.8 {
		t.Fatalf("gate[0] = %v, want 0.8 (channel 0 note should have been accepted)", gate[0])
	}
	if pitch[0] != 0.0 {
		t.Fatalf("pitch[0] = %v, want 0.0 for note 60 with no transpose", pitch[0])
	}
}

func TestEngineAllNotesOffAcceptedByEveryChannel(t *testing.T) {
	ch := make(chan events.SynthEvent, 4)
	p := params.NewCV()
	e := NewEngine(44100, p, ch, 5)

	ch <- events.NoteOn(5, 60, 261.63, 0.8)
	ch <- events.AllNotesOff(events.NoChannel)

	pitch := make([]float64, 1)
	gate := make([]float64, 1)
	e.ProcessDual(pitch, gate)

	if gate[0] != 0.0 {
		t.Fatalf("gate[0] = %v, want 0.0 after channel-less AllNotesOff", gate[0])
	}
}

package midi

import (
	"math"
	"testing"

	"github.com/icco/synthd/internal/events"
)

func TestParseNoteOn(t *testing.T) {
	m := Parse([]byte{0x90, 60, 100})
	if m.Kind != KindNoteOn || m.Channel != 0 || m.Note != 60 || m.Velocity != 100 {
		t.Errorf("unexpected parse result: %+v", m)
	}
}

func TestParseNoteOnVelocityZeroIsNoteOff(t *testing.T) {
	m := Parse([]byte{0x90, 60, 0})
	if m.Kind != KindNoteOff {
		t.Errorf("velocity 0 note-on should parse as note-off, got %+v", m)
	}
}

func TestParseNoteOff(t *testing.T) {
	m := Parse([]byte{0x80, 60, 64})
	if m.Kind != KindNoteOff || m.Note != 60 {
		t.Errorf("unexpected parse result: %+v", m)
	}
}

func TestParseControlChangeAllNotesOff(t *testing.T) {
	m := Parse([]byte{0xB2, 123, 0})
	if m.Kind != KindControlChange || m.Controller != 123 || m.Channel != 2 {
		t.Errorf("unexpected parse result: %+v", m)
	}
	ev, ok := m.ToSynthEvent(events.NoChannel)
	if !ok || ev.Kind != events.KindAllNotesOff {
		t.Errorf("CC123 should convert to AllNotesOff, got %+v ok=%v", ev, ok)
	}
}

func TestParseShortMessagesAreUnknown(t *testing.T) {
	for _, b := range [][]byte{{0x90, 60}, {0x80}, {0xB0, 1}, {}} {
		if m := Parse(b); m.Kind != KindUnknown {
			t.Errorf("Parse(%v) = %+v, want Unknown", b, m)
		}
	}
}

func TestParseUnknownStatus(t *testing.T) {
	m := Parse([]byte{0xE0, 0, 64}) // pitch bend, not handled
	if m.Kind != KindUnknown {
		t.Errorf("pitch bend should be Unknown, got %+v", m)
	}
}

func TestToSynthEventChannelFilter(t *testing.T) {
	m := Message{Kind: KindNoteOn, Channel: 3, Note: 69, Velocity: 100}
	if _, ok := m.ToSynthEvent(4); ok {
		t.Error("event on channel 3 should not match filter 4")
	}
	ev, ok := m.ToSynthEvent(3)
	if !ok {
		t.Fatal("event on channel 3 should match filter 3")
	}
	if math.Abs(ev.Frequency-440.0) > 0.1 {
		t.Errorf("note 69 frequency = %v, want ~440", ev.Frequency)
	}
}

func TestNoteToFrequency(t *testing.T) {
	if f := NoteToFrequency(69); math.Abs(f-440.0) > 0.01 {
		t.Errorf("freq(69) = %v, want 440", f)
	}
	if f := NoteToFrequency(60); math.Abs(f-261.63) > 0.01 {
		t.Errorf("freq(60) = %v, want 261.63", f)
	}
	ratio := NoteToFrequency(72) / NoteToFrequency(60)
	if math.Abs(ratio-2.0) > 1e-3 {
		t.Errorf("octave ratio = %v, want 2.0", ratio)
	}
}

func TestVelocityToAmplitude(t *testing.T) {
	if v := VelocityToAmplitude(0); v != 0 {
		t.Errorf("velocity 0 = %v, want 0", v)
	}
	if v := VelocityToAmplitude(127); v != 1 {
		t.Errorf("velocity 127 = %v, want 1", v)
	}
}

func TestParseNoteName(t *testing.T) {
	cases := []struct {
		name string
		want uint8
	}{
		{"c-1", 0},
		{"c0", 12},
		{"c4", 60},
		{"a4", 69},
		{"c#4", 61},
		{"db4", 61},
		{"gs3", 56},
		{"bf2", 46},
	}
	for _, c := range cases {
		got, err := ParseNoteName(c.name)
		if err != nil {
			t.Errorf("ParseNoteName(%q) error: %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseNoteName(%q) = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestParseNoteNameInvalid(t *testing.T) {
	for _, s := range []string{"", "h4", "c", "c999"} {
		if _, err := ParseNoteName(s); err == nil {
			t.Errorf("ParseNoteName(%q) should have errored", s)
		}
	}
}

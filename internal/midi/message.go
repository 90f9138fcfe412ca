// Package midi parses raw MIDI byte triples into typed messages and note
// names, and converts them into internal synth events.
package midi

import (
	"math"

	"github.com/icco/synthd/internal/events"
)

// MessageKind discriminates the parsed MidiMessage union.
type MessageKind uint8

const (
	KindUnknown MessageKind = iota
	KindNoteOn
	KindNoteOff
	KindControlChange
)

// ccAllNotesOff is the MIDI panic controller number (CC 123).
const ccAllNotesOff = 123

// Message is the parsed form of a raw MIDI status+data byte sequence.
type Message struct {
	Kind       MessageKind
	Channel    uint8
	Note       uint8
	Velocity   uint8
	Controller uint8
	Value      uint8
}

// Parse decodes a raw MIDI byte slice. A NoteOn with velocity 0 is rewritten
// as NoteOff per the MIDI spec. Anything too short or unrecognized is
// reported as KindUnknown and dropped by the caller.
func Parse(b []byte) Message {
	if len(b) == 0 {
		return Message{Kind: KindUnknown}
	}

	status := b[0]
	channel := status & 0x0F

	switch status & 0xF0 {
	case 0x90:
		if len(b) < 3 {
			return Message{Kind: KindUnknown}
		}
		note, velocity := b[1], b[2]
		if velocity == 0 {
			return Message{Kind: KindNoteOff, Channel: channel, Note: note, Velocity: 0}
		}
		return Message{Kind: KindNoteOn, Channel: channel, Note: note, Velocity: velocity}

	case 0x80:
		if len(b) < 3 {
			return Message{Kind: KindUnknown}
		}
		return Message{Kind: KindNoteOff, Channel: channel, Note: b[1], Velocity: b[2]}

	case 0xB0:
		if len(b) < 3 {
			return Message{Kind: KindUnknown}
		}
		return Message{Kind: KindControlChange, Channel: channel, Controller: b[1], Value: b[2]}

	default:
		return Message{Kind: KindUnknown}
	}
}

// ToSynthEvent converts a parsed message into an internal event, applying
// the instance's channel filter (0-15, or events.NoChannel for omni).
// Returns false when the event should be dropped (filtered out, or a
// message kind with no synth-level meaning).
func (m Message) ToSynthEvent(channelFilter uint8) (events.SynthEvent, bool) {
	accept := channelFilter == events.NoChannel || m.Channel == channelFilter

	switch m.Kind {
	case KindNoteOn:
		if !accept {
			return events.SynthEvent{}, false
		}
		return events.NoteOn(m.Channel, m.Note, NoteToFrequency(m.Note), VelocityToAmplitude(m.Velocity)), true

	case KindNoteOff:
		if !accept {
			return events.SynthEvent{}, false
		}
		return events.NoteOff(m.Channel, m.Note), true

	case KindControlChange:
		if !accept || m.Controller != ccAllNotesOff {
			return events.SynthEvent{}, false
		}
		return events.AllNotesOff(m.Channel), true

	default:
		return events.SynthEvent{}, false
	}
}

// NoteToFrequency converts a MIDI note number to Hz using equal
// temperament, A4 (note 69) = 440Hz.
func NoteToFrequency(note uint8) float64 {
	const a4 = 440.0
	const a4Midi = 69
	semitones := float64(int(note) - a4Midi)
	return a4 * math.Pow(2, semitones/12)
}

// VelocityToAmplitude normalizes a 0-127 MIDI velocity to [0,1].
func VelocityToAmplitude(velocity uint8) float64 {
	v := float64(velocity) / 127.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

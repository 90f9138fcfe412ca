// Package cv implements the monophonic control-voltage generator: a
// note-priority stack, linear glide and a gate signal.
package cv

// maxNotes bounds the note stack the same way a poly voice pool bounds
// its voice count, so no runtime allocation is ever needed.
const maxNotes = 16

// Voice is a single monophonic CV generator.
type Voice struct {
	sampleRate float64

	noteStack []uint8

	currentPitch float64
	targetPitch  float64

	transpose int8

	glideTime        float64
	glideStep        float64
	glideSamplesLeft float64

	gateHigh bool
}

// NewVoice creates a CV voice with its note stack pre-allocated to
// maxNotes capacity.
func NewVoice(sampleRate float64) *Voice {
	return &Voice{
		sampleRate: sampleRate,
		noteStack:  make([]uint8, 0, maxNotes),
	}
}

// noteToVoltage maps a MIDI note (plus transpose) to normalised CV in
// [-1,1] representing +/-10V, with C4=0V.
func noteToVoltage(note uint8, transpose int8) float64 {
	transposed := int16(note) + int16(transpose)
	if transposed < 0 {
		transposed = 0
	} else if transposed > 127 {
		transposed = 127
	}
	return (float64(transposed) - 60.0) / 120.0
}

func (v *Voice) contains(note uint8) bool {
	for _, n := range v.noteStack {
		if n == note {
			return true
		}
	}
	return false
}

func (v *Voice) remove(note uint8) {
	out := v.noteStack[:0]
	for _, n := range v.noteStack {
		if n != note {
			out = append(out, n)
		}
	}
	v.noteStack = out
}

// NoteOn pushes note onto the stack (if not already present) and
// updates the target pitch. A fresh gate snaps instantly; a held gate
// glides.
func (v *Voice) NoteOn(note uint8) {
	if !v.contains(note) {
		if len(v.noteStack) < maxNotes {
			v.noteStack = append(v.noteStack, note)
		} else {
			v.noteStack[0] = note
		}
	}

	v.targetPitch = noteToVoltage(note, v.transpose)

	if !v.gateHigh {
		v.currentPitch = v.targetPitch
		v.glideSamplesLeft = 0
	} else {
		v.startGlide()
	}

	v.gateHigh = true
}

// NoteOff pops note from the stack. If the stack empties, the gate
// falls; otherwise the voice re-targets the new top-of-stack note
// (last-note priority) and glides to it.
func (v *Voice) NoteOff(note uint8) {
	v.remove(note)

	if len(v.noteStack) == 0 {
		v.gateHigh = false
		return
	}

	last := v.noteStack[len(v.noteStack)-1]
	v.targetPitch = noteToVoltage(last, v.transpose)
	v.startGlide()
}

// AllNotesOff clears the stack and drops the gate.
func (v *Voice) AllNotesOff() {
	v.noteStack = v.noteStack[:0]
	v.gateHigh = false
}

// SetGlideTime sets the glide time in seconds for subsequent legato
// note changes.
func (v *Voice) SetGlideTime(t float64) {
	v.glideTime = t
}

// SetTranspose updates the semitone transpose and, if a note is
// currently held, re-targets and glides to the re-mapped pitch.
func (v *Voice) SetTranspose(semitones int8) {
	v.transpose = semitones

	if len(v.noteStack) > 0 {
		current := v.noteStack[len(v.noteStack)-1]
		v.targetPitch = noteToVoltage(current, v.transpose)
		v.startGlide()
	}
}

func (v *Voice) startGlide() {
	distance := v.targetPitch - v.currentPitch

	if v.glideTime <= 0.0 || abs(distance) < 0.0001 {
		v.currentPitch = v.targetPitch
		v.glideStep = 0
		v.glideSamplesLeft = 0
		return
	}

	totalSamples := v.glideTime * v.sampleRate
	v.glideStep = distance / totalSamples
	v.glideSamplesLeft = totalSamples
}

// NextPitchSample advances any in-progress glide and returns the
// current pitch CV.
func (v *Voice) NextPitchSample() float64 {
	if v.glideSamplesLeft > 0 {
		v.currentPitch += v.glideStep
		v.glideSamplesLeft--

		if v.glideSamplesLeft <= 0 {
			v.currentPitch = v.targetPitch
		}
	}
	return v.currentPitch
}

// NextGateSample returns the gate CV: 0.8 while a note is held, 0
// otherwise.
func (v *Voice) NextGateSample() float64 {
	if v.gateHigh {
		return 0.8
	}
	return 0.0
}

// CurrentNote reports the top-of-stack note, if any.
func (v *Voice) CurrentNote() (uint8, bool) {
	if len(v.noteStack) == 0 {
		return 0, false
	}
	return v.noteStack[len(v.noteStack)-1], true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

package drums

// Trigger is the minimal interface every one-shot voice implements, so
// Engine can drive any of Kick/Snare/Hat identically.
type Trigger interface {
	Trigger()
	IsActive() bool
	NextSample() float64
}

// Engine wraps a single one-shot drum voice, matching it to one trigger
// note. MIDI channel filtering is left to the caller (engine.DrumEngine).
type Engine struct {
	voice       Trigger
	triggerNote uint8
}

// NewEngine binds a drum voice to the MIDI note that fires it.
func NewEngine(voice Trigger, triggerNote uint8) *Engine {
	return &Engine{voice: voice, triggerNote: triggerNote}
}

// NoteOn fires the voice if the note matches the configured trigger
// note; any other note is ignored.
func (e *Engine) NoteOn(note uint8) {
	if note == e.triggerNote {
		e.voice.Trigger()
	}
}

// IsActive reports whether the voice is still generating audio.
func (e *Engine) IsActive() bool {
	return e.voice.IsActive()
}

// Process fills output with one render block. Drums ignore NoteOff and
// AllNotesOff per the spec's "let drums finish naturally" policy; they
// are one-shot and decay to silence on their own envelopes.
func (e *Engine) Process(output []float64) {
	for i := range output {
		output[i] = e.voice.NextSample()
	}
}

package midi

import (
	"fmt"
	"strconv"
	"strings"
)

var pitchClass = map[byte]int{
	'c': 0, 'd': 2, 'e': 4, 'f': 5, 'g': 7, 'a': 9, 'b': 11,
}

// ParseNoteName converts a pitch name like "c4", "a#3", "bb-1", "gs5" into a
// MIDI note number, using C-1=0, C0=12, C4=60 (middle C). '#'/'s' raise a
// semitone; 'b'/'f' lower one. The result must land in 0..127.
func ParseNoteName(name string) (uint8, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if len(s) == 0 {
		return 0, fmt.Errorf("empty note name")
	}

	base, ok := pitchClass[s[0]]
	if !ok {
		return 0, fmt.Errorf("invalid note name %q: unknown pitch class %q", name, s[0:1])
	}
	rest := s[1:]

	accidental := 0
	if len(rest) > 0 {
		switch rest[0] {
		case '#', 's':
			accidental = 1
			rest = rest[1:]
		case 'b', 'f':
			accidental = -1
			rest = rest[1:]
		}
	}

	if len(rest) == 0 {
		return 0, fmt.Errorf("invalid note name %q: missing octave", name)
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid note name %q: bad octave %q", name, rest)
	}

	note := base + accidental + (octave+1)*12
	if note < 0 || note > 127 {
		return 0, fmt.Errorf("note name %q resolves to out-of-range MIDI note %d", name, note)
	}
	return uint8(note), nil
}

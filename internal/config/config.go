// Package config loads and validates the declarative TOML configuration
// file describing every instrument instance and the devices to bind.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/icco/synthd/internal/dsp"
	"github.com/icco/synthd/internal/events"
	"github.com/icco/synthd/internal/midi"
)

// Config is the raw, as-parsed shape of the TOML configuration file.
type Config struct {
	Devices      Devices       `toml:"devices"`
	Poly16s      []Poly16      `toml:"poly16"`
	Drums        []Drum        `toml:"drums"`
	CVs          []CV          `toml:"cvs"`
	ReverbGroups []ReverbGroup `toml:"reverb_groups"`
}

// Devices names the MIDI input port and audio output device to bind at
// startup.
type Devices struct {
	MidiIn   string `toml:"midiin"`
	AudioOut string `toml:"audioout"`
}

// Poly16 configures one 16-voice polyphonic synth instance.
type Poly16 struct {
	MidiChannel  any      `toml:"midich"`
	AudioChannel int      `toml:"audioch"`
	Attack       *float64 `toml:"attack"`
	Decay        *float64 `toml:"decay"`
	Sustain      *float64 `toml:"sustain"`
	Release      *float64 `toml:"release"`
	Wave         string   `toml:"wave"`
}

// Drum configures one one-shot percussion instance and its trigger note.
type Drum struct {
	MidiChannel  any    `toml:"midich"`
	AudioChannel int    `toml:"audioch"`
	Type         string `toml:"type"`
	Note         string `toml:"note"`

	PitchStart *float64 `toml:"pitch_start"`
	PitchEnd   *float64 `toml:"pitch_end"`
	PitchDecay *float64 `toml:"pitch_decay"`
	Decay      *float64 `toml:"decay"`
	Click      *float64 `toml:"click"`

	ToneFreq *float64 `toml:"tone_freq"`
	ToneMix  *float64 `toml:"tone_mix"`
	Snap     *float64 `toml:"snap"`

	Brightness *float64 `toml:"brightness"`
	Metallic   *float64 `toml:"metallic"`
}

// CV configures one monophonic control-voltage generator, occupying
// two consecutive output channels (pitch, then gate).
type CV struct {
	MidiChannel  any      `toml:"midich"`
	AudioChannel int      `toml:"audioch"`
	Transpose    int      `toml:"transpose"`
	Glide        *float64 `toml:"glide"`
}

// ReverbGroup applies one shared FreeVerb-style reverb to a fixed set
// of 0-indexed output channels after the per-instance mix.
type ReverbGroup struct {
	Channels []int    `toml:"channels"`
	Mix      float64  `toml:"mix"`
	RoomSize *float64 `toml:"room_size"`
	Damping  *float64 `toml:"damping"`
}

// Load reads, parses and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return &cfg, nil
}

// midiChannelFilter resolves a raw TOML midich value (an integer 1..16
// or the string "omni"/"all") into the internal 0-15-or-NoChannel
// filter representation.
func midiChannelFilter(v any) (uint8, error) {
	switch t := v.(type) {
	case int64:
		if t < 1 || t > 16 {
			return 0, fmt.Errorf("midich must be 1..16 or \"omni\", got %d", t)
		}
		return uint8(t - 1), nil
	case int:
		return midiChannelFilter(int64(t))
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		if s == "omni" || s == "all" {
			return events.NoChannel, nil
		}
		return 0, fmt.Errorf("midich string must be \"omni\" or \"all\", got %q", t)
	case nil:
		return 0, fmt.Errorf("midich is required")
	default:
		return 0, fmt.Errorf("midich must be an integer 1..16 or \"omni\", got %T", v)
	}
}

var waveformByName = map[string]dsp.Waveform{
	"sine":     dsp.WaveformSine,
	"triangle": dsp.WaveformTriangle,
	"sawtooth": dsp.WaveformSawtooth,
	"square":   dsp.WaveformSquare,
}

func parseWaveform(name string) (dsp.Waveform, error) {
	if name == "" {
		return dsp.WaveformSine, nil
	}
	w, ok := waveformByName[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown waveform %q", name)
	}
	return w, nil
}

func floatOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

// ResolvedPoly16 is a Poly16 instance with defaults applied and its
// MIDI/audio channel values converted to the internal representations
// the mixer and engines consume.
type ResolvedPoly16 struct {
	MidiChannelFilter uint8
	AudioChannelIndex int
	Attack            float64
	Decay             float64
	Sustain           float64
	Release           float64
	Waveform          dsp.Waveform
}

// Resolve validates and converts one Poly16 config entry.
func (p Poly16) Resolve() (ResolvedPoly16, error) {
	var r ResolvedPoly16

	filter, err := midiChannelFilter(p.MidiChannel)
	if err != nil {
		return r, err
	}

	if p.AudioChannel < 1 {
		return r, fmt.Errorf("audioch must be >= 1 (channels are 1-indexed), got %d", p.AudioChannel)
	}

	attack := floatOr(p.Attack, 0.01)
	decay := floatOr(p.Decay, 0.1)
	sustain := floatOr(p.Sustain, 0.7)
	release := floatOr(p.Release, 0.1)

	if attack < 0 || attack > 10 {
		return r, fmt.Errorf("attack must be in [0,10]s, got %v", attack)
	}
	if decay < 0 || decay > 10 {
		return r, fmt.Errorf("decay must be in [0,10]s, got %v", decay)
	}
	if sustain < 0 || sustain > 1 {
		return r, fmt.Errorf("sustain must be in [0,1], got %v", sustain)
	}
	if release < 0 || release > 10 {
		return r, fmt.Errorf("release must be in [0,10]s, got %v", release)
	}

	wave, err := parseWaveform(p.Wave)
	if err != nil {
		return r, err
	}

	return ResolvedPoly16{
		MidiChannelFilter: filter,
		AudioChannelIndex: p.AudioChannel - 1,
		Attack:            attack,
		Decay:             decay,
		Sustain:           sustain,
		Release:           release,
		Waveform:          wave,
	}, nil
}

// ResolvedDrum is a Drum instance with defaults applied.
type ResolvedDrum struct {
	MidiChannelFilter uint8
	AudioChannelIndex int
	Type              string
	TriggerNote       uint8

	PitchStart float64
	PitchEnd   float64
	PitchDecay float64
	Decay      float64
	Click      float64

	ToneFreq float64
	ToneMix  float64
	Snap     float64

	Brightness float64
	Metallic   float64
}

// Resolve validates and converts one Drum config entry.
func (d Drum) Resolve() (ResolvedDrum, error) {
	var r ResolvedDrum

	filter, err := midiChannelFilter(d.MidiChannel)
	if err != nil {
		return r, err
	}
	if d.AudioChannel < 1 {
		return r, fmt.Errorf("audioch must be >= 1, got %d", d.AudioChannel)
	}

	switch strings.ToLower(d.Type) {
	case "kick", "snare", "hat":
	default:
		return r, fmt.Errorf("drum type must be kick, snare or hat, got %q", d.Type)
	}

	note, err := midi.ParseNoteName(d.Note)
	if err != nil {
		return r, fmt.Errorf("drum trigger note: %w", err)
	}

	r = ResolvedDrum{
		MidiChannelFilter: filter,
		AudioChannelIndex: d.AudioChannel - 1,
		Type:              strings.ToLower(d.Type),
		TriggerNote:       note,
		PitchStart:        floatOr(d.PitchStart, 150.0),
		PitchEnd:          floatOr(d.PitchEnd, 40.0),
		PitchDecay:        floatOr(d.PitchDecay, 0.05),
		Decay:             floatOr(d.Decay, 0.3),
		Click:             floatOr(d.Click, 0.3),
		ToneFreq:          floatOr(d.ToneFreq, 200.0),
		ToneMix:           floatOr(d.ToneMix, 0.3),
		Snap:              floatOr(d.Snap, 0.5),
		Brightness:        floatOr(d.Brightness, 7000.0),
		Metallic:          floatOr(d.Metallic, 0.4),
	}
	return r, nil
}

// ResolvedCV is a CV instance with defaults applied.
type ResolvedCV struct {
	MidiChannelFilter uint8
	AudioChannelIndex int
	Transpose         int8
	Glide             float64
}

// Resolve validates and converts one CV config entry.
func (c CV) Resolve() (ResolvedCV, error) {
	var r ResolvedCV

	filter, err := midiChannelFilter(c.MidiChannel)
	if err != nil {
		return r, err
	}
	if c.AudioChannel < 1 {
		return r, fmt.Errorf("audioch must be >= 1, got %d", c.AudioChannel)
	}
	if c.Transpose < -24 || c.Transpose > 24 {
		return r, fmt.Errorf("transpose must be in -24..24, got %d", c.Transpose)
	}

	glide := floatOr(c.Glide, 0.0)
	if glide < 0 || glide > 2 {
		return r, fmt.Errorf("glide must be in [0,2]s, got %v", glide)
	}

	return ResolvedCV{
		MidiChannelFilter: filter,
		AudioChannelIndex: c.AudioChannel - 1,
		Transpose:         int8(c.Transpose),
		Glide:             glide,
	}, nil
}

// ResolvedReverbGroup is a ReverbGroup with defaults applied.
type ResolvedReverbGroup struct {
	Channels []int
	Mix      float64
	RoomSize float64
	Damping  float64
}

// Resolve validates and converts one ReverbGroup config entry.
func (g ReverbGroup) Resolve() (ResolvedReverbGroup, error) {
	if len(g.Channels) == 0 {
		return ResolvedReverbGroup{}, fmt.Errorf("reverb_groups entry must list at least one channel")
	}
	if g.Mix < 0 || g.Mix > 1 {
		return ResolvedReverbGroup{}, fmt.Errorf("reverb mix must be in [0,1], got %v", g.Mix)
	}
	roomSize := floatOr(g.RoomSize, 0.5)
	damping := floatOr(g.Damping, 0.2)
	if roomSize < 0 || roomSize > 1 {
		return ResolvedReverbGroup{}, fmt.Errorf("reverb room_size must be in [0,1], got %v", roomSize)
	}
	if damping < 0 || damping > 1 {
		return ResolvedReverbGroup{}, fmt.Errorf("reverb damping must be in [0,1], got %v", damping)
	}
	return ResolvedReverbGroup{
		Channels: g.Channels,
		Mix:      g.Mix,
		RoomSize: roomSize,
		Damping:  damping,
	}, nil
}

// Validate checks structural and per-instance invariants without
// mutating the config; Resolve() on each entry re-validates and
// performs the actual conversion used at startup.
func (c Config) Validate() error {
	if c.Devices.MidiIn == "" {
		return fmt.Errorf("devices.midiin is required")
	}
	if c.Devices.AudioOut == "" {
		return fmt.Errorf("devices.audioout is required")
	}
	if len(c.Poly16s) == 0 && len(c.Drums) == 0 && len(c.CVs) == 0 {
		return fmt.Errorf("configuration must declare at least one of poly16, drums or cvs")
	}

	for i, p := range c.Poly16s {
		if _, err := p.Resolve(); err != nil {
			return fmt.Errorf("poly16[%d]: %w", i, err)
		}
	}
	for i, d := range c.Drums {
		if _, err := d.Resolve(); err != nil {
			return fmt.Errorf("drums[%d]: %w", i, err)
		}
	}
	for i, v := range c.CVs {
		if _, err := v.Resolve(); err != nil {
			return fmt.Errorf("cvs[%d]: %w", i, err)
		}
	}
	for i, g := range c.ReverbGroups {
		if _, err := g.Resolve(); err != nil {
			return fmt.Errorf("reverb_groups[%d]: %w", i, err)
		}
	}

	return nil
}

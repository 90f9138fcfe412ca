package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/icco/synthd/internal/events"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "synthd.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	return path
}

const validConfig = `
[devices]
midiin = "IAC Driver Bus 1"
audioout = "default"

[[poly16]]
midich = 1
audioch = 1
wave = "sawtooth"
attack = 0.02
decay = 0.2
sustain = 0.6
release = 0.3

[[drums]]
midich = 2
audioch = 2
type = "kick"
note = "c1"

[[cvs]]
midich = "omni"
audioch = 3
transpose = 12
glide = 0.05

[[reverb_groups]]
channels = [1]
mix = 0.3
room_size = 0.6
damping = 0.4
`

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, validConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Devices.MidiIn != "IAC Driver Bus 1" {
		t.Fatalf("unexpected midiin: %q", cfg.Devices.MidiIn)
	}
	if len(cfg.Poly16s) != 1 || len(cfg.Drums) != 1 || len(cfg.CVs) != 1 || len(cfg.ReverbGroups) != 1 {
		t.Fatalf("unexpected instance counts: %+v", cfg)
	}

	poly, err := cfg.Poly16s[0].Resolve()
	if err != nil {
		t.Fatalf("resolving poly16: %v", err)
	}
	if poly.MidiChannelFilter != 0 {
		t.Fatalf("midich 1 should resolve to filter 0, got %d", poly.MidiChannelFilter)
	}
	if poly.AudioChannelIndex != 0 {
		t.Fatalf("audioch 1 should resolve to index 0, got %d", poly.AudioChannelIndex)
	}
	if poly.Sustain != 0.6 {
		t.Fatalf("expected sustain 0.6, got %v", poly.Sustain)
	}

	drum, err := cfg.Drums[0].Resolve()
	if err != nil {
		t.Fatalf("resolving drum: %v", err)
	}
	if drum.Type != "kick" {
		t.Fatalf("expected kick, got %q", drum.Type)
	}
	if drum.TriggerNote != 24 {
		t.Fatalf("c1 should parse to note 24, got %d", drum.TriggerNote)
	}

	cv, err := cfg.CVs[0].Resolve()
	if err != nil {
		t.Fatalf("resolving cv: %v", err)
	}
	if cv.MidiChannelFilter != events.NoChannel {
		t.Fatalf("omni midich should resolve to NoChannel, got %d", cv.MidiChannelFilter)
	}
	if cv.Transpose != 12 {
		t.Fatalf("expected transpose 12, got %d", cv.Transpose)
	}

	group, err := cfg.ReverbGroups[0].Resolve()
	if err != nil {
		t.Fatalf("resolving reverb group: %v", err)
	}
	if len(group.Channels) != 1 || group.Channels[0] != 1 {
		t.Fatalf("unexpected reverb channels: %+v", group.Channels)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load("/nonexistent/path/synthd.toml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestValidateRejectsMissingDevices(t *testing.T) {
	path := writeConfig(t, `
[devices]
midiin = ""
audioout = "default"

[[poly16]]
midich = 1
audioch = 1
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a missing midiin device")
	}
}

func TestValidateRejectsEmptyInstanceSet(t *testing.T) {
	path := writeConfig(t, `
[devices]
midiin = "in"
audioout = "out"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error when no instances are declared")
	}
}

func TestPoly16ResolveRejectsOutOfRangeADSR(t *testing.T) {
	cases := []Poly16{
		{MidiChannel: int64(1), AudioChannel: 1, Attack: floatPtr(-1)},
		{MidiChannel: int64(1), AudioChannel: 1, Sustain: floatPtr(1.5)},
		{MidiChannel: int64(1), AudioChannel: 1, Release: floatPtr(20)},
	}
	for i, c := range cases {
		if _, err := c.Resolve(); err == nil {
			t.Fatalf("case %d: expected a validation error", i)
		}
	}
}

func TestPoly16ResolveAppliesDefaultsWhenOmitted(t *testing.T) {
	p := Poly16{MidiChannel: int64(1), AudioChannel: 1}
	r, err := p.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Attack != 0.01 || r.Decay != 0.1 || r.Sustain != 0.7 || r.Release != 0.1 {
		t.Fatalf("unexpected defaults: %+v", r)
	}
}

func TestMidiChannelFilterAcceptsOmniAliases(t *testing.T) {
	for _, alias := range []string{"omni", "OMNI", "all", " All "} {
		filter, err := midiChannelFilter(alias)
		if err != nil {
			t.Fatalf("alias %q: %v", alias, err)
		}
		if filter != events.NoChannel {
			t.Fatalf("alias %q should resolve to NoChannel, got %d", alias, filter)
		}
	}
}

func TestMidiChannelFilterRejectsOutOfRange(t *testing.T) {
	for _, v := range []any{int64(0), int64(17), "bogus", nil} {
		if _, err := midiChannelFilter(v); err == nil {
			t.Fatalf("value %v should be rejected", v)
		}
	}
}

func TestCVResolveRejectsOutOfRangeTransposeAndGlide(t *testing.T) {
	base := CV{MidiChannel: int64(1), AudioChannel: 1}

	tooFar := base
	tooFar.Transpose = 30
	if _, err := tooFar.Resolve(); err == nil {
		t.Fatal("expected an error for transpose out of range")
	}

	tooSlow := base
	tooSlow.Glide = floatPtr(5)
	if _, err := tooSlow.Resolve(); err == nil {
		t.Fatal("expected an error for glide out of range")
	}
}

func TestDrumResolveRejectsUnknownType(t *testing.T) {
	d := Drum{MidiChannel: int64(1), AudioChannel: 1, Type: "cowbell", Note: "c1"}
	if _, err := d.Resolve(); err == nil {
		t.Fatal("expected an error for an unknown drum type")
	}
}

func TestDrumResolveRejectsUnparseableNote(t *testing.T) {
	d := Drum{MidiChannel: int64(1), AudioChannel: 1, Type: "kick", Note: "not-a-note"}
	if _, err := d.Resolve(); err == nil {
		t.Fatal("expected an error for an unparseable note name")
	}
}

func TestReverbGroupResolveRejectsEmptyChannelsOrBadMix(t *testing.T) {
	if _, err := (ReverbGroup{Channels: nil, Mix: 0.2}).Resolve(); err == nil {
		t.Fatal("expected an error for an empty channel list")
	}
	if _, err := (ReverbGroup{Channels: []int{0}, Mix: 1.5}).Resolve(); err == nil {
		t.Fatal("expected an error for mix out of range")
	}
}

func floatPtr(v float64) *float64 { return &v }

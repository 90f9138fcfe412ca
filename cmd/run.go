package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/icco/synthd/internal/audioio"
	"github.com/icco/synthd/internal/config"
	"github.com/icco/synthd/internal/cv"
	"github.com/icco/synthd/internal/drums"
	"github.com/icco/synthd/internal/dsp"
	"github.com/icco/synthd/internal/engine"
	"github.com/icco/synthd/internal/events"
	"github.com/icco/synthd/internal/midiio"
	"github.com/icco/synthd/internal/params"
	"github.com/icco/synthd/internal/tui"
)

var configPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load a configuration file and render audio from live MIDI input",
	Run:   runRun,
}

func init() {
	runCmd.Flags().StringVarP(&configPath, "config", "c", "synthd.toml", "path to the configuration file")
	rootCmd.AddCommand(runCmd)
}

// maxBlockFrames pre-sizes every instance's scratch buffers once at
// startup; oto is free to request smaller blocks at runtime.
const maxBlockFrames = 4096

func runRun(cmd *cobra.Command, args []string) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	channels := outputChannelCount(cfg)
	if channels == 0 {
		logger.Error("configuration declares no output channels")
		os.Exit(1)
	}

	mainQueue := engine.NewEventQueue()
	snapshots := make(chan engine.MixerSnapshot, 4)
	mixer := engine.NewMixer(channels, mainQueue, snapshots)

	var labels []tui.InstanceLabel
	if err := wirePoly16s(cfg, mixer, &labels); err != nil {
		logger.Error("invalid poly16 configuration", "error", err)
		os.Exit(1)
	}
	if err := wireDrums(cfg, mixer, &labels); err != nil {
		logger.Error("invalid drum configuration", "error", err)
		os.Exit(1)
	}
	if err := wireCVs(cfg, mixer, &labels); err != nil {
		logger.Error("invalid cv configuration", "error", err)
		os.Exit(1)
	}
	if err := wireReverbGroups(cfg, mixer); err != nil {
		logger.Error("invalid reverb group configuration", "error", err)
		os.Exit(1)
	}

	adapter, err := audioio.NewAdapter(mixer, channels)
	if err != nil {
		logger.Error("failed to open audio output", "error", err)
		os.Exit(1)
	}
	adapter.Start()
	defer adapter.Close()

	midiLog := make(chan string, 32)
	listener, err := midiio.Open(cfg.Devices.MidiIn, func(ev events.SynthEvent) {
		select {
		case mainQueue <- ev:
		default:
		}
		select {
		case midiLog <- formatEvent(ev):
		default:
		}
	})
	if err != nil {
		logger.Error("failed to open midi input", "error", err)
		os.Exit(1)
	}
	defer listener.Close()

	model := tui.NewModel(listener.PortName(), cfg.Devices.AudioOut, labels, snapshots, midiLog)
	program := tea.NewProgram(model, tea.WithAltScreen())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		logger.Error("status display exited with an error", "error", err)
		os.Exit(1)
	}
}

func wirePoly16s(cfg *config.Config, mixer *engine.Mixer, labels *[]tui.InstanceLabel) error {
	for i, p := range cfg.Poly16s {
		r, err := p.Resolve()
		if err != nil {
			return fmt.Errorf("poly16[%d]: %w", i, err)
		}

		block := params.NewPoly16()
		block.Attack.Store(r.Attack)
		block.Decay.Store(r.Decay)
		block.Sustain.Store(r.Sustain)
		block.Release.Store(r.Release)
		block.Waveform.Store(uint8(r.Waveform))

		q := engine.NewEventQueue()
		inst := engine.NewPolyEngine(audioio.SampleRate, block, q, r.MidiChannelFilter, r.AudioChannelIndex)
		mixer.AddInstance(inst, q, maxBlockFrames)
		*labels = append(*labels, tui.InstanceLabel{Name: fmt.Sprintf("poly16[%d]", i), Kind: "poly16"})
	}
	return nil
}

func wireDrums(cfg *config.Config, mixer *engine.Mixer, labels *[]tui.InstanceLabel) error {
	for i, d := range cfg.Drums {
		r, err := d.Resolve()
		if err != nil {
			return fmt.Errorf("drums[%d]: %w", i, err)
		}

		var voice drums.Trigger
		switch r.Type {
		case "kick":
			block := params.NewKick()
			block.PitchStart.Store(r.PitchStart)
			block.PitchEnd.Store(r.PitchEnd)
			block.PitchDecay.Store(r.PitchDecay)
			block.Decay.Store(r.Decay)
			block.Click.Store(r.Click)
			voice = drums.NewKick(audioio.SampleRate, block)
		case "snare":
			block := params.NewSnare()
			block.ToneFreq.Store(r.ToneFreq)
			block.ToneMix.Store(r.ToneMix)
			block.Decay.Store(r.Decay)
			block.Snap.Store(r.Snap)
			voice = drums.NewSnare(audioio.SampleRate, block)
		case "hat":
			block := params.NewHat()
			block.Brightness.Store(r.Brightness)
			block.Decay.Store(r.Decay)
			block.Metallic.Store(r.Metallic)
			voice = drums.NewHat(audioio.SampleRate, block)
		default:
			return fmt.Errorf("drums[%d]: unknown type %q", i, r.Type)
		}

		drumEngine := drums.NewEngine(voice, r.TriggerNote)
		q := engine.NewEventQueue()
		inst := engine.NewDrumEngine(drumEngine, q, r.MidiChannelFilter, r.AudioChannelIndex)
		mixer.AddInstance(inst, q, maxBlockFrames)
		*labels = append(*labels, tui.InstanceLabel{Name: fmt.Sprintf("drums[%d] (%s)", i, r.Type), Kind: r.Type})
	}
	return nil
}

func wireCVs(cfg *config.Config, mixer *engine.Mixer, labels *[]tui.InstanceLabel) error {
	for i, c := range cfg.CVs {
		r, err := c.Resolve()
		if err != nil {
			return fmt.Errorf("cvs[%d]: %w", i, err)
		}

		block := params.NewCV()
		block.Transpose.Store(r.Transpose)
		block.Glide.Store(r.Glide)

		q := engine.NewEventQueue()
		cvEngine := cv.NewEngine(audioio.SampleRate, block, q, r.MidiChannelFilter)
		inst := engine.NewCVEngine(cvEngine, r.AudioChannelIndex)
		mixer.AddInstance(inst, q, maxBlockFrames)
		*labels = append(*labels, tui.InstanceLabel{Name: fmt.Sprintf("cvs[%d]", i), Kind: "cv"})
	}
	return nil
}

func wireReverbGroups(cfg *config.Config, mixer *engine.Mixer) error {
	for i, g := range cfg.ReverbGroups {
		r, err := g.Resolve()
		if err != nil {
			return fmt.Errorf("reverb_groups[%d]: %w", i, err)
		}

		reverb := dsp.NewReverb(audioio.SampleRate)
		reverb.SetMix(r.Mix)
		reverb.SetRoomSize(r.RoomSize)
		reverb.SetDamping(r.Damping)
		mixer.AddReverbGroup(&engine.ReverbGroup{Channels: r.Channels, Reverb: reverb})
	}
	return nil
}

// outputChannelCount derives the minimum channel count covering every
// configured instance's output slots.
func outputChannelCount(cfg *config.Config) int {
	highest := -1
	track := func(idx int) {
		if idx > highest {
			highest = idx
		}
	}
	for _, p := range cfg.Poly16s {
		track(p.AudioChannel - 1)
	}
	for _, d := range cfg.Drums {
		track(d.AudioChannel - 1)
	}
	for _, c := range cfg.CVs {
		track(c.AudioChannel) // CV occupies two channels: pitch at audioch-1, gate at audioch
	}
	for _, g := range cfg.ReverbGroups {
		for _, ch := range g.Channels {
			track(ch)
		}
	}
	return highest + 1
}

func formatEvent(ev events.SynthEvent) string {
	switch ev.Kind {
	case events.KindNoteOn:
		return fmt.Sprintf("note on  ch%d %-4s vel %.2f", ev.Channel+1, midiNoteName(ev.Note), ev.Velocity)
	case events.KindNoteOff:
		return fmt.Sprintf("note off ch%d %-4s", ev.Channel+1, midiNoteName(ev.Note))
	case events.KindAllNotesOff:
		return fmt.Sprintf("all notes off ch%d", ev.Channel+1)
	default:
		return "unknown event"
	}
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func midiNoteName(note uint8) string {
	octave := int(note)/12 - 1
	return fmt.Sprintf("%s%d", noteNames[note%12], octave)
}

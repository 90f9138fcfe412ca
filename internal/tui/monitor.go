// Package tui renders a read-only status view of every running
// instrument instance: which voices are sounding, and a running log of
// incoming MIDI activity.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/icco/synthd/internal/engine"
)

const maxMessageHistory = 20

// InstanceLabel names one mixer instance for display purposes.
type InstanceLabel struct {
	Name string // e.g. "poly16[0]", "drums[1] (snare)", "cvs[0]"
	Kind string // "poly16", "kick", "snare", "hat", "cv"
}

// Model is the bubbletea model driving the status display. It owns no
// audio or MIDI state itself — it only renders snapshots and log lines
// pushed to it over channels.
type Model struct {
	midiPort string
	audioOut string
	labels   []InstanceLabel

	snapshots <-chan engine.MixerSnapshot
	midiLog   <-chan string

	voiceStates    [][16]int16
	messageHistory []string
	messageCount   int

	width, height int
}

// NewModel builds the status model. snapshots and midiLog are read
// until closed; both may be nil if unused.
func NewModel(midiPort, audioOut string, labels []InstanceLabel, snapshots <-chan engine.MixerSnapshot, midiLog <-chan string) Model {
	return Model{
		midiPort:       midiPort,
		audioOut:       audioOut,
		labels:         labels,
		snapshots:      snapshots,
		midiLog:        midiLog,
		voiceStates:    make([][16]int16, len(labels)),
		messageHistory: make([]string, 0, maxMessageHistory),
	}
}

type snapshotMsg engine.MixerSnapshot
type logMsg string

func waitForSnapshot(ch <-chan engine.MixerSnapshot) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

func waitForLog(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return logMsg(line)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.snapshots), waitForLog(m.midiLog))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case snapshotMsg:
		m.voiceStates = msg.VoiceStates
		return m, waitForSnapshot(m.snapshots)

	case logMsg:
		m.messageCount++
		m.messageHistory = append([]string{string(msg)}, m.messageHistory...)
		if len(m.messageHistory) > maxMessageHistory {
			m.messageHistory = m.messageHistory[:maxMessageHistory]
		}
		return m, waitForLog(m.midiLog)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	noteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	logStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	logHighlight  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("synthd") + "\n\n")
	b.WriteString(subtitleStyle.Render("MIDI in:   ") + statusStyle.Render(m.midiPort) + "\n")
	b.WriteString(subtitleStyle.Render("Audio out: ") + statusStyle.Render(m.audioOut) + "\n\n")

	b.WriteString(subtitleStyle.Render("Instruments:") + "\n")
	for i, label := range m.labels {
		var states [16]int16
		if i < len(m.voiceStates) {
			states = m.voiceStates[i]
		}
		b.WriteString(fmt.Sprintf("  %-24s %s\n", label.Name, renderVoiceRow(states)))
	}

	b.WriteString("\n" + subtitleStyle.Render(fmt.Sprintf("MIDI log: [%d total]", m.messageCount)) + "\n")
	if len(m.messageHistory) == 0 {
		b.WriteString("  " + logStyle.Render("(waiting for input)") + "\n")
	} else {
		displayCount := len(m.messageHistory)
		if displayCount > 10 {
			displayCount = 10
		}
		for i := 0; i < displayCount; i++ {
			if i == 0 {
				b.WriteString("  " + logHighlight.Render("> "+m.messageHistory[i]) + "\n")
			} else {
				b.WriteString("  " + logStyle.Render("  "+m.messageHistory[i]) + "\n")
			}
		}
	}

	b.WriteString("\n" + helpStyle.Render("q / Ctrl+C: quit"))
	return b.String()
}

func renderVoiceRow(states [16]int16) string {
	active := 0
	var held []string
	for _, s := range states {
		if s >= 0 {
			active++
			held = append(held, noteName(uint8(s)))
		}
	}
	if active == 0 {
		return subtitleStyle.Render("(silent)")
	}
	return noteStyle.Render(fmt.Sprintf("%d voice(s): %s", active, strings.Join(held, " ")))
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func noteName(note uint8) string {
	octave := int(note)/12 - 1
	return fmt.Sprintf("%s%d", noteNames[note%12], octave)
}

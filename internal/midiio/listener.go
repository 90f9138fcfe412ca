// Package midiio binds a physical or virtual MIDI input port and
// forwards parsed messages as synth events, using rtmidi through the
// gomidi/midi/v2 driver layer.
package midiio

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/icco/synthd/internal/events"
	"github.com/icco/synthd/internal/midi"
)

// virtualPortName is the device name used when no concrete input port
// is requested; it shows up as a MIDI destination in other software.
const virtualPortName = "synthd"

// EventHandler receives every MIDI message that decodes to a synth
// event, unfiltered by instance channel — each instance applies its
// own channel filter downstream.
type EventHandler func(events.SynthEvent)

// Listener owns an open MIDI driver and input port for the lifetime of
// a run.
type Listener struct {
	driver *rtmididrv.Driver
	port   drivers.In
	stop   func()
}

// ListInputs enumerates available MIDI input port names.
func ListInputs() ([]string, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("opening midi driver: %w", err)
	}
	defer driver.Close()

	ins, err := driver.Ins()
	if err != nil {
		return nil, fmt.Errorf("listing midi inputs: %w", err)
	}

	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	return names, nil
}

// Open binds a MIDI input port by name and starts forwarding decoded
// events to handler. An empty or "virtual" name creates a virtual port
// instead of binding a physical one, matching the teacher's virtual
// device behavior.
func Open(portName string, handler EventHandler) (*Listener, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("opening midi driver: %w", err)
	}

	port, err := resolvePort(driver, portName)
	if err != nil {
		driver.Close()
		return nil, err
	}

	stop, err := port.Listen(func(data []byte, _ int32) {
		if len(data) == 0 {
			return
		}
		msg := midi.Parse(data)
		if ev, ok := msg.ToSynthEvent(events.NoChannel); ok {
			handler(ev)
		}
	}, drivers.ListenConfig{})
	if err != nil {
		port.Close()
		driver.Close()
		return nil, fmt.Errorf("listening on midi port %s: %w", port.String(), err)
	}

	return &Listener{driver: driver, port: port, stop: stop}, nil
}

func resolvePort(driver *rtmididrv.Driver, name string) (drivers.In, error) {
	if name == "" || strings.EqualFold(name, "virtual") {
		port, err := driver.OpenVirtualIn(virtualPortName)
		if err != nil {
			return nil, fmt.Errorf("creating virtual midi port: %w", err)
		}
		return port, nil
	}

	ins, err := driver.Ins()
	if err != nil {
		return nil, fmt.Errorf("listing midi inputs: %w", err)
	}
	for _, in := range ins {
		if strings.EqualFold(in.String(), name) {
			if err := in.Open(); err != nil {
				return nil, fmt.Errorf("opening midi input %s: %w", name, err)
			}
			return in, nil
		}
	}
	return nil, fmt.Errorf("midi input %q not found", name)
}

// PortName reports the bound port's display name.
func (l *Listener) PortName() string {
	if l.port == nil {
		return ""
	}
	return l.port.String()
}

// Close stops listening and releases the port and driver.
func (l *Listener) Close() {
	if l.stop != nil {
		l.stop()
	}
	if l.port != nil {
		l.port.Close()
	}
	if l.driver != nil {
		l.driver.Close()
	}
}

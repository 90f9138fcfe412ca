// Package audioio bridges the engine mixer to the system audio output
// using oto, the same playback library the teacher project uses.
package audioio

import (
	"fmt"

	"github.com/ebitengine/oto/v3"

	"github.com/icco/synthd/internal/engine"
)

const (
	// SampleRate is the fixed render rate: every instrument is built
	// with it and the audio output is opened at it.
	SampleRate     = 44100
	bytesPerSample = 2 // 16-bit signed, matching oto.FormatSignedInt16LE
	blockFrames    = 512
)

// Adapter drives oto's playback callback from a Mixer, converting its
// float64 interleaved output into signed 16-bit PCM.
type Adapter struct {
	ctx      *oto.Context
	player   *oto.Player
	mixer    *engine.Mixer
	channels int
	scratch  []float64
}

// NewAdapter opens the system default audio output and wires it to
// mixer, which must have been built with the same channel count.
func NewAdapter(mixer *engine.Mixer, channels int) (*Adapter, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("initializing audio output: %w", err)
	}
	<-ready

	a := &Adapter{
		ctx:      ctx,
		mixer:    mixer,
		channels: channels,
		scratch:  make([]float64, blockFrames*channels),
	}
	a.player = ctx.NewPlayer(a)
	return a, nil
}

// Start begins playback; the callback runs on oto's own goroutine
// until Close.
func (a *Adapter) Start() {
	a.player.Play()
}

// Close stops playback and releases the player.
func (a *Adapter) Close() error {
	if a.player == nil {
		return nil
	}
	return a.player.Close()
}

// Read implements io.Reader, the interface oto repeatedly drives to
// pull the next block of PCM bytes.
func (a *Adapter) Read(buf []byte) (int, error) {
	frameSize := a.channels * bytesPerSample
	frames := len(buf) / frameSize
	if frames == 0 {
		return 0, nil
	}

	needed := frames * a.channels
	if cap(a.scratch) < needed {
		a.scratch = make([]float64, needed)
	}
	scratch := a.scratch[:needed]

	a.mixer.Process(scratch, frames)

	for i, sample := range scratch {
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}
		v := int16(sample * 32767)
		idx := i * bytesPerSample
		buf[idx] = byte(v)
		buf[idx+1] = byte(v >> 8)
	}

	return frames * frameSize, nil
}

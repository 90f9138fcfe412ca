// Package params holds the lock-free, per-instance parameter blocks shared
// between the editor/config goroutine (writer) and the audio goroutine
// (reader). Every float scalar is a bit-punned float32 behind atomic.Uint32
// (enum and integer scalars use Byte and Int8), and every scalar is read
// with relaxed-equivalent plain atomic loads — Go gives no weaker ordering
// than sequentially consistent atomics, which is a safe superset of the
// relaxed ordering the spec asks for.
package params

import (
	"math"
	"sync/atomic"
)

// Float is an atomic float32 wrapper, the bit-punned-u32 pattern the
// original engine uses for every real-time-readable parameter.
type Float struct {
	bits atomic.Uint32
}

// NewFloat creates an atomic float initialized to v.
func NewFloat(v float64) *Float {
	f := &Float{}
	f.Store(v)
	return f
}

// Load reads the current value.
func (f *Float) Load() float64 {
	return float64(math.Float32frombits(f.bits.Load()))
}

// Store writes a new value.
func (f *Float) Store(v float64) {
	f.bits.Store(math.Float32bits(float32(v)))
}

// Byte is an atomic small-enum parameter (e.g. waveform selector),
// stored as a single byte inside a uint32.
type Byte struct {
	v atomic.Uint32
}

// NewByte creates an atomic byte initialized to v.
func NewByte(v uint8) *Byte {
	b := &Byte{}
	b.Store(v)
	return b
}

// Load reads the current value.
func (b *Byte) Load() uint8 {
	return uint8(b.v.Load())
}

// Store writes a new value.
func (b *Byte) Store(v uint8) {
	b.v.Store(uint32(v))
}

// Int8 is an atomic signed small-range parameter (e.g. CV transpose).
type Int8 struct {
	v atomic.Int32
}

// NewInt8 creates an atomic int8 initialized to v.
func NewInt8(v int8) *Int8 {
	i := &Int8{}
	i.Store(v)
	return i
}

// Load reads the current value.
func (i *Int8) Load() int8 {
	return int8(i.v.Load())
}

// Store writes a new value.
func (i *Int8) Store(v int8) {
	i.v.Store(int32(v))
}

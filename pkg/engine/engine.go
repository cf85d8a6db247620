// Package engine defines the capability contract every tumbler random-value
// engine implements, and the byte-stream bridge that lets the rest of the
// system consume any engine as an io.Reader.
package engine

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/rayozzie/tumbler/pkg/trace"
)

// Engine is the contract shared by every random-value engine: one step
// advances the internal state and yields the next 64-bit value.
//
// A step is a pure function of the current state followed by a state
// mutation, so calls form a strict sequence and must not be reordered.
// Stepping is total: there is no error path once an engine is constructed.
// An Engine instance is NOT safe for concurrent use; callers either keep a
// single owner per instance or synchronize externally (Reader does the
// latter).
type Engine interface {
	// Next advances the engine one step and returns the next 64-bit value.
	Next() uint64
}

// BlockEngine is implemented by engines that emit a wide keystream block
// per step in addition to the folded 64-bit value. The block itself is
// exposed by concrete methods on each engine since the widths differ;
// BlockBits reports that width.
type BlockEngine interface {
	Engine

	// BlockBits returns the width in bits of one output block.
	BlockBits() int
}

// Reader adapts an Engine to io.Reader, emitting the little-endian byte
// stream of successive Next values. Partial words are carried across Read
// calls, so the stream is identical regardless of how it is sliced into
// reads. Reader serializes access to the underlying engine with a mutex,
// making it the one safe way to share an engine instance.
type Reader struct {
	// lock protects the engine and the carry buffer
	lock sync.Mutex
	eng  Engine
	log  *trace.Tracer

	// rem holds the unread tail of the most recent word
	rem    [8]byte
	remLen int
}

// NewReader creates a Reader over the given engine. Logging goes through
// the context's tracer under the ENGINE-READER prefix.
func NewReader(ctx context.Context, eng Engine) *Reader {
	return &Reader{
		eng: eng,
		log: trace.FromContext(ctx).WithPrefix("ENGINE-READER"),
	}
}

// Read fills p with the next bytes of the engine's output stream. It always
// fills p completely and never returns an error: engine stepping is total.
func (r *Reader) Read(p []byte) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	n := len(p)
	for len(p) > 0 {
		if r.remLen == 0 {
			binary.LittleEndian.PutUint64(r.rem[:], r.eng.Next())
			r.remLen = 8
		}
		c := copy(p, r.rem[8-r.remLen:])
		r.remLen -= c
		p = p[c:]
	}

	r.log.Tracef("read %d bytes of engine output", n)
	return n, nil
}

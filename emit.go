package tumbler

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Emitter defines required methods for presenting 64-bit engine values
// on an output stream. Emit is called once per value and Finish once
// after the last value.
type Emitter interface {
	Emit(w io.Writer, v uint64) error
	Finish(w io.Writer) error
}

// RawEmitter writes each value as eight little-endian bytes.
type RawEmitter struct{}

func (e *RawEmitter) Emit(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("raw emit: %w", err)
	}
	return nil
}

func (e *RawEmitter) Finish(w io.Writer) error {
	return nil
}

// HexEmitter writes lowercase hex, sixty-four raw bytes per line.
type HexEmitter struct {
	inLine int
}

func (e *HexEmitter) Emit(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	if _, err := fmt.Fprintf(w, "%x", buf[:]); err != nil {
		return fmt.Errorf("hex emit: %w", err)
	}
	e.inLine += 8
	if e.inLine >= 64 {
		e.inLine = 0
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("hex emit: %w", err)
		}
	}
	return nil
}

func (e *HexEmitter) Finish(w io.Writer) error {
	if e.inLine == 0 {
		return nil
	}
	e.inLine = 0
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("hex emit: %w", err)
	}
	return nil
}

// TextEmitter writes one decimal value per line.
type TextEmitter struct{}

func (e *TextEmitter) Emit(w io.Writer, v uint64) error {
	if _, err := fmt.Fprintf(w, "%d\n", v); err != nil {
		return fmt.Errorf("text emit: %w", err)
	}
	return nil
}

func (e *TextEmitter) Finish(w io.Writer) error {
	return nil
}

// NewEmitter maps a format name to its emitter. The empty name means raw.
func NewEmitter(format string) (Emitter, error) {
	switch strings.ToLower(format) {
	case "", "raw":
		return &RawEmitter{}, nil
	case "hex":
		return &HexEmitter{}, nil
	case "text":
		return &TextEmitter{}, nil
	default:
		return nil, fmt.Errorf("format must be 'raw', 'hex' or 'text', got %s", format)
	}
}

// Package frame assembles the ordered bit image that the shift-register
// chain expects: two driver bits per dot, six dots per cell.
package frame

import (
	"errors"
	"fmt"

	"github.com/coreman2200/funtimes-tactilus/internal/dot"
)

const (
	// DotsPerCell is fixed by the braille cell geometry.
	DotsPerCell = 6
	// BitsPerDot is the width of one H-bridge driver code.
	BitsPerDot = 2
	// BitsPerCell is the span of one cell inside a frame.
	BitsPerCell = DotsPerCell * BitsPerDot
)

var (
	// ErrCellIndexOutOfRange reports a cell index beyond the configured
	// cell count.
	ErrCellIndexOutOfRange = errors.New("frame: cell index out of range")
	// ErrDotIndexOutOfRange reports a dot index outside [0, DotsPerCell).
	ErrDotIndexOutOfRange = errors.New("frame: dot index out of range")
)

// Frame is the desired state of every dot driver across all cells, in wire
// order. The bit for (cell, dot, offset) lives at index
// cell*BitsPerCell + dot*BitsPerDot + offset, with all indices zero-based.
type Frame []bool

// Bits returns the frame length for a given cell count.
func Bits(cells int) int { return cells * BitsPerCell }

// New returns an all-high-impedance frame for the given cell count.
func New(cells int) Frame { return make(Frame, Bits(cells)) }

// CellPattern is the desired state of each of one cell's six dots.
type CellPattern [DotsPerCell]dot.State

// UniformCell returns a pattern applying the same state to all six dots.
func UniformCell(s dot.State) CellPattern {
	var p CellPattern
	for i := range p {
		p[i] = s
	}
	return p
}

// BuildCells overlays the given per-cell patterns onto an all-high-impedance
// frame. Cells absent from the map stay high-impedance.
func BuildCells(cells int, patterns map[int]CellPattern) (Frame, error) {
	f := New(cells)
	for ci, p := range patterns {
		if ci < 0 || ci >= cells {
			return nil, fmt.Errorf("%w: cell %d of %d", ErrCellIndexOutOfRange, ci, cells)
		}
		for di, s := range p {
			a, b, err := dot.Encode(s)
			if err != nil {
				return nil, fmt.Errorf("cell %d dot %d: %w", ci, di, err)
			}
			base := ci*BitsPerCell + di*BitsPerDot
			f[base], f[base+1] = a, b
		}
	}
	return f, nil
}

// BuildSingleDot returns a frame that is high-impedance everywhere except
// the addressed dot, which carries the encoding of s.
func BuildSingleDot(cells int, addr dot.Address, s dot.State) (Frame, error) {
	if addr.Cell < 0 || addr.Cell >= cells {
		return nil, fmt.Errorf("%w: cell %d of %d", ErrCellIndexOutOfRange, addr.Cell, cells)
	}
	if addr.Dot < 0 || addr.Dot >= DotsPerCell {
		return nil, fmt.Errorf("%w: dot %d", ErrDotIndexOutOfRange, addr.Dot)
	}
	a, b, err := dot.Encode(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", addr, err)
	}
	f := New(cells)
	base := addr.Cell*BitsPerCell + addr.Dot*BitsPerDot
	f[base], f[base+1] = a, b
	return f, nil
}

// Uniform returns a frame driving every dot of every cell to the same state.
func Uniform(cells int, s dot.State) (Frame, error) {
	patterns := make(map[int]CellPattern, cells)
	for ci := 0; ci < cells; ci++ {
		patterns[ci] = UniformCell(s)
	}
	return BuildCells(cells, patterns)
}

// StateAt decodes the driver state of one dot from a frame. Used by the
// console preview and by tests.
func StateAt(f Frame, addr dot.Address) (dot.State, error) {
	base := addr.Cell*BitsPerCell + addr.Dot*BitsPerDot
	if addr.Cell < 0 || addr.Dot < 0 || addr.Dot >= DotsPerCell || base+1 >= len(f) {
		return dot.HighImpedance, fmt.Errorf("%w: %s in %d-bit frame", ErrCellIndexOutOfRange, addr, len(f))
	}
	return dot.Decode(f[base], f[base+1]), nil
}

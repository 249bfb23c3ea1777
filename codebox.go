package fish

import (
	"strings"
	"unicode/utf8"

	"github.com/fish-lang/gofish/internal/mem"
)

// Instruction is a single codebox cell: either a no-op (unwritten cell, or a
// literal space in the source) or a character.
type Instruction struct {
	Char rune
	IsOp bool
}

func noop() Instruction         { return Instruction{} }
func charOp(r rune) Instruction { return Instruction{Char: r, IsOp: true} }

// Codebox is the 2D mutable grid of instructions a Fish program runs in. It
// is addressed by (x, y) Position and reports a fixed width/height derived
// from the source text at construction time, used for toroidal wrapping;
// self-modification via Set may address cells outside that rectangle, which
// extend the addressable area without changing Width/Height.
//
// Storage is one internal/mem.Row per source line, each paging in its own
// columns on demand, so a quine that only ever pokes within its own small
// rectangle never allocates a row's worth of columns for every other line.
type Codebox struct {
	rows   []mem.Row
	width  uint
	height uint
}

// NewCodebox parses source into a Codebox. Lines are split on "\n"; width is
// the length, in runes, of the longest line (0 if source is empty); height
// is the number of lines. A literal space is a no-op; every other rune,
// including non-ASCII and instructions this package doesn't recognize, is a
// character cell.
func NewCodebox(source string) *Codebox {
	lines := strings.Split(source, "\n")
	if source == "" {
		lines = nil
	}

	cb := &Codebox{height: uint(len(lines))}
	cb.rows = make([]mem.Row, len(lines))
	for y, line := range lines {
		n := uint(utf8.RuneCountInString(line))
		if n > cb.width {
			cb.width = n
		}
		var x uint
		for _, r := range line {
			if r != ' ' {
				cb.rows[y].Set(x, r)
			}
			x++
		}
	}
	return cb
}

// Width returns W, the length of the longest source line.
func (cb *Codebox) Width() uint { return cb.width }

// Height returns H, the number of source lines.
func (cb *Codebox) Height() uint { return cb.height }

// Get returns the instruction stored at pos, or a no-op if pos was never
// written (a source space, or any cell beyond the source text).
func (cb *Codebox) Get(pos Position) Instruction {
	if pos.Y >= uint(len(cb.rows)) {
		return noop()
	}
	r, written, _ := cb.rows[pos.Y].Get(pos.X)
	if !written {
		return noop()
	}
	return charOp(r)
}

// Set writes a character cell at pos, persisting across steps. pos may fall
// outside [0,Width())x[0,Height()); such writes extend the addressable area
// but never change Width/Height, which are fixed at construction and used
// only for wrapping.
func (cb *Codebox) Set(pos Position, r rune) {
	cb.growRows(pos.Y)
	cb.rows[pos.Y].Set(pos.X, r)
}

func (cb *Codebox) growRows(y uint) {
	if y >= uint(len(cb.rows)) {
		grown := make([]mem.Row, y+1)
		copy(grown, cb.rows)
		cb.rows = grown
	}
}

package fish

import (
	"fmt"
	"io"
	"math"

	"github.com/fish-lang/gofish/internal/runeio"
)

// interpDumper renders a snapshot of an Interpreter's visible state for the
// host binary's -dump flag: pointer, direction, parse mode, codebox extent,
// and every substack from base to current.
type interpDumper struct {
	in  *Interpreter
	out io.Writer

	// outTail, if set, is the program's own output captured so far --
	// handy context when a dump fires because the program diverged.
	outTail string
}

func (d interpDumper) dump() {
	fmt.Fprintf(d.out, "# Interpreter Dump\n")
	fmt.Fprintf(d.out, "  pointer: %v\n", d.in.pointer)
	fmt.Fprintf(d.out, "  dir: %v\n", d.in.dir)
	fmt.Fprintf(d.out, "  mode: %v\n", d.in.mode)
	fmt.Fprintf(d.out, "  steps: %v\n", d.in.steps)
	fmt.Fprintf(d.out, "  codebox: %vx%v\n", d.in.Codebox.Width(), d.in.Codebox.Height())
	fmt.Fprintf(d.out, "  input: %v (%v runes read)\n", d.in.input.Source(), d.in.input.Count)
	if d.outTail != "" {
		fmt.Fprintf(d.out, "  output so far: %q\n", d.outTail)
	}
	d.dumpStacks()
}

func (d interpDumper) dumpStacks() {
	fmt.Fprintf(d.out, "  stacks: %v deep\n", d.in.machine.Depth())
	for i, s := range d.in.machine.allSubstacks() {
		reg := "-"
		if s.hasReg {
			reg = fmt.Sprintf("%v", s.reg)
		}
		fmt.Fprintf(d.out, "    [%v] %v (reg: %v)\n", i, dumpRune(s.values), reg)
	}
}

// dumpRune renders a substack as the classic Fish caret-quoted form, safe
// for a terminal even when the values are control characters: any value
// that is an integral rune in a control range is annotated with its
// caret-escaped form (e.g. "10 (^J)") so a trace doesn't spray raw
// newlines or escapes across the terminal.
func dumpRune(values []float64) string {
	buf := make([]byte, 0, len(values)*4)
	buf = append(buf, '[')
	for i, v := range values {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, []byte(fmt.Sprintf("%v", v))...)
		if caret := caretAnnotation(v); caret != "" {
			buf = append(buf, []byte(" ("+caret+")")...)
		}
	}
	buf = append(buf, ']')
	return string(buf)
}

// caretAnnotation returns the caret-escaped form of v when it is an
// integral rune value worth calling out, or "" otherwise.
func caretAnnotation(v float64) string {
	r := rune(v)
	if v != math.Trunc(v) || float64(r) != v || r < 0 {
		return ""
	}
	return runeio.CaretForm(r)
}

// allSubstacks returns every substack from base to current, outermost
// first, for diagnostics only -- nothing in the execution path needs the
// full list at once.
func (m *StackMachine) allSubstacks() []*substack {
	out := make([]*substack, 0, len(m.substacks)+1)
	out = append(out, &m.base)
	out = append(out, m.substacks...)
	return out
}

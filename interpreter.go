package fish

import (
	"context"
	"io"
	"math"
	"strconv"

	"github.com/fish-lang/gofish/internal/flushio"
	"github.com/fish-lang/gofish/internal/fileinput"
	"github.com/fish-lang/gofish/internal/panicerr"
)

type runState byte

const (
	running runState = iota
	done
)

// parseMode tracks whether the interpreter is reading literal text; quote
// holds the character that will exit text mode again.
type parseMode struct {
	active bool
	quote  rune
}

// Interpreter executes a Fish program against a Codebox and StackMachine it
// owns exclusively. It is constructed once from source text and an input
// producer and is not re-executable once its state reaches Done.
type Interpreter struct {
	Codebox *Codebox
	machine StackMachine

	pointer Position
	dir     Direction
	mode    parseMode
	state   runState

	inputQueue []io.Reader
	input      *fileinput.Input

	out     flushio.WriteFlusher
	closers []io.Closer

	rnd        randSource
	logf       func(mess string, args ...interface{})
	maxSteps   uint64
	steps      uint64
	eofIsFatal bool

	// breakChar, when set, makes "o" invoke onBreak just before writing,
	// the moment the program tries to output that exact character.
	breakChar *rune
	onBreak   func(r rune)
}

// New parses source into a Codebox and returns an Interpreter ready to run,
// with pointer at (0,0) heading East in Normal mode.
func New(source string, opts ...Option) *Interpreter {
	in := &Interpreter{
		Codebox: NewCodebox(source),
		dir:     East,
	}
	defaultOptions.apply(in)
	Options(opts...).apply(in)
	if in.rnd == nil {
		in.rnd = defaultRand()
	}
	in.input = &fileinput.Input{Queue: in.inputQueue}
	return in
}

// Close releases any closer registered by an output option (e.g. an
// *os.File passed to WithOutput). Readers passed to WithInput are not closed.
func (in *Interpreter) Close() (err error) {
	for i := len(in.closers) - 1; i >= 0; i-- {
		if cerr := in.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// RunToEnd steps the interpreter until its state becomes Done or a
// RuntimeError, MaxStepsError, or context error is raised. Internal panics
// are recovered into a returned error rather than crashing the host.
func (in *Interpreter) RunToEnd(ctx context.Context) error {
	return panicerr.Recover("fish", func() error {
		for in.state == running {
			if err := in.Step(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

// MaxStepsError is returned once the step ceiling set by WithMaxSteps is
// reached, used by test harnesses to detect a divergent program.
type MaxStepsError struct{ Steps uint64 }

func (err MaxStepsError) Error() string {
	return "exceeded maximum step count " + strconv.FormatUint(err.Steps, 10)
}

// Step executes a single fetch-execute cycle: read the cell under the
// pointer, dispatch it (or handle text-mode literal/space push), then
// advance the pointer, wrapping toroidally and skipping no-ops in Normal
// mode. It is a no-op once state is Done.
func (in *Interpreter) Step(ctx context.Context) error {
	if in.state == done {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if in.maxSteps != 0 && in.steps >= in.maxSteps {
		return MaxStepsError{Steps: in.steps}
	}
	in.steps++

	cell := in.Codebox.Get(in.pointer)
	if in.logf != nil {
		in.logStep(cell)
	}

	if cell.IsOp {
		if err := in.executeInstruction(cell.Char); err != nil {
			return RuntimeError{Pos: in.pointer, Op: cell.Char, Err: err}
		}
	} else if in.mode.active {
		in.machine.current().push(float64(' '))
	}

	in.advance()
	return nil
}

func (in *Interpreter) logStep(cell Instruction) {
	top := "-empty-"
	if s := in.machine.current(); len(s.values) > 0 {
		top = strconv.FormatFloat(s.values[len(s.values)-1], 'g', -1, 64)
	}
	ch := ' '
	if cell.IsOp {
		ch = cell.Char
	}
	in.logf("@%v %c dir=%v mode=%v top=%v", in.pointer, ch, in.dir, in.mode, top)
}

func (m parseMode) String() string {
	if !m.active {
		return "normal"
	}
	return "text(" + string(m.quote) + ")"
}

// executeInstruction dispatches a single character cell. While in Text mode
// every character other than the matching quote is pushed here as a literal
// code point; only the matching quote falls through to the dispatch below,
// where it toggles mode off again.
func (in *Interpreter) executeInstruction(r rune) error {
	if in.mode.active {
		if r != in.mode.quote {
			in.machine.current().push(float64(r))
			return nil
		}
	}

	cur := in.machine.current()

	switch r {
	// literals
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
		'a', 'b', 'c', 'd', 'e', 'f':
		v, _ := hexDigitValue(r)
		cur.push(v)

	// maths
	case '+':
		return cur.add()
	case '-':
		return cur.sub()
	case '*':
		return cur.mul()
	case ',':
		return cur.div()
	case '%':
		return cur.mod()

	// comparisons
	case '=':
		return cur.equals()
	case ')':
		return cur.greaterThan()
	case '(':
		return cur.lessThan()

	// stack manipulation
	case ':':
		return cur.dup()
	case '~':
		return cur.discard()
	case '$':
		return cur.swapN(2, "$")
	case '@':
		return cur.swapN(3, "@")
	case '}':
		cur.rotateUp()
	case '{':
		cur.rotateDown()
	case '[':
		return in.machine.Split()
	case ']':
		in.machine.Drop()
	case 'l':
		cur.length()
	case 'r':
		cur.reverse()
	case '&':
		return cur.register()

	// trampolines
	case '!':
		in.advance()
	case '?':
		v, err := cur.pop("?")
		if err != nil {
			return err
		}
		if v == 0 {
			in.advance()
		}

	// directions
	case '^':
		in.dir = North
	case '>':
		in.dir = East
	case 'v':
		in.dir = South
	case '<':
		in.dir = West

	// mirrors
	case '/':
		in.dir = mirrorSlash(in.dir)
	case '\\':
		in.dir = mirrorBackslash(in.dir)
	case '|':
		if in.dir.horizontal() {
			in.dir = in.dir.Reverse()
		}
	case '_':
		if in.dir.vertical() {
			in.dir = in.dir.Reverse()
		}
	case '#':
		in.dir = in.dir.Reverse()
	case 'x':
		in.dir = Direction(in.rnd.Intn(4))

	// jump
	case '.':
		pos, err := in.loadPos(".")
		if err != nil {
			return err
		}
		in.pointer = pos

	// text mode toggle
	case '"', '\'':
		in.toggleTextMode(r)

	// input/output
	case 'n':
		v, err := cur.pop("n")
		if err != nil {
			return err
		}
		return in.write(strconv.FormatFloat(v, 'g', -1, 64))
	case 'o':
		v, err := cur.pop("o")
		if err != nil {
			return err
		}
		ch, err := charFromValue(v)
		if err != nil {
			return err
		}
		if in.breakChar != nil && ch == *in.breakChar && in.onBreak != nil {
			in.onBreak(ch)
		}
		return in.write(string(ch))
	case 'i':
		r, _, err := in.input.ReadRune()
		switch {
		case err == io.EOF:
			if in.eofIsFatal {
				return UnexpectedEOFError{}
			}
			cur.push(-1)
		case err != nil:
			return err
		default:
			cur.push(float64(r))
		}

	// codebox manipulation
	case 'g':
		pos, err := in.loadPos("g")
		if err != nil {
			return err
		}
		cell := in.Codebox.Get(pos)
		if cell.IsOp {
			cur.push(float64(cell.Char))
		} else {
			cur.push(0)
		}
	case 'p':
		pos, err := in.loadPos("p")
		if err != nil {
			return err
		}
		v, err := cur.pop("p")
		if err != nil {
			return err
		}
		ch, err := charFromValue(v)
		if err != nil {
			return err
		}
		in.Codebox.Set(pos, ch)

	// termination
	case ';':
		in.state = done

	default:
		return InvalidInstructionError{Char: r}
	}
	return nil
}

func (in *Interpreter) toggleTextMode(quote rune) {
	if in.mode.active {
		in.mode = parseMode{}
	} else {
		in.mode = parseMode{active: true, quote: quote}
	}
}

// loadPos pops y then x off the current substack and validates both are
// non-negative integral values.
func (in *Interpreter) loadPos(op string) (Position, error) {
	cur := in.machine.current()
	y, err := cur.pop(op)
	if err != nil {
		return Position{}, err
	}
	x, err := cur.pop(op)
	if err != nil {
		return Position{}, err
	}
	if x < 0 || y < 0 || x != math.Trunc(x) || y != math.Trunc(y) {
		return Position{}, InvalidPositionError{X: x, Y: y}
	}
	return Position{X: uint(x), Y: uint(y)}, nil
}

func (in *Interpreter) write(s string) error {
	if _, err := io.WriteString(in.out, s); err != nil {
		return err
	}
	return in.out.Flush()
}

// nextPos computes where the pointer lands after one move in dir, wrapping
// toroidally using the codebox's fixed width/height.
func (in *Interpreter) nextPos(pos Position) Position {
	switch in.dir {
	case North:
		return Position{X: pos.X, Y: wrap(pos.Y, -1, in.Codebox.Height())}
	case South:
		return Position{X: pos.X, Y: wrap(pos.Y, 1, in.Codebox.Height())}
	case West:
		return Position{X: wrap(pos.X, -1, in.Codebox.Width()), Y: pos.Y}
	default: // East
		return Position{X: wrap(pos.X, 1, in.Codebox.Width()), Y: pos.Y}
	}
}

// advance moves the pointer one step, then, in Normal mode only, keeps
// moving while landing on no-op cells -- the skip that makes runs of spaces
// between tokens cost a single step. Text mode never skips: each no-op
// pushes a space (handled by the caller, Step).
func (in *Interpreter) advance() {
	in.pointer = in.nextPos(in.pointer)
	if in.mode.active || in.Codebox.Width() == 0 || in.Codebox.Height() == 0 {
		return
	}
	for !in.Codebox.Get(in.pointer).IsOp {
		in.pointer = in.nextPos(in.pointer)
	}
}

// charFromValue converts a stack value to the character "o"/"p" treat it as:
// it must be an integer in the valid Unicode scalar range (no surrogate
// halves).
func charFromValue(v float64) (rune, error) {
	if v != math.Trunc(v) || v < 0 || v > 0x10FFFF {
		return 0, CharConversionFailureError{Value: v}
	}
	r := rune(v)
	if r >= 0xD800 && r <= 0xDFFF {
		return 0, CharConversionFailureError{Value: v}
	}
	return r, nil
}

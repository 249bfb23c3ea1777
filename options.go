package fish

import (
	"io"
	"io/ioutil"
	"math/rand"
	"time"

	"github.com/fish-lang/gofish/internal/flushio"
)

// Option configures an Interpreter at construction time.
type Option interface{ apply(in *Interpreter) }

var defaultOptions = Options(
	WithOutput(ioutil.Discard),
)

// Options merges a sequence of Option values into one, flattening nested
// Options and dropping nils, the same way gothird's VMOptions does.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*Interpreter) {}

type options []Option

func (opts options) apply(in *Interpreter) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(in)
		}
	}
}

// randSource is the subset of *rand.Rand the "x" instruction needs; tests
// inject a deterministic implementation via WithRand.
type randSource interface {
	Intn(n int) int
}

// WithInput appends r to the queue of input streams "i" reads from; once one
// is exhausted the next queued reader is used, exactly like gothird's
// WithInput (internal/fileinput.Input.Queue).
func WithInput(r io.Reader) Option { return inputOption{r} }

// WithOutput sets the sink "n" and "o" write decoded text to. Defaults to a
// discard writer.
func WithOutput(w io.Writer) Option { return outputOption{w} }

// WithLogf installs a per-step trace logging function; the interpreter logs
// nothing by default.
func WithLogf(logf func(mess string, args ...interface{})) Option { return logfOption(logf) }

// WithRand overrides the entropy source behind "x"; useful for deterministic
// tests. Defaults to a time-seeded math/rand.Rand.
func WithRand(r randSource) Option { return randOption{r} }

// WithMaxSteps sets a step-count ceiling; RunToEnd returns a MaxStepsError
// once it is reached, used by test harnesses to detect a divergent program
// instead of hanging forever. Zero (the default) means unlimited.
func WithMaxSteps(n uint64) Option { return maxStepsOption(n) }

// WithEOFIsFatal makes "i" return UnexpectedEOFError instead of pushing -1.0
// once every queued input stream is exhausted. The core's default is to
// push -1.0 and keep running.
func WithEOFIsFatal(fatal bool) Option { return eofFatalOption(fatal) }

// WithBreakOnChar arranges for onBreak to be invoked, with the offending
// character, the moment an "o" instruction is about to output r. Output
// still happens afterward; this is a breakpoint, not a filter. Used by the
// host's -break-char flag to drop a state dump right before a program emits
// a character of interest.
func WithBreakOnChar(r rune, onBreak func(r rune)) Option {
	return breakCharOption{r: r, onBreak: onBreak}
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type logfOption func(string, ...interface{})
type randOption struct{ randSource }
type maxStepsOption uint64
type eofFatalOption bool
type breakCharOption struct {
	r       rune
	onBreak func(r rune)
}

func (o inputOption) apply(in *Interpreter) { in.inputQueue = append(in.inputQueue, o.Reader) }

func (o outputOption) apply(in *Interpreter) {
	if in.out != nil {
		in.out.Flush()
	}
	in.out = flushio.NewWriteFlusher(o.Writer)
	if cl, ok := o.Writer.(io.Closer); ok {
		in.closers = append(in.closers, cl)
	}
}

func (o logfOption) apply(in *Interpreter)     { in.logf = o }
func (o randOption) apply(in *Interpreter)     { in.rnd = o.randSource }
func (o maxStepsOption) apply(in *Interpreter) { in.maxSteps = uint64(o) }
func (o eofFatalOption) apply(in *Interpreter) { in.eofIsFatal = bool(o) }

func (o breakCharOption) apply(in *Interpreter) {
	r := o.r
	in.breakChar = &r
	in.onBreak = o.onBreak
}

func defaultRand() randSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

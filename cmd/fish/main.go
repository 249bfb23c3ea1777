// Command fish runs a Fish program read from a file, or from stdin if no
// file is given.
package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	fish "github.com/fish-lang/gofish"
	"github.com/fish-lang/gofish/internal/flushio"
	"github.com/fish-lang/gofish/internal/logio"
	"github.com/fish-lang/gofish/internal/panicerr"
	"github.com/fish-lang/gofish/internal/runeio"
)

func main() {
	var (
		timeout    time.Duration
		maxSteps   uint64
		trace      bool
		dump       bool
		eofIsFatal bool
		breakChar  string
	)
	flag.DurationVar(&timeout, "timeout", 0, "kill the program after this long")
	flag.Uint64Var(&maxSteps, "max-steps", 0, "abort after this many steps (0: unlimited)")
	flag.BoolVar(&trace, "trace", false, "log every step to stderr")
	flag.BoolVar(&dump, "dump", false, "print a final state dump to stderr")
	flag.BoolVar(&eofIsFatal, "eof-is-fatal", false, "treat input exhaustion as a runtime error instead of pushing -1")
	flag.StringVar(&breakChar, "break-char", "", `dump state right before "o" outputs this character, e.g. 'x', <NL>, or ^C`)
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	src, name, err := readSource(flag.Args())
	if err != nil {
		log.Errorf("%v", err)
		return
	}

	// -dump tees program output into outTail (in addition to stdout) so the
	// final dump can show the last bytes a divergent program produced,
	// combining both writers through a single flush point.
	var outTail bytes.Buffer
	outWriter := io.Writer(os.Stdout)
	if dump {
		outWriter = flushio.WriteFlushers(
			flushio.NewWriteFlusher(os.Stdout),
			flushio.NewWriteFlusher(&outTail),
		)
	}

	opts := []fish.Option{
		fish.WithOutput(outWriter),
		fish.WithInput(os.Stdin),
		fish.WithMaxSteps(maxSteps),
		fish.WithEOFIsFatal(eofIsFatal),
	}
	if trace {
		opts = append(opts, fish.WithLogf(log.Leveledf("TRACE")))
	}

	var in *fish.Interpreter
	if breakChar != "" {
		r, err := runeio.UnquoteRune(breakChar)
		if err != nil {
			log.Errorf("-break-char: %v", err)
			return
		}
		opts = append(opts, fish.WithBreakOnChar(r, func(rune) {
			bw := &logio.Writer{Logf: log.Leveledf("BREAK")}
			defer bw.Close()
			interpDumper{in: in, out: bw}.dump()
		}))
	}

	in = fish.New(src, opts...)
	defer in.Close()

	if dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		defer func() { interpDumper{in: in, out: lw, outTail: outTail.String()}.dump() }()
	}

	restore := makeRawIfTerminal(int(os.Stdin.Fd()))
	defer restore()

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return in.RunToEnd(ctx) })

	if err := eg.Wait(); err != nil {
		switch {
		case panicerr.IsExit(err):
			log.Errorf("%v: interpreter goroutine exited unexpectedly: %v", name, err)
		case panicerr.IsPanic(err) && trace:
			log.Errorf("%v: %v\n%s", name, err, panicerr.PanicStack(err))
		default:
			log.Errorf("%v: %+v", name, err)
		}
	}
}

// readSource reads the program from args[0] if given, or stdin otherwise,
// returning a diagnostic name for error messages.
func readSource(args []string) (src, name string, err error) {
	if len(args) == 0 {
		b, err := io.ReadAll(os.Stdin)
		return string(b), "<stdin>", err
	}
	name = args[0]
	f, err := os.Open(name)
	if err != nil {
		return "", name, err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	return string(b), name, err
}

// makeRawIfTerminal puts fd into raw, non-canonical, no-echo mode when it is
// a terminal, so that "i" reads a program's keystrokes one at a time rather
// than waiting on a line of buffered input. Returns a restore func that is
// always safe to defer, even when fd wasn't a terminal.
func makeRawIfTerminal(fd int) func() {
	if !term.IsTerminal(fd) {
		return func() {}
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}
	}
	return func() { term.Restore(fd, state) }
}

// Package fileinput supplies the "i" instruction's character source: a
// queue of readers consumed in order, so a host can hand the interpreter
// stdin, a file, or a canned test reader interchangeably and let it read
// past the end of one onto the next without the interpreter core knowing
// anything about where its characters come from.
package fileinput

import (
	"bufio"
	"fmt"
	"io"
)

// Input implements sequential rune reading across a Queue of one or more
// readers, advancing to the next reader on EOF rather than reporting one
// until the whole queue is exhausted.
type Input struct {
	Queue []io.Reader

	rr    *bufio.Reader
	index int  // position of the active reader within the original Queue
	began bool // true once the first reader has been dequeued

	// Count is the number of runes successfully read so far, across the
	// whole queue; surfaced by the host's -dump flag.
	Count uint64
}

// ReadRune reads one rune from the active reader, rolling over to the next
// queued reader on EOF until the queue itself is exhausted.
func (in *Input) ReadRune() (rune, int, error) {
	if in.rr == nil && !in.nextReader() {
		return 0, 0, io.EOF
	}

	r, n, err := in.rr.ReadRune()
	for err == io.EOF && in.nextReader() {
		r, n, err = in.rr.ReadRune()
	}
	if err == nil {
		in.Count++
	}
	return r, n, err
}

// Source names the reader Input is currently consuming, "<unstarted>" before
// any reader has been dequeued (which includes an empty Queue), or "<eof>"
// once the whole Queue has been exhausted; useful for -dump / -trace
// diagnostics.
func (in *Input) Source() string {
	if in.rr == nil {
		if in.began {
			return "<eof>"
		}
		return "<unstarted>"
	}
	return fmt.Sprintf("queue[%d]", in.index)
}

func (in *Input) nextReader() bool {
	if len(in.Queue) == 0 {
		in.rr = nil
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.rr = bufio.NewReader(r)
	if in.began {
		in.index++
	}
	in.began = true
	return true
}

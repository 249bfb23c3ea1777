package fish

import "fmt"

// UnderflowError indicates a stack or substack operation needed more values
// than were present, including "&" with an empty register and an empty
// substack. "]" never underflows: on the base substack it clears instead.
type UnderflowError struct {
	Op string
}

func (err UnderflowError) Error() string {
	return fmt.Sprintf("stack underflow in %q", err.Op)
}

// InvalidInstructionError indicates a character executed in normal mode that
// is not a recognized opcode.
type InvalidInstructionError struct {
	Char rune
}

func (err InvalidInstructionError) Error() string {
	return fmt.Sprintf("invalid instruction %q", err.Char)
}

// InvalidPositionError indicates that ".", "g", or "p" popped coordinates
// that were negative or non-integral.
type InvalidPositionError struct {
	X, Y float64
}

func (err InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position (%v,%v)", err.X, err.Y)
}

// CharConversionFailureError indicates that "o" or "p" received a value that
// is not an integer in the valid Unicode scalar range.
type CharConversionFailureError struct {
	Value float64
}

func (err CharConversionFailureError) Error() string {
	return fmt.Sprintf("value %v is not a valid character", err.Value)
}

// UnexpectedEOFError is reserved for hosts that opt in to treating input
// exhaustion as fatal via WithEOFIsFatal; the core's default behavior is to
// push -1.0 on "i" and keep running.
type UnexpectedEOFError struct{}

func (UnexpectedEOFError) Error() string { return "unexpected end of input" }

// RuntimeError wraps any of the above with the pointer position and
// instruction in effect when the error occurred, so hosts can print a
// useful diagnostic without the core needing to know how to format one.
type RuntimeError struct {
	Pos Position
	Op  rune
	Err error
}

func (err RuntimeError) Error() string {
	return fmt.Sprintf("@%v %q: %v", err.Pos, err.Op, err.Err)
}

func (err RuntimeError) Unwrap() error { return err.Err }

/* Package fish implements the execution core of a Fish-family interpreter.

Fish programs are laid out on a toroidal 2D grid of single-character
instructions. A mobile instruction pointer walks the grid in one of four
compass directions, executing whatever character it lands on; reaching an
edge wraps around to the opposite one. There is no call stack and no named
words -- only a stack of floating point values (organized as a stack of
substacks, to support "[" / "]" partitioning), a single-slot register per
substack, and the grid itself, which programs may rewrite as they run via
"g" (get) and "p" (put).

This package owns three pieces that are tightly coupled enough to need a
single, exactly specified execution model:

  - Codebox: the mutable grid the program lives in (codebox.go)
  - the stack machine: stack-of-substacks, register, arithmetic (stack.go,
    machine.go)
  - the interpreter loop: pointer, direction, text mode, dispatch
    (interpreter.go)

Everything outside of that -- reading the source file, putting a terminal
into raw mode, writing decoded bytes to a terminal -- is the host's job; see
cmd/fish for the reference host binary built on top of this package.
*/
package fish

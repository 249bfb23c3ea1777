package fish

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodebox_dimensions(t *testing.T) {
	cb := NewCodebox("ab\nc")
	require.Equal(t, uint(2), cb.Width(), "width should be the longest line")
	require.Equal(t, uint(2), cb.Height())
}

func TestCodebox_empty(t *testing.T) {
	cb := NewCodebox("")
	require.Equal(t, uint(0), cb.Width())
	require.Equal(t, uint(0), cb.Height())
	require.Equal(t, Instruction{}, cb.Get(Position{0, 0}), "empty codebox reads as all no-ops")
}

func TestCodebox_spacesAreNoops(t *testing.T) {
	cb := NewCodebox("a b")
	require.Equal(t, charOp('a'), cb.Get(Position{0, 0}))
	require.Equal(t, noop(), cb.Get(Position{1, 0}), "a literal space is a no-op cell")
	require.Equal(t, charOp('b'), cb.Get(Position{2, 0}))
}

func TestCodebox_getOutOfBounds(t *testing.T) {
	cb := NewCodebox("a")
	require.Equal(t, noop(), cb.Get(Position{5, 5}))
}

func TestCodebox_setExtendsWithoutChangingDimensions(t *testing.T) {
	cb := NewCodebox("a")
	require.Equal(t, uint(1), cb.Width())
	require.Equal(t, uint(1), cb.Height())

	cb.Set(Position{10, 10}, 'z')
	require.Equal(t, charOp('z'), cb.Get(Position{10, 10}))
	require.Equal(t, uint(1), cb.Width(), "Set must not change Width")
	require.Equal(t, uint(1), cb.Height(), "Set must not change Height")
}

func TestCodebox_setOverwrite(t *testing.T) {
	cb := NewCodebox("a")
	cb.Set(Position{0, 0}, 'z')
	require.Equal(t, charOp('z'), cb.Get(Position{0, 0}))
}

func TestCodebox_setZeroRune(t *testing.T) {
	// U+0000 must round-trip through Set/Get despite the sentinel shift used
	// to tell "never written" apart from an explicit write of NUL.
	cb := NewCodebox("a")
	cb.Set(Position{0, 0}, 0)
	require.Equal(t, charOp(0), cb.Get(Position{0, 0}))
}

func TestCodebox_unicode(t *testing.T) {
	cb := NewCodebox("日本語")
	require.Equal(t, uint(3), cb.Width(), "width is measured in runes, not bytes")
	require.Equal(t, charOp('本'), cb.Get(Position{1, 0}))
}

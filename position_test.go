package fish

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	require.Equal(t, uint(1), wrap(0, 1, 4), "normal increment")
	require.Equal(t, uint(0), wrap(3, 1, 4), "increment off the right edge wraps to 0")
	require.Equal(t, uint(3), wrap(0, -1, 4), "decrement off the left edge wraps to size-1")
	require.Equal(t, uint(2), wrap(3, -1, 4), "normal decrement")
	require.Equal(t, uint(0), wrap(0, 1, 0), "degenerate zero-size dimension never panics")
}

func TestDirection_reverseInvolution(t *testing.T) {
	for _, dir := range []Direction{North, East, South, West} {
		require.Equal(t, dir, dir.Reverse().Reverse())
	}
}

func TestDirection_horizontalVertical(t *testing.T) {
	require.True(t, East.horizontal())
	require.True(t, West.horizontal())
	require.False(t, North.horizontal())
	require.True(t, North.vertical())
	require.True(t, South.vertical())
	require.False(t, East.vertical())
}

func TestMirrorSlash(t *testing.T) {
	require.Equal(t, East, mirrorSlash(North))
	require.Equal(t, North, mirrorSlash(East))
	require.Equal(t, West, mirrorSlash(South))
	require.Equal(t, South, mirrorSlash(West))
}

func TestMirrorBackslash(t *testing.T) {
	require.Equal(t, West, mirrorBackslash(North))
	require.Equal(t, North, mirrorBackslash(West))
	require.Equal(t, East, mirrorBackslash(South))
	require.Equal(t, South, mirrorBackslash(East))
}

func TestMirrorIsInvolution(t *testing.T) {
	// Each mirror pairs directions up (N<->E/S<->W, or N<->W/S<->E), so
	// reflecting twice always returns the original direction.
	for _, dir := range []Direction{North, East, South, West} {
		require.Equal(t, dir, mirrorSlash(mirrorSlash(dir)))
		require.Equal(t, dir, mirrorBackslash(mirrorBackslash(dir)))
	}
}

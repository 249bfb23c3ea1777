package mem_test

import (
	"testing"

	"github.com/fish-lang/gofish/internal/mem"
	"github.com/stretchr/testify/require"
)

func TestRow_unwrittenColumnsReadAsNotWritten(t *testing.T) {
	var r mem.Row
	r.PageSize = 4

	ch, ok, err := r.Get(0)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, rune(0), ch)
	require.Equal(t, uint(0), r.Width())
}

func TestRow_setThenGet(t *testing.T) {
	var r mem.Row
	r.PageSize = 4

	require.NoError(t, r.Set(0, 'f'))
	ch, ok, err := r.Get(0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 'f', ch)

	// neighboring, never-written columns in the same page stay unwritten
	ch, ok, err = r.Get(1)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, rune(0), ch)
}

func TestRow_nulRuneRoundTrips(t *testing.T) {
	// a written U+0000 must be distinguishable from an unwritten column,
	// since a program may legitimately "p" a NUL into its own source.
	var r mem.Row
	r.PageSize = 4
	require.NoError(t, r.Set(2, 0))
	ch, ok, err := r.Get(2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rune(0), ch)
}

func TestRow_writeAheadAllocatesGapPage(t *testing.T) {
	var r mem.Row
	r.PageSize = 4

	require.NoError(t, r.Set(0x9, 'i'))
	require.Equal(t, mem.RowDump{
		Bases: []uint{0x8},
		Pages: [][]rune{
			{0, 'i' + 1, 0, 0},
		},
	}, r.Dump())

	require.NoError(t, r.Set(0x0, 'h'))
	require.Equal(t, mem.RowDump{
		Bases: []uint{0x0, 0x8},
		Pages: [][]rune{
			{'h' + 1, 0, 0, 0},
			{0, 'i' + 1, 0, 0},
		},
	}, r.Dump())

	ch, ok, err := r.Get(0x9)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 'i', ch)
}

func TestRow_writeBeforeExistingPageInsertsGapPage(t *testing.T) {
	var r mem.Row
	r.PageSize = 0x10

	require.NoError(t, r.Set(0x18, '!'))
	ch, ok, _ := r.Get(0x8)
	require.False(t, ok)
	require.Equal(t, rune(0), ch)

	require.NoError(t, r.Set(0x28, '?'))
	require.NoError(t, r.Set(0x8, '$'))

	for addr, want := range map[uint]rune{0x8: '$', 0x18: '!', 0x28: '?'} {
		ch, ok, err := r.Get(addr)
		require.NoError(t, err)
		require.True(t, ok, "addr %#x", addr)
		require.Equal(t, want, ch, "addr %#x", addr)
	}
}

func TestRow_widthGrowsWithHighestPage(t *testing.T) {
	var r mem.Row
	r.PageSize = 4
	require.Equal(t, uint(0), r.Width())
	require.NoError(t, r.Set(5, 'x'))
	require.Equal(t, uint(8), r.Width())
}

func TestRow_limitRejectsColumnsPastIt(t *testing.T) {
	var r mem.Row
	r.Limit = 10

	_, _, err := r.Get(11)
	require.Equal(t, mem.LimitError{Col: 11, Op: "get"}, err)

	err = r.Set(11, 'x')
	require.Equal(t, mem.LimitError{Col: 11, Op: "set"}, err)
}

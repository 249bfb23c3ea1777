package fish

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackMachine_depthStartsAtOne(t *testing.T) {
	var m StackMachine
	require.Equal(t, 1, m.Depth())
}

func TestStackMachine_splitMovesTopNValues(t *testing.T) {
	var m StackMachine
	cur := m.current()
	cur.push(1)
	cur.push(2)
	cur.push(3)
	cur.push(2) // count: move top 2 values

	require.NoError(t, m.Split())
	require.Equal(t, 2, m.Depth())
	require.Equal(t, []float64{1}, m.base.values, "base keeps what wasn't moved")
	require.Equal(t, []float64{2, 3}, m.current().values, "new substack keeps order")
}

func TestStackMachine_splitUnderflow(t *testing.T) {
	var m StackMachine
	cur := m.current()
	cur.push(5) // asks to move 5 values but none exist besides the count itself

	require.Equal(t, UnderflowError{Op: "["}, m.Split())
}

func TestStackMachine_splitNegativeCount(t *testing.T) {
	var m StackMachine
	m.current().push(-1)
	require.Equal(t, UnderflowError{Op: "["}, m.Split())
}

func TestStackMachine_dropMergesIntoParent(t *testing.T) {
	var m StackMachine
	m.current().push(1)
	m.current().push(2)
	m.current().push(1) // count: move the top 1 value
	require.NoError(t, m.Split())
	require.Equal(t, []float64{2}, m.current().values)

	m.current().push(9)
	m.Drop()
	require.Equal(t, 1, m.Depth())
	require.Equal(t, []float64{1, 2, 9}, m.current().values, "dropped values land on top of the parent")
}

func TestStackMachine_dropOnBaseClears(t *testing.T) {
	var m StackMachine
	m.current().push(1)
	m.current().push(2)
	_ = m.current().register()
	m.Drop()
	require.Equal(t, 1, m.Depth())
	require.Empty(t, m.current().values)
	require.False(t, m.base.hasReg)
}

func TestStackMachine_splitDropRoundTripPreservesBaseMultiset(t *testing.T) {
	var m StackMachine
	m.current().push(10)
	m.current().push(20)
	m.current().push(30)
	before := append([]float64(nil), m.current().values...)

	m.current().push(float64(len(before)))
	require.NoError(t, m.Split())
	m.Drop()

	require.Equal(t, before, m.current().values)
}

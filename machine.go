package fish

// StackMachine holds a non-empty ordered sequence of substacks; only the
// topmost ("current") substack is addressed by arithmetic/IO operations.
// The sequence always has at least one element, the base substack, which
// "]" clears rather than removes.
type StackMachine struct {
	base      substack
	substacks []*substack
}

// current returns the topmost substack.
func (m *StackMachine) current() *substack {
	if n := len(m.substacks); n > 0 {
		return m.substacks[n-1]
	}
	return &m.base
}

// Depth reports how many substacks are in play, always >= 1.
func (m *StackMachine) Depth() int { return len(m.substacks) + 1 }

// Split implements "[": pops n from the current substack, then moves its
// top n values (preserving order) into a new substack pushed above it.
// Underflows if the count itself can't be popped, or if fewer than n
// values remain on the current substack afterward.
func (m *StackMachine) Split() error {
	cur := m.current()
	nv, err := cur.pop("[")
	if err != nil {
		return err
	}
	n := int(nv)
	if n < 0 || n > len(cur.values) {
		return UnderflowError{Op: "["}
	}
	moved := make([]float64, n)
	copy(moved, cur.values[len(cur.values)-n:])
	cur.values = cur.values[:len(cur.values)-n]
	m.substacks = append(m.substacks, &substack{values: moved})
	return nil
}

// Drop implements "]": removes the top substack and appends its values (in
// order) onto the substack now on top; the removed substack's register is
// discarded. If only the base substack remains, clears its values and
// register instead of removing it.
func (m *StackMachine) Drop() {
	if n := len(m.substacks); n > 0 {
		top := m.substacks[n-1]
		m.substacks = m.substacks[:n-1]
		dest := m.current()
		dest.values = append(dest.values, top.values...)
		return
	}
	m.base.values = nil
	m.base.reg = 0
	m.base.hasReg = false
}

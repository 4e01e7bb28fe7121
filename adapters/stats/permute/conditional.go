package permute

// Conditional wraps a permutation array for single-unit conditional
// trials: Pin(i) forces position i back to its own identity by one
// transposition, and Unpin(i, displaced) restores the permutation
// exactly. An inverse array is maintained so both operations are O(1).
//
// The contract: after Pin(i), Label(i) == i, the array is still a
// permutation, and every position other than i and the one that held
// label i is untouched.
type Conditional struct {
	perm    []int
	inverse []int
}

// NewConditional takes ownership of perm.
func NewConditional(perm []int) *Conditional {
	inv := make([]int, len(perm))
	for pos, label := range perm {
		inv[label] = pos
	}
	return &Conditional{perm: perm, inverse: inv}
}

// Label returns the label currently assigned to position j.
func (c *Conditional) Label(j int) int {
	return c.perm[j]
}

// Len returns the permutation length.
func (c *Conditional) Len() int {
	return len(c.perm)
}

// Pin forces position i to its own label, swapping the displaced label
// into the position that previously held label i. It returns the
// displaced label, which Unpin needs to undo the transposition.
func (c *Conditional) Pin(i int) int {
	displaced := c.perm[i]
	j := c.inverse[i] // position currently holding label i
	c.perm[j] = displaced
	c.perm[i] = i
	c.inverse[displaced] = j
	c.inverse[i] = i
	return displaced
}

// Unpin reverses a prior Pin(i) that returned displaced.
func (c *Conditional) Unpin(i, displaced int) {
	j := c.inverse[displaced]
	c.perm[i] = displaced
	c.perm[j] = i
	c.inverse[displaced] = i
	c.inverse[i] = j
}

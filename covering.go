package automaton

import (
	"fmt"
)

// Covering is the result of Cover.
type Covering struct {
	Compatibility *Compatibility

	// Maximal holds every maximal compatible class (the maximum covering).
	Maximal []Block

	// Minimum is a smallest sub-collection of Maximal whose union is the state set.
	Minimum []Block
}

// CoveringStats summarizes a covering.
type CoveringStats struct {
	States        int
	MaximalBlocks int
	MinimumBlocks int
}

func (c *Covering) Stats() CoveringStats {
	return CoveringStats{
		States:        len(c.Compatibility.states),
		MaximalBlocks: len(c.Maximal),
		MinimumBlocks: len(c.Minimum),
	}
}

// Inequality is the Anger-Pohl bound ||G|| - ||Pmax|| <= min(||S||, ||Gmax||) - ||G||.
type Inequality struct {
	Left  int
	Right int
	Holds bool
}

// CheckInequality evaluates the bound for the given class counts.
func CheckInequality(g, pMax, s, gMax int) Inequality {
	left := g - pMax
	right := min(s, gMax) - g
	return Inequality{Left: left, Right: right, Holds: left <= right}
}

// Cover runs the whole reduction of a partial Mealy machine: compatibility of every pair, maximal
// compatible classes, and a minimum covering.
func Cover(t *Table, opts ...Option) (*Covering, error) {
	c, err := ComputeCompatibility(t, opts...)
	if err != nil {
		return nil, err
	}
	maximal := MaximalBlocks(c, opts...)
	return &Covering{
		Compatibility: c,
		Maximal:       maximal,
		Minimum:       MinimumCovering(c, maximal, opts...),
	}, nil
}

// MinimumCovering picks the first combination of the fewest blocks, in block order, whose union is the
// whole state set. If no combination covers it, which cannot happen for the output of MaximalBlocks,
// all blocks are returned. Blocks naming unknown states are ignored. Worst case complexity:
// exponential in the number of blocks.
func MinimumCovering(c *Compatibility, blocks []Block, opts ...Option) []Block {
	options := newOptions(opts...)
	n := len(c.states)

	sets := make([]*StateSet, 0, len(blocks))
	for _, b := range blocks {
		if s, ok := c.setOf(b); ok {
			sets = append(sets, s)
		}
	}

	var chosen []int
	var search func(start, left int, acc *StateSet) bool
	search = func(start, left int, acc *StateSet) bool {
		if left == 0 {
			return acc.Size() == n
		}
		for i := start; i <= len(sets)-left; i++ {
			next := acc.Clone()
			next.InPlaceUnion(sets[i])
			chosen = append(chosen, i)
			if search(i+1, left-1, next) {
				return true
			}
			chosen = chosen[:len(chosen)-1]
		}
		return false
	}

	for r := 1; r <= len(sets); r++ {
		chosen = chosen[:0]
		if search(0, r, NewStateSet(n)) {
			picked := make([]*StateSet, len(chosen))
			for i, idx := range chosen {
				picked[i] = sets[idx]
			}
			result := c.blocksOf(picked)
			options.logger.Debug("minimum covering found", "size", r, "blocks", result)
			return result
		}
	}
	options.logger.Debug("no proper covering found, using all blocks", "blocks", len(sets))
	return c.blocksOf(sets)
}

// ValidateCovering checks that blocks name only known states, that each block is pairwise compatible,
// and that together they cover every state.
func ValidateCovering(c *Compatibility, blocks []Block) error {
	n := len(c.states)
	union := NewStateSet(n)
	for i, b := range blocks {
		s, ok := c.setOf(b)
		if !ok {
			return fmt.Errorf("%w: block %d %s names an unknown state", ErrInvalidCovering, i, b)
		}
		if !c.isClique(s) {
			return fmt.Errorf("%w: block %d %s holds an incompatible pair", ErrInvalidCovering, i, b)
		}
		union.InPlaceUnion(s)
	}
	if union.Size() != n {
		for s := range c.states {
			if !union.Contains(s) {
				return newTableError(ErrInvalidCovering, c.states[s], "", "state is not covered")
			}
		}
	}
	return nil
}

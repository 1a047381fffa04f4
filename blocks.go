package automaton

import (
	"log/slog"
	"slices"
)

// MaximalBlocks returns every maximal compatible class of the relation: sets of pairwise compatible
// states that no further state can join. A state compatible with nothing forms a singleton block, so the
// blocks always cover the state set. Worst case complexity: exponential in the number of states.
func MaximalBlocks(c *Compatibility, opts ...Option) []Block {
	options := newOptions(opts...)
	return c.blocksOf(c.maximalSets(options.logger))
}

// maximalSets explores, for each seed state, its compatible neighbourhood and then merges the results
// of all seeds keeping only sets not contained in another one.
func (c *Compatibility) maximalSets(logger *slog.Logger) []*StateSet {
	n := len(c.states)
	var found []*StateSet
	for seed := 0; seed < n; seed++ {
		candidate := newStateSetOf(n, seed)
		for j, ok := c.rows[seed].NextSet(0); ok; j, ok = c.rows[seed].NextSet(j + 1) {
			candidate.Add(int(j))
		}
		before := len(found)
		c.enumerate(candidate, seed, NewHashMap[bool](), &found)
		logger.Debug("blocks found for seed", "seed", c.states[seed], "blocks", c.blocksOf(found[before:]))
	}

	unique := NewHashMap[bool](WithCapacity(len(found)))
	distinct := make([]*StateSet, 0, len(found))
	for _, s := range found {
		if !unique.Contains(s) {
			unique.Set(s, true)
			distinct = append(distinct, s)
		}
	}

	maximal := make([]*StateSet, 0, len(distinct))
	for i, s := range distinct {
		contained := false
		for j, other := range distinct {
			if i != j && s.IsSubsetOf(other) {
				contained = true
				break
			}
		}
		if !contained {
			maximal = append(maximal, s)
		}
	}
	logger.Debug("maximal blocks", "count", len(maximal), "blocks", c.blocksOf(maximal))
	return maximal
}

// enumerate appends to found the cliques reachable from set by removing conflicting states one at a
// time. The seed is compatible with every candidate and is never removed. Sets already explored for
// this seed are skipped, their cliques are in found already.
func (c *Compatibility) enumerate(set *StateSet, seed int, explored *HashMap[bool], found *[]*StateSet) {
	if explored.Contains(set) {
		return
	}
	explored.Set(set, true)

	conflicts := c.conflicting(set)
	if len(conflicts) == 0 {
		*found = append(*found, set)
		return
	}
	for _, x := range conflicts {
		if x == seed {
			continue
		}
		sub := set.Clone()
		sub.Remove(x)
		c.enumerate(sub, seed, explored, found)
	}
}

// conflicting returns, in ascending order, the members of set that are incompatible with another member.
func (c *Compatibility) conflicting(set *StateSet) []int {
	members := set.GetArray()
	marked := NewStateSet(len(c.states))
	for i, p := range members {
		for _, q := range members[i+1:] {
			if !c.rows[p].Test(uint(q)) {
				marked.Add(p)
				marked.Add(q)
			}
		}
	}
	return marked.GetArray()
}

// blocksOf converts sets to blocks in canonical order: members ascending, blocks by first member, then
// by the remaining members.
func (c *Compatibility) blocksOf(sets []*StateSet) []Block {
	members := make([][]int, len(sets))
	for i, s := range sets {
		members[i] = s.GetArray()
	}
	slices.SortFunc(members, slices.Compare[[]int])
	blocks := make([]Block, len(members))
	for i, m := range members {
		blocks[i] = make(Block, len(m))
		for j, s := range m {
			blocks[i][j] = c.states[s]
		}
	}
	return blocks
}

// setOf converts a block back to a set; ok is false if the block names an unknown state.
func (c *Compatibility) setOf(b Block) (*StateSet, bool) {
	s := NewStateSet(len(c.states))
	for _, name := range b {
		i, ok := c.stateIndex[name]
		if !ok {
			return nil, false
		}
		s.Add(i)
	}
	return s, true
}

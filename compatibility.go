package automaton

import (
	"log/slog"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Compatibility is the symmetric compatibility relation over the states of a partial Mealy machine.
// Two states are compatible when no input word makes them produce different specified outputs. A state
// is trivially compatible with itself; reflexive pairs are not stored.
type Compatibility struct {
	states     []State
	stateIndex map[State]int

	// rows[p] holds the states compatible with p.
	rows []*bitset.BitSet
}

// Pair is an unordered pair of distinct states with P before Q in natural order.
type Pair struct {
	P, Q       State
	Compatible bool
}

// statePair is an unordered pair of state indices, normalized so that p < q.
type statePair struct {
	p, q int
}

func newStatePair(p, q int) statePair {
	if p > q {
		p, q = q, p
	}
	return statePair{p: p, q: q}
}

func (sp statePair) Hash() uint64 {
	return mixSeq([]int{sp.p, sp.q})
}

func (sp statePair) Equals(other Hashable) bool {
	o, ok := other.(statePair)
	return ok && o == sp
}

type compatibilityEngine struct {
	t      *Table
	memo   *HashMap[bool]
	logger *slog.Logger
}

// query is the scratch state of one top-level compatibility question. visited marks pairs already
// entered during this query; tentative lists pairs found compatible only by assuming that a pair still
// under verification is compatible.
type query struct {
	visited   *bitset.BitSet
	tentative []statePair
}

// ComputeCompatibility decides compatibility for every unordered pair of states. Both partial and
// total tables are accepted.
func ComputeCompatibility(t *Table, opts ...Option) (*Compatibility, error) {
	options := newOptions(opts...)
	n := len(t.states)
	e := &compatibilityEngine{
		t:      t,
		memo:   NewHashMap[bool](WithCapacity(n * n / 2)),
		logger: options.logger,
	}

	c := &Compatibility{
		states:     t.states,
		stateIndex: t.stateIndex,
		rows:       make([]*bitset.BitSet, n),
	}
	for i := range c.rows {
		c.rows[i] = bitset.New(uint(n))
	}
	for p := 0; p < n; p++ {
		for q := p + 1; q < n; q++ {
			if e.compatible(p, q) {
				c.rows[p].Set(uint(q))
				c.rows[q].Set(uint(p))
			}
		}
	}
	e.logger.Debug("compatibility relation computed", "states", n, "compatible_pairs", c.countPairs())
	return c, nil
}

// compatible answers one top-level query with a fresh visited set.
func (e *compatibilityEngine) compatible(p, q int) bool {
	n := len(e.t.states)
	qu := &query{visited: bitset.New(uint(n * n))}
	ok := e.check(newStatePair(p, q), qu)
	if ok {
		// Every pair entered in a successful query held, so the assumptions are confirmed.
		for _, sp := range qu.tentative {
			e.memo.Set(sp, true)
		}
	}
	e.logger.Debug("pair checked", "p", e.t.states[p], "q", e.t.states[q], "compatible", ok)
	return ok
}

func (e *compatibilityEngine) check(sp statePair, qu *query) bool {
	if v, ok := e.memo.Get(sp); ok {
		return v
	}
	t := e.t
	p, q := sp.p, sp.q

	for a := range t.alphabet {
		op, oq := t.out(p, a), t.out(q, a)
		if op != -1 && oq != -1 && op != oq {
			e.logger.Debug("outputs differ", "p", t.states[p], "q", t.states[q], "symbol", t.alphabet[a],
				"p_output", t.outputs[op], "q_output", t.outputs[oq])
			e.memo.Set(sp, false)
			return false
		}
	}

	successors := e.successors(sp)
	if len(successors) == 0 {
		e.logger.Debug("directly compatible", "p", t.states[p], "q", t.states[q])
		e.memo.Set(sp, true)
		return true
	}

	bit := uint(sp.p*len(t.states) + sp.q)
	if qu.visited.Test(bit) {
		e.logger.Debug("pair already under verification, assumed compatible", "p", t.states[p], "q", t.states[q])
		return true
	}
	qu.visited.Set(bit)

	for _, next := range successors {
		if !e.check(next, qu) {
			e.logger.Debug("successor pair incompatible", "p", t.states[p], "q", t.states[q],
				"next_p", t.states[next.p], "next_q", t.states[next.q])
			e.memo.Set(sp, false)
			return false
		}
	}
	qu.tentative = append(qu.tentative, sp)
	return true
}

// successors returns the distinct pairs of different destinations reached from p and q on a symbol
// where both destinations are specified.
func (e *compatibilityEngine) successors(sp statePair) []statePair {
	t := e.t
	var pairs []statePair
	for a := range t.alphabet {
		dp, dq := t.dest(sp.p, a), t.dest(sp.q, a)
		if dp == -1 || dq == -1 || dp == dq {
			continue
		}
		next := newStatePair(dp, dq)
		dup := false
		for _, seen := range pairs {
			if seen == next {
				dup = true
				break
			}
		}
		if !dup {
			pairs = append(pairs, next)
		}
	}
	return pairs
}

// States returns the states of the relation in natural order.
func (c *Compatibility) States() []State {
	return slices.Clone(c.states)
}

// Compatible reports whether p and q are compatible. A state is compatible with itself; unknown
// states are compatible with nothing.
func (c *Compatibility) Compatible(p, q State) bool {
	pi, ok := c.stateIndex[p]
	if !ok {
		return false
	}
	qi, ok := c.stateIndex[q]
	if !ok {
		return false
	}
	return pi == qi || c.rows[pi].Test(uint(qi))
}

// Neighbors returns the states compatible with s, excluding s, in natural order.
func (c *Compatibility) Neighbors(s State) []State {
	i, ok := c.stateIndex[s]
	if !ok {
		return nil
	}
	var out []State
	for j, ok := c.rows[i].NextSet(0); ok; j, ok = c.rows[i].NextSet(j + 1) {
		out = append(out, c.states[j])
	}
	return out
}

// Matrix returns the relation as a symmetric boolean matrix indexed like States. The diagonal is true.
func (c *Compatibility) Matrix() [][]bool {
	m := make([][]bool, len(c.states))
	for i := range m {
		m[i] = make([]bool, len(c.states))
		for j := range m[i] {
			m[i][j] = i == j || c.rows[i].Test(uint(j))
		}
	}
	return m
}

// Pairs lists every unordered pair of distinct states with its verdict.
func (c *Compatibility) Pairs() []Pair {
	n := len(c.states)
	pairs := make([]Pair, 0, n*(n-1)/2)
	for p := 0; p < n; p++ {
		for q := p + 1; q < n; q++ {
			pairs = append(pairs, Pair{P: c.states[p], Q: c.states[q], Compatible: c.rows[p].Test(uint(q))})
		}
	}
	return pairs
}

func (c *Compatibility) countPairs() int {
	total := 0
	for _, row := range c.rows {
		total += int(row.Count())
	}
	return total / 2
}

// isClique reports whether every two members of set are compatible.
func (c *Compatibility) isClique(set *StateSet) bool {
	members := set.GetArray()
	for i, p := range members {
		for _, q := range members[i+1:] {
			if !c.rows[p].Test(uint(q)) {
				return false
			}
		}
	}
	return true
}

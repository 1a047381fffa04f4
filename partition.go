package automaton

import (
	"slices"
	"strings"
)

// Block is a set of states in natural order.
type Block []State

func (b Block) String() string {
	names := make([]string, len(b))
	for i, s := range b {
		names[i] = string(s)
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Partition is a list of disjoint blocks ordered by their smallest state.
type Partition []Block

func (p Partition) String() string {
	parts := make([]string, len(p))
	for i, b := range p {
		parts[i] = b.String()
	}
	return strings.Join(parts, " ")
}

// Minimization is the result of Minimize.
type Minimization struct {
	// Rounds holds the initial partition followed by every partition produced by a round that split
	// at least one block. The last element equals Final.
	Rounds []Partition

	Final Partition

	// Representatives maps each state to the smallest state of its block.
	Representatives map[State]State

	// Table is the minimized machine, one state per representative.
	Table *Table
}

// signature is the tuple a state is grouped by: output indices for the initial partition, destination
// block indices for a refinement round.
type signature []int

func (s signature) Hash() uint64 {
	return mixSeq(s)
}

func (s signature) Equals(other Hashable) bool {
	o, ok := other.(signature)
	return ok && slices.Equal(s, o)
}

// groupBy splits states into groups with equal keys. Groups appear in order of their first member and
// members keep their input order, so ascending input yields ascending groups.
func groupBy(states []int, key func(s int) signature) [][]int {
	index := NewHashMap[int](WithCapacity(len(states)))
	groups := make([][]int, 0)
	for _, s := range states {
		sig := key(s)
		i, ok := index.Get(sig)
		if !ok {
			i = len(groups)
			index.Set(sig, i)
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], s)
	}
	return groups
}

func initialBlocks(t *Table, states []int) [][]int {
	return groupBy(states, func(s int) signature {
		sig := make(signature, len(t.alphabet))
		for a := range t.alphabet {
			sig[a] = t.out(s, a)
		}
		return sig
	})
}

// refine runs one round. The state to block mapping is rebuilt from scratch because block indices
// shift whenever a block splits.
func refine(t *Table, blocks [][]int) ([][]int, bool) {
	blockOf := make([]int, len(t.states))
	for i, block := range blocks {
		for _, s := range block {
			blockOf[s] = i
		}
	}

	next := make([][]int, 0, len(blocks))
	split := false
	for _, block := range blocks {
		if len(block) == 1 {
			next = append(next, block)
			continue
		}
		groups := groupBy(block, func(s int) signature {
			sig := make(signature, len(t.alphabet))
			for a := range t.alphabet {
				sig[a] = blockOf[t.dest(s, a)]
			}
			return sig
		})
		if len(groups) > 1 {
			split = true
		}
		next = append(next, groups...)
	}
	return next, split
}

func (t *Table) partitionOf(blocks [][]int) Partition {
	sorted := slices.Clone(blocks)
	slices.SortFunc(sorted, func(x, y []int) int {
		return x[0] - y[0]
	})
	p := make(Partition, len(sorted))
	for i, block := range sorted {
		p[i] = make(Block, len(block))
		for j, s := range block {
			p[i][j] = t.states[s]
		}
	}
	return p
}

// InitialPartition returns π₀: states grouped by the outputs they produce on each symbol.
func InitialPartition(t *Table) (Partition, error) {
	if err := t.requireTotal(); err != nil {
		return nil, err
	}
	return t.partitionOf(initialBlocks(t, allStates(len(t.states)))), nil
}

// Minimize computes the coarsest partition of a completely specified Mealy machine into blocks of
// states that no input word distinguishes by output, and the minimized machine over the smallest
// state of each block.
func Minimize(t *Table, opts ...Option) (*Minimization, error) {
	if err := t.requireTotal(); err != nil {
		return nil, err
	}
	options := newOptions(opts...)
	logger := options.logger

	live := allStates(len(t.states))
	if options.pruneUnreachable {
		live = reachable(t).GetArray()
		logger.Debug("unreachable states pruned", "kept", len(live), "dropped", len(t.states)-len(live))
	}

	blocks := initialBlocks(t, live)
	m := &Minimization{
		Rounds: []Partition{t.partitionOf(blocks)},
	}
	logger.Debug("initial partition", "round", 0, "blocks", len(blocks), "partition", m.Rounds[0].String())

	// Each splitting round adds at least one block, so there are at most len(live) rounds.
	for round := 1; ; round++ {
		next, split := refine(t, blocks)
		if !split {
			logger.Debug("partition is stable", "round", round, "blocks", len(blocks))
			break
		}
		blocks = next
		p := t.partitionOf(blocks)
		m.Rounds = append(m.Rounds, p)
		logger.Debug("partition refined", "round", round, "blocks", len(blocks), "partition", p.String())
	}
	m.Final = m.Rounds[len(m.Rounds)-1]

	// Blocks are ascending, so the first member is the smallest state.
	rep := make([]int, len(t.states))
	reps := make([]int, 0, len(blocks))
	for _, block := range blocks {
		for _, s := range block {
			rep[s] = block[0]
		}
		reps = append(reps, block[0])
	}
	slices.Sort(reps)

	m.Representatives = make(map[State]State, len(live))
	for _, s := range live {
		m.Representatives[t.states[s]] = t.states[rep[s]]
	}

	names := make([]State, len(reps))
	for i, r := range reps {
		names[i] = t.states[r]
	}
	initial, _ := slices.BinarySearch(reps, rep[t.initial])
	m.Table = deriveTable(names, t.alphabet, initial, func(i, a int) (State, Symbol) {
		r := reps[i]
		return t.states[rep[t.dest(r, a)]], t.outputs[t.out(r, a)]
	})
	logger.Debug("machine minimized", "states", len(t.states), "minimized", len(reps))
	return m, nil
}

func allStates(n int) []int {
	states := make([]int, n)
	for i := range states {
		states[i] = i
	}
	return states
}

package automaton

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Reachable returns the states reachable from the initial state, in natural order. Don't-care
// destinations are not followed.
func Reachable(t *Table) []State {
	live := reachable(t)
	states := make([]State, 0, live.Size())
	for _, s := range live.GetArray() {
		states = append(states, t.states[s])
	}
	return states
}

func reachable(t *Table) *StateSet {
	seen := NewStateSet(len(t.states))
	workList := make([]int, 0)
	workList = append(workList, t.initial)
	seen.Add(t.initial)

	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]

		for a := range t.alphabet {
			dest := t.dest(state, a)
			if dest != -1 && !seen.Contains(dest) {
				workList = append(workList, dest)
				seen.Add(dest)
			}
		}
	}
	return seen
}

// Equivalent Returns true if two completely specified Mealy machines produce the same output word for
// every input word, starting from their initial states. Otherwise it also returns a shortest input
// word on which they differ. Worst case complexity: the product of the state counts times the
// alphabet size.
func Equivalent(a, b *Table) (bool, []Symbol, error) {
	if err := a.requireTotal(); err != nil {
		return false, nil, err
	}
	if err := b.requireTotal(); err != nil {
		return false, nil, err
	}
	if len(a.alphabet) != len(b.alphabet) {
		return false, nil, ErrAlphabetMismatch
	}
	// symbolMap[i] is the index in b of a's i-th symbol.
	symbolMap := make([]int, len(a.alphabet))
	for i, sym := range a.alphabet {
		j, ok := b.symbolIndex[sym]
		if !ok {
			return false, nil, newTableError(ErrAlphabetMismatch, "", sym, "symbol missing from the second machine")
		}
		symbolMap[i] = j
	}

	nb := len(b.states)
	pair := func(p, q int) int { return p*nb + q }

	type visit struct {
		parent int // pair index, -1 for the start
		symbol int
	}
	visits := make(map[int]visit)
	seen := bitset.New(uint(len(a.states) * nb))

	word := func(from int, last int) []Symbol {
		w := []Symbol{a.alphabet[last]}
		for p := from; visits[p].parent != -1; p = visits[p].parent {
			w = append(w, a.alphabet[visits[p].symbol])
		}
		slices.Reverse(w)
		return w
	}

	start := pair(a.initial, b.initial)
	seen.Set(uint(start))
	visits[start] = visit{parent: -1}
	workList := []int{start}
	for len(workList) > 0 {
		cur := workList[0]
		workList = workList[1:]
		p, q := cur/nb, cur%nb

		for i := range a.alphabet {
			j := symbolMap[i]
			if a.outputs[a.out(p, i)] != b.outputs[b.out(q, j)] {
				return false, word(cur, i), nil
			}
			next := pair(a.dest(p, i), b.dest(q, j))
			if !seen.Test(uint(next)) {
				seen.Set(uint(next))
				visits[next] = visit{parent: cur, symbol: i}
				workList = append(workList, next)
			}
		}
	}
	return true, nil, nil
}
